package extract

import "strings"

// DefaultMaxChunkChars bounds the text handed to the delegate backend in a
// single request. Large enough that listing rows stay together, small
// enough for modest context windows.
const DefaultMaxChunkChars = 6000

// SplitChunks splits text into chunks of at most maxChars characters,
// breaking only on line boundaries. Lines are accumulated until adding the
// next line would exceed the limit, at which point the current chunk is
// sealed. A single line longer than maxChars becomes its own oversized
// chunk rather than being split mid-line, so no listing row is ever torn
// across two requests.
func SplitChunks(text string, maxChars int) []string {
	if maxChars <= 0 {
		panic("extract: SplitChunks called with non-positive maxChars")
	}
	if text == "" {
		return nil
	}

	var (
		chunks  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, line := range strings.Split(text, "\n") {
		// +1 for the joining newline when the chunk is non-empty.
		add := len(line)
		if current.Len() > 0 {
			add++
		}

		if current.Len()+add > maxChars {
			flush()
			if len(line) > maxChars {
				chunks = append(chunks, line)
				continue
			}
		}

		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	flush()

	return chunks
}
