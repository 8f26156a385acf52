package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunks_Empty(t *testing.T) {
	assert.Nil(t, SplitChunks("", 100))
}

func TestSplitChunks_SingleSmallChunk(t *testing.T) {
	text := "line one\nline two"
	chunks := SplitChunks(text, 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitChunks_BreaksOnLineBoundaries(t *testing.T) {
	text := "aaaa\nbbbb\ncccc\ndddd"
	chunks := SplitChunks(text, 10)

	require.Len(t, chunks, 2)
	assert.Equal(t, "aaaa\nbbbb", chunks[0])
	assert.Equal(t, "cccc\ndddd", chunks[1])
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 10)
	}
}

func TestSplitChunks_OversizedLineOwnChunk(t *testing.T) {
	long := strings.Repeat("x", 50)
	text := "short\n" + long + "\nshort again"
	chunks := SplitChunks(text, 20)

	require.Len(t, chunks, 3)
	assert.Equal(t, "short", chunks[0])
	assert.Equal(t, long, chunks[1])
	assert.Equal(t, "short again", chunks[2])
}

func TestSplitChunks_RejoinPreservesContent(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, strings.Repeat("w", i%17+1))
	}
	text := strings.Join(lines, "\n")

	for _, max := range []int{5, 16, 64, 1000} {
		chunks := SplitChunks(text, max)
		assert.Equal(t, text, strings.Join(chunks, "\n"), "maxChars=%d", max)
	}
}

func TestSplitChunks_PanicsOnNonPositiveLimit(t *testing.T) {
	assert.Panics(t, func() { SplitChunks("text", 0) })
	assert.Panics(t, func() { SplitChunks("text", -5) })
}
