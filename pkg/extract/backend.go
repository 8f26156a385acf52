// Package extract turns fetched marketplace pages into candidate listing
// records. It offers two paths: direct markup extraction for pages whose
// structure is known, and a chunked LLM path for everything else, with the
// delegate treated as unreliable at every call site.
package extract

import "context"

// FormatJSON requests JSON mode from backends that support it.
const FormatJSON = "json"

// GenerateRequest is the input for one LLM generation call.
type GenerateRequest struct {
	Prompt      string
	SystemMsg   string
	Format      string // FormatJSON for JSON mode
	Temperature float64
	MaxTokens   int
}

// GenerateResponse is the raw result of one LLM generation call.
type GenerateResponse struct {
	Content string
	Model   string
}

// LLMBackend is the text-understanding delegate. Implementations are
// expected to be slow and to fail; callers must treat every error as
// recoverable at the granularity of a single call.
type LLMBackend interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Name() string
}
