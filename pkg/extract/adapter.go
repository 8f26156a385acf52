package extract

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// DefaultConcurrency bounds simultaneous delegate requests. Local Ollama
// serves one generation at a time; hosted backends tolerate a few more.
const DefaultConcurrency = 2

// ErrEmptyInstruction is returned when ExtractAll is called without an
// extraction instruction.
var ErrEmptyInstruction = errors.New("extract: empty instruction")

// Adapter turns chunks of page text into listing records through an
// LLMBackend. One malformed response per chunk gets one repair attempt;
// a chunk that still fails is counted and skipped, never fatal.
type Adapter struct {
	backend     LLMBackend
	log         *slog.Logger
	concurrency int
	temperature float64
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithAdapterLogger sets the logger used for per-chunk reporting.
func WithAdapterLogger(log *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		if log != nil {
			a.log = log
		}
	}
}

// WithConcurrency bounds the number of in-flight delegate requests.
func WithConcurrency(n int) AdapterOption {
	return func(a *Adapter) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// NewAdapter builds an Adapter around the given backend.
func NewAdapter(backend LLMBackend, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		backend:     backend,
		log:         slog.Default(),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ExtractResult is the outcome of extracting a batch of chunks.
type ExtractResult struct {
	Records     []domain.Record
	ChunksTotal int
	Failures    int
}

// ExtractAll runs extraction over every chunk and reassembles the records
// in chunk order, so downstream first-seen semantics do not depend on
// request scheduling. Backend errors and doubly-malformed responses count
// as chunk failures; the only returned errors are an empty instruction or
// a cancelled context.
func (a *Adapter) ExtractAll(ctx context.Context, chunks []string, instruction string) (*ExtractResult, error) {
	if instruction == "" {
		return nil, ErrEmptyInstruction
	}

	result := &ExtractResult{ChunksTotal: len(chunks)}
	if len(chunks) == 0 {
		return result, nil
	}

	type chunkOutcome struct {
		records []domain.Record
		failed  bool
	}
	outcomes := make([]chunkOutcome, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, chunk := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records, err := a.extractChunk(gctx, chunk, instruction)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				a.log.Warn("chunk extraction failed",
					"chunk", i+1,
					"of", len(chunks),
					"backend", a.backend.Name(),
					"error", err,
				)
				outcomes[i] = chunkOutcome{failed: true}
				return nil
			}
			a.log.Debug("chunk extracted",
				"chunk", i+1,
				"of", len(chunks),
				"records", len(records),
			)
			outcomes[i] = chunkOutcome{records: records}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, out := range outcomes {
		if out.failed {
			result.Failures++
			continue
		}
		result.Records = append(result.Records, out.records...)
	}

	a.log.Info("delegate extraction complete",
		"chunks", result.ChunksTotal,
		"failures", result.Failures,
		"records", len(result.Records),
	)
	return result, nil
}

// extractChunk makes the primary request and, on a malformed response,
// exactly one repair request feeding the bad output back to the backend.
func (a *Adapter) extractChunk(ctx context.Context, chunk, instruction string) ([]domain.Record, error) {
	resp, err := a.backend.Generate(ctx, GenerateRequest{
		Prompt:      ExtractionPrompt(instruction, chunk),
		SystemMsg:   systemPrompt,
		Format:      FormatJSON,
		Temperature: a.temperature,
	})
	if err != nil {
		return nil, err
	}

	records, err := ParseRecords(resp.Content)
	if err == nil {
		return records, nil
	}

	repaired, err := a.backend.Generate(ctx, GenerateRequest{
		Prompt:      RepairPrompt(resp.Content),
		SystemMsg:   systemPrompt,
		Format:      FormatJSON,
		Temperature: a.temperature,
	})
	if err != nil {
		return nil, err
	}
	return ParseRecords(repaired.Content)
}

// Answer asks the backend a free-form question over a pre-rendered market
// summary. Used by the conversational responder.
func (a *Adapter) Answer(ctx context.Context, summary, question string) (string, error) {
	resp, err := a.backend.Generate(ctx, GenerateRequest{
		Prompt:    AnswerPrompt(summary, question),
		SystemMsg: "You are a helpful market analysis assistant.",
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
