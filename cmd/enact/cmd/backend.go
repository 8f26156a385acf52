package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ejezie/Enact-Pricing/internal/config"
	"github.com/ejezie/Enact-Pricing/internal/fetch"
	"github.com/ejezie/Enact-Pricing/internal/pipeline"
	"github.com/ejezie/Enact-Pricing/pkg/extract"
)

// newBackend builds the delegate backend selected by configuration.
func newBackend(cfg config.LLMConfig) (extract.LLMBackend, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Backend {
	case "ollama":
		return extract.NewOllamaBackend(
			cfg.Ollama.Endpoint,
			cfg.Ollama.Model,
			extract.WithOllamaHTTPClient(httpClient),
		), nil
	case "anthropic":
		return extract.NewAnthropicBackend(
			extract.WithAnthropicModel(cfg.Anthropic.Model),
			extract.WithAnthropicHTTPClient(httpClient),
		), nil
	case "openai":
		opts := []extract.OpenAIOption{
			extract.WithOpenAIModel(cfg.OpenAI.Model),
			extract.WithOpenAIHTTPClient(httpClient),
		}
		if cfg.OpenAI.Endpoint != "" {
			opts = append(opts, extract.WithOpenAIEndpoint(cfg.OpenAI.Endpoint))
		}
		return extract.NewOpenAIBackend(opts...), nil
	default:
		return nil, fmt.Errorf("unknown llm backend %q", cfg.Backend)
	}
}

// newRunner wires a complete pipeline runner from configuration. The
// returned source must be closed when the runner is done.
func newRunner(cfg *config.Config, log *slog.Logger) (*pipeline.Runner, fetch.Source, error) {
	source, err := fetch.New(cfg.Fetch, log)
	if err != nil {
		return nil, nil, err
	}

	var adapter *extract.Adapter
	if cfg.Extraction.Mode != "markup" {
		backend, err := newBackend(cfg.LLM)
		if err != nil {
			source.Close()
			return nil, nil, err
		}
		adapter = extract.NewAdapter(
			backend,
			extract.WithAdapterLogger(log),
			extract.WithConcurrency(cfg.LLM.Concurrency),
		)
	}

	runner := pipeline.NewRunner(
		source,
		adapter,
		cfg.Extraction,
		cfg.Fetch.BaseURL,
		pipeline.WithLogger(log),
	)
	return runner, source, nil
}

// newAdapter builds just the delegate adapter, for commands that need the
// responder without the fetch stack.
func newAdapter(cfg *config.Config, log *slog.Logger) (*extract.Adapter, error) {
	backend, err := newBackend(cfg.LLM)
	if err != nil {
		return nil, err
	}
	return extract.NewAdapter(
		backend,
		extract.WithAdapterLogger(log),
		extract.WithConcurrency(cfg.LLM.Concurrency),
	), nil
}
