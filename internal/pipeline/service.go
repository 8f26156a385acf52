package pipeline

import (
	"context"
	"log/slog"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// Service couples a Runner with a snapshot store. API handlers and the
// scheduled refresher both go through it so every completed run lands in
// the same cache.
type Service struct {
	runner *Runner
	snaps  *Snapshots
	log    *slog.Logger
}

// NewService builds a Service around a runner.
func NewService(runner *Runner, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		runner: runner,
		snaps:  NewSnapshots(),
		log:    log,
	}
}

// Analyze returns an analysis for a term. With refresh false a cached
// snapshot is served when present; otherwise a fresh run executes and
// replaces the snapshot.
func (s *Service) Analyze(ctx context.Context, term string, refresh bool) (*domain.RunResult, error) {
	if !refresh {
		if result, ok := s.snaps.Latest(term); ok {
			s.log.Debug("serving cached snapshot", "term", term, "run_id", result.RunID)
			return result, nil
		}
	}

	result, err := s.runner.Run(ctx, term)
	if err != nil {
		return nil, err
	}
	s.snaps.Put(result)
	return result, nil
}

// Latest returns the cached snapshot for a term without triggering a run.
func (s *Service) Latest(term string) (*domain.RunResult, bool) {
	return s.snaps.Latest(term)
}

// RefreshAll re-runs every watched term plus every term already in the
// cache. Failures are logged and skipped so one bad term cannot stall
// the sweep.
func (s *Service) RefreshAll(ctx context.Context, watchTerms []string) {
	seen := make(map[string]struct{})
	terms := make([]string, 0, len(watchTerms))
	for _, term := range append(watchTerms, s.snaps.Terms()...) {
		key := snapshotKey(term)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		terms = append(terms, term)
	}

	for _, term := range terms {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.Analyze(ctx, term, true); err != nil {
			s.log.Warn("scheduled refresh failed", "term", term, "error", err)
		}
	}
}
