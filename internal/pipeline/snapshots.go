package pipeline

import (
	"strings"
	"sync"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// Snapshots holds the latest completed run per search term. Terms are
// case-insensitive; a new run for a term replaces the previous one.
type Snapshots struct {
	mu     sync.RWMutex
	byTerm map[string]*domain.RunResult
}

// NewSnapshots creates an empty snapshot store.
func NewSnapshots() *Snapshots {
	return &Snapshots{byTerm: make(map[string]*domain.RunResult)}
}

func snapshotKey(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Put stores a run as the latest snapshot for its search term.
func (s *Snapshots) Put(result *domain.RunResult) {
	if result == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byTerm[snapshotKey(result.SearchTerm)] = result
}

// Latest returns the most recent run for a term, if any.
func (s *Snapshots) Latest(term string) (*domain.RunResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.byTerm[snapshotKey(term)]
	return result, ok
}

// Terms returns every term with a stored snapshot.
func (s *Snapshots) Terms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	terms := make([]string, 0, len(s.byTerm))
	for term := range s.byTerm {
		terms = append(terms, term)
	}
	return terms
}

// Len returns the number of stored snapshots.
func (s *Snapshots) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byTerm)
}
