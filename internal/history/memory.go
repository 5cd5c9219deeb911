package history

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation for testing and for runs
// with history disabled
type MemoryStore struct {
	mu   sync.RWMutex
	runs []*Run
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make([]*Run, 0)}
}

func clone(run *Run) *Run {
	c := *run
	c.Diagnostics = append([]Diagnostic(nil), run.Diagnostics...)
	return &c
}

func (s *MemoryStore) Record(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(run)
	for _, existing := range s.runs {
		if existing.ID == run.ID {
			return fmt.Errorf("failed to insert run: duplicate id %s", run.ID)
		}
	}
	s.runs = append(s.runs, clone(run))
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, run := range s.runs {
		if run.ID == id {
			return clone(run), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *MemoryStore) List(ctx context.Context, filter Filter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*Run
	for _, run := range s.runs {
		if filter.Path != "" && run.Path != filter.Path {
			continue
		}
		if filter.FailedOnly && run.Success {
			continue
		}
		if !filter.Since.IsZero() && run.Timestamp.Before(filter.Since) {
			continue
		}
		c := clone(run)
		c.Diagnostics = nil
		matched = append(matched, c)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (s *MemoryStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByStage: make(map[string]int64)}
	for _, run := range s.runs {
		stats.TotalRuns++
		if !run.Success {
			stats.FailedRuns++
		}
		stats.ByStage[run.Stage]++
		if run.Timestamp.After(stats.LastRun) {
			stats.LastRun = run.Timestamp
		}
	}
	return stats, nil
}

func (s *MemoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	kept := s.runs[:0]
	var deleted int64
	for _, run := range s.runs {
		if run.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, run)
	}
	s.runs = kept
	return deleted, nil
}

func (s *MemoryStore) Vacuum(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
