package repository

import (
	"context"
	"sync"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

// MemoryCriteriaSource is a thread-safe in-memory CriteriaSource. The rule
// set is replaced wholesale by whatever syncs rules from the user store.
type MemoryCriteriaSource struct {
	mu    sync.RWMutex
	rules []models.Criteria
}

func NewMemoryCriteriaSource(rules []models.Criteria) *MemoryCriteriaSource {
	return &MemoryCriteriaSource{rules: rules}
}

// Replace swaps in a new rule set.
func (s *MemoryCriteriaSource) Replace(ctx context.Context, rules []models.Criteria) error {
	s.mu.Lock()
	s.rules = rules
	s.mu.Unlock()
	return nil
}

// ListActive returns active rules scoped to a sport.
func (s *MemoryCriteriaSource) ListActive(ctx context.Context, sport string) ([]models.Criteria, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Criteria, 0, len(s.rules))
	for _, c := range s.rules {
		if !c.IsActive || c.Sport != sport {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
