package criteria

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

// Engine evaluates user-authored criteria against precomputed feature
// contexts. Evaluation is a pure batch operation with no shared mutable
// state between (criterion, context) pairs, so the batch fans out across a
// bounded worker pool.
type Engine struct {
	workers int
	now     func() time.Time
}

// Option configures Engine.
type Option func(*Engine)

// WithWorkers bounds batch parallelism.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithClock overrides the match timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a rule engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		workers: runtime.GOMAXPROCS(0),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EvaluateBatch returns every match of an active criterion against a
// context whose sport and stat agree with it. Match order is not
// significant. The context cancels remaining work; matches found before
// cancellation are still returned.
func (e *Engine) EvaluateBatch(ctx context.Context, criteria []models.Criteria, contexts []models.FeatureContext) []models.Match {
	if len(criteria) == 0 || len(contexts) == 0 {
		return nil
	}

	jobs := make(chan models.FeatureContext, len(contexts))
	for _, fc := range contexts {
		jobs <- fc
	}
	close(jobs)

	var (
		mu      sync.Mutex
		matches []models.Match
		wg      sync.WaitGroup
	)

	workers := e.workers
	if workers > len(contexts) {
		workers = len(contexts)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for fc := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				var local []models.Match
				for _, cr := range criteria {
					if m, ok := e.evaluate(cr, fc); ok {
						local = append(local, m)
					}
				}
				if len(local) > 0 {
					mu.Lock()
					matches = append(matches, local...)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	return matches
}

// evaluate checks one criterion against one context: the criterion must be
// active, scoped to the context's sport and stat, and every condition must
// hold (pure conjunction, no OR/NOT).
func (e *Engine) evaluate(cr models.Criteria, fc models.FeatureContext) (models.Match, bool) {
	if !cr.IsActive || cr.Sport != fc.Sport || cr.Stat != fc.Stat {
		return models.Match{}, false
	}
	for _, cond := range cr.Conditions {
		if !evalCondition(cond, fc.Fields) {
			return models.Match{}, false
		}
	}
	return models.Match{
		CriteriaID: cr.ID,
		PlayerID:   fc.PlayerID,
		Stat:       fc.Stat,
		Line:       fc.Line,
		Direction:  cr.Direction,
		GameID:     fc.GameID,
		MatchedAt:  e.now(),
	}, true
}

// evalCondition applies one operator. A missing field is always false, never
// an error: one absent feature must not abort a batch scan.
func evalCondition(cond models.Condition, fields map[string]models.FeatureValue) bool {
	actual, ok := fields[cond.Field]
	if !ok {
		return false
	}
	switch cond.Operator {
	case models.OpEq:
		return len(cond.Value) == 1 && featureEqual(actual, cond.Value[0])
	case models.OpGt:
		n, en, ok := numericPair(actual, cond.Value)
		return ok && n > en
	case models.OpGte:
		n, en, ok := numericPair(actual, cond.Value)
		return ok && n >= en
	case models.OpLt:
		n, en, ok := numericPair(actual, cond.Value)
		return ok && n < en
	case models.OpLte:
		n, en, ok := numericPair(actual, cond.Value)
		return ok && n <= en
	case models.OpBetween:
		if actual.Kind != models.FeatureNumber || len(cond.Value) != 2 {
			return false
		}
		lo, hi := cond.Value[0], cond.Value[1]
		if lo.Kind != models.FeatureNumber || hi.Kind != models.FeatureNumber {
			return false
		}
		return actual.Number >= lo.Number && actual.Number <= hi.Number
	case models.OpIn:
		for _, v := range cond.Value {
			if featureEqual(actual, v) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// numericPair extracts (actual, expected) for the ordered comparisons.
// Non-numeric actuals make the comparison false by definition.
func numericPair(actual models.FeatureValue, expected []models.FeatureValue) (float64, float64, bool) {
	if actual.Kind != models.FeatureNumber || len(expected) != 1 || expected[0].Kind != models.FeatureNumber {
		return 0, 0, false
	}
	return actual.Number, expected[0].Number, true
}

func featureEqual(a, b models.FeatureValue) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case models.FeatureNumber:
		return a.Number == b.Number
	case models.FeatureBool:
		return a.Bool == b.Bool
	case models.FeatureEnum:
		return a.Enum == b.Enum
	default:
		return false
	}
}
