package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/logger"
)

type fakeSlateFeed struct {
	slates map[string][]models.PropDescriptor
	err    map[string]error
}

func (f *fakeSlateFeed) FetchSlate(ctx context.Context, sport string, date time.Time) ([]models.PropDescriptor, error) {
	if err := f.err[sport]; err != nil {
		return nil, err
	}
	return f.slates[sport], nil
}

type fakeSlateStore struct {
	stored map[string][]models.PropDescriptor
}

func (f *fakeSlateStore) ReplaceSlate(ctx context.Context, sport string, date time.Time, props []models.PropDescriptor) error {
	if f.stored == nil {
		f.stored = map[string][]models.PropDescriptor{}
	}
	f.stored[sport] = props
	return nil
}

type fakeEnqueuer struct {
	published []string
}

func (f *fakeEnqueuer) PublishMessage(ctx context.Context, msgType string, payload interface{}) error {
	f.published = append(f.published, msgType)
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordGameStored(sport, stat string) {}
func (nopMetrics) RecordError(kind string)             {}
func (nopMetrics) RecordMatchEmitted(sport string)     {}
func (nopMetrics) RecordLatency(op string, s float64)  {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestSlateSyncStoresAndEnqueues(t *testing.T) {
	feed := &fakeSlateFeed{slates: map[string][]models.PropDescriptor{
		"nba": {{PlayerID: "p1", Stat: "points", Line: 21.5}},
		"nfl": {{PlayerID: "p2", Stat: "pass_yds", Line: 250.5}},
	}}
	store := &fakeSlateStore{}
	q := &fakeEnqueuer{}

	uc := NewSlateSyncUseCase(feed, store, q, nopMetrics{}, testLogger(t), []string{"nba", "nfl"}, 10)
	if err := uc.Sync(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.stored["nba"]) != 1 || len(store.stored["nfl"]) != 1 {
		t.Fatalf("slates not stored: %+v", store.stored)
	}
	if len(q.published) != 2 {
		t.Fatalf("expected one scan per sport, got %v", q.published)
	}
	for _, typ := range q.published {
		if typ != ScanJobType {
			t.Fatalf("unexpected job type %q", typ)
		}
	}
}

func TestSlateSyncSkipsFailedSport(t *testing.T) {
	feed := &fakeSlateFeed{
		slates: map[string][]models.PropDescriptor{
			"nfl": {{PlayerID: "p2", Stat: "pass_yds", Line: 250.5}},
		},
		err: map[string]error{"nba": fmt.Errorf("provider down")},
	}
	store := &fakeSlateStore{}

	uc := NewSlateSyncUseCase(feed, store, nil, nopMetrics{}, testLogger(t), []string{"nba", "nfl"}, 10)
	err := uc.Sync(context.Background())
	if err == nil {
		t.Fatalf("expected error to surface")
	}
	if len(store.stored["nfl"]) != 1 {
		t.Fatalf("healthy sport must still sync: %+v", store.stored)
	}
	if _, ok := store.stored["nba"]; ok {
		t.Fatalf("failed sport must not store")
	}
}

func TestSlateSyncEmptySlateDoesNotEnqueue(t *testing.T) {
	feed := &fakeSlateFeed{slates: map[string][]models.PropDescriptor{"nba": {}}}
	store := &fakeSlateStore{}
	q := &fakeEnqueuer{}

	uc := NewSlateSyncUseCase(feed, store, q, nopMetrics{}, testLogger(t), []string{"nba"}, 10)
	if err := uc.Sync(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.published) != 0 {
		t.Fatalf("empty slate must not trigger a scan")
	}
}
