package repository

import (
	"context"
	"testing"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

func TestListActiveFiltersSportAndActive(t *testing.T) {
	src := NewMemoryCriteriaSource([]models.Criteria{
		{ID: "a", Sport: "nba", IsActive: true},
		{ID: "b", Sport: "nba", IsActive: false},
		{ID: "c", Sport: "nfl", IsActive: true},
	})

	rules, err := src.ListActive(context.Background(), "nba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 1 || rules[0].ID != "a" {
		t.Fatalf("expected only active nba rule, got %+v", rules)
	}
}

func TestReplaceSwapsRuleSet(t *testing.T) {
	src := NewMemoryCriteriaSource([]models.Criteria{
		{ID: "a", Sport: "nba", IsActive: true},
	})

	err := src.Replace(context.Background(), []models.Criteria{
		{ID: "x", Sport: "nba", IsActive: true},
		{ID: "y", Sport: "nba", IsActive: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rules, err := src.ListActive(context.Background(), "nba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected replaced set, got %+v", rules)
	}
	for _, r := range rules {
		if r.ID == "a" {
			t.Fatalf("old rule survived replace")
		}
	}
}
