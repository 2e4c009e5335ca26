package models

import "time"

// Observation is a single game's recorded value for one stat.
// Immutable once recorded; produced by the game-log parser at the boundary.
// Slices of observations are newest-first by convention, but every consumer
// documents the order it requires instead of assuming it.
type Observation struct {
	Date                time.Time
	Opponent            string
	IsHome              bool
	IsBackToBack        bool
	RestDays            int
	OpponentDefenseRank int
	Value               float64
}

// Values extracts the raw stat values from a slice of observations,
// preserving order.
func Values(obs []Observation) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		out[i] = o.Value
	}
	return out
}

// GameEvent is a raw record from the live stat feed: one finished game's
// line for one (player, stat). The ingest pipeline turns these into stored
// game-log rows.
type GameEvent struct {
	Sport               string
	GameID              string
	PlayerID            string
	Stat                string
	Date                time.Time
	Opponent            string
	Team                string
	IsHome              bool
	IsBackToBack        bool
	RestDays            int
	OpponentDefenseRank int
	Value               float64
}
