package models

// StreakRow summarizes hit/miss behavior over a windowed game-log slice.
// ConsecutiveStreak is signed: positive means consecutive hits ending at the
// most recent game, negative means consecutive misses; magnitude is the run
// length.
type StreakRow struct {
	PlayerID          string
	Stat              string
	Line              float64
	HitGames          []bool
	HitCount          int
	HitRate           float64
	WindowAverage     float64
	SeasonAverage     float64
	ConsecutiveStreak int
}
