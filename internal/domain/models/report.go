package models

import "time"

// PropReport bundles the per-prop analytics views rendered together on a
// player card. Sections are pointers: a section that failed or had no data
// stays nil and its error, if any, lands in Errors keyed by section name.
type PropReport struct {
	PlayerID     string
	Stat         string
	Line         float64
	Timestamp    time.Time
	Distribution *DistributionResult
	Streak       *StreakRow
	Convergence  *ConvergenceVerdict
	Errors       map[string]string
}
