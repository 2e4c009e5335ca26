package models

// Vote is a single signal's directional opinion.
type Vote string

const (
	VoteOver    Vote = "over"
	VoteUnder   Vote = "under"
	VoteNeutral Vote = "neutral"
)

// Signal is one independently computed input to the convergence scorer:
// a named vote with an implicit weight of one. Names are stable keys so a
// verdict stays auditable ("matchup", "recent_form", "rest", "pace", ...).
type Signal struct {
	Name string
	Vote Vote
}

// ConvergenceVerdict is the transparent vote-count summary for one
// (player, stat, line) tuple. Every contributing signal is listed so a user
// can audit why the verdict was reached.
type ConvergenceVerdict struct {
	Score               int
	Direction           Direction
	ConfidencePct       int
	ContributingSignals []Signal
}
