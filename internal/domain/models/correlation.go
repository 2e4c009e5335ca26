package models

import "time"

// Direction of a prop bet relative to its line.
type Direction string

const (
	DirectionOver   Direction = "over"
	DirectionUnder  Direction = "under"
	DirectionTossUp Direction = "toss-up"
)

// PropDescriptor identifies one (player, stat, line) leg in a game.
type PropDescriptor struct {
	PlayerID  string
	Stat      string
	Line      float64
	Team      string
	Direction Direction
}

// DatedValue pairs a stat value with the game date it was recorded on.
// Correlation aligns series by date before computing coefficients.
type DatedValue struct {
	Date  time.Time
	Value float64
}

// PropSeries is the historical series for one prop leg.
type PropSeries struct {
	Prop   PropDescriptor
	Series []DatedValue
}

// ParlaySuggestion groups same-team props that are co-movement candidates.
// Warning is set when the group mixes over and under directions; the group
// is still suggested, the caller decides how to surface it.
type ParlaySuggestion struct {
	Team    string
	Props   []PropDescriptor
	Warning string
}

// CorrelationMatrix is the pairwise Pearson structure for one game's
// selected props. Correlations is symmetric with ones on the diagonal.
type CorrelationMatrix struct {
	Props        []PropDescriptor
	Correlations [][]float64
	Suggestions  []ParlaySuggestion
}
