package models

import "time"

// Operator is a condition comparison operator.
type Operator string

const (
	OpEq      Operator = "eq"
	OpGt      Operator = "gt"
	OpGte     Operator = "gte"
	OpLt      Operator = "lt"
	OpLte     Operator = "lte"
	OpBetween Operator = "between"
	OpIn      Operator = "in"
)

// FeatureKind tags the runtime type of a feature value.
type FeatureKind int

const (
	FeatureNumber FeatureKind = iota
	FeatureBool
	FeatureEnum
)

// FeatureValue is a tagged union: Number | Bool | Enum(string).
// Using an explicit tag instead of interface{} keeps operator dispatch
// exhaustive and the rule engine auditable.
type FeatureValue struct {
	Kind   FeatureKind
	Number float64
	Bool   bool
	Enum   string
}

func Number(v float64) FeatureValue { return FeatureValue{Kind: FeatureNumber, Number: v} }
func Boolean(v bool) FeatureValue   { return FeatureValue{Kind: FeatureBool, Bool: v} }
func Enum(v string) FeatureValue    { return FeatureValue{Kind: FeatureEnum, Enum: v} }

// Condition is one declarative comparison inside a criterion.
// Value holds the expected operand(s): one element for scalar operators,
// exactly two for between, one or more for in.
type Condition struct {
	Field    string
	Operator Operator
	Value    []FeatureValue
}

// Criteria is a user-authored rule, persisted externally and referenced
// here by value. A criterion matches a context only when every condition
// evaluates true (pure conjunction).
type Criteria struct {
	ID         string
	Sport      string
	Stat       string
	Direction  Direction
	Conditions []Condition
	IsActive   bool
}

// FeatureContext is one candidate (player, game, stat) combination with its
// precomputed feature vector. Fields is a flat name -> typed value mapping.
type FeatureContext struct {
	PlayerID string
	GameID   string
	Sport    string
	Stat     string
	Line     float64
	Fields   map[string]FeatureValue
}

// Match is emitted when an active criterion's conditions all hold against a
// context. Ephemeral: produced per scan, published for alerting, never
// stored by the core.
type Match struct {
	CriteriaID string
	PlayerID   string
	Stat       string
	Line       float64
	Direction  Direction
	GameID     string
	MatchedAt  time.Time
}
