package models

// Requests for analytics HTTP endpoints. Defined in domain for consistency and reuse.

type DistributionRequest struct {
	PlayerID string  `query:"playerId" json:"playerId" validate:"required"`
	Stat     string  `query:"stat" json:"stat" validate:"required"`
	Line     float64 `query:"line" json:"line" validate:"gte=0"`
	N        int     `query:"n" json:"n" default:"82" validate:"gte=1,lte=500"`
}

type StreakRequest struct {
	PlayerID string  `query:"playerId" json:"playerId" validate:"required"`
	Stat     string  `query:"stat" json:"stat" validate:"required"`
	Line     float64 `query:"line" json:"line" validate:"gte=0"`
	Window   int     `query:"window" json:"window" default:"10" validate:"oneof=5 10 20"`
}

type ConvergenceRequest struct {
	PlayerID string  `query:"playerId" json:"playerId" validate:"required"`
	Stat     string  `query:"stat" json:"stat" validate:"required"`
	Line     float64 `query:"line" json:"line" validate:"gte=0"`
}

// CorrelationRequest selects prop legs for one game. Lookback bounds how many
// historical games feed each leg's series.
type CorrelationRequest struct {
	GameID   string            `json:"gameId" validate:"required"`
	Props    []CorrelationProp `json:"props" validate:"required,min=1,dive"`
	Lookback int               `json:"lookback" default:"20" validate:"gte=2,lte=100"`
}

type CorrelationProp struct {
	PlayerID  string  `json:"playerId" validate:"required"`
	Stat      string  `json:"stat" validate:"required"`
	Line      float64 `json:"line" validate:"gte=0"`
	Team      string  `json:"team" validate:"required"`
	Direction string  `json:"direction" default:"over" validate:"oneof=over under"`
}

// CriteriaScanRequest evaluates a batch of criteria against the current
// slate's feature contexts.
type CriteriaScanRequest struct {
	Sport    string `json:"sport" validate:"required"`
	Lookback int    `json:"lookback" default:"10" validate:"gte=1,lte=100"`
}

// CriteriaReplaceRequest swaps in the full rule set pushed by the
// subscription service. Partial updates are not supported; the push always
// carries every active rule.
type CriteriaReplaceRequest struct {
	Criteria []CriteriaRule `json:"criteria" validate:"required,dive"`
}

type CriteriaRule struct {
	ID         string              `json:"id" validate:"required"`
	Sport      string              `json:"sport" validate:"required"`
	Stat       string              `json:"stat" validate:"required"`
	Direction  string              `json:"direction" default:"over" validate:"oneof=over under"`
	Active     bool                `json:"active"`
	Conditions []CriteriaCondition `json:"conditions" validate:"required,min=1,dive"`
}

type CriteriaCondition struct {
	Field    string            `json:"field" validate:"required"`
	Operator string            `json:"operator" validate:"oneof=eq gt gte lt lte between in"`
	Values   []CriteriaOperand `json:"values" validate:"required,min=1"`
}

// CriteriaOperand is the wire form of a FeatureValue: exactly one of the
// pointers is set.
type CriteriaOperand struct {
	Number *float64 `json:"number,omitempty"`
	Bool   *bool    `json:"bool,omitempty"`
	Enum   *string  `json:"enum,omitempty"`
}

// ToCriteria converts the wire rule into the engine's form.
func (r CriteriaRule) ToCriteria() Criteria {
	conds := make([]Condition, 0, len(r.Conditions))
	for _, c := range r.Conditions {
		vals := make([]FeatureValue, 0, len(c.Values))
		for _, o := range c.Values {
			switch {
			case o.Number != nil:
				vals = append(vals, Number(*o.Number))
			case o.Bool != nil:
				vals = append(vals, Boolean(*o.Bool))
			case o.Enum != nil:
				vals = append(vals, Enum(*o.Enum))
			}
		}
		conds = append(conds, Condition{
			Field:    c.Field,
			Operator: Operator(c.Operator),
			Value:    vals,
		})
	}
	return Criteria{
		ID:         r.ID,
		Sport:      r.Sport,
		Stat:       r.Stat,
		Direction:  Direction(r.Direction),
		Conditions: conds,
		IsActive:   r.Active,
	}
}
