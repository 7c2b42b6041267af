package risk

const (
	DirectionLong  = "LONG"
	DirectionShort = "SHORT"

	RiskModePercent = "PERCENT" // RiskValue is a percentage of AccountSize (0-100]
	RiskModeFixed   = "FIXED"   // RiskValue is a dollar amount
)

// TradeInput describes a single hypothetical trade to size.
type TradeInput struct {
	AccountSize float64 `json:"account_size"`
	RiskMode    string  `json:"risk_mode"`
	RiskValue   float64 `json:"risk_value"`
	Direction   string  `json:"direction"`
	EntryPrice  float64 `json:"entry_price"`
	StopPrice   float64 `json:"stop_price"`
}

// TradeResult is derived from a TradeInput by Compute. It is never mutated
// after creation; callers that want history keep their own copies.
type TradeResult struct {
	// DollarRisk is the risk amount the caller asked for, resolved to dollars.
	DollarRisk float64 `json:"dollar_risk"`
	// PerUnitRisk is the absolute price distance between entry and stop.
	PerUnitRisk float64 `json:"per_unit_risk"`
	// ExactSize is the fractional position size before truncation.
	ExactSize float64 `json:"exact_size"`
	// PositionSize is ExactSize floored to whole units. Never rounded up,
	// so the realized loss at the stop cannot exceed DollarRisk.
	PositionSize int64 `json:"position_size"`
	// ActualDollarRisk is the loss at the stop for the truncated size.
	ActualDollarRisk float64 `json:"actual_dollar_risk"`
	ProfitTarget1R   float64 `json:"profit_target_1_1"`
	ProfitTarget2R   float64 `json:"profit_target_2_1"`
	// RiskPercentOfAccount is ActualDollarRisk as a fraction of AccountSize.
	RiskPercentOfAccount float64 `json:"risk_percent_of_account"`
}
