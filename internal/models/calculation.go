package models

import "gorm.io/gorm"

// Calculation is one persisted position-sizing run: the trade parameters that
// went in and the sizing result that came out.
type Calculation struct {
	gorm.Model
	Symbol      string  `json:"symbol,omitempty"`
	Direction   string  `json:"direction"`
	AccountSize float64 `json:"account_size"`
	RiskMode    string  `json:"risk_mode"`
	RiskValue   float64 `json:"risk_value"`
	EntryPrice  float64 `json:"entry_price"`
	StopPrice   float64 `json:"stop_price"`

	DollarRisk           float64 `json:"dollar_risk"`
	PerUnitRisk          float64 `json:"per_unit_risk"`
	PositionSize         int64   `json:"position_size"`
	ActualDollarRisk     float64 `json:"actual_dollar_risk"`
	ProfitTarget1R       float64 `json:"profit_target_1_1"`
	ProfitTarget2R       float64 `json:"profit_target_2_1"`
	RiskPercentOfAccount float64 `json:"risk_percent_of_account"`
}
