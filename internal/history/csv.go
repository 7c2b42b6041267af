package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"rizzk-go/internal/models"
)

var csvHeader = []string{
	"time", "symbol", "direction", "account_size", "risk_mode", "risk_value",
	"entry_price", "stop_price", "dollar_risk", "per_unit_risk",
	"position_size", "actual_dollar_risk", "profit_target_1_1",
	"profit_target_2_1", "risk_percent_of_account",
}

// WriteCSV writes the given calculations to w as CSV, header first.
func WriteCSV(w io.Writer, records []models.Calculation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.Symbol,
			r.Direction,
			formatFloat(r.AccountSize),
			r.RiskMode,
			formatFloat(r.RiskValue),
			formatFloat(r.EntryPrice),
			formatFloat(r.StopPrice),
			formatFloat(r.DollarRisk),
			formatFloat(r.PerUnitRisk),
			strconv.FormatInt(r.PositionSize, 10),
			formatFloat(r.ActualDollarRisk),
			formatFloat(r.ProfitTarget1R),
			formatFloat(r.ProfitTarget2R),
			formatFloat(r.RiskPercentOfAccount),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
