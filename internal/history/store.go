package history

import (
	"fmt"

	"rizzk-go/internal/models"
	"rizzk-go/internal/risk"

	"gorm.io/gorm"
)

// Store persists past calculations so the serving surfaces can list and
// export them. The calculator itself never touches it.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save records a computed result together with the input that produced it.
// symbol is optional and only set when the entry price came from a live quote.
func (s *Store) Save(symbol string, in risk.TradeInput, result risk.TradeResult) (*models.Calculation, error) {
	record := models.Calculation{
		Symbol:      symbol,
		Direction:   in.Direction,
		AccountSize: in.AccountSize,
		RiskMode:    in.RiskMode,
		RiskValue:   in.RiskValue,
		EntryPrice:  in.EntryPrice,
		StopPrice:   in.StopPrice,

		DollarRisk:           result.DollarRisk,
		PerUnitRisk:          result.PerUnitRisk,
		PositionSize:         result.PositionSize,
		ActualDollarRisk:     result.ActualDollarRisk,
		ProfitTarget1R:       result.ProfitTarget1R,
		ProfitTarget2R:       result.ProfitTarget2R,
		RiskPercentOfAccount: result.RiskPercentOfAccount,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to save calculation: %w", err)
	}
	return &record, nil
}

// List returns calculations most recent first. limit <= 0 returns all.
func (s *Store) List(limit int) ([]models.Calculation, error) {
	var records []models.Calculation
	query := s.db.Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	return records, nil
}

// Count returns the number of stored calculations.
func (s *Store) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Calculation{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count calculations: %w", err)
	}
	return count, nil
}

// Clear deletes the entire history.
func (s *Store) Clear() error {
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.Calculation{}).Error; err != nil {
		return fmt.Errorf("failed to clear calculations: %w", err)
	}
	return nil
}
