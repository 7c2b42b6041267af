package risk

import "math"

// Compute validates a TradeInput and derives the position size, resolved
// dollar risk and profit targets from it. It is pure: no state is held
// across calls and identical inputs yield identical results.
//
// Validation is fail-fast in a fixed order; the first violated rule is
// reported as a *ValidationError and no result is produced. A position size
// that truncates to zero is not a violation: the result is returned with
// PositionSize 0 and ActualDollarRisk 0.
func Compute(in TradeInput) (TradeResult, error) {
	if err := validate(in); err != nil {
		return TradeResult{}, err
	}

	dollarRisk, err := resolveDollarRisk(in)
	if err != nil {
		return TradeResult{}, err
	}

	perUnitRisk := math.Abs(in.EntryPrice - in.StopPrice)
	exactSize := dollarRisk / perUnitRisk

	// Floor to whole units. Rounding up would put more than the intended
	// dollar amount at risk when the stop is hit.
	positionSize := int64(math.Floor(exactSize))
	actualDollarRisk := float64(positionSize) * perUnitRisk

	result := TradeResult{
		DollarRisk:           dollarRisk,
		PerUnitRisk:          perUnitRisk,
		ExactSize:            exactSize,
		PositionSize:         positionSize,
		ActualDollarRisk:     actualDollarRisk,
		ProfitTarget1R:       ProfitTarget(in, 1),
		ProfitTarget2R:       ProfitTarget(in, 2),
		RiskPercentOfAccount: actualDollarRisk / in.AccountSize,
	}
	return result, nil
}

func validate(in TradeInput) error {
	if in.AccountSize <= 0 {
		return newValidationError(ReasonInvalidAccountSize, "account size must be greater than 0, got %v", in.AccountSize)
	}
	if in.EntryPrice <= 0 || in.StopPrice <= 0 {
		return newValidationError(ReasonInvalidPrice, "entry and stop prices must be greater than 0, got entry=%v stop=%v", in.EntryPrice, in.StopPrice)
	}
	if in.EntryPrice == in.StopPrice {
		return newValidationError(ReasonZeroStopDistance, "entry price and stop price cannot be the same")
	}
	switch in.Direction {
	case DirectionLong:
		if in.StopPrice >= in.EntryPrice {
			return newValidationError(ReasonInvalidStopDirection, "stop must be below entry for a long position")
		}
	case DirectionShort:
		if in.StopPrice <= in.EntryPrice {
			return newValidationError(ReasonInvalidStopDirection, "stop must be above entry for a short position")
		}
	default:
		return newValidationError(ReasonInvalidStopDirection, "unknown direction %q", in.Direction)
	}
	if in.RiskValue <= 0 {
		return newValidationError(ReasonInvalidRiskValue, "risk value must be greater than 0, got %v", in.RiskValue)
	}
	if in.RiskMode == RiskModePercent && in.RiskValue > 100 {
		return newValidationError(ReasonInvalidRiskValue, "risk percentage must be at most 100, got %v", in.RiskValue)
	}
	return nil
}

func resolveDollarRisk(in TradeInput) (float64, error) {
	switch in.RiskMode {
	case RiskModePercent:
		return in.AccountSize * (in.RiskValue / 100), nil
	case RiskModeFixed:
		if in.RiskValue > in.AccountSize {
			return 0, newValidationError(ReasonRiskExceedsAccount, "risk amount %v exceeds account size %v", in.RiskValue, in.AccountSize)
		}
		return in.RiskValue, nil
	default:
		return 0, newValidationError(ReasonInvalidRiskValue, "unknown risk mode %q", in.RiskMode)
	}
}

// ProfitTarget returns the price at the given reward multiple of the stop
// distance, on the profit side of entry. The input is assumed valid.
func ProfitTarget(in TradeInput, multiple float64) float64 {
	distance := math.Abs(in.EntryPrice-in.StopPrice) * multiple
	if in.Direction == DirectionShort {
		return in.EntryPrice - distance
	}
	return in.EntryPrice + distance
}

// PercentMoves returns the percent move from entry to the stop and from
// entry to the given target, both as positive magnitudes.
func PercentMoves(in TradeInput, target float64) (toStop, toTarget float64) {
	if in.Direction == DirectionShort {
		toStop = (in.StopPrice - in.EntryPrice) / in.EntryPrice * 100
		toTarget = (in.EntryPrice - target) / in.EntryPrice * 100
		return toStop, toTarget
	}
	toStop = (in.EntryPrice - in.StopPrice) / in.EntryPrice * 100
	toTarget = (target - in.EntryPrice) / in.EntryPrice * 100
	return toStop, toTarget
}

// RewardRiskRatio returns the reward at the given target expressed as a
// multiple of the stop distance, or 0 when the stop distance is 0.
func RewardRiskRatio(in TradeInput, target float64) float64 {
	var reward, stopDistance float64
	if in.Direction == DirectionShort {
		stopDistance = in.StopPrice - in.EntryPrice
		reward = in.EntryPrice - target
	} else {
		stopDistance = in.EntryPrice - in.StopPrice
		reward = target - in.EntryPrice
	}
	if stopDistance == 0 {
		return 0
	}
	return reward / stopDistance
}
