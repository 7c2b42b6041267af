package risk

import "fmt"

// Reason identifies which validation rule a TradeInput violated.
type Reason string

const (
	ReasonInvalidAccountSize   Reason = "InvalidAccountSize"
	ReasonInvalidPrice         Reason = "InvalidPrice"
	ReasonZeroStopDistance     Reason = "ZeroStopDistance"
	ReasonInvalidStopDirection Reason = "InvalidStopDirection"
	ReasonInvalidRiskValue     Reason = "InvalidRiskValue"
	ReasonRiskExceedsAccount   Reason = "RiskExceedsAccount"
)

// ValidationError reports a rejected TradeInput. Exactly one is returned per
// rejected input (validation is fail-fast, first violation wins).
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid trade input (%s): %s", e.Reason, e.Message)
}

func newValidationError(reason Reason, format string, args ...any) *ValidationError {
	return &ValidationError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}
