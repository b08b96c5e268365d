package domain

import "errors"

// LineError ties a tabulation failure to the line item that caused it.
type LineError struct {
	Line LineID // Offending line item
	Op   string // Stage that failed (e.g., "validate", "distribute")
	Err  error  // Underlying error
}

func (e *LineError) Error() string {
	return e.Op + " [" + string(e.Line) + "]: " + e.Err.Error()
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// NewLineError wraps err with the line and stage it happened at.
func NewLineError(line LineID, op string, err error) *LineError {
	return &LineError{Line: line, Op: op, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var (
	// ErrCurrencyMismatch is returned when amounts of different currencies meet in one computation.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrDivisionByZero is returned when a ratio is taken against a zero amount.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUndistributableReduction is returned when a cascading line must be
	// spread across a zero reference total.
	ErrUndistributableReduction = errors.New("undistributable reduction")

	// ErrIdentityCollision is returned when two line items share an ID.
	ErrIdentityCollision = errors.New("identity collision")

	// ErrUnbalancedSubtotals is returned when rounded subtotals cannot be
	// reconciled with the rounded total.
	ErrUnbalancedSubtotals = errors.New("unbalanced subtotals")

	// ErrConfigNotFound is returned when configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrOrderNotFound is returned when no ledger exists for an order.
	ErrOrderNotFound = errors.New("order not found")
)
