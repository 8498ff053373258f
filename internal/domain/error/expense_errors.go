package error

import "errors"

// Expense domain errors.
var (
	// ErrInvalidExpenseID is returned when an expense identifier is empty.
	ErrInvalidExpenseID = errors.New("invalid expense id")

	// ErrInvalidExpenseAmount is returned when the amount is zero, negative or over-precise.
	ErrInvalidExpenseAmount = errors.New("invalid expense amount")

	// ErrInvalidExpenseDescription is returned when the description is too long.
	ErrInvalidExpenseDescription = errors.New("invalid expense description")

	// ErrExpenseExceedsCap is returned when an expense is larger than the budget's max single expense.
	ErrExpenseExceedsCap = errors.New("expense exceeds max single expense")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount      ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseDescription ExpenseErrorCode = "EXP-010002"
	ErrCodeExpenseExceedsCap         ExpenseErrorCode = "EXP-010003"
	ErrCodeMissingExpenseFields      ExpenseErrorCode = "EXP-010004"

	// Lookup errors (02XXXX)
	ErrCodeExpenseBudgetNotFound ExpenseErrorCode = "EXP-020001"

	// Bad request errors (03XXXX)
	ErrCodeInvalidExpenseID ExpenseErrorCode = "EXP-030001"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Field   string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewExpenseValidationError creates an ExpenseError bound to a request field.
func NewExpenseValidationError(code ExpenseErrorCode, field, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Field:   field,
		Err:     err,
	}
}
