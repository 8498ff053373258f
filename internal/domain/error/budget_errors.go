// Package error defines domain-specific errors for the budget tracker.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget does not exist or belongs to someone else.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrInvalidBudgetID is returned when a budget identifier is empty.
	ErrInvalidBudgetID = errors.New("invalid budget id")

	// ErrInvalidBudgetTitle is returned when the title is blank or too long.
	ErrInvalidBudgetTitle = errors.New("invalid budget title")

	// ErrInvalidBudgetLimit is returned when the limit is negative or has more than two decimal places.
	ErrInvalidBudgetLimit = errors.New("invalid budget limit")

	// ErrInvalidMaxSingleExpense is returned when the per-expense cap is negative or malformed.
	ErrInvalidMaxSingleExpense = errors.New("invalid max single expense")

	// ErrInvalidTypeOfBudget is returned for an unknown budget type token.
	ErrInvalidTypeOfBudget = errors.New("invalid type of budget")

	// ErrMissingBudgetOwner is returned when a budget is registered without an owner.
	ErrMissingBudgetOwner = errors.New("budget owner is required")

	// ErrInvalidPageIndex is returned for a negative page index.
	ErrInvalidPageIndex = errors.New("page index must not be negative")

	// ErrInvalidPageSize is returned when the page size is out of range.
	ErrInvalidPageSize = errors.New("page size out of range")

	// ErrInvalidSortField is returned for a sort field that is not a budget attribute.
	ErrInvalidSortField = errors.New("unknown sort field")

	// ErrInvalidSortDirection is returned for anything other than ASC or DESC.
	ErrInvalidSortDirection = errors.New("unknown sort direction")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetTitle      BudgetErrorCode = "BUD-010001"
	ErrCodeInvalidBudgetLimit      BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidMaxSingleExpense BudgetErrorCode = "BUD-010003"
	ErrCodeInvalidTypeOfBudget     BudgetErrorCode = "BUD-010004"
	ErrCodeMissingBudgetOwner      BudgetErrorCode = "BUD-010005"
	ErrCodeMissingBudgetFields     BudgetErrorCode = "BUD-010006"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound BudgetErrorCode = "BUD-020001"

	// Bad request errors (03XXXX)
	ErrCodeInvalidPageIndex     BudgetErrorCode = "BUD-030001"
	ErrCodeInvalidPageSize      BudgetErrorCode = "BUD-030002"
	ErrCodeInvalidSortField     BudgetErrorCode = "BUD-030003"
	ErrCodeInvalidSortDirection BudgetErrorCode = "BUD-030004"
	ErrCodeInvalidBudgetID      BudgetErrorCode = "BUD-030005"
)

// BudgetError represents a budget error with code and message. Field names
// the offending request attribute for validation errors.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Field   string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewBudgetValidationError creates a BudgetError bound to a request field.
func NewBudgetValidationError(code BudgetErrorCode, field, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Field:   field,
		Err:     err,
	}
}

// IsValidation reports whether the code belongs to the validation family.
func (c BudgetErrorCode) IsValidation() bool {
	return len(c) >= 6 && c[4:6] == "01"
}
