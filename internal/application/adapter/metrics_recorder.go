package adapter

import "github.com/finance-tracker/budget-api/internal/domain/entity"

// MetricsRecorder counts business events.
type MetricsRecorder interface {
	BudgetRegistered(typeOfBudget entity.TypeOfBudget)
	ExpenseRecorded(typeOfBudget entity.TypeOfBudget)
	BudgetLimitExceeded(typeOfBudget entity.TypeOfBudget)
}
