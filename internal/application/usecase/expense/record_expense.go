package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
)

// RecordExpenseInput represents the input for recording an expense.
type RecordExpenseInput struct {
	BudgetID     string
	CallerUserID string
	Description  string
	Amount       decimal.Decimal
	SpentAt      time.Time // Optional, defaults to now
}

// RecordExpenseOutput represents the output of recording an expense.
type RecordExpenseOutput struct {
	Expense *entity.Expense
	Status  *entity.BudgetStatus
	// LimitExceeded is true only for the expense that pushed the budget over its limit.
	LimitExceeded bool
}

// RecordExpense stores an expense against a budget the caller owns. The budget
// row stays locked while the cap is checked and the status recomputed, so two
// concurrent expenses cannot both claim the over-limit transition.
func (s *Service) RecordExpense(ctx context.Context, input RecordExpenseInput) (*RecordExpenseOutput, error) {
	now := s.clock.Now()

	var output *RecordExpenseOutput
	var budget *entity.Budget
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		budget, err = s.findOwnedBudget(ctx, input.BudgetID, input.CallerUserID, true)
		if err != nil {
			return err
		}

		expense, err := entity.NewExpense(budget, input.Description, input.Amount, input.SpentAt, now)
		if err != nil {
			return err
		}

		if !budget.AllowsExpense(expense.Amount) {
			return domainerror.NewExpenseValidationError(
				domainerror.ErrCodeExpenseExceedsCap,
				"amount",
				fmt.Sprintf("amount exceeds the budget's max single expense of %s", budget.MaxSingleExpense.StringFixed(2)),
				domainerror.ErrExpenseExceedsCap,
			)
		}

		period := entity.CurrentPeriod(budget.TypeOfBudget, now)
		spentBefore, countBefore, err := s.expenseRepo.SumInPeriod(ctx, budget.ID, period)
		if err != nil {
			return fmt.Errorf("failed to sum expenses: %w", err)
		}

		if err := s.expenseRepo.Create(ctx, expense); err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}

		spentAfter, countAfter := spentBefore, countBefore
		if period.Contains(expense.SpentAt) {
			spentAfter = spentBefore.Add(expense.Amount)
			countAfter++
		}

		before := entity.ComputeBudgetStatus(budget, spentBefore, countBefore, period, now)
		after := entity.ComputeBudgetStatus(budget, spentAfter, countAfter, period, now)

		output = &RecordExpenseOutput{
			Expense:       expense,
			Status:        after,
			LimitExceeded: !before.OverLimit && after.OverLimit,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ExpenseRecorded(budget.TypeOfBudget)

	if output.LimitExceeded {
		s.metrics.BudgetLimitExceeded(budget.TypeOfBudget)

		event := entity.NewBudgetEvent(entity.BudgetEventLimitExceeded, budget, now)
		spent := output.Status.Spent
		event.Spent = &spent
		s.publish(ctx, event)

		s.queueAlert(ctx, budget, output.Status)
	}

	return output, nil
}

// queueAlert emails the owner about the exceeded budget. Failures are logged;
// the expense is already committed.
func (s *Service) queueAlert(ctx context.Context, budget *entity.Budget, status *entity.BudgetStatus) {
	logger := slog.With("budget_id", budget.ID.String(), "owner_user_id", budget.OwnerUserID)

	ownerID, err := uuid.Parse(budget.OwnerUserID)
	if err != nil {
		logger.Warn("Budget owner is not a user id, skipping alert", "error", err)
		return
	}

	owner, err := s.userRepo.Get(ctx, ownerID)
	if err != nil {
		logger.Warn("Failed to load budget owner, skipping alert", "error", err)
		return
	}
	if !owner.BudgetAlerts {
		return
	}

	if err := s.alerts.NotifyLimitExceeded(ctx, owner, entity.BudgetAlert{
		BudgetID:     budget.ID.String(),
		BudgetTitle:  budget.Title,
		TypeOfBudget: budget.TypeOfBudget,
		Limit:        status.Limit,
		Spent:        status.Spent,
	}); err != nil {
		logger.Error("Failed to queue budget alert email", "error", err)
	}
}
