package v1

import (
	"fmt"

	"github.com/mybudget-app/backend/internal/models"
	"github.com/mybudget-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

// BudgetEditable are the fields a client sets when creating a budget. Both
// period dates are inclusive calendar days.
type BudgetEditable struct {
	CategoryID  uint64          `json:"categoryId" example:"4"`
	Amount      decimal.Decimal `json:"amount" example:"100"`
	PeriodStart types.Date      `json:"periodStart" example:"2024-01-01"`
	PeriodEnd   types.Date      `json:"periodEnd" example:"2024-01-31"`
}

func (editable BudgetEditable) model() models.BudgetCreate {
	return models.BudgetCreate{
		CategoryID:  editable.CategoryID,
		Amount:      editable.Amount,
		PeriodStart: editable.PeriodStart,
		PeriodEnd:   editable.PeriodEnd,
	}
}

// BudgetUpdateable are the fields a client can change on an existing budget.
// Fields that are not set keep their stored value.
type BudgetUpdateable struct {
	CategoryID  *uint64          `json:"categoryId"`
	Amount      *decimal.Decimal `json:"amount"`
	PeriodStart *types.Date      `json:"periodStart"`
	PeriodEnd   *types.Date      `json:"periodEnd"`
}

func (updateable BudgetUpdateable) model() models.BudgetUpdate {
	return models.BudgetUpdate{
		CategoryID:  updateable.CategoryID,
		Amount:      updateable.Amount,
		PeriodStart: updateable.PeriodStart,
		PeriodEnd:   updateable.PeriodEnd,
	}
}

// Budget is the API representation of a budget.
type Budget struct {
	models.DefaultModel
	CategoryID  uint64          `json:"categoryId" example:"4"`
	Amount      decimal.Decimal `json:"amount" example:"100"`
	PeriodStart types.Date      `json:"periodStart" example:"2024-01-01"`
	PeriodEnd   types.Date      `json:"periodEnd" example:"2024-01-31"`
}

func newBudget(model models.Budget) Budget {
	return Budget{
		DefaultModel: model.DefaultModel,
		CategoryID:   model.CategoryID,
		Amount:       model.Amount,
		PeriodStart:  model.PeriodStart,
		PeriodEnd:    model.PeriodEnd,
	}
}

// BudgetStatus is a budget together with its consumption.
type BudgetStatus struct {
	Budget
	Spent           decimal.Decimal `json:"spent" example:"33.33"`
	Remaining       decimal.Decimal `json:"remaining" example:"66.67"`
	PercentConsumed decimal.Decimal `json:"percentConsumed" example:"33.33"`
	Overspent       bool            `json:"overspent" example:"false"`
}

func newBudgetStatus(model models.BudgetStatus) BudgetStatus {
	return BudgetStatus{
		Budget:          newBudget(model.Budget),
		Spent:           model.Spent,
		Remaining:       model.Remaining,
		PercentConsumed: model.PercentConsumed,
		Overspent:       model.Overspent,
	}
}

// BudgetQueryFilter are the query string parameters for the budget list.
// Dates use the YYYY-MM-DD format.
type BudgetQueryFilter struct {
	CategoryID  uint64 `form:"category"`
	PeriodStart string `form:"periodStart"`
	PeriodEnd   string `form:"periodEnd"`
	Skip        int    `form:"skip"`
	Limit       int    `form:"limit"`
}

func (f BudgetQueryFilter) model() (models.BudgetFilter, error) {
	filter := models.BudgetFilter{
		CategoryID: f.CategoryID,
		Offset:     f.Skip,
		Limit:      f.Limit,
	}

	if f.PeriodStart != "" {
		start, err := types.ParseDate(f.PeriodStart)
		if err != nil {
			return models.BudgetFilter{}, fmt.Errorf("%w: %q is not a date in YYYY-MM-DD format", models.ErrDateInvalid, f.PeriodStart)
		}
		filter.PeriodStart = start
	}

	if f.PeriodEnd != "" {
		end, err := types.ParseDate(f.PeriodEnd)
		if err != nil {
			return models.BudgetFilter{}, fmt.Errorf("%w: %q is not a date in YYYY-MM-DD format", models.ErrDateInvalid, f.PeriodEnd)
		}
		filter.PeriodEnd = end
	}

	return filter, nil
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`
	Error *string `json:"error"`
}

type BudgetStatusResponse struct {
	Data  *BudgetStatus `json:"data"`
	Error *string       `json:"error"`
}

type BudgetListResponse struct {
	Data  []BudgetStatus `json:"data"`
	Error *string        `json:"error"`
}
