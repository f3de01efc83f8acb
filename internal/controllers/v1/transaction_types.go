package v1

import (
	"fmt"
	"time"

	"github.com/mybudget-app/backend/internal/models"
	"github.com/mybudget-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

// TransactionEditable are the fields a client sets when creating a ledger
// entry. The category is referenced by its name, matched ignoring case.
type TransactionEditable struct {
	Amount   decimal.Decimal `json:"amount" example:"14.50"`
	Label    string          `json:"label" example:"Lunch at the bakery"`
	Kind     string          `json:"kind" example:"EXPENSE" enums:"INCOME,EXPENSE"`
	Date     time.Time       `json:"date" example:"2024-01-05T12:30:00Z"`
	Category string          `json:"category" example:"Food"`
}

func (editable TransactionEditable) model() models.TransactionCreate {
	return models.TransactionCreate{
		Amount:   editable.Amount,
		Label:    editable.Label,
		Kind:     models.TransactionKind(editable.Kind),
		Date:     editable.Date,
		Category: editable.Category,
	}
}

// TransactionUpdateable are the fields a client can change on an existing
// ledger entry. Fields that are not set keep their stored value.
type TransactionUpdateable struct {
	Amount   *decimal.Decimal `json:"amount"`
	Label    *string          `json:"label"`
	Kind     *string          `json:"kind"`
	Date     *time.Time       `json:"date"`
	Category *string          `json:"category"`
}

func (updateable TransactionUpdateable) model() models.TransactionUpdate {
	return models.TransactionUpdate{
		Amount:   updateable.Amount,
		Label:    updateable.Label,
		Kind:     updateable.Kind,
		Date:     updateable.Date,
		Category: updateable.Category,
	}
}

// Transaction is the API representation of a ledger entry. The category name
// is resolved into the response so clients do not need a second request.
type Transaction struct {
	models.DefaultModel
	Amount     decimal.Decimal        `json:"amount" example:"14.50"`
	Label      string                 `json:"label" example:"Lunch at the bakery"`
	Kind       models.TransactionKind `json:"kind" example:"EXPENSE"`
	Date       time.Time              `json:"date" example:"2024-01-05T12:30:00Z"`
	CategoryID uint64                 `json:"categoryId" example:"4"`
	Category   string                 `json:"category" example:"Food"`
}

func newTransaction(model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		Amount:       model.Amount,
		Label:        model.Label,
		Kind:         model.Kind,
		Date:         model.Date,
		CategoryID:   model.CategoryID,
		Category:     model.Category.Name,
	}
}

// TransactionQueryFilter are the query string parameters for the ledger.
// Dates use the YYYY-MM-DD format.
type TransactionQueryFilter struct {
	From     string `form:"from"`
	Until    string `form:"until"`
	Category string `form:"category"`
	Kind     string `form:"kind"`
}

func (f TransactionQueryFilter) model() (models.TransactionFilter, error) {
	filter := models.TransactionFilter{
		Category: f.Category,
		Kind:     f.Kind,
	}

	if f.From != "" {
		from, err := types.ParseDate(f.From)
		if err != nil {
			return models.TransactionFilter{}, fmt.Errorf("%w: %q is not a date in YYYY-MM-DD format", models.ErrDateInvalid, f.From)
		}
		filter.From = from
	}

	if f.Until != "" {
		until, err := types.ParseDate(f.Until)
		if err != nil {
			return models.TransactionFilter{}, fmt.Errorf("%w: %q is not a date in YYYY-MM-DD format", models.ErrDateInvalid, f.Until)
		}
		filter.Until = until
	}

	return filter, nil
}

// Total is the signed sum over a set of ledger entries.
type Total struct {
	Total decimal.Decimal `json:"total" example:"70.5"`
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`
	Error *string      `json:"error"`
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`
	Error *string       `json:"error"`
}

type TotalResponse struct {
	Data  *Total  `json:"data"`
	Error *string `json:"error"`
}
