package models

import (
	"errors"
	"fmt"

	"github.com/mybudget-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a fixed amount allocated to one category of an owner over a
// bounded period of calendar days.
//
// For one (category, owner) pair, budget periods must not overlap. The unique
// index additionally catches exact duplicates at commit time when two
// concurrent writers race past the overlap check.
type Budget struct {
	DefaultModel
	CategoryID  uint64          `gorm:"uniqueIndex:budget_period"`
	Category    Category        `json:"-"`
	OwnerID     uint64          `gorm:"uniqueIndex:budget_period"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PeriodStart types.Date      `gorm:"uniqueIndex:budget_period"`
	PeriodEnd   types.Date      `gorm:"uniqueIndex:budget_period"`
}

// Overlaps reports whether the budget's period shares at least one calendar
// day with the inclusive range [start, end].
func (b Budget) Overlaps(start, end types.Date) bool {
	return !b.PeriodStart.After(end) && !b.PeriodEnd.Before(start)
}

// checkConstraints validates a budget candidate against the consistency
// rules, in order: the period must be valid, the amount positive, the
// category known, and the period must not overlap another budget for the
// same category and owner. excludeID skips the budget itself when an update
// is validated, 0 excludes nothing.
func (b Budget) checkConstraints(tx *gorm.DB, excludeID uint64) error {
	if b.PeriodEnd.Before(b.PeriodStart) {
		return ErrPeriodInvalid
	}

	if !b.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	_, err := FindCategory(tx, b.CategoryID)
	if err != nil {
		return err
	}

	q := tx.
		Where("category_id = ? AND owner_id = ?", b.CategoryID, b.OwnerID).
		Where("period_start <= ? AND period_end >= ?", b.PeriodEnd, b.PeriodStart)

	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}

	var conflict Budget
	err = q.First(&conflict).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if conflict.PeriodStart.Equal(b.PeriodStart) && conflict.PeriodEnd.Equal(b.PeriodEnd) {
		return fmt.Errorf("%w for this category with the exact same period", ErrBudgetExists)
	}

	return fmt.Errorf("%w for this category overlapping the period from %s to %s", ErrBudgetExists, conflict.PeriodStart, conflict.PeriodEnd)
}

// BudgetCreate bundles the values for a new budget.
type BudgetCreate struct {
	CategoryID  uint64
	Amount      decimal.Decimal
	PeriodStart types.Date
	PeriodEnd   types.Date
}

// CreateBudget validates and persists a new budget for the owner. The
// conflict check and the insert run in one database transaction.
func CreateBudget(db *gorm.DB, ownerID uint64, create BudgetCreate) (Budget, error) {
	budget := Budget{
		CategoryID:  create.CategoryID,
		OwnerID:     ownerID,
		Amount:      create.Amount,
		PeriodStart: create.PeriodStart,
		PeriodEnd:   create.PeriodEnd,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := budget.checkConstraints(tx, 0)
		if err != nil {
			return err
		}

		return tx.Create(&budget).Error
	})
	if err != nil {
		return Budget{}, err
	}

	return budget, nil
}

// BudgetUpdate is a partial update of a budget. Only non-nil fields are
// applied, everything else keeps its stored value.
type BudgetUpdate struct {
	CategoryID  *uint64
	Amount      *decimal.Decimal
	PeriodStart *types.Date
	PeriodEnd   *types.Date
}

// UpdateBudget applies a partial update to one of the owner's budgets.
//
// The supplied fields are merged over the stored values and the resulting
// candidate is re-validated with the budget itself excluded from overlap
// detection. A candidate identical to the stored state is rejected with
// ErrNoChanges.
func UpdateBudget(db *gorm.DB, ownerID uint64, id uint64, update BudgetUpdate) (Budget, error) {
	budget, err := FindBudget(db, ownerID, id)
	if err != nil {
		return Budget{}, err
	}

	candidate := budget
	var fields []string

	if update.CategoryID != nil {
		candidate.CategoryID = *update.CategoryID
		fields = append(fields, "CategoryID")
	}

	if update.Amount != nil {
		candidate.Amount = *update.Amount
		fields = append(fields, "Amount")
	}

	if update.PeriodStart != nil {
		candidate.PeriodStart = *update.PeriodStart
		fields = append(fields, "PeriodStart")
	}

	if update.PeriodEnd != nil {
		candidate.PeriodEnd = *update.PeriodEnd
		fields = append(fields, "PeriodEnd")
	}

	if candidate.CategoryID == budget.CategoryID &&
		candidate.Amount.Equal(budget.Amount) &&
		candidate.PeriodStart.Equal(budget.PeriodStart) &&
		candidate.PeriodEnd.Equal(budget.PeriodEnd) {
		return Budget{}, ErrNoChanges
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		err := candidate.checkConstraints(tx, budget.ID)
		if err != nil {
			return err
		}

		return tx.Model(&budget).Select(fields).Updates(candidate).Error
	})
	if err != nil {
		return Budget{}, err
	}

	return FindBudget(db, ownerID, id)
}

// DeleteBudget removes one of the owner's budgets. Ledger entries are never
// cascade-deleted, they simply stop being counted against a budget.
func DeleteBudget(db *gorm.DB, ownerID uint64, id uint64) error {
	budget, err := FindBudget(db, ownerID, id)
	if err != nil {
		return err
	}

	return db.Delete(&budget).Error
}

// FindBudget loads one of the owner's budgets. Budgets of other owners are
// reported as not found.
func FindBudget(db *gorm.DB, ownerID uint64, id uint64) (Budget, error) {
	var budget Budget
	err := db.Where("owner_id = ?", ownerID).First(&budget, id).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return Budget{}, ErrBudgetNotFound
		}
		return Budget{}, err
	}

	return budget, nil
}

// Spent returns the raw sum of expense amounts recorded for the budget's
// category and owner with a date inside the budget period. The time of day
// is truncated before comparing against the period boundaries. No matching
// entries sum to zero, that is a valid state and not an error.
func (b Budget) Spent(db *gorm.DB) (decimal.Decimal, error) {
	var spent decimal.NullDecimal

	err := db.Table("transactions").
		Select("SUM(amount)").
		Where("category_id = ?", b.CategoryID).
		Where("owner_id = ?", b.OwnerID).
		Where("kind = ?", KindExpense).
		Where("date(date) >= ?", b.PeriodStart.String()).
		Where("date(date) <= ?", b.PeriodEnd.String()).
		Row().
		Scan(&spent)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses for budget %d failed: %w", b.ID, err)
	}

	return spent.Decimal, nil
}

// BudgetStatus combines a budget with its consumption, computed on demand
// and never persisted.
type BudgetStatus struct {
	Budget
	Spent           decimal.Decimal
	Remaining       decimal.Decimal
	PercentConsumed decimal.Decimal
	Overspent       bool
}

// newBudgetStatus derives the consumption values from the raw spend.
//
// The spend is rounded to cents first and the remaining amount is computed
// from the rounded value, so spent and remaining always carry two decimal
// places but do not necessarily sum to the budgeted amount.
func newBudgetStatus(budget Budget, spent decimal.Decimal) BudgetStatus {
	spent = spent.Round(2)
	remaining := budget.Amount.Sub(spent).Round(2)

	percent := decimal.Zero
	if budget.Amount.IsPositive() {
		percent = spent.Div(budget.Amount).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return BudgetStatus{
		Budget:          budget,
		Spent:           spent,
		Remaining:       remaining,
		PercentConsumed: percent,
		Overspent:       remaining.IsNegative(),
	}
}

// Status computes the budget's consumption.
func (b Budget) Status(db *gorm.DB) (BudgetStatus, error) {
	spent, err := b.Spent(db)
	if err != nil {
		return BudgetStatus{}, err
	}

	return newBudgetStatus(b, spent), nil
}

// BudgetFilter restricts which budgets are returned by Budgets.
type BudgetFilter struct {
	CategoryID  uint64     // Only budgets for this category
	PeriodStart types.Date // Only budgets whose period intersects [PeriodStart, PeriodEnd]
	PeriodEnd   types.Date
	Offset      int // Number of budgets to skip
	Limit       int // Maximum number of budgets to return, 0 or negative returns all
}

// Budgets returns the consumption status of the owner's budgets matching the
// filter.
//
// The spend of all matching budgets is aggregated in a single grouped query
// instead of one query per budget. A budget matches the period filter when
// its own period intersects the filter range, using the same inclusive
// overlap test as conflict detection.
func Budgets(db *gorm.DB, ownerID uint64, filter BudgetFilter) ([]BudgetStatus, error) {
	if !filter.PeriodStart.IsZero() && !filter.PeriodEnd.IsZero() && filter.PeriodStart.After(filter.PeriodEnd) {
		return nil, ErrPeriodInvalid
	}

	if filter.CategoryID != 0 {
		_, err := FindCategory(db, filter.CategoryID)
		if err != nil {
			return nil, err
		}
	}

	q := db.Model(&Budget{}).Where("budgets.owner_id = ?", ownerID)

	if filter.CategoryID != 0 {
		q = q.Where("budgets.category_id = ?", filter.CategoryID)
	}

	if !filter.PeriodStart.IsZero() {
		q = q.Where("budgets.period_end >= ?", filter.PeriodStart)
	}

	if !filter.PeriodEnd.IsZero() {
		q = q.Where("budgets.period_start <= ?", filter.PeriodEnd)
	}

	var budgets []Budget
	err := q.Order("budgets.period_start ASC, budgets.id ASC").Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	budgets = paginate(budgets, filter.Offset, filter.Limit)
	if len(budgets) == 0 {
		return []BudgetStatus{}, nil
	}

	ids := make([]uint64, 0, len(budgets))
	for _, budget := range budgets {
		ids = append(ids, budget.ID)
	}

	var sums []struct {
		BudgetID uint64
		Spent    decimal.NullDecimal
	}

	err = db.Table("budgets").
		Select("budgets.id AS budget_id, SUM(transactions.amount) AS spent").
		Joins("LEFT JOIN transactions ON transactions.category_id = budgets.category_id"+
			" AND transactions.owner_id = budgets.owner_id"+
			" AND transactions.kind = ?"+
			" AND date(transactions.date) >= budgets.period_start"+
			" AND date(transactions.date) <= budgets.period_end", KindExpense).
		Where("budgets.id IN ?", ids).
		Group("budgets.id").
		Scan(&sums).Error
	if err != nil {
		return nil, fmt.Errorf("summing expenses for budgets failed: %w", err)
	}

	spentByID := make(map[uint64]decimal.Decimal, len(sums))
	for _, sum := range sums {
		spentByID[sum.BudgetID] = sum.Spent.Decimal
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		statuses = append(statuses, newBudgetStatus(budget, spentByID[budget.ID]))
	}

	return statuses, nil
}

// paginate applies offset pagination.
func paginate(budgets []Budget, offset, limit int) []Budget {
	if offset >= len(budgets) {
		return nil
	}
	if offset > 0 {
		budgets = budgets[offset:]
	}
	if limit > 0 && limit < len(budgets) {
		budgets = budgets[:limit]
	}
	return budgets
}
