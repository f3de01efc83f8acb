package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mybudget-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TransactionKind is the direction of a transaction. The amount of a
// transaction is always positive, the kind decides its sign in totals.
type TransactionKind string

const (
	KindIncome  TransactionKind = "INCOME"
	KindExpense TransactionKind = "EXPENSE"
)

// ParseTransactionKind normalizes a kind, ignoring case.
func ParseTransactionKind(s string) (TransactionKind, error) {
	kind := TransactionKind(strings.ToUpper(strings.TrimSpace(s)))
	if !slices.Contains([]TransactionKind{KindIncome, KindExpense}, kind) {
		return "", fmt.Errorf("%w, got %q", ErrKindInvalid, s)
	}

	return kind, nil
}

// Transaction represents a single recorded money movement of an owner.
type Transaction struct {
	DefaultModel
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Label      string
	Kind       TransactionKind
	Date       time.Time
	CategoryID uint64
	Category   Category `json:"-"`
	OwnerID    uint64
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	_ = t.DefaultModel.AfterFind(tx)
	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the timezone for the Date to UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Label = strings.TrimSpace(t.Label)

	return nil
}

// TransactionCreate bundles the values for a new ledger entry. The category
// is referenced by its name and resolved ignoring case.
type TransactionCreate struct {
	Amount   decimal.Decimal
	Label    string
	Kind     TransactionKind
	Date     time.Time
	Category string
}

// CreateTransaction validates and persists a new ledger entry for the owner.
func CreateTransaction(db *gorm.DB, ownerID uint64, create TransactionCreate) (Transaction, error) {
	if !create.Amount.IsPositive() {
		return Transaction{}, ErrAmountNotPositive
	}

	kind, err := ParseTransactionKind(string(create.Kind))
	if err != nil {
		return Transaction{}, err
	}

	category, err := FindCategoryByName(db, create.Category)
	if err != nil {
		return Transaction{}, err
	}

	transaction := Transaction{
		Amount:     create.Amount,
		Label:      create.Label,
		Kind:       kind,
		Date:       create.Date,
		CategoryID: category.ID,
		OwnerID:    ownerID,
	}

	err = db.Create(&transaction).Error
	if err != nil {
		return Transaction{}, err
	}

	transaction.Category = category
	return transaction, nil
}

// TransactionFilter restricts which ledger entries are returned or summed.
type TransactionFilter struct {
	From     types.Date // Entries on or after this date
	Until    types.Date // Entries up to and including this date
	Category string     // Category name, matched ignoring case
	Kind     string     // Transaction kind, matched ignoring case
}

// query builds the filtered, owner-scoped query.
//
// The until date is inclusive of the entire calendar day: the filter clamps
// it to 23:59:59, not to midnight.
func (f TransactionFilter) query(db *gorm.DB, ownerID uint64) (*gorm.DB, error) {
	q := db.Model(&Transaction{}).Where("transactions.owner_id = ?", ownerID)

	if !f.From.IsZero() && !f.Until.IsZero() && f.From.After(f.Until) {
		return nil, ErrPeriodInvalid
	}

	if !f.From.IsZero() {
		q = q.Where("transactions.date >= ?", f.From.Time())
	}

	if !f.Until.IsZero() {
		q = q.Where("transactions.date <= ?", f.Until.EndOfDay())
	}

	if f.Category != "" {
		category, err := FindCategoryByName(db, f.Category)
		if err != nil {
			return nil, err
		}
		q = q.Where("transactions.category_id = ?", category.ID)
	}

	if f.Kind != "" {
		kind, err := ParseTransactionKind(f.Kind)
		if err != nil {
			return nil, err
		}
		q = q.Where("transactions.kind = ?", kind)
	}

	return q, nil
}

// Transactions returns the owner's ledger entries matching the filter,
// newest first.
func Transactions(db *gorm.DB, ownerID uint64, filter TransactionFilter) ([]Transaction, error) {
	q, err := filter.query(db, ownerID)
	if err != nil {
		return nil, err
	}

	var transactions []Transaction
	err = q.
		Preload("Category").
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// TransactionsTotal returns the signed sum of the matching ledger entries:
// income adds to the total, expenses subtract from it. An empty result set
// sums to zero.
func TransactionsTotal(db *gorm.DB, ownerID uint64, filter TransactionFilter) (decimal.Decimal, error) {
	var incomingSum, outgoingSum decimal.NullDecimal

	q, err := filter.query(db, ownerID)
	if err != nil {
		return decimal.Zero, err
	}

	err = q.Where("transactions.kind = ?", KindIncome).
		Select("SUM(amount)").
		Row().
		Scan(&incomingSum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing income transactions failed: %w", err)
	}

	q, err = filter.query(db, ownerID)
	if err != nil {
		return decimal.Zero, err
	}

	err = q.Where("transactions.kind = ?", KindExpense).
		Select("SUM(amount)").
		Row().
		Scan(&outgoingSum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expense transactions failed: %w", err)
	}

	return incomingSum.Decimal.Sub(outgoingSum.Decimal), nil
}

// TransactionUpdate is a partial update of a ledger entry. Only non-nil
// fields are applied, everything else keeps its stored value.
type TransactionUpdate struct {
	Amount   *decimal.Decimal
	Label    *string
	Kind     *string
	Date     *time.Time
	Category *string
}

// UpdateTransaction applies a partial update to one of the owner's ledger
// entries.
func UpdateTransaction(db *gorm.DB, ownerID uint64, id uint64, update TransactionUpdate) (Transaction, error) {
	transaction, err := FindTransaction(db, ownerID, id)
	if err != nil {
		return Transaction{}, err
	}

	var fields []string
	var values Transaction

	if update.Amount != nil {
		if !update.Amount.IsPositive() {
			return Transaction{}, ErrAmountNotPositive
		}
		values.Amount = *update.Amount
		fields = append(fields, "Amount")
	}

	if update.Label != nil {
		values.Label = *update.Label
		fields = append(fields, "Label")
	}

	if update.Kind != nil {
		kind, err := ParseTransactionKind(*update.Kind)
		if err != nil {
			return Transaction{}, err
		}
		values.Kind = kind
		fields = append(fields, "Kind")
	}

	if update.Date != nil {
		values.Date = *update.Date
		fields = append(fields, "Date")
	}

	if update.Category != nil {
		category, err := FindCategoryByName(db, *update.Category)
		if err != nil {
			return Transaction{}, err
		}
		values.CategoryID = category.ID
		fields = append(fields, "CategoryID")
	}

	if len(fields) > 0 {
		err = db.Model(&transaction).Select(fields).Updates(values).Error
		if err != nil {
			return Transaction{}, err
		}
	}

	return FindTransaction(db, ownerID, id)
}

// DeleteTransaction removes one of the owner's ledger entries and returns
// the new signed total over all remaining entries.
func DeleteTransaction(db *gorm.DB, ownerID uint64, id uint64) (decimal.Decimal, error) {
	transaction, err := FindTransaction(db, ownerID, id)
	if err != nil {
		return decimal.Zero, err
	}

	err = db.Delete(&transaction).Error
	if err != nil {
		return decimal.Zero, err
	}

	return TransactionsTotal(db, ownerID, TransactionFilter{})
}

// FindTransaction loads an owner's ledger entry with its category resolved.
// Entries of other owners are reported as not found.
func FindTransaction(db *gorm.DB, ownerID uint64, id uint64) (Transaction, error) {
	var transaction Transaction
	err := db.Preload("Category").Where("owner_id = ?", ownerID).First(&transaction, id).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return Transaction{}, ErrTransactionNotFound
		}
		return Transaction{}, err
	}

	return transaction, nil
}
