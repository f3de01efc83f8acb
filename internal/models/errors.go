package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors shared by the ledger and the budget engine.
var (
	ErrPeriodInvalid     = errors.New("the end of the period must not be before its start")
	ErrAmountNotPositive = errors.New("the amount must be larger than zero")
	ErrKindInvalid       = errors.New("the transaction kind must be INCOME or EXPENSE")
	ErrDateInvalid       = errors.New("dates must be specified in YYYY-MM-DD format")
)

var (
	ErrCategoryNotFound    = errors.New("there is no category")
	ErrTransactionNotFound = errors.New("there is no transaction matching your query")
	ErrBudgetNotFound      = errors.New("there is no budget matching your query")

	// ErrBudgetExists is wrapped with the conflicting period when overlap
	// detection rejects a budget.
	ErrBudgetExists = errors.New("a budget already exists")

	ErrNoChanges = errors.New("the update does not change any value of the budget")
)

var (
	ErrUsernameTaken = errors.New("this username is already taken")

	// bcrypt rejects anything above 72 bytes, the minimum is our own rule.
	ErrPasswordInvalid = errors.New("the password must be between 8 and 72 characters long")
)
