package models_test

import (
	"time"

	"github.com/mybudget-app/backend/internal/models"
	"github.com/mybudget-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateBudget() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	budget, err := models.CreateBudget(models.DB, user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})
	suite.Require().Nil(err)

	suite.Assert().Equal(food.ID, budget.CategoryID)
	suite.Assert().Equal(user.ID, budget.OwnerID)
	suite.Assert().True(budget.Amount.Equal(decimal.NewFromInt(100)))
}

func (suite *TestSuiteStandard) TestCreateBudgetSingleDayPeriod() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	// A period of one day is valid, both bounds are inclusive
	_, err := models.CreateBudget(models.DB, user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(10),
		PeriodStart: types.NewDate(2024, 1, 5),
		PeriodEnd:   types.NewDate(2024, 1, 5),
	})
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestCreateBudgetPeriodInvalid() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	_, err := models.CreateBudget(models.DB, user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 31),
		PeriodEnd:   types.NewDate(2024, 1, 1),
	})
	suite.Assert().ErrorIs(err, models.ErrPeriodInvalid)
}

func (suite *TestSuiteStandard) TestCreateBudgetAmountNotPositive() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		_, err := models.CreateBudget(models.DB, user.ID, models.BudgetCreate{
			CategoryID:  food.ID,
			Amount:      amount,
			PeriodStart: types.NewDate(2024, 1, 1),
			PeriodEnd:   types.NewDate(2024, 1, 31),
		})
		suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)
	}
}

func (suite *TestSuiteStandard) TestCreateBudgetUnknownCategory() {
	user := suite.createTestUser("amandine")

	_, err := models.CreateBudget(models.DB, user.ID, models.BudgetCreate{
		CategoryID:  4096,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})
	suite.Assert().ErrorIs(err, models.ErrCategoryNotFound)
}

func (suite *TestSuiteStandard) TestCreateBudgetConflicts() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	january := models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	}
	suite.createTestBudget(user.ID, january)

	// The exact same period gets its own message
	_, err := models.CreateBudget(models.DB, user.ID, january)
	suite.Require().ErrorIs(err, models.ErrBudgetExists)
	suite.Assert().Contains(err.Error(), "exact same period")

	// An overlapping period names the budget it collides with
	_, err = models.CreateBudget(models.DB, user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(50),
		PeriodStart: types.NewDate(2024, 1, 20),
		PeriodEnd:   types.NewDate(2024, 2, 10),
	})
	suite.Require().ErrorIs(err, models.ErrBudgetExists)
	suite.Assert().Contains(err.Error(), "overlapping the period from 2024-01-01 to 2024-01-31")

	// Sharing a single boundary day is already an overlap
	_, err = models.CreateBudget(models.DB, user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(50),
		PeriodStart: types.NewDate(2024, 1, 31),
		PeriodEnd:   types.NewDate(2024, 2, 29),
	})
	suite.Assert().ErrorIs(err, models.ErrBudgetExists)

	// A fully contained period is an overlap as well
	_, err = models.CreateBudget(models.DB, user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(50),
		PeriodStart: types.NewDate(2024, 1, 10),
		PeriodEnd:   types.NewDate(2024, 1, 20),
	})
	suite.Assert().ErrorIs(err, models.ErrBudgetExists)
}

func (suite *TestSuiteStandard) TestCreateBudgetNoConflict() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")
	transport := suite.category("Transport")

	suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})

	// A disjoint period for the same category is fine
	_, err := models.CreateBudget(models.DB, user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 2, 1),
		PeriodEnd:   types.NewDate(2024, 2, 29),
	})
	suite.Assert().Nil(err)

	// The same period for another category is fine
	_, err = models.CreateBudget(models.DB, user.ID, models.BudgetCreate{
		CategoryID:  transport.ID,
		Amount:      decimal.NewFromInt(60),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})
	suite.Assert().Nil(err)

	// The same period for another user is fine, too
	benoit := suite.createTestUser("benoit")
	_, err = models.CreateBudget(models.DB, benoit.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestBudgetOverlaps() {
	budget := models.Budget{
		PeriodStart: types.NewDate(2024, 1, 10),
		PeriodEnd:   types.NewDate(2024, 1, 20),
	}

	tests := []struct {
		name  string
		start types.Date
		end   types.Date
		want  bool
	}{
		{"before", types.NewDate(2024, 1, 1), types.NewDate(2024, 1, 9), false},
		{"after", types.NewDate(2024, 1, 21), types.NewDate(2024, 1, 31), false},
		{"touching start", types.NewDate(2024, 1, 1), types.NewDate(2024, 1, 10), true},
		{"touching end", types.NewDate(2024, 1, 20), types.NewDate(2024, 1, 31), true},
		{"contained", types.NewDate(2024, 1, 12), types.NewDate(2024, 1, 18), true},
		{"containing", types.NewDate(2024, 1, 1), types.NewDate(2024, 1, 31), true},
		{"identical", types.NewDate(2024, 1, 10), types.NewDate(2024, 1, 20), true},
	}

	for _, tt := range tests {
		suite.Assert().Equal(tt.want, budget.Overlaps(tt.start, tt.end), "Overlap check %q is wrong", tt.name)
	}
}

func (suite *TestSuiteStandard) TestUpdateBudget() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	budget := suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})

	amount := decimal.NewFromInt(150)
	updated, err := models.UpdateBudget(models.DB, user.ID, budget.ID, models.BudgetUpdate{Amount: &amount})
	suite.Require().Nil(err)

	suite.Assert().True(updated.Amount.Equal(amount))
	suite.Assert().True(updated.PeriodStart.Equal(budget.PeriodStart))
	suite.Assert().True(updated.PeriodEnd.Equal(budget.PeriodEnd))
}

func (suite *TestSuiteStandard) TestUpdateBudgetNoChanges() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	budget := suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})

	// An empty update changes nothing
	_, err := models.UpdateBudget(models.DB, user.ID, budget.ID, models.BudgetUpdate{})
	suite.Assert().ErrorIs(err, models.ErrNoChanges)

	// An update restating the stored values changes nothing either
	amount := decimal.NewFromInt(100)
	start := types.NewDate(2024, 1, 1)
	_, err = models.UpdateBudget(models.DB, user.ID, budget.ID, models.BudgetUpdate{
		Amount:      &amount,
		PeriodStart: &start,
	})
	suite.Assert().ErrorIs(err, models.ErrNoChanges)
}

func (suite *TestSuiteStandard) TestUpdateBudgetMovePeriod() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	january := suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})
	february := suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 2, 1),
		PeriodEnd:   types.NewDate(2024, 2, 29),
	})

	// Moving february onto january conflicts
	start := types.NewDate(2024, 1, 15)
	_, err := models.UpdateBudget(models.DB, user.ID, february.ID, models.BudgetUpdate{PeriodStart: &start})
	suite.Assert().ErrorIs(err, models.ErrBudgetExists)

	// Shortening january does not conflict with january itself
	end := types.NewDate(2024, 1, 15)
	updated, err := models.UpdateBudget(models.DB, user.ID, january.ID, models.BudgetUpdate{PeriodEnd: &end})
	suite.Require().Nil(err)
	suite.Assert().True(updated.PeriodEnd.Equal(end))
}

func (suite *TestSuiteStandard) TestUpdateBudgetNotFound() {
	user := suite.createTestUser("amandine")

	_, err := models.UpdateBudget(models.DB, user.ID, 4096, models.BudgetUpdate{})
	suite.Assert().ErrorIs(err, models.ErrBudgetNotFound)
}

func (suite *TestSuiteStandard) TestDeleteBudget() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	budget := suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})

	suite.createTestTransaction(user.ID, models.TransactionCreate{
		Amount:   decimal.NewFromInt(20),
		Kind:     models.KindExpense,
		Date:     time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
		Category: "Food",
	})

	suite.Require().Nil(models.DeleteBudget(models.DB, user.ID, budget.ID))

	_, err := models.FindBudget(models.DB, user.ID, budget.ID)
	suite.Assert().ErrorIs(err, models.ErrBudgetNotFound)

	// The ledger entries stay
	transactions, err := models.Transactions(models.DB, user.ID, models.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 1)
}

func (suite *TestSuiteStandard) TestFindBudgetOtherOwner() {
	amandine := suite.createTestUser("amandine")
	benoit := suite.createTestUser("benoit")
	food := suite.category("Food")

	budget := suite.createTestBudget(amandine.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})

	_, err := models.FindBudget(models.DB, benoit.ID, budget.ID)
	suite.Assert().ErrorIs(err, models.ErrBudgetNotFound)
}

func (suite *TestSuiteStandard) TestBudgetStatus() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	budget := suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})

	suite.createTestTransaction(user.ID, models.TransactionCreate{
		Amount:   decimal.NewFromInt(20),
		Kind:     models.KindExpense,
		Date:     time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
		Category: "Food",
	})
	suite.createTestTransaction(user.ID, models.TransactionCreate{
		Amount:   decimal.NewFromInt(30),
		Kind:     models.KindExpense,
		Date:     time.Date(2024, 1, 20, 19, 0, 0, 0, time.UTC),
		Category: "Food",
	})

	// Income, other categories, other owners and other periods do not count
	suite.createTestTransaction(user.ID, models.TransactionCreate{
		Amount:   decimal.NewFromInt(2000),
		Kind:     models.KindIncome,
		Date:     time.Date(2024, 1, 28, 9, 0, 0, 0, time.UTC),
		Category: "Salary",
	})
	suite.createTestTransaction(user.ID, models.TransactionCreate{
		Amount:   decimal.NewFromInt(25),
		Kind:     models.KindExpense,
		Date:     time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC),
		Category: "Food",
	})
	benoit := suite.createTestUser("benoit")
	suite.createTestTransaction(benoit.ID, models.TransactionCreate{
		Amount:   decimal.NewFromInt(99),
		Kind:     models.KindExpense,
		Date:     time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
		Category: "Food",
	})

	status, err := budget.Status(models.DB)
	suite.Require().Nil(err)

	suite.Assert().True(status.Spent.Equal(decimal.NewFromInt(50)), "Spent is %s, should be 50", status.Spent)
	suite.Assert().True(status.Remaining.Equal(decimal.NewFromInt(50)), "Remaining is %s, should be 50", status.Remaining)
	suite.Assert().True(status.PercentConsumed.Equal(decimal.NewFromInt(50)), "PercentConsumed is %s, should be 50", status.PercentConsumed)
	suite.Assert().False(status.Overspent)
}

func (suite *TestSuiteStandard) TestBudgetStatusRounding() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	budget := suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})

	suite.createTestTransaction(user.ID, models.TransactionCreate{
		Amount:   decimal.RequireFromString("33.333"),
		Kind:     models.KindExpense,
		Date:     time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
		Category: "Food",
	})

	status, err := budget.Status(models.DB)
	suite.Require().Nil(err)

	// The spend is rounded to cents first, the remaining amount is derived
	// from the rounded value
	suite.Assert().True(status.Spent.Equal(decimal.RequireFromString("33.33")), "Spent is %s, should be 33.33", status.Spent)
	suite.Assert().True(status.Remaining.Equal(decimal.RequireFromString("66.67")), "Remaining is %s, should be 66.67", status.Remaining)
	suite.Assert().True(status.PercentConsumed.Equal(decimal.RequireFromString("33.33")), "PercentConsumed is %s, should be 33.33", status.PercentConsumed)
}

func (suite *TestSuiteStandard) TestBudgetStatusOverspent() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	budget := suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})

	suite.createTestTransaction(user.ID, models.TransactionCreate{
		Amount:   decimal.NewFromInt(120),
		Kind:     models.KindExpense,
		Date:     time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
		Category: "Food",
	})

	status, err := budget.Status(models.DB)
	suite.Require().Nil(err)

	suite.Assert().True(status.Remaining.Equal(decimal.NewFromInt(-20)), "Remaining is %s, should be -20", status.Remaining)
	suite.Assert().True(status.PercentConsumed.Equal(decimal.NewFromInt(120)), "PercentConsumed is %s, should be 120", status.PercentConsumed)
	suite.Assert().True(status.Overspent)
}

func (suite *TestSuiteStandard) TestBudgetStatusBoundaryDay() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")

	budget := suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})

	// The time of day is truncated, an evening expense on the last period day
	// still counts
	suite.createTestTransaction(user.ID, models.TransactionCreate{
		Amount:   decimal.NewFromInt(10),
		Kind:     models.KindExpense,
		Date:     time.Date(2024, 1, 31, 23, 30, 0, 0, time.UTC),
		Category: "Food",
	})

	status, err := budget.Status(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(status.Spent.Equal(decimal.NewFromInt(10)), "Spent is %s, should be 10", status.Spent)
}

func (suite *TestSuiteStandard) TestBudgets() {
	user := suite.createTestUser("amandine")
	food := suite.category("Food")
	transport := suite.category("Transport")

	january := suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})
	february := suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  food.ID,
		Amount:      decimal.NewFromInt(100),
		PeriodStart: types.NewDate(2024, 2, 1),
		PeriodEnd:   types.NewDate(2024, 2, 29),
	})
	trains := suite.createTestBudget(user.ID, models.BudgetCreate{
		CategoryID:  transport.ID,
		Amount:      decimal.NewFromInt(60),
		PeriodStart: types.NewDate(2024, 1, 1),
		PeriodEnd:   types.NewDate(2024, 1, 31),
	})

	suite.createTestTransaction(user.ID, models.TransactionCreate{
		Amount:   decimal.NewFromInt(20),
		Kind:     models.KindExpense,
		Date:     time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
		Category: "Food",
	})

	statuses, err := models.Budgets(models.DB, user.ID, models.BudgetFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(statuses, 3)

	// Ordered by period start, the consumption is computed per budget
	suite.Assert().Equal(january.ID, statuses[0].ID)
	suite.Assert().True(statuses[0].Spent.Equal(decimal.NewFromInt(20)), "Spent is %s, should be 20", statuses[0].Spent)
	suite.Assert().True(statuses[1].Spent.IsZero())
	suite.Assert().True(statuses[2].Spent.IsZero())

	tests := []struct {
		name   string
		filter models.BudgetFilter
		want   []uint64
	}{
		{"by category", models.BudgetFilter{CategoryID: food.ID}, []uint64{january.ID, february.ID}},
		{"intersecting period", models.BudgetFilter{PeriodStart: types.NewDate(2024, 1, 15), PeriodEnd: types.NewDate(2024, 2, 15)}, []uint64{january.ID, trains.ID, february.ID}},
		{"period after", models.BudgetFilter{PeriodStart: types.NewDate(2024, 2, 1), PeriodEnd: types.NewDate(2024, 2, 29)}, []uint64{february.ID}},
		{"skip", models.BudgetFilter{Offset: 1}, []uint64{trains.ID, february.ID}},
		{"limit", models.BudgetFilter{Limit: 2}, []uint64{january.ID, trains.ID}},
		{"skip and limit", models.BudgetFilter{Offset: 1, Limit: 1}, []uint64{trains.ID}},
		{"skip everything", models.BudgetFilter{Offset: 10}, []uint64{}},
	}

	for _, tt := range tests {
		statuses, err := models.Budgets(models.DB, user.ID, tt.filter)
		suite.Require().Nil(err, "Filter %q failed", tt.name)

		ids := make([]uint64, 0, len(statuses))
		for _, budgetStatus := range statuses {
			ids = append(ids, budgetStatus.ID)
		}
		suite.Assert().Equal(tt.want, ids, "Filter %q returned the wrong budgets", tt.name)
	}
}

func (suite *TestSuiteStandard) TestBudgetsPeriodInvalid() {
	user := suite.createTestUser("amandine")

	_, err := models.Budgets(models.DB, user.ID, models.BudgetFilter{
		PeriodStart: types.NewDate(2024, 2, 1),
		PeriodEnd:   types.NewDate(2024, 1, 1),
	})
	suite.Assert().ErrorIs(err, models.ErrPeriodInvalid)
}

func (suite *TestSuiteStandard) TestBudgetsUnknownCategory() {
	user := suite.createTestUser("amandine")

	_, err := models.Budgets(models.DB, user.ID, models.BudgetFilter{CategoryID: 4096})
	suite.Assert().ErrorIs(err, models.ErrCategoryNotFound)
}
