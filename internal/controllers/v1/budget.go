package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mybudget-app/backend/internal/auth"
	"github.com/mybudget-app/backend/internal/httputil"
	"github.com/mybudget-app/backend/internal/models"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

// CreateBudget creates a new budget for the authenticated user. A budget
// whose period overlaps an existing budget for the same category is rejected
// with a conflict.
func CreateBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &s})
		return
	}

	budget, err := models.CreateBudget(models.DB, auth.UserID(c), editable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	data := newBudget(budget)
	c.JSON(http.StatusCreated, BudgetResponse{Data: &data})
}

// GetBudgets returns the authenticated user's budgets matching the filter,
// each with its consumption.
func GetBudgets(c *gin.Context) {
	var query BudgetQueryFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{Error: &s})
		return
	}

	filter, err := query.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	statuses, err := models.Budgets(models.DB, auth.UserID(c), filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	data := make([]BudgetStatus, 0, len(statuses))
	for _, budgetStatus := range statuses {
		data = append(data, newBudgetStatus(budgetStatus))
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// GetBudget returns one of the authenticated user's budgets with its
// consumption.
func GetBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, BudgetStatusResponse{Error: &s})
		return
	}

	budget, err := models.FindBudget(models.DB, auth.UserID(c), uri.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetStatusResponse{Error: &s})
		return
	}

	budgetStatus, err := budget.Status(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetStatusResponse{Error: &s})
		return
	}

	data := newBudgetStatus(budgetStatus)
	c.JSON(http.StatusOK, BudgetStatusResponse{Data: &data})
}

// UpdateBudget applies a partial update to one of the authenticated user's
// budgets. An update that changes nothing is rejected.
func UpdateBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &s})
		return
	}

	var updateable BudgetUpdateable
	if err := httputil.BindData(c, &updateable); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &s})
		return
	}

	budget, err := models.UpdateBudget(models.DB, auth.UserID(c), uri.ID, updateable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	data := newBudget(budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// DeleteBudget removes one of the authenticated user's budgets. The ledger
// entries counted against it are kept.
func DeleteBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &s})
		return
	}

	err := models.DeleteBudget(models.DB, auth.UserID(c), uri.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	c.Status(http.StatusNoContent)
}
