package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mybudget-app/backend/internal/auth"
	"github.com/mybudget-app/backend/internal/httputil"
	"github.com/mybudget-app/backend/internal/models"
)

// RegisterTransactionRoutes registers the routes for the ledger with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}
	{
		r.OPTIONS("/total", httputil.OptionsGet)
		r.GET("/total", GetTransactionsTotal)
	}
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// CreateTransaction records a new ledger entry for the authenticated user.
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &s})
		return
	}

	transaction, err := models.CreateTransaction(models.DB, auth.UserID(c), editable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// GetTransactions returns the authenticated user's ledger entries matching
// the filter, newest first.
func GetTransactions(c *gin.Context) {
	var query TransactionQueryFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &s})
		return
	}

	filter, err := query.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	transactions, err := models.Transactions(models.DB, auth.UserID(c), filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// GetTransactionsTotal returns the signed sum of the ledger entries matching
// the filter. Income counts positive, expenses negative.
func GetTransactionsTotal(c *gin.Context) {
	var query TransactionQueryFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TotalResponse{Error: &s})
		return
	}

	filter, err := query.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TotalResponse{Error: &s})
		return
	}

	total, err := models.TransactionsTotal(models.DB, auth.UserID(c), filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TotalResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, TotalResponse{Data: &Total{Total: total}})
}

// GetTransaction returns a single ledger entry of the authenticated user.
func GetTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &s})
		return
	}

	transaction, err := models.FindTransaction(models.DB, auth.UserID(c), uri.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// UpdateTransaction applies a partial update to one of the authenticated
// user's ledger entries.
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &s})
		return
	}

	var updateable TransactionUpdateable
	if err := httputil.BindData(c, &updateable); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &s})
		return
	}

	transaction, err := models.UpdateTransaction(models.DB, auth.UserID(c), uri.ID, updateable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// DeleteTransaction removes one of the authenticated user's ledger entries
// and returns the new signed total over the remaining entries.
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, TotalResponse{Error: &s})
		return
	}

	total, err := models.DeleteTransaction(models.DB, auth.UserID(c), uri.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TotalResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, TotalResponse{Data: &Total{Total: total}})
}
