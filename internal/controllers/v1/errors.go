package v1

import (
	"errors"
	"net/http"

	"github.com/mybudget-app/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var errLoginFailed = errors.New("no user exists with this username and password combination")

// status returns the appropriate HTTP status for an error
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrPeriodInvalid),
		errors.Is(err, models.ErrAmountNotPositive),
		errors.Is(err, models.ErrKindInvalid),
		errors.Is(err, models.ErrDateInvalid),
		errors.Is(err, models.ErrPasswordInvalid),
		errors.Is(err, models.ErrNoChanges):
		return http.StatusBadRequest

	case errors.Is(err, models.ErrBudgetExists),
		errors.Is(err, models.ErrUsernameTaken):
		return http.StatusConflict

	case errors.Is(err, models.ErrResourceNotFound),
		errors.Is(err, models.ErrCategoryNotFound),
		errors.Is(err, models.ErrBudgetNotFound),
		errors.Is(err, models.ErrTransactionNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound

	case errors.Is(err, errLoginFailed):
		return http.StatusUnauthorized

	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError

	default:
		// Unexpected errors are logged, clients get a 500
		log.Error().Msgf("%T: %v", err, err)
		return http.StatusInternalServerError
	}
}
