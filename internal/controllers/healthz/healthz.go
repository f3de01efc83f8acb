package healthz

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mybudget-app/backend/internal/httputil"
	"github.com/mybudget-app/backend/internal/models"
)

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", Get)
}

// Get returns the application health. It pings the database since a backend
// that cannot reach its storage is not healthy.
func Get(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
