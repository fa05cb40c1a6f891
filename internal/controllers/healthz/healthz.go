// Package healthz contains the controller for health checks.
package healthz

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthbudget/backend/internal/httputil"
	"github.com/hearthbudget/backend/internal/models"
)

// RegisterRoutes registers the routes for the healthz endpoint.
func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// Options returns an empty response with the HTTP Header "allow" set to
// the allowed HTTP verbs.
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the application health and, if not healthy, an error.
func Get(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	err = sqlDB.Ping()
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
