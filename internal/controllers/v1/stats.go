package v1

import (
	"net/http"

	"github.com/givehub/backend/internal/httputil"
	"github.com/givehub/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterStatsRoutes registers the routes for platform statistics
// with the RouterGroup that is passed.
func RegisterStatsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsStats)
	r.GET("", GetStats)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Stats
// @Success		204
// @Router			/v1/stats [options]
func OptionsStats(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get statistics
// @Description	Returns platform wide statistics over causes and the donation ledger
// @Tags			Stats
// @Produce		json
// @Success		200	{object}	StatsResponse
// @Failure		500	{object}	StatsResponse
// @Router			/v1/stats [get]
func GetStats(c *gin.Context) {
	stats, err := models.Stats()
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, StatsResponse{
			Error: &e,
		})
		return
	}

	data := newStats(stats)
	c.JSON(http.StatusOK, StatsResponse{Data: &data})
}
