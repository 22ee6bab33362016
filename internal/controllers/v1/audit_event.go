package v1

import (
	"net/http"

	"github.com/givehub/backend/internal/httputil"
	"github.com/givehub/backend/internal/identity"
	"github.com/givehub/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterAuditEventRoutes registers the routes for the audit log with
// the RouterGroup that is passed. The audit log is only visible to
// administrators.
func RegisterAuditEventRoutes(r *gin.RouterGroup) {
	r.Use(identity.Middleware(), identity.RequireAdmin())

	r.OPTIONS("", OptionsAuditEvents)
	r.GET("", GetAuditEvents)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			AuditEvents
// @Success		204
// @Router			/v1/audit-events [options]
func OptionsAuditEvents(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get audit events
// @Description	Returns the audit log, newest first
// @Tags			AuditEvents
// @Produce		json
// @Success		200	{object}	AuditEventListResponse
// @Failure		400	{object}	AuditEventListResponse
// @Failure		401	{object}	httpError
// @Failure		403	{object}	httpError
// @Router			/v1/audit-events [get]
// @Param			action	query	string	false	"Glob pattern for the action, e.g. donation.*"
// @Param			offset	query	uint	false	"The offset of the first event returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of events to return. Defaults to 50."
func GetAuditEvents(c *gin.Context) {
	var filter AuditEventQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, AuditEventListResponse{
			Error: &s,
		})
		return
	}

	var events []models.AuditEvent
	err := models.DB.Order("created_at DESC").Find(&events).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AuditEventListResponse{
			Error: &e,
		})
		return
	}

	// The action filter supports glob patterns, so it is applied here
	// and not in the database query.
	if filter.Action != "" {
		events = slices.DeleteFunc(events, func(event models.AuditEvent) bool {
			return !glob.Glob(filter.Action, event.Action)
		})
	}

	total := int64(len(events))

	limit := 50
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	if filter.Offset > uint(len(events)) {
		events = []models.AuditEvent{}
	} else {
		events = events[filter.Offset:]
	}

	if len(events) > limit {
		events = events[:limit]
	}

	data := make([]AuditEventView, 0)
	for _, event := range events {
		data = append(data, newAuditEventView(event))
	}

	c.JSON(http.StatusOK, AuditEventListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}
