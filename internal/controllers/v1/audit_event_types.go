package v1

import (
	"github.com/givehub/backend/internal/models"
)

// AuditEventView is one audit log entry as shown to administrators.
type AuditEventView struct {
	models.DefaultModel
	Action  string `json:"action" example:"donation.created"`
	ActorID string `json:"actorId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Detail  string `json:"detail" example:"donated 100 to cause School books"`
}

func newAuditEventView(model models.AuditEvent) AuditEventView {
	return AuditEventView{
		DefaultModel: model.DefaultModel,
		Action:       model.Action,
		ActorID:      model.ActorID.String(),
		Detail:       model.Detail,
	}
}

type AuditEventListResponse struct {
	Data       []AuditEventView `json:"data"`                                                          // List of audit events, newest first
	Error      *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination      `json:"pagination"`                                                    // Pagination information
}

type AuditEventQueryFilter struct {
	Action string `form:"action" filterField:"false"` // Glob pattern for the action, e.g. "donation.*"
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first event returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of events to return. Defaults to 50.
}
