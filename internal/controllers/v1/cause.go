package v1

import (
	"net/http"
	"time"

	"github.com/givehub/backend/internal/httputil"
	"github.com/givehub/backend/internal/identity"
	"github.com/givehub/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterCauseRoutes registers the routes for causes with
// the RouterGroup that is passed.
func RegisterCauseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCauses)
		r.GET("", GetCauses)
		r.POST("", identity.Middleware(), identity.RequireAdmin(), CreateCause)
	}

	// Cause with ID
	{
		r.OPTIONS("/:id", OptionsCauseDetail)
		r.GET("/:id", GetCause)
		r.PATCH("/:id", identity.Middleware(), identity.RequireAdmin(), UpdateCause)
		r.DELETE("/:id", identity.Middleware(), identity.RequireAdmin(), DeleteCause)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Causes
// @Success		204
// @Router			/v1/causes [options]
func OptionsCauses(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Causes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/causes/{id} [options]
func OptionsCauseDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Cause{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get cause
// @Description	Returns a specific cause
// @Tags			Causes
// @Produce		json
// @Success		200	{object}	CauseResponse
// @Failure		400	{object}	CauseResponse
// @Failure		404	{object}	CauseResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/causes/{id} [get]
func GetCause(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{
			Error: &e,
		})
		return
	}

	var cause models.Cause
	err = models.DB.First(&cause, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{
			Error: &e,
		})
		return
	}

	data := newCause(cause, currencyCode())
	c.JSON(http.StatusOK, CauseResponse{Data: &data})
}

// @Summary		Get causes
// @Description	Returns a list of causes
// @Tags			Causes
// @Produce		json
// @Success		200	{object}	CauseListResponse
// @Failure		400	{object}	CauseListResponse
// @Router			/v1/causes [get]
// @Param			name				query	string	false	"Glob pattern for the cause name, e.g. Edu*"
// @Param			category			query	string	false	"Filter by category"
// @Param			status				query	string	false	"Filter by status"
// @Param			acceptsDonations	query	bool	false	"Only causes currently accepting donations"
// @Param			offset				query	uint	false	"The offset of the first Cause returned. Defaults to 0."
// @Param			limit				query	int		false	"Maximum number of Causes to return. Defaults to 50."
func GetCauses(c *gin.Context) {
	var filter CauseQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CauseListResponse{
			Error: &s,
		})
		return
	}

	var q *gorm.DB
	q = models.DB.Order("causes.created_at DESC")

	if filter.Category != "" {
		q = q.Where(&models.Cause{Category: filter.Category})
	}

	if filter.Status != "" {
		q = q.Where(&models.Cause{Status: filter.Status})
	}

	if filter.AcceptsDonations {
		q = q.Where(&models.Cause{Status: models.StatusActive}).
			Where(models.DB.Where("end_date IS NULL").Or("end_date > ?", time.Now()))
	}

	var causes []models.Cause
	err := q.Find(&causes).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseListResponse{
			Error: &e,
		})
		return
	}

	// The name filter supports glob patterns, so it is applied here
	// and not in the database query.
	if filter.Name != "" {
		causes = slices.DeleteFunc(causes, func(cause models.Cause) bool {
			return !glob.Glob(filter.Name, cause.Name)
		})
	}

	total := int64(len(causes))

	// Pagination with a default limit of 50
	limit := 50
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	if filter.Offset > uint(len(causes)) {
		causes = []models.Cause{}
	} else {
		causes = causes[filter.Offset:]
	}

	if len(causes) > limit {
		causes = causes[:limit]
	}

	code := currencyCode()
	data := make([]Cause, 0)
	for _, cause := range causes {
		data = append(data, newCause(cause, code))
	}

	c.JSON(http.StatusOK, CauseListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create cause
// @Description	Creates a new cause
// @Tags			Causes
// @Produce		json
// @Success		201		{object}	CauseResponse
// @Failure		400		{object}	CauseResponse
// @Param			cause	body		CauseEditable	true	"Cause"
// @Router			/v1/causes [post]
func CreateCause(c *gin.Context) {
	var editable CauseEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CauseResponse{
			Error: &e,
		})
		return
	}

	admin, _ := identity.CurrentUser(c)

	cause := editable.model()
	cause.CreatedByID = admin.ID

	err = models.DB.Create(&cause).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{
			Error: &e,
		})
		return
	}

	models.RecordAuditEvent("cause.created", admin.ID, cause.Name)

	data := newCause(cause, currencyCode())
	c.JSON(http.StatusCreated, CauseResponse{Data: &data})
}

// @Summary		Update cause
// @Description	Updates an existing cause. Only values to be updated need to be specified. The raised amount and donation count cannot be changed here, they are owned by the donation path.
// @Tags			Causes
// @Accept			json
// @Produce		json
// @Success		200		{object}	CauseResponse
// @Failure		400		{object}	CauseResponse
// @Failure		404		{object}	CauseResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			cause	body		CauseEditable	true	"Cause"
// @Router			/v1/causes/{id} [patch]
func UpdateCause(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{
			Error: &e,
		})
		return
	}

	var cause models.Cause
	err = models.DB.First(&cause, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{
			Error: &e,
		})
		return
	}

	var update CauseEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CauseResponse{
			Error: &e,
		})
		return
	}

	// Unset values keep their current state
	if update.Name == "" {
		update.Name = cause.Name
	}

	if update.Category == "" {
		update.Category = cause.Category
	}

	if update.Status == "" {
		update.Status = cause.Status
	}

	if update.TargetAmount.IsZero() {
		update.TargetAmount = cause.TargetAmount
	}

	if update.EndDate == nil {
		update.EndDate = cause.EndDate
	}

	err = models.DB.Model(&cause).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{
			Error: &e,
		})
		return
	}

	admin, _ := identity.CurrentUser(c)
	models.RecordAuditEvent("cause.updated", admin.ID, cause.Name)

	data := newCause(cause, currencyCode())
	c.JSON(http.StatusOK, CauseResponse{Data: &data})
}

// @Summary		Delete cause
// @Description	Deletes a cause. Causes that have received donations cannot be deleted.
// @Tags			Causes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/causes/{id} [delete]
func DeleteCause(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var cause models.Cause
	err = models.DB.First(&cause, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&cause).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	admin, _ := identity.CurrentUser(c)
	models.RecordAuditEvent("cause.deleted", admin.ID, cause.Name)

	c.Status(http.StatusNoContent)
}
