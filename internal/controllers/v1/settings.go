package v1

import (
	"net/http"

	"github.com/givehub/backend/internal/httputil"
	"github.com/givehub/backend/internal/identity"
	"github.com/givehub/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterSettingsRoutes registers the routes for the platform
// settings with the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettings)
	r.GET("", GetSettings)
	r.PATCH("", identity.Middleware(), identity.RequireAdmin(), UpdateSettings)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get settings
// @Description	Returns the platform settings
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		500	{object}	SettingsResponse
// @Router			/v1/settings [get]
func GetSettings(c *gin.Context) {
	settings, err := models.ActiveSettings()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	data := newPlatformSettings(settings)
	c.JSON(http.StatusOK, SettingsResponse{Data: &data})
}

// @Summary		Update settings
// @Description	Updates the platform settings. Only values to be updated need to be specified.
// @Tags			Settings
// @Accept			json
// @Produce		json
// @Success		200			{object}	SettingsResponse
// @Failure		400			{object}	SettingsResponse
// @Failure		403			{object}	httpError
// @Param			settings	body		SettingsEditable	true	"Settings"
// @Router			/v1/settings [patch]
func UpdateSettings(c *gin.Context) {
	var update SettingsEditable

	err := httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SettingsResponse{
			Error: &e,
		})
		return
	}

	settings, err := models.ActiveSettings()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	if update.MinimumDonationEnabled != nil {
		settings.MinimumDonationEnabled = *update.MinimumDonationEnabled
	}

	if update.MinimumDonationAmount != nil {
		settings.MinimumDonationAmount = *update.MinimumDonationAmount
	}

	if update.CurrencyCode != "" {
		settings.CurrencyCode = update.CurrencyCode
	}

	err = models.DB.Save(&settings).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &e,
		})
		return
	}

	admin, _ := identity.CurrentUser(c)
	models.RecordAuditEvent("settings.updated", admin.ID, "platform settings changed")

	data := newPlatformSettings(settings)
	c.JSON(http.StatusOK, SettingsResponse{Data: &data})
}
