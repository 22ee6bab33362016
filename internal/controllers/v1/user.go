package v1

import (
	"net/http"

	"github.com/givehub/backend/internal/httputil"
	"github.com/givehub/backend/internal/identity"
	"github.com/givehub/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the routes for users with
// the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/register", OptionsRegister)
		r.POST("/register", RegisterUser)
	}

	{
		r.OPTIONS("/me", OptionsMe)
		r.GET("/me", identity.Middleware(), GetMe)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users/register [options]
func OptionsRegister(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users/me [options]
func OptionsMe(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Register
// @Description	Creates a donor account. The response contains the API token for all further requests; it cannot be retrieved again.
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		201		{object}	RegisterResponse
// @Failure		400		{object}	RegisterResponse
// @Param			user	body		RegisterRequest	true	"User"
// @Router			/v1/users/register [post]
func RegisterUser(c *gin.Context) {
	var request RegisterRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RegisterResponse{
			Error: &e,
		})
		return
	}

	user := models.User{
		Email: request.Email,
		Name:  request.Name,
		Role:  models.RoleDonor,
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RegisterResponse{
			Error: &e,
		})
		return
	}

	data := RegisteredUser{
		DefaultModel: user.DefaultModel,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		APIToken:     user.APIToken,
	}
	c.JSON(http.StatusCreated, RegisterResponse{Data: &data})
}

// @Summary		Get own profile
// @Description	Returns the authenticated user's profile with donation totals
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserProfileResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	UserProfileResponse
// @Router			/v1/users/me [get]
func GetMe(c *gin.Context) {
	user, _ := identity.CurrentUser(c)

	total, err := user.DonatedTotal()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserProfileResponse{
			Error: &e,
		})
		return
	}

	count, err := user.DonationCount()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserProfileResponse{
			Error: &e,
		})
		return
	}

	data := UserProfile{
		DefaultModel:          user.DefaultModel,
		Email:                 user.Email,
		Name:                  user.Name,
		Role:                  user.Role,
		DonatedTotal:          total,
		DonationCount:         count,
		FormattedDonatedTotal: formatAmount(total, currencyCode()),
	}
	c.JSON(http.StatusOK, UserProfileResponse{Data: &data})
}
