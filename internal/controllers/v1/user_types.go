package v1

import (
	"github.com/givehub/backend/internal/models"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Email string `json:"email" binding:"required" example:"donor@example.com"` // Email address, unique across the platform
	Name  string `json:"name" example:"Jamie Donor"`                           // Display name
}

// RegisteredUser contains the API token. It is returned exactly once,
// on registration.
type RegisteredUser struct {
	models.DefaultModel
	Email    string          `json:"email" example:"donor@example.com"`
	Name     string          `json:"name" example:"Jamie Donor"`
	Role     models.UserRole `json:"role" example:"donor"`
	APIToken string          `json:"apiToken" example:"1b46eb..."` // Bearer token for all authenticated requests
}

type RegisterResponse struct {
	Error *string         `json:"error" example:"a user with this email already exists"` // The error, if any occurred
	Data  *RegisteredUser `json:"data"`                                                  // The created user
}

// UserProfile is the authenticated user's own view.
type UserProfile struct {
	models.DefaultModel
	Email                 string          `json:"email" example:"donor@example.com"`
	Name                  string          `json:"name" example:"Jamie Donor"`
	Role                  models.UserRole `json:"role" example:"donor"`
	DonatedTotal          decimal.Decimal `json:"donatedTotal" example:"130"` // Sum of all completed donations
	DonationCount         int64           `json:"donationCount" example:"4"`  // Number of donation events
	FormattedDonatedTotal string          `json:"formattedDonatedTotal" example:"$130.00"`
}

type UserProfileResponse struct {
	Error *string      `json:"error" example:"the bearer token is not valid"` // The error, if any occurred
	Data  *UserProfile `json:"data"`                                          // The profile data
}
