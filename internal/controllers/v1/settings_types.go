package v1

import (
	"github.com/givehub/backend/internal/models"
	"github.com/shopspring/decimal"
)

type SettingsEditable struct {
	MinimumDonationEnabled *bool            `json:"minimumDonationEnabled" example:"true"` // Whether the minimum donation floor is enforced
	MinimumDonationAmount  *decimal.Decimal `json:"minimumDonationAmount" example:"5"`     // The minimum donation amount
	CurrencyCode           string           `json:"currencyCode" example:"EUR"`            // ISO 4217 code used for display formatting
}

// PlatformSettings is the API representation of the settings singleton.
type PlatformSettings struct {
	MinimumDonationEnabled bool            `json:"minimumDonationEnabled" example:"true"`
	MinimumDonationAmount  decimal.Decimal `json:"minimumDonationAmount" example:"5"`
	CurrencyCode           string          `json:"currencyCode" example:"EUR"`
}

func newPlatformSettings(model models.Settings) PlatformSettings {
	return PlatformSettings{
		MinimumDonationEnabled: model.MinimumDonationEnabled,
		MinimumDonationAmount:  model.MinimumDonationAmount,
		CurrencyCode:           model.CurrencyCode,
	}
}

type SettingsResponse struct {
	Error *string           `json:"error" example:"the currency code is not a valid ISO 4217 code"` // The error, if any occurred
	Data  *PlatformSettings `json:"data"`                                                           // The settings data
}
