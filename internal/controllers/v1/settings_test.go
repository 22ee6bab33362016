package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/givehub/backend/internal/controllers/v1"
	"github.com/givehub/backend/internal/models"
	"github.com/givehub/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSettingsGetDefaults() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.False(suite.T(), response.Data.MinimumDonationEnabled)
	assert.True(suite.T(), response.Data.MinimumDonationAmount.IsZero())
	assert.Equal(suite.T(), "USD", response.Data.CurrencyCode)
}

func (suite *TestSuiteStandard) TestSettingsUpdate() {
	admin := suite.createTestAdmin()

	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", map[string]any{
		"minimumDonationEnabled": true,
		"minimumDonationAmount":  "5",
		"currencyCode":           "EUR",
	}, test.BearerToken(admin.APIToken))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.MinimumDonationEnabled)
	assert.True(suite.T(), response.Data.MinimumDonationAmount.Equal(decimal.NewFromInt(5)))
	assert.Equal(suite.T(), "EUR", response.Data.CurrencyCode)

	// The update is applied to the singleton, not a second row
	settings, err := models.ActiveSettings()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "EUR", settings.CurrencyCode)
}

func (suite *TestSuiteStandard) TestSettingsUpdatePartial() {
	admin := suite.createTestAdmin()

	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", map[string]any{
		"minimumDonationEnabled": true,
	}, test.BearerToken(admin.APIToken))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.MinimumDonationEnabled)
	assert.Equal(suite.T(), "USD", response.Data.CurrencyCode)
}

func (suite *TestSuiteStandard) TestSettingsUpdateErrors() {
	admin := suite.createTestAdmin()
	donor := suite.createTestDonor()

	tests := []struct {
		name   string
		body   any
		token  string
		status int
	}{
		{"Unauthenticated", map[string]any{"currencyCode": "EUR"}, "", http.StatusUnauthorized},
		{"Donor", map[string]any{"currencyCode": "EUR"}, donor.APIToken, http.StatusForbidden},
		{"Invalid currency", map[string]any{"currencyCode": "GOLD"}, admin.APIToken, http.StatusBadRequest},
		{"Negative minimum", map[string]any{"minimumDonationAmount": "-5"}, admin.APIToken, http.StatusBadRequest},
		{"Empty body", "", admin.APIToken, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.token != "" {
				headers = test.BearerToken(tt.token)
			}

			r := test.Request(t, http.MethodPatch, "http://example.com/v1/settings", tt.body, headers)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}
