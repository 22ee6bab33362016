package models_test

import (
	"github.com/givehub/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSettingsDefaults() {
	settings, err := models.ActiveSettings()
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), models.SettingsKey, settings.Key)
	assert.False(suite.T(), settings.MinimumDonationEnabled)
	assert.Equal(suite.T(), "USD", settings.CurrencyCode)
}

func (suite *TestSuiteStandard) TestSettingsSingleton() {
	first, err := models.ActiveSettings()
	require.Nil(suite.T(), err)

	first.MinimumDonationEnabled = true
	first.MinimumDonationAmount = decimal.NewFromInt(5)
	require.Nil(suite.T(), models.DB.Save(&first).Error)

	second, err := models.ActiveSettings()
	require.Nil(suite.T(), err)
	assert.True(suite.T(), second.MinimumDonationEnabled)
	assert.True(suite.T(), second.MinimumDonationAmount.Equal(decimal.NewFromInt(5)))

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Settings{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestSettingsInvalidCurrency() {
	settings, err := models.ActiveSettings()
	require.Nil(suite.T(), err)

	settings.CurrencyCode = "GOLD"
	err = models.DB.Save(&settings).Error
	assert.ErrorIs(suite.T(), err, models.ErrCurrencyCodeInvalid)
}

func (suite *TestSuiteStandard) TestSettingsNegativeMinimum() {
	settings, err := models.ActiveSettings()
	require.Nil(suite.T(), err)

	settings.MinimumDonationAmount = decimal.NewFromInt(-1)
	err = models.DB.Save(&settings).Error
	assert.ErrorIs(suite.T(), err, models.ErrMinimumDonationNegative)
}
