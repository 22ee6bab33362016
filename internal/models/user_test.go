package models_test

import (
	"github.com/givehub/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := suite.createTestUser(models.User{Email: "  Donor@Example.COM "})
	assert.Equal(suite.T(), "donor@example.com", user.Email)
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	suite.createTestUser(models.User{Email: "donor@example.com"})

	err := models.DB.Create(&models.User{Email: "donor@example.com"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrUserEmailNotUnique)
}

func (suite *TestSuiteStandard) TestUserEmailRequired() {
	err := models.DB.Create(&models.User{Name: "No email"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrUserEmailMissing)
}

func (suite *TestSuiteStandard) TestUserTokenGenerated() {
	first := suite.createTestUser(models.User{})
	second := suite.createTestUser(models.User{})

	assert.NotEmpty(suite.T(), first.APIToken)
	assert.NotEmpty(suite.T(), second.APIToken)
	assert.NotEqual(suite.T(), first.APIToken, second.APIToken)
}

func (suite *TestSuiteStandard) TestUserDefaultRole() {
	user := suite.createTestUser(models.User{})
	assert.Equal(suite.T(), models.RoleDonor, user.Role)
}

func (suite *TestSuiteStandard) TestUserInvalidRole() {
	err := models.DB.Create(&models.User{Email: "role@example.com", Role: "superuser"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrUserRoleInvalid)
}

func (suite *TestSuiteStandard) TestUserDonatedTotal() {
	donor := suite.createTestUser(models.User{})
	cause := suite.createTestCause(models.Cause{TargetAmount: decimal.NewFromInt(1000)})

	for _, amount := range []int64{10, 20} {
		_, err := models.Donate(donor.ID, cause.ID, decimal.NewFromInt(amount), models.PaymentMeta{})
		require.Nil(suite.T(), err)
	}

	total, err := donor.DonatedTotal()
	require.Nil(suite.T(), err)
	assert.True(suite.T(), total.Equal(decimal.NewFromInt(30)), "total is %s", total)

	count, err := donor.DonationCount()
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(2), count)
}
