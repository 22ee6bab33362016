package models_test

import (
	"github.com/givehub/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestStatsEmpty() {
	stats, err := models.Stats()
	suite.Require().NoError(err)

	suite.Assert().True(stats.TotalRaised.IsZero(), "Total raised is %s, should be 0", stats.TotalRaised)
	suite.Assert().Zero(stats.DonationCount)
	suite.Assert().Zero(stats.DonorCount)
	suite.Assert().Empty(stats.Categories)
}

func (suite *TestSuiteStandard) TestStats() {
	donor := suite.createTestUser(models.User{})
	otherDonor := suite.createTestUser(models.User{})

	school := suite.createTestCause(models.Cause{
		Name:         "School books",
		Category:     models.CategoryEducation,
		TargetAmount: decimal.NewFromInt(1000),
	})
	suite.createTestCause(models.Cause{
		Name:     "Village clinic",
		Category: models.CategoryHealthcare,
		Status:   models.StatusPaused,
	})

	_, err := models.Donate(donor.ID, school.ID, decimal.NewFromInt(100), models.PaymentMeta{})
	suite.Require().NoError(err)

	_, err = models.Donate(donor.ID, school.ID, decimal.NewFromInt(50), models.PaymentMeta{})
	suite.Require().NoError(err)

	_, err = models.Donate(otherDonor.ID, school.ID, decimal.NewFromInt(25), models.PaymentMeta{})
	suite.Require().NoError(err)

	stats, err := models.Stats()
	suite.Require().NoError(err)

	suite.Assert().True(stats.TotalRaised.Equal(decimal.NewFromInt(175)), "Total raised is %s, should be 175", stats.TotalRaised)
	suite.Assert().Equal(int64(3), stats.DonationCount)
	suite.Assert().Equal(int64(2), stats.DonorCount)
	suite.Assert().Equal(int64(1), stats.CausesActive)
	suite.Assert().Equal(int64(1), stats.CausesPaused)
	suite.Assert().Equal(int64(0), stats.CausesDone)

	suite.Require().Len(stats.Categories, 2)
	for _, category := range stats.Categories {
		switch category.Category {
		case models.CategoryEducation:
			suite.Assert().True(category.Raised.Equal(decimal.NewFromInt(175)), "Education raised %s, should be 175", category.Raised)
		case models.CategoryHealthcare:
			suite.Assert().True(category.Raised.IsZero(), "Healthcare raised %s, should be 0", category.Raised)
		default:
			suite.Assert().Fail("Unexpected category in stats", "Category: %s", category.Category)
		}
	}
}

func (suite *TestSuiteStandard) TestStatsDBError() {
	suite.CloseDB()

	_, err := models.Stats()
	suite.Assert().Error(err)
}
