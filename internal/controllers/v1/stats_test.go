package v1_test

import (
	"net/http"

	v1 "github.com/givehub/backend/internal/controllers/v1"
	"github.com/givehub/backend/internal/models"
	"github.com/givehub/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestStatsEmpty() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.StatsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.TotalRaised.IsZero())
	assert.Zero(suite.T(), response.Data.DonationCount)
}

func (suite *TestSuiteStandard) TestStats() {
	admin := suite.createTestAdmin()
	donor := suite.createTestDonor()

	books := suite.createTestCause(admin, v1.CauseEditable{Name: "School books", Category: models.CategoryEducation})
	_ = suite.createTestCause(admin, v1.CauseEditable{Name: "Paused", Status: models.StatusPaused})

	_, err := models.Donate(donor.ID, books.Data.ID, decimal.NewFromInt(100), models.PaymentMeta{})
	suite.Require().NoError(err)
	_, err = models.Donate(donor.ID, books.Data.ID, decimal.NewFromInt(75), models.PaymentMeta{})
	suite.Require().NoError(err)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.StatsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.TotalRaised.Equal(decimal.NewFromInt(175)), "Total raised is %s, should be 175", response.Data.TotalRaised)
	assert.Equal(suite.T(), int64(2), response.Data.DonationCount)
	assert.Equal(suite.T(), int64(1), response.Data.DonorCount)
	assert.Equal(suite.T(), int64(1), response.Data.CausesActive)
	assert.Equal(suite.T(), int64(1), response.Data.CausesPaused)
	assert.Contains(suite.T(), response.Data.FormattedTotalRaised, "175")
}
