package v1_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "github.com/givehub/backend/internal/controllers/v1"
	"github.com/givehub/backend/internal/models"
	"github.com/givehub/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) donate(donor models.User, body any, expectedStatus int) httptest.ResponseRecorder {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/donate", body, test.BearerToken(donor.APIToken))
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus)

	return r
}

func (suite *TestSuiteStandard) TestDonate() {
	admin := suite.createTestAdmin()
	donor := suite.createTestDonor()
	cause := suite.createTestCause(admin, v1.CauseEditable{Name: "School books", TargetAmount: decimal.NewFromInt(1000)})

	r := suite.donate(donor, map[string]any{
		"causeId": cause.Data.ID.String(),
		"amount":  "100",
	}, http.StatusCreated)

	var response v1.DonateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "School books", response.Donation.Cause)
	assert.True(suite.T(), response.Donation.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(suite.T(), models.PaymentCard, response.Donation.PaymentMethod)
	assert.NotEmpty(suite.T(), response.Donation.PaymentID)
	assert.True(suite.T(), response.CauseStatus.CurrentAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(suite.T(), 10, response.CauseStatus.PercentageAchieved)
	assert.Equal(suite.T(), models.StatusActive, response.CauseStatus.Status)
}

func (suite *TestSuiteStandard) TestDonateCompletesCause() {
	admin := suite.createTestAdmin()
	donor := suite.createTestDonor()
	cause := suite.createTestCause(admin, v1.CauseEditable{TargetAmount: decimal.NewFromInt(100)})

	r := suite.donate(donor, map[string]any{
		"causeId": cause.Data.ID.String(),
		"amount":  "100",
	}, http.StatusCreated)

	var response v1.DonateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), models.StatusCompleted, response.CauseStatus.Status)
	assert.Equal(suite.T(), 100, response.CauseStatus.PercentageAchieved)
}

func (suite *TestSuiteStandard) TestDonateUnauthorized() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/donate", map[string]any{
		"causeId": uuid.New().String(),
		"amount":  "100",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestDonateErrors() {
	admin := suite.createTestAdmin()
	donor := suite.createTestDonor()

	active := suite.createTestCause(admin, v1.CauseEditable{Name: "Active cause"})
	paused := suite.createTestCause(admin, v1.CauseEditable{Name: "Paused cause", Status: models.StatusPaused})

	suite.enableMinimumDonation(decimal.NewFromInt(5))

	tests := []struct {
		name     string
		body     any
		status   int
		contains string
	}{
		{"Empty body", "", http.StatusBadRequest, "request body must not be empty"},
		{"Broken JSON", `{ "amount": `, http.StatusBadRequest, "invalid or un-parseable data"},
		{"Missing cause", map[string]any{"amount": "100"}, http.StatusBadRequest, ""},
		{"Unknown cause", map[string]any{"causeId": uuid.New().String(), "amount": "100"}, http.StatusNotFound, "there is no cause"},
		{"Zero amount", map[string]any{"causeId": active.Data.ID.String(), "amount": "0"}, http.StatusBadRequest, models.ErrAmountNotPositive.Error()},
		{"Negative amount", map[string]any{"causeId": active.Data.ID.String(), "amount": "-10"}, http.StatusBadRequest, models.ErrAmountNotPositive.Error()},
		{"Below minimum", map[string]any{"causeId": active.Data.ID.String(), "amount": "4.99"}, http.StatusBadRequest, models.ErrBelowMinimum.Error()},
		{"Paused cause", map[string]any{"causeId": paused.Data.ID.String(), "amount": "100"}, http.StatusBadRequest, "Paused cause"},
		{"Invalid payment method", map[string]any{"causeId": active.Data.ID.String(), "amount": "100", "paymentMethod": "seashells"}, http.StatusBadRequest, models.ErrPaymentMethodInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/donate", tt.body, test.BearerToken(donor.APIToken))
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.contains != "" {
				var response httpErrorResponse
				test.DecodeResponse(t, &r, &response)
				assert.Contains(t, response.Error, tt.contains)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestDonateMulti() {
	admin := suite.createTestAdmin()
	donor := suite.createTestDonor()

	books := suite.createTestCause(admin, v1.CauseEditable{Name: "School books"})
	clinic := suite.createTestCause(admin, v1.CauseEditable{Name: "Village clinic"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/donate/multi", map[string]any{
		"totalAmount":   "150",
		"paymentMethod": "paypal",
		"causes": []map[string]any{
			{"causeId": books.Data.ID.String(), "amount": "100"},
			{"causeId": clinic.Data.ID.String(), "amount": "50"},
		},
	}, test.BearerToken(donor.APIToken))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.SplitDonateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.TotalAmount.Equal(decimal.NewFromInt(150)))
	assert.Equal(suite.T(), 2, response.CausesCount)
	assert.Equal(suite.T(), models.PaymentPaypal, response.PaymentMethod)
	assert.NotEmpty(suite.T(), response.PaymentID)

	suite.Require().Len(response.Donations, 2)
	assert.Equal(suite.T(), "School books", response.Donations[0].Cause)
	assert.True(suite.T(), response.Donations[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(suite.T(), "Village clinic", response.Donations[1].Cause)
	assert.True(suite.T(), response.Donations[1].Amount.Equal(decimal.NewFromInt(50)))
}

func (suite *TestSuiteStandard) TestDonateMultiErrors() {
	admin := suite.createTestAdmin()
	donor := suite.createTestDonor()

	active := suite.createTestCause(admin, v1.CauseEditable{Name: "Active cause"})
	paused := suite.createTestCause(admin, v1.CauseEditable{Name: "Paused cause", Status: models.StatusPaused})

	tests := []struct {
		name     string
		body     any
		status   int
		contains string
	}{
		{
			"No allocations",
			map[string]any{"totalAmount": "100", "causes": []map[string]any{}},
			http.StatusBadRequest,
			models.ErrNoAllocations.Error(),
		},
		{
			"Allocation mismatch",
			map[string]any{"totalAmount": "150", "causes": []map[string]any{
				{"causeId": active.Data.ID.String(), "amount": "100"},
			}},
			http.StatusBadRequest,
			models.ErrAllocationMismatch.Error(),
		},
		{
			"Unknown cause",
			map[string]any{"totalAmount": "100", "causes": []map[string]any{
				{"causeId": uuid.New().String(), "amount": "100"},
			}},
			http.StatusNotFound,
			"there is no",
		},
		{
			"Paused cause in split",
			map[string]any{"totalAmount": "150", "causes": []map[string]any{
				{"causeId": active.Data.ID.String(), "amount": "100"},
				{"causeId": paused.Data.ID.String(), "amount": "50"},
			}},
			http.StatusBadRequest,
			"Paused cause",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/donate/multi", tt.body, test.BearerToken(donor.APIToken))
			test.AssertHTTPStatus(t, &r, tt.status)

			var response httpErrorResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, response.Error, tt.contains)
		})
	}

	// Nothing was written for any of the failed requests
	var count int64
	suite.Require().NoError(models.DB.Model(&models.Donation{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestDonateMultiTolerance() {
	admin := suite.createTestAdmin()
	donor := suite.createTestDonor()

	books := suite.createTestCause(admin, v1.CauseEditable{Name: "School books"})
	clinic := suite.createTestCause(admin, v1.CauseEditable{Name: "Village clinic"})

	// 49.995 + 100 = 149.995, within 0.01 of 150
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/donate/multi", map[string]any{
		"totalAmount": "150",
		"causes": []map[string]any{
			{"causeId": books.Data.ID.String(), "amount": "100"},
			{"causeId": clinic.Data.ID.String(), "amount": "49.995"},
		},
	}, test.BearerToken(donor.APIToken))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
}

func (suite *TestSuiteStandard) TestDonationsList() {
	admin := suite.createTestAdmin()
	donor := suite.createTestDonor()
	other := suite.createTestDonor()

	books := suite.createTestCause(admin, v1.CauseEditable{Name: "School books"})
	clinic := suite.createTestCause(admin, v1.CauseEditable{Name: "Village clinic"})

	_, err := models.Donate(donor.ID, books.Data.ID, decimal.NewFromInt(100), models.PaymentMeta{})
	suite.Require().NoError(err)
	_, err = models.Donate(donor.ID, clinic.Data.ID, decimal.NewFromInt(30), models.PaymentMeta{Method: models.PaymentPaypal})
	suite.Require().NoError(err)
	_, err = models.Donate(other.ID, books.Data.ID, decimal.NewFromInt(500), models.PaymentMeta{})
	suite.Require().NoError(err)

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All own donations", "", 2},
		{"Filter by cause", fmt.Sprintf("cause=%s", books.Data.ID), 1},
		{"Filter by method", "method=paypal", 1},
		{"Limit", "limit=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/donations?%s", tt.query), "", test.BearerToken(donor.APIToken))
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.DonationListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)

			// The other donor's entries are never visible
			for _, entry := range response.Data {
				assert.False(t, entry.Amount.Equal(decimal.NewFromInt(500)))
			}
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/donations", "", test.BearerToken(donor.APIToken))
	var response v1.DonationListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Total.Equal(decimal.NewFromInt(130)), "Donated total is %s, should be 130", response.Total)
}

func (suite *TestSuiteStandard) TestDonationsListUnauthorized() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/donations", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}
