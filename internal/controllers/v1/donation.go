package v1

import (
	"net/http"
	"time"

	"github.com/givehub/backend/internal/httputil"
	"github.com/givehub/backend/internal/identity"
	"github.com/givehub/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterDonationRoutes registers the donation routes with
// the RouterGroup that is passed. All of them require authentication.
func RegisterDonationRoutes(r *gin.RouterGroup) {
	r.Use(identity.Middleware())

	{
		r.OPTIONS("/donate", OptionsDonate)
		r.POST("/donate", CreateDonation)
	}

	{
		r.OPTIONS("/donate/multi", OptionsDonateMulti)
		r.POST("/donate/multi", CreateSplitDonation)
	}

	{
		r.OPTIONS("/donations", OptionsDonations)
		r.GET("/donations", GetDonations)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Donations
// @Success		204
// @Router			/v1/donate [options]
func OptionsDonate(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Donations
// @Success		204
// @Router			/v1/donate/multi [options]
func OptionsDonateMulti(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Donations
// @Success		204
// @Router			/v1/donations [options]
func OptionsDonations(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Donate to a cause
// @Description	Records a donation to a single cause. The cause aggregates and the donor's ledger entry are written atomically.
// @Tags			Donations
// @Accept			json
// @Produce		json
// @Success		201			{object}	DonateResponse
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			donation	body		DonationRequest	true	"Donation"
// @Router			/v1/donate [post]
func CreateDonation(c *gin.Context) {
	var request DonationRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	donor, _ := identity.CurrentUser(c)

	result, err := models.Donate(donor.ID, request.CauseID.UUID, request.Amount, models.PaymentMeta{
		PaymentID: request.PaymentID,
		Method:    request.PaymentMethod,
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, DonateResponse{
		Donation:    newDonationView(result.Donation, currencyCode()),
		CauseStatus: newCauseStatusView(result.Cause),
	})
}

// @Summary		Donate to multiple causes
// @Description	Records one donation split across multiple causes. All cause aggregates and all ledger entries are written atomically and share one payment ID.
// @Tags			Donations
// @Accept			json
// @Produce		json
// @Success		201			{object}	SplitDonateResponse
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			donation	body		SplitDonationRequest	true	"Split donation"
// @Router			/v1/donate/multi [post]
func CreateSplitDonation(c *gin.Context) {
	var request SplitDonationRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	donor, _ := identity.CurrentUser(c)

	allocations := make([]models.Allocation, 0, len(request.Causes))
	for _, allocation := range request.Causes {
		allocations = append(allocations, models.Allocation{
			CauseID: allocation.CauseID.UUID,
			Amount:  allocation.Amount,
		})
	}

	results, err := models.DonateSplit(donor.ID, request.TotalAmount, allocations, models.PaymentMeta{
		PaymentID: request.PaymentID,
		Method:    request.PaymentMethod,
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	parts := make([]SplitDonationPart, 0, len(results))
	for _, result := range results {
		parts = append(parts, SplitDonationPart{
			Cause:       result.Cause.Name,
			Amount:      result.Donation.Amount,
			CauseStatus: newCauseStatusView(result.Cause),
		})
	}

	c.JSON(http.StatusCreated, SplitDonateResponse{
		TotalAmount:   request.TotalAmount,
		PaymentID:     results[0].Donation.PaymentID,
		PaymentMethod: results[0].Donation.PaymentMethod,
		CausesCount:   len(parts),
		Donations:     parts,
		Date:          results[0].Donation.Date,
	})
}

// @Summary		Get donations
// @Description	Returns the authenticated donor's donation history, newest first
// @Tags			Donations
// @Produce		json
// @Success		200	{object}	DonationListResponse
// @Failure		400	{object}	DonationListResponse
// @Failure		401	{object}	httpError
// @Router			/v1/donations [get]
// @Param			cause		query	string	false	"Filter by cause ID"
// @Param			status		query	string	false	"Filter by entry status"
// @Param			method		query	string	false	"Filter by payment method"
// @Param			fromDate	query	string	false	"Donations at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			untilDate	query	string	false	"Donations before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			offset		query	uint	false	"The offset of the first Donation returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Donations to return. Defaults to 50."
func GetDonations(c *gin.Context) {
	var filter DonationQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DonationListResponse{
			Error: &s,
		})
		return
	}

	donor, _ := identity.CurrentUser(c)

	var q *gorm.DB
	q = models.DB.Order("datetime(donations.date) DESC, datetime(donations.created_at) DESC").
		Where(&models.Donation{DonorID: donor.ID})

	if filter.CauseID.UUID != uuid.Nil {
		q = q.Where(&models.Donation{CauseID: filter.CauseID.UUID})
	}

	if filter.Status != "" {
		q = q.Where(&models.Donation{Status: filter.Status})
	}

	if filter.Method != "" {
		q = q.Where(&models.Donation{PaymentMethod: filter.Method})
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("donations.date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("donations.date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 donations and set the limit
	limit := 50
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var donations []models.Donation
	err := q.Find(&donations).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DonationListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DonationListResponse{
			Error: &e,
		})
		return
	}

	total, err := donor.DonatedTotal()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DonationListResponse{
			Error: &e,
		})
		return
	}

	code := currencyCode()
	data := make([]DonationListEntry, 0)
	for _, donation := range donations {
		data = append(data, DonationListEntry{
			DefaultModel: donation.DefaultModel,
			DonationView: newDonationView(donation, code),
			Status:       donation.Status,
			Split:        donation.Split,
		})
	}

	c.JSON(http.StatusOK, DonationListResponse{
		Data:  data,
		Total: total,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}
