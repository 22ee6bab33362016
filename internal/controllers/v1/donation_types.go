package v1

import (
	"time"

	"github.com/givehub/backend/internal/models"
	ez_uuid "github.com/givehub/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type DonationRequest struct {
	CauseID       ez_uuid.UUID         `json:"causeId" binding:"required" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // The cause to donate to
	Amount        decimal.Decimal      `json:"amount" example:"25.00"`                                                    // The donation amount
	PaymentID     string               `json:"paymentId" example:"pay_6bb397fc"`                                          // Optional payment reference. Generated when empty.
	PaymentMethod models.PaymentMethod `json:"paymentMethod" example:"card" default:"card"`                               // How the donation was paid
}

type SplitDonationRequest struct {
	TotalAmount   decimal.Decimal      `json:"totalAmount" example:"150.00"`                // The total amount donated
	Causes        []AllocationRequest  `json:"causes"`                                      // How the total is split across causes
	PaymentID     string               `json:"paymentId" example:"pay_6bb397fc"`            // Optional payment reference. Generated when empty.
	PaymentMethod models.PaymentMethod `json:"paymentMethod" example:"card" default:"card"` // How the donation was paid
}

type AllocationRequest struct {
	CauseID ez_uuid.UUID    `json:"causeId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // The cause this share goes to
	Amount  decimal.Decimal `json:"amount" example:"100.00"`                                // This cause's share of the total
}

// CauseStatusView is the post-donation view of the cause aggregates.
type CauseStatusView struct {
	CurrentAmount      decimal.Decimal    `json:"currentAmount" example:"1000"`
	TargetAmount       decimal.Decimal    `json:"targetAmount" example:"1000"`
	PercentageAchieved int                `json:"percentageAchieved" example:"100"`
	Status             models.CauseStatus `json:"status" example:"completed"`
}

func newCauseStatusView(cause models.Cause) CauseStatusView {
	return CauseStatusView{
		CurrentAmount:      cause.CurrentAmount,
		TargetAmount:       cause.TargetAmount,
		PercentageAchieved: cause.PercentageAchieved(),
		Status:             cause.Status,
	}
}

// DonationView is the ledger entry as returned to the donor.
type DonationView struct {
	Amount          decimal.Decimal      `json:"amount" example:"100"`
	Cause           string               `json:"cause" example:"School books"`
	CauseID         ez_uuid.UUID         `json:"causeId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"`
	PaymentID       string               `json:"paymentId" example:"pay_6bb397fc"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod" example:"card"`
	Date            time.Time            `json:"date" example:"2026-08-29T10:32:00Z"`
	FormattedAmount string               `json:"formattedAmount" example:"$100.00"`
}

func newDonationView(donation models.Donation, currencyCode string) DonationView {
	return DonationView{
		Amount:          donation.Amount,
		Cause:           donation.CauseName,
		CauseID:         ez_uuid.UUID{UUID: donation.CauseID},
		PaymentID:       donation.PaymentID,
		PaymentMethod:   donation.PaymentMethod,
		Date:            donation.Date,
		FormattedAmount: formatAmount(donation.Amount, currencyCode),
	}
}

type DonateResponse struct {
	Donation    DonationView    `json:"donation"`
	CauseStatus CauseStatusView `json:"causeStatus"`
}

type SplitDonationPart struct {
	Cause       string          `json:"cause" example:"School books"`
	Amount      decimal.Decimal `json:"amount" example:"100"`
	CauseStatus CauseStatusView `json:"causeStatus"`
}

type SplitDonateResponse struct {
	TotalAmount   decimal.Decimal      `json:"totalAmount" example:"150"`
	PaymentID     string               `json:"paymentId" example:"pay_6bb397fc"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" example:"card"`
	CausesCount   int                  `json:"causesCount" example:"2"`
	Donations     []SplitDonationPart  `json:"donations"`
	Date          time.Time            `json:"date" example:"2026-08-29T10:32:00Z"`
}

// DonationListEntry is one entry of a donor's history.
type DonationListEntry struct {
	models.DefaultModel
	DonationView
	Status models.DonationStatus `json:"status" example:"completed"`
	Split  bool                  `json:"split" example:"false"`
}

type DonationListResponse struct {
	Data       []DonationListEntry `json:"data"`                                                          // The donor's donation history, newest first
	Total      decimal.Decimal     `json:"donatedTotal" example:"130"`                                    // Sum of all completed donations of the donor
	Error      *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination         `json:"pagination"`                                                    // Pagination information
}

type DonationQueryFilter struct {
	CauseID   ez_uuid.UUID          `form:"cause"`                         // Filter by cause
	Status    models.DonationStatus `form:"status"`                        // Filter by entry status
	Method    models.PaymentMethod  `form:"method"`                        // Filter by payment method
	FromDate  time.Time             `form:"fromDate" filterField:"false"`  // Donations at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
	UntilDate time.Time             `form:"untilDate" filterField:"false"` // Donations before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
	Offset    uint                  `form:"offset" filterField:"false"`    // The offset of the first Donation returned. Defaults to 0.
	Limit     int                   `form:"limit" filterField:"false"`     // Maximum number of Donations to return. Defaults to 50.
}
