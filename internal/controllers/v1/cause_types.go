package v1

import (
	"time"

	"github.com/givehub/backend/internal/models"
	"github.com/shopspring/decimal"
)

type CauseEditable struct {
	Name     string               `json:"name" example:"Clean water"`                    // Name of the cause, unique across the platform
	Note     string               `json:"note" example:"Wells in rural areas"`           // A longer description
	Category models.CauseCategory `json:"category" example:"healthcare" default:"other"` // Category of the cause

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	TargetAmount decimal.Decimal `json:"targetAmount" example:"5000" minimum:"0"` // The fundraising target

	Status  models.CauseStatus `json:"status" example:"active" default:"active"` // Lifecycle status
	EndDate *time.Time         `json:"endDate" example:"2027-06-30T00:00:00Z"`   // Optional date after which donations are rejected
}

// model returns the database resource for the API representation of the editable fields
func (editable CauseEditable) model() models.Cause {
	return models.Cause{
		Name:         editable.Name,
		Note:         editable.Note,
		Category:     editable.Category,
		TargetAmount: editable.TargetAmount,
		Status:       editable.Status,
		EndDate:      editable.EndDate,
	}
}

// Cause is the API representation of a cause.
type Cause struct {
	models.DefaultModel
	CauseEditable
	CurrentAmount      decimal.Decimal `json:"currentAmount" example:"1250.50"` // Amount raised so far
	DonationEventCount uint            `json:"donationEventCount" example:"17"` // Number of donation events. A donor giving twice counts twice.
	PercentageAchieved int             `json:"percentageAchieved" example:"25"` // Progress towards the target in whole percent
	FormattedTarget    string          `json:"formattedTargetAmount" example:"$5,000.00"`
	FormattedCurrent   string          `json:"formattedCurrentAmount" example:"$1,250.50"`
}

func newCause(model models.Cause, currencyCode string) Cause {
	return Cause{
		DefaultModel: model.DefaultModel,
		CauseEditable: CauseEditable{
			Name:         model.Name,
			Note:         model.Note,
			Category:     model.Category,
			TargetAmount: model.TargetAmount,
			Status:       model.Status,
			EndDate:      model.EndDate,
		},
		CurrentAmount:      model.CurrentAmount,
		DonationEventCount: model.DonationEventCount,
		PercentageAchieved: model.PercentageAchieved(),
		FormattedTarget:    formatAmount(model.TargetAmount, currencyCode),
		FormattedCurrent:   formatAmount(model.CurrentAmount, currencyCode),
	}
}

type CauseResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Cause  `json:"data"`                                                          // The Cause data
}

type CauseListResponse struct {
	Data       []Cause     `json:"data"`                                                          // List of causes
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CauseQueryFilter struct {
	Name             string               `form:"name" filterField:"false"`             // Glob pattern for the cause name, e.g. "Edu*"
	Category         models.CauseCategory `form:"category"`                             // Filter by category
	Status           models.CauseStatus   `form:"status"`                               // Filter by status
	AcceptsDonations bool                 `form:"acceptsDonations" filterField:"false"` // Only causes currently accepting donations
	Offset           uint                 `form:"offset" filterField:"false"`           // The offset of the first Cause returned. Defaults to 0.
	Limit            int                  `form:"limit" filterField:"false"`            // Maximum number of Causes to return. Defaults to 50.
}
