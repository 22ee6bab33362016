package v1

import (
	"github.com/givehub/backend/internal/models"
	"github.com/shopspring/decimal"
)

// CategoryStats is the sum raised within one cause category.
type CategoryStats struct {
	Category  models.CauseCategory `json:"category" example:"education"`
	Raised    decimal.Decimal      `json:"raised" example:"175"`
	Formatted string               `json:"formatted" example:"$175.00"` // Raised formatted in the platform currency
}

// Stats is the platform wide statistics projection.
type Stats struct {
	TotalRaised          decimal.Decimal `json:"totalRaised" example:"1750"`
	FormattedTotalRaised string          `json:"formattedTotalRaised" example:"$1,750.00"` // TotalRaised formatted in the platform currency
	DonationCount        int64           `json:"donationCount" example:"42"`
	DonorCount           int64           `json:"donorCount" example:"23"` // Unique donors that donated at least once
	Categories           []CategoryStats `json:"categories"`
	CausesActive         int64           `json:"causesActive" example:"7"`
	CausesPaused         int64           `json:"causesPaused" example:"1"`
	CausesCompleted      int64           `json:"causesCompleted" example:"3"`
}

func newStats(model models.PlatformStats) Stats {
	code := currencyCode()

	categories := make([]CategoryStats, 0, len(model.Categories))
	for _, category := range model.Categories {
		categories = append(categories, CategoryStats{
			Category:  category.Category,
			Raised:    category.Raised,
			Formatted: formatAmount(category.Raised, code),
		})
	}

	return Stats{
		TotalRaised:          model.TotalRaised,
		FormattedTotalRaised: formatAmount(model.TotalRaised, code),
		DonationCount:        model.DonationCount,
		DonorCount:           model.DonorCount,
		Categories:           categories,
		CausesActive:         model.CausesActive,
		CausesPaused:         model.CausesPaused,
		CausesCompleted:      model.CausesDone,
	}
}

type StatsResponse struct {
	Error *string `json:"error" example:"there was an error processing your request, please contact your server administrator"` // The error, if any occurred
	Data  *Stats  `json:"data"`                                                                                                 // The statistics data
}
