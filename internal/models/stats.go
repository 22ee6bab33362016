package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CategoryStats is the sum raised for a single cause category.
type CategoryStats struct {
	Category CauseCategory   `json:"category"`
	Raised   decimal.Decimal `json:"raised"`
}

// PlatformStats aggregates the state of the whole platform.
type PlatformStats struct {
	TotalRaised   decimal.Decimal `json:"totalRaised"`
	DonationCount int64           `json:"donationCount"`
	DonorCount    int64           `json:"donorCount"`
	Categories    []CategoryStats `json:"categories"`
	CausesActive  int64           `json:"causesActive"`
	CausesPaused  int64           `json:"causesPaused"`
	CausesDone    int64           `json:"causesDone"`
}

// Stats computes the platform statistics from the donation ledger and
// the cause table.
func Stats() (PlatformStats, error) {
	var stats PlatformStats
	var raised decimal.NullDecimal

	err := DB.Table("donations").
		Where("donations.deleted_at IS NULL").
		Select("SUM(amount)").
		Row().
		Scan(&raised)
	if err != nil {
		return PlatformStats{}, fmt.Errorf("summing the donation ledger failed: %w", err)
	}
	stats.TotalRaised = raised.Decimal

	err = DB.Model(&Donation{}).Count(&stats.DonationCount).Error
	if err != nil {
		return PlatformStats{}, err
	}

	err = DB.Model(&Donation{}).Distinct("donor_id").Count(&stats.DonorCount).Error
	if err != nil {
		return PlatformStats{}, err
	}

	err = DB.Table("causes").
		Where("causes.deleted_at IS NULL").
		Select("category, SUM(current_amount) AS raised").
		Group("category").
		Order("category ASC").
		Scan(&stats.Categories).
		Error
	if err != nil {
		return PlatformStats{}, err
	}

	for status, target := range map[CauseStatus]*int64{
		StatusActive:    &stats.CausesActive,
		StatusPaused:    &stats.CausesPaused,
		StatusCompleted: &stats.CausesDone,
	} {
		err = DB.Model(&Cause{}).Where("status = ?", status).Count(target).Error
		if err != nil {
			return PlatformStats{}, err
		}
	}

	return stats, nil
}
