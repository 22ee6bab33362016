package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// SettingsKey is the primary key of the single settings row.
const SettingsKey = "platform"

// Settings is the platform configuration singleton.
//
// The donation unit of work reads it to enforce the minimum donation
// floor; the currency code drives display formatting.
type Settings struct {
	Key       string `gorm:"primaryKey"`
	Timestamps

	MinimumDonationEnabled bool
	MinimumDonationAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CurrencyCode           string          `gorm:"default:USD"` // ISO 4217
}

func (s *Settings) BeforeSave(_ *gorm.DB) error {
	s.Key = SettingsKey
	s.CurrencyCode = strings.ToUpper(strings.TrimSpace(s.CurrencyCode))

	if s.CurrencyCode == "" {
		s.CurrencyCode = "USD"
	}

	return nil
}

func (s *Settings) AfterSave(_ *gorm.DB) error {
	if s.MinimumDonationAmount.IsNegative() {
		return ErrMinimumDonationNegative
	}

	if _, err := currency.ParseISO(s.CurrencyCode); err != nil {
		return fmt.Errorf("%w: %s", ErrCurrencyCodeInvalid, s.CurrencyCode)
	}

	return nil
}

// ActiveSettings returns the platform settings, creating the defaults
// on first use.
func ActiveSettings() (Settings, error) {
	settings := Settings{Key: SettingsKey, CurrencyCode: "USD"}
	err := DB.FirstOrCreate(&settings, &Settings{Key: SettingsKey}).Error
	if err != nil {
		return Settings{}, err
	}

	return settings, nil
}
