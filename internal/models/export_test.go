package models

import "gorm.io/gorm"

// SetDonationCommitHook installs the commit hook for the donation unit
// of work. Only available in test builds.
func SetDonationCommitHook(h func(tx *gorm.DB) error) {
	donationCommitHook = h
}
