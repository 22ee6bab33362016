package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// UserRole determines which endpoints a user may call.
type UserRole string

const (
	RoleDonor UserRole = "donor"
	RoleAdmin UserRole = "admin"
)

var userRoles = []UserRole{RoleDonor, RoleAdmin}

// User represents a donor or administrator account.
//
// The APIToken is an opaque bearer token generated once at creation.
// It is returned to the caller exactly once, on registration.
type User struct {
	DefaultModel
	Email    string   `gorm:"uniqueIndex"`
	Name     string
	Role     UserRole `gorm:"default:donor"`
	APIToken string   `gorm:"uniqueIndex" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	_ = u.DefaultModel.BeforeCreate(tx)

	if u.APIToken == "" {
		token, err := newAPIToken()
		if err != nil {
			return err
		}
		u.APIToken = token
	}

	return nil
}

// BeforeSave normalizes the email so lookups are case insensitive.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)

	if u.Role == "" {
		u.Role = RoleDonor
	}

	return nil
}

func (u *User) AfterSave(_ *gorm.DB) error {
	if u.Email == "" {
		return ErrUserEmailMissing
	}

	if !slices.Contains(userRoles, u.Role) {
		return fmt.Errorf("%w: %s", ErrUserRoleInvalid, u.Role)
	}

	return nil
}

func newAPIToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// DonatedTotal returns the sum of all completed donations of the user.
func (u User) DonatedTotal() (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := DB.Table("donations").
		Where("donor_id = ?", u.ID).
		Where("status = ?", DonationCompleted).
		Where("deleted_at IS NULL").
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting donation total for user %s failed: %w", u.ID, err)
	}

	return sum.Decimal, nil
}

// DonationCount returns the number of donation events of the user.
func (u User) DonationCount() (int64, error) {
	var count int64

	err := DB.Model(&Donation{}).Where("donor_id = ?", u.ID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting donations for user %s failed: %w", u.ID, err)
	}

	return count, nil
}
