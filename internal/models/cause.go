package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// CauseCategory classifies a cause for filtering and reporting.
type CauseCategory string

const (
	CategoryEducation      CauseCategory = "education"
	CategoryHealthcare     CauseCategory = "healthcare"
	CategoryEnvironment    CauseCategory = "environment"
	CategoryDisasterRelief CauseCategory = "disaster-relief"
	CategoryPoverty        CauseCategory = "poverty"
	CategoryAnimalWelfare  CauseCategory = "animal-welfare"
	CategoryOther          CauseCategory = "other"
)

// CauseStatus is the lifecycle state of a cause.
//
// The only automatic transition is active to completed, performed by
// the donation unit of work when the target amount is reached. All
// other transitions are administrative.
type CauseStatus string

const (
	StatusActive    CauseStatus = "active"
	StatusPaused    CauseStatus = "paused"
	StatusCompleted CauseStatus = "completed"
	StatusCancelled CauseStatus = "cancelled"
)

var causeCategories = []CauseCategory{
	CategoryEducation,
	CategoryHealthcare,
	CategoryEnvironment,
	CategoryDisasterRelief,
	CategoryPoverty,
	CategoryAnimalWelfare,
	CategoryOther,
}

var causeStatuses = []CauseStatus{StatusActive, StatusPaused, StatusCompleted, StatusCancelled}

// Cause represents a fundraising target.
//
// CurrentAmount and DonationEventCount are denormalized aggregates.
// They are only ever written inside the donation unit of work, see
// donation.go.
type Cause struct {
	DefaultModel
	Name               string          `gorm:"uniqueIndex"`
	Note               string
	Category           CauseCategory   `gorm:"default:other"`
	TargetAmount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CurrentAmount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	DonationEventCount uint            // Counts donation events, not unique donors
	Status             CauseStatus     `gorm:"default:active"`
	EndDate            *time.Time
	CreatedBy          User            `json:"-"`
	CreatedByID        uuid.UUID
}

func (c *Cause) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Cause)
	return c.checkIntegrity(tx, *toSave)
}

func (c *Cause) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("CreatedByID") {
		toSave := tx.Statement.Dest.(Cause)
		return c.checkIntegrity(tx, toSave)
	}

	return nil
}

func (c *Cause) checkIntegrity(tx *gorm.DB, toSave Cause) error {
	return tx.First(&User{}, toSave.CreatedByID).Error
}

// BeforeSave trims whitespace and sets defaults for zero values.
func (c *Cause) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	if c.Category == "" {
		c.Category = CategoryOther
	}

	if c.Status == "" {
		c.Status = StatusActive
	}

	return nil
}

func (c *Cause) AfterSave(_ *gorm.DB) error {
	if c.TargetAmount.IsNegative() {
		return ErrCauseTargetNegative
	}

	if !slices.Contains(causeCategories, c.Category) {
		return fmt.Errorf("%w: %s", ErrCauseCategoryInvalid, c.Category)
	}

	if !slices.Contains(causeStatuses, c.Status) {
		return fmt.Errorf("%w: %s", ErrCauseStatusInvalid, c.Status)
	}

	return nil
}

// BeforeDelete rejects deletion of causes that have received funds.
// Once money is recorded against a cause, it only leaves the platform
// via its status.
func (c *Cause) BeforeDelete(tx *gorm.DB) error {
	var cause Cause
	err := tx.First(&cause, c.ID).Error
	if err != nil {
		return err
	}

	if cause.CurrentAmount.IsPositive() {
		return ErrCauseHasFunds
	}

	return nil
}

// PercentageAchieved returns the progress towards the target amount in
// whole percent. It is 0 for causes without a target.
func (c Cause) PercentageAchieved() int {
	if c.TargetAmount.IsZero() {
		return 0
	}

	return int(c.CurrentAmount.Div(c.TargetAmount).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// AcceptsDonationsAt checks whether the cause can receive a donation
// at the given time. The returned error names the cause so that
// callers can fix their request.
func (c Cause) AcceptsDonationsAt(t time.Time) error {
	if c.Status != StatusActive {
		return fmt.Errorf("%w: %s", ErrCauseNotAcceptingDonations, c.Name)
	}

	if c.EndDate != nil && c.EndDate.Before(t) {
		return fmt.Errorf("%w: %s", ErrCauseEnded, c.Name)
	}

	return nil
}
