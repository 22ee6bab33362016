package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// PaymentMethod is how a donation was paid.
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank-transfer"
	PaymentPaypal       PaymentMethod = "paypal"
	PaymentOther        PaymentMethod = "other"
)

var paymentMethods = []PaymentMethod{PaymentCard, PaymentBankTransfer, PaymentPaypal, PaymentOther}

// DonationStatus is the state of a single ledger entry.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
)

// Donation is one entry in the donation ledger.
//
// Entries are append-only. The cause name is denormalized so that a
// donor's history stays readable even after a cause is renamed.
type Donation struct {
	DefaultModel
	Donor         User            `json:"-"`
	DonorID       uuid.UUID
	Cause         Cause           `json:"-"`
	CauseID       uuid.UUID
	CauseName     string
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaymentID     string
	PaymentMethod PaymentMethod   `gorm:"default:card"`
	Status        DonationStatus  `gorm:"default:completed"`
	Date          time.Time
	Split         bool            // Part of a donation split across multiple causes
}

// BeforeSave sets the timezone for the Date to UTC.
func (d *Donation) BeforeSave(_ *gorm.DB) error {
	if d.Date.IsZero() {
		d.Date = time.Now().In(time.UTC)
	} else {
		d.Date = d.Date.In(time.UTC)
	}

	d.PaymentID = strings.TrimSpace(d.PaymentID)

	if d.PaymentMethod == "" {
		d.PaymentMethod = PaymentCard
	}

	if d.Status == "" {
		d.Status = DonationCompleted
	}

	return nil
}

func (d *Donation) AfterFind(tx *gorm.DB) error {
	_ = d.DefaultModel.AfterFind(tx)

	d.Date = d.Date.In(time.UTC)
	return nil
}

// The ledger is append-only.
func (d *Donation) BeforeUpdate(_ *gorm.DB) error {
	return ErrDonationImmutable
}

func (d *Donation) BeforeDelete(_ *gorm.DB) error {
	return ErrDonationImmutable
}

// PaymentMeta carries optional payment details supplied by the caller.
// A missing PaymentID is generated, a missing Method defaults to card.
type PaymentMeta struct {
	PaymentID string
	Method    PaymentMethod
}

// Allocation is one cause's share of a split donation.
type Allocation struct {
	CauseID uuid.UUID
	Amount  decimal.Decimal
}

// DonationResult is the outcome of a committed donation: the ledger
// entry and the cause with its updated aggregates.
type DonationResult struct {
	Donation Donation
	Cause    Cause
}

// allocationTolerance is the accepted rounding difference between the
// total amount and the sum of the allocations.
var allocationTolerance = decimal.NewFromFloat(0.01)

// donationCommitHook runs inside the donation unit of work after all
// writes are staged and before the commit. It is nil in production;
// export_test.go exposes a setter so tests can force a rollback.
var donationCommitHook func(tx *gorm.DB) error

// Donate records a donation to a single cause.
//
// All preconditions are checked against a fresh read before the unit
// of work opens. The cause aggregates and the ledger entry are then
// written in one database transaction: either both are visible
// afterwards or neither is.
func Donate(donorID uuid.UUID, causeID uuid.UUID, amount decimal.Decimal, meta PaymentMeta) (DonationResult, error) {
	if causeID == uuid.Nil {
		return DonationResult{}, ErrCauseMissing
	}

	if err := checkAmount(amount); err != nil {
		return DonationResult{}, err
	}

	if err := checkMinimum(amount); err != nil {
		return DonationResult{}, err
	}

	var cause Cause
	if err := DB.First(&cause, causeID).Error; err != nil {
		return DonationResult{}, err
	}

	if err := cause.AcceptsDonationsAt(time.Now()); err != nil {
		return DonationResult{}, err
	}

	meta, err := normalizePayment(meta)
	if err != nil {
		return DonationResult{}, err
	}

	var result DonationResult
	err = DB.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = stageDonation(tx, donorID, causeID, amount, meta, false)
		if err != nil {
			return err
		}

		if donationCommitHook != nil {
			return donationCommitHook(tx)
		}

		return nil
	})
	if err != nil {
		return DonationResult{}, failDonation(donorID, causeID, err)
	}

	RecordAuditEvent("donation.created", donorID, fmt.Sprintf("donated %s to cause %s", amount, result.Cause.Name))

	return result, nil
}

// DonateSplit records one donation split across multiple causes.
//
// All causes are validated in one batch read, then all cause
// aggregates and all ledger entries are written in a single database
// transaction. The entries share one payment ID.
func DonateSplit(donorID uuid.UUID, total decimal.Decimal, allocations []Allocation, meta PaymentMeta) ([]DonationResult, error) {
	if len(allocations) == 0 {
		return nil, ErrNoAllocations
	}

	if err := checkAmount(total); err != nil {
		return nil, err
	}

	if err := checkMinimum(total); err != nil {
		return nil, err
	}

	for _, allocation := range allocations {
		if allocation.CauseID == uuid.Nil {
			return nil, ErrAllocationCauseMissing
		}

		if err := checkAmount(allocation.Amount); err != nil {
			return nil, err
		}
	}

	if err := reconcileAllocations(total, allocations); err != nil {
		return nil, err
	}

	// One batch read for all referenced causes. This is advisory, the
	// transaction below is the consistency guarantee.
	ids := make([]uuid.UUID, 0, len(allocations))
	for _, allocation := range allocations {
		ids = append(ids, allocation.CauseID)
	}

	var causes []Cause
	if err := DB.Where("id IN ?", ids).Find(&causes).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]Cause, len(causes))
	for _, cause := range causes {
		byID[cause.ID] = cause
	}

	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok && !slices.Contains(missing, id.String()) {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w cause with id %s", ErrResourceNotFound, strings.Join(missing, ", "))
	}

	// Group offending causes by error class so that a batch with both a
	// paused and an ended cause reports both conditions.
	now := time.Now()
	var classes []error
	offending := make(map[error][]string)
	for _, cause := range causes {
		err := cause.AcceptsDonationsAt(now)
		if err == nil {
			continue
		}

		class := ErrCauseNotAcceptingDonations
		if errors.Is(err, ErrCauseEnded) {
			class = ErrCauseEnded
		}

		if _, seen := offending[class]; !seen {
			classes = append(classes, class)
		}
		offending[class] = append(offending[class], cause.Name)
	}
	if len(classes) > 0 {
		rejected := fmt.Errorf("%w: %s", classes[0], strings.Join(offending[classes[0]], ", "))
		for _, class := range classes[1:] {
			rejected = fmt.Errorf("%w; %s: %s", rejected, class.Error(), strings.Join(offending[class], ", "))
		}

		return nil, rejected
	}

	meta, err := normalizePayment(meta)
	if err != nil {
		return nil, err
	}

	results := make([]DonationResult, 0, len(allocations))
	err = DB.Transaction(func(tx *gorm.DB) error {
		for _, allocation := range allocations {
			result, err := stageDonation(tx, donorID, allocation.CauseID, allocation.Amount, meta, true)
			if err != nil {
				return err
			}

			results = append(results, result)
		}

		if donationCommitHook != nil {
			return donationCommitHook(tx)
		}

		return nil
	})
	if err != nil {
		return nil, failDonation(donorID, uuid.Nil, err)
	}

	RecordAuditEvent("donation.created", donorID, fmt.Sprintf("donated %s split across %d causes", total, len(allocations)))

	return results, nil
}

// stageDonation applies one donation to one cause inside the unit of
// work: it increments the cause aggregates, performs the one-way
// active to completed transition and creates the ledger entry.
func stageDonation(tx *gorm.DB, donorID uuid.UUID, causeID uuid.UUID, amount decimal.Decimal, meta PaymentMeta, split bool) (DonationResult, error) {
	// The increments are applied as SQL expressions, not as absolute
	// values computed from an earlier read. Two concurrent donations to
	// the same cause would otherwise both stage their update from the
	// same stale aggregate and one increment would be lost.
	err := tx.Model(&Cause{}).Where("id = ?", causeID).Updates(map[string]interface{}{
		"current_amount":       gorm.Expr("current_amount + ?", amount),
		"donation_event_count": gorm.Expr("donation_event_count + ?", 1),
	}).Error
	if err != nil {
		return DonationResult{}, err
	}

	// Re-read for the completion transition, which needs the updated
	// aggregate.
	var cause Cause
	if err := tx.First(&cause, causeID).Error; err != nil {
		return DonationResult{}, err
	}

	if cause.Status == StatusActive && cause.CurrentAmount.GreaterThanOrEqual(cause.TargetAmount) && cause.TargetAmount.IsPositive() {
		cause.Status = StatusCompleted

		if err := tx.Model(&cause).Update("status", StatusCompleted).Error; err != nil {
			return DonationResult{}, err
		}
	}

	donation := Donation{
		DonorID:       donorID,
		CauseID:       cause.ID,
		CauseName:     cause.Name,
		Amount:        amount,
		PaymentID:     meta.PaymentID,
		PaymentMethod: meta.Method,
		Status:        DonationCompleted,
		Split:         split,
	}
	if err := tx.Create(&donation).Error; err != nil {
		return DonationResult{}, err
	}

	return DonationResult{Donation: donation, Cause: cause}, nil
}

// failDonation logs the underlying error and the audit event, then
// returns the generic transaction error. Details never reach callers.
func failDonation(donorID uuid.UUID, causeID uuid.UUID, err error) error {
	log.Error().Err(err).
		Str("donor", donorID.String()).
		Str("cause", causeID.String()).
		Msg("donation unit of work rolled back")

	RecordAuditEvent("donation.failed", donorID, err.Error())

	return ErrTransactionFailed
}

func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

func checkMinimum(amount decimal.Decimal) error {
	settings, err := ActiveSettings()
	if err != nil {
		return err
	}

	if settings.MinimumDonationEnabled && amount.LessThan(settings.MinimumDonationAmount) {
		return fmt.Errorf("%w of %s", ErrBelowMinimum, settings.MinimumDonationAmount)
	}

	return nil
}

// reconcileAllocations checks that the allocations sum up to the total
// amount, within a small tolerance for rounding.
func reconcileAllocations(total decimal.Decimal, allocations []Allocation) error {
	sum := decimal.Zero
	for _, allocation := range allocations {
		sum = sum.Add(allocation.Amount)
	}

	if sum.Sub(total).Abs().GreaterThan(allocationTolerance) {
		return fmt.Errorf("%w: allocations sum to %s, total is %s", ErrAllocationMismatch, sum, total)
	}

	return nil
}

func normalizePayment(meta PaymentMeta) (PaymentMeta, error) {
	if meta.PaymentID == "" {
		meta.PaymentID = "pay_" + uuid.NewString()
	}

	if meta.Method == "" {
		meta.Method = PaymentCard
	}

	if !slices.Contains(paymentMethods, meta.Method) {
		return PaymentMeta{}, fmt.Errorf("%w: %s", ErrPaymentMethodInvalid, meta.Method)
	}

	return meta, nil
}
