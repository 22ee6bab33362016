package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// Donation preconditions
	ErrAmountNotPositive          = errors.New("the donation amount must be larger than zero")
	ErrBelowMinimum               = errors.New("the donation amount is below the platform minimum")
	ErrCauseNotAcceptingDonations = errors.New("this cause is not accepting donations")
	ErrCauseEnded                 = errors.New("this cause has ended")
	ErrCauseMissing               = errors.New("a cause must be specified")
	ErrNoAllocations              = errors.New("at least one cause allocation must be specified")
	ErrAllocationCauseMissing     = errors.New("every allocation must reference a cause")
	ErrAllocationMismatch         = errors.New("the allocation amounts must equal the total amount")

	// ErrTransactionFailed is returned for any failure inside the
	// donation unit of work. The underlying error is logged, never
	// returned to callers.
	ErrTransactionFailed = errors.New("the donation could not be recorded")

	// Resource validation
	ErrCauseNameNotUnique       = errors.New("the cause name must be unique")
	ErrCauseCategoryInvalid     = errors.New("the cause category is not valid")
	ErrCauseStatusInvalid       = errors.New("the cause status is not valid")
	ErrCauseTargetNegative      = errors.New("the target amount must not be negative")
	ErrCauseHasFunds            = errors.New("causes that have received donations cannot be deleted")
	ErrDonationImmutable        = errors.New("donation records cannot be changed after they are recorded")
	ErrPaymentMethodInvalid     = errors.New("the payment method is not valid")
	ErrUserEmailNotUnique       = errors.New("a user with this email already exists")
	ErrUserEmailMissing         = errors.New("the email must be set")
	ErrUserRoleInvalid          = errors.New("the user role is not valid")
	ErrCurrencyCodeInvalid      = errors.New("the currency code is not a valid ISO 4217 code")
	ErrMinimumDonationNegative  = errors.New("the minimum donation amount must not be negative")
)
