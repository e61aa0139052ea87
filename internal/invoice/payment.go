package invoice

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the outcome of a payment attempt.
type Status string

const (
	StatusSuccessful Status = "SUCCESSFUL"
	StatusFailed     Status = "FAILED"
)

var (
	ErrInvalidStatus = errors.New("payment status must be SUCCESSFUL or FAILED")
	ErrFailReason    = errors.New("fail reason is required for failed payments and forbidden otherwise")
)

// PaymentID identifies a payment attempt.
type PaymentID struct {
	Invoice       ID
	PaymentTime   time.Time
	TransactionID string
}

// Payment is an attempt to settle an invoice.
type Payment struct {
	Invoice       ID
	TransactionID string
	PaymentTime   time.Time
	Value         decimal.Decimal
	Status        Status
	FailReason    *string
}

func (p *Payment) ID() PaymentID {
	return PaymentID{Invoice: p.Invoice, PaymentTime: p.PaymentTime, TransactionID: p.TransactionID}
}

// HasID reports whether p has the given identity. Payment times are compared as
// instants.
func (p *Payment) HasID(id PaymentID) bool {
	return p.Invoice == id.Invoice &&
		p.TransactionID == id.TransactionID &&
		p.PaymentTime.Equal(id.PaymentTime)
}

// ValidateStatus checks that a fail reason is present exactly when the status
// is FAILED.
func ValidateStatus(status Status, failReason *string) error {
	switch status {
	case StatusSuccessful:
		if failReason != nil {
			return fmt.Errorf("%w: got reason %q", ErrFailReason, *failReason)
		}
	case StatusFailed:
		if failReason == nil {
			return ErrFailReason
		}
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidStatus, status)
	}

	return nil
}
