package invoices

import (
	"time"
)

// PaymentStatus enumerates invoice payment statuses.
type PaymentStatus int

const (
	StatusUnpaid PaymentStatus = iota
	StatusPaid
)

// PaymentState is the persisted paid/paid_date pair as a tagged value.
// Since carries the payment timestamp and is meaningful only for StatusPaid,
// so "paid iff paid_date set" holds by construction.
type PaymentState struct {
	Status PaymentStatus
	Since  time.Time
}

// Unpaid returns the unpaid state.
func Unpaid() PaymentState {
	return PaymentState{Status: StatusUnpaid}
}

// PaidAt returns the paid state stamped at since.
func PaidAt(since time.Time) PaymentState {
	return PaymentState{Status: StatusPaid, Since: since}
}

// StateOf rebuilds a PaymentState from the flat storage representation.
func StateOf(paid bool, paidDate *time.Time) PaymentState {
	if paid && paidDate != nil {
		return PaidAt(*paidDate)
	}
	return Unpaid()
}

// Paid reports whether the state is paid.
func (s PaymentState) Paid() bool {
	return s.Status == StatusPaid
}

// PaidDate returns the flat storage representation of the payment timestamp,
// nil while unpaid.
func (s PaymentState) PaidDate() *time.Time {
	if s.Status != StatusPaid {
		return nil
	}
	since := s.Since
	return &since
}

// Transition computes the next payment state for an update request. The branch
// order is load-bearing: clearing the flag wins over everything else, and
// re-asserting paid on an already-paid invoice keeps its original stamp.
func (s PaymentState) Transition(requestPaid bool, now time.Time) PaymentState {
	switch {
	case !requestPaid:
		return Unpaid()
	case s.Status == StatusUnpaid:
		return PaidAt(now)
	default:
		return s
	}
}
