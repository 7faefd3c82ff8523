package domain

import (
	"errors"
	"strings"
)

// PaymentStatus enumerates the outcome of a sale attempt.
type PaymentStatus string

const (
	// PaymentNone is the initial state of a vehicle with no payment attempt.
	PaymentNone      PaymentStatus = ""
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentFailed    PaymentStatus = "failed"
)

var ErrUnknownPaymentStatus = errors.New("unknown payment status")

// statusAliases canonicalizes the status spellings sent by payment providers.
var statusAliases = map[string]PaymentStatus{
	"pending":    PaymentPending,
	"processing": PaymentPending,
	"0":          PaymentPending,
	"confirmed":  PaymentPaid,
	"paid":       PaymentPaid,
	"approved":   PaymentPaid,
	"1":          PaymentPaid,
	"cancelled":  PaymentCancelled,
	"canceled":   PaymentCancelled,
	"2":          PaymentCancelled,
	"failed":     PaymentFailed,
	"rejected":   PaymentFailed,
	"declined":   PaymentFailed,
	"3":          PaymentFailed,
}

// ParsePaymentStatus resolves a raw provider status string to its canonical
// value. Matching is case-insensitive; unrecognized input yields
// ErrUnknownPaymentStatus.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	status, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return PaymentNone, ErrUnknownPaymentStatus
	}
	return status, nil
}

// Valid reports whether the status is one of the canonical post-notification states.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled, PaymentFailed:
		return true
	default:
		return false
	}
}
