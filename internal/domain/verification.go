package domain

import "time"

// VerifyReason classifies the outcome of a ticket scan
type VerifyReason string

const (
	ReasonConfirmed        VerifyReason = "confirmed"
	ReasonAlreadyScanned   VerifyReason = "already_scanned"
	ReasonFutureBooking    VerifyReason = "future_booking"
	ReasonNotFound         VerifyReason = "not_found"
	ReasonStoreUnavailable VerifyReason = "store_unavailable"
)

// VerificationResult is the outcome of a single scan.
// Valid is true only for ReasonConfirmed.
type VerificationResult struct {
	Valid     bool
	Reason    VerifyReason
	Booking   *Booking
	ScannedAt *time.Time // prior scan time for ReasonAlreadyScanned
}
