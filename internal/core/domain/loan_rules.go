package domain

import "time"

// Loan policy constants
const (
	// DailyFineRate is charged per whole day of late return, in currency units.
	DailyFineRate = 2.00

	// DefaultLoanDays is the loan period applied when none is given.
	DefaultLoanDays = 14

	// MaxOpenLoans is the number of open loans a patron may hold at once.
	MaxOpenLoans = 3
)

// DaysLate returns the number of whole 24h periods between the due
// instant and the reference instant. Partial days do not count; a
// reference at or before the due instant yields 0.
func DaysLate(dueAt, ref time.Time) int {
	if !ref.After(dueAt) {
		return 0
	}
	return int(ref.Sub(dueAt) / (24 * time.Hour))
}

// FineAmount computes the late fine for a loan due at dueAt, using ref
// as the reference instant: the actual return time for a finalized
// loan, otherwise "now". Never negative.
func FineAmount(dueAt, ref time.Time) float64 {
	return DailyFineRate * float64(DaysLate(dueAt, ref))
}

// DueDate resolves the expected-return instant at issuance: the
// explicit due date when given, otherwise loanedAt plus the period.
// A non-positive period falls back to DefaultLoanDays.
func DueDate(loanedAt time.Time, explicit *time.Time, periodDays int) time.Time {
	if explicit != nil {
		return *explicit
	}
	if periodDays <= 0 {
		periodDays = DefaultLoanDays
	}
	return loanedAt.AddDate(0, 0, periodDays)
}

// RenewalDays normalizes the additional days requested for a renewal.
func RenewalDays(days int) int {
	if days <= 0 {
		return DefaultLoanDays
	}
	return days
}

// IsOverdue reports whether a loan due at dueAt has expired as of now.
// The due instant itself is not overdue.
func IsOverdue(dueAt, now time.Time) bool {
	return now.After(dueAt)
}

// StatusAllowsRenewal reports whether a loan in the given status may
// be renewed at all. Overdue checking is separate: a renewable status
// with an expired due date is still rejected by the service.
func StatusAllowsRenewal(status string) bool {
	return status == "ACTIVE" || status == "RENEWED"
}
