package domain

import "errors"

// Not-found errors (mapped to 404)
var (
	ErrBookNotFound   = errors.New("book not found")
	ErrPatronNotFound = errors.New("patron not found")
	ErrLoanNotFound   = errors.New("loan not found")
)

// Validation errors (precondition failures, mapped to 400)
var (
	ErrInvalidISBN         = errors.New("ISBN must have 10 or 13 digits")
	ErrInvalidYear         = errors.New("publication year must be between 1000 and 2030")
	ErrDuplicateISBN       = errors.New("a book with this ISBN already exists")
	ErrBookHasOpenLoan     = errors.New("book has an open loan")
	ErrBookUnavailable     = errors.New("book is not available for loan")
	ErrInvalidEmail        = errors.New("email has an invalid format")
	ErrDuplicateEmail      = errors.New("a patron with this email already exists")
	ErrPatronInactive      = errors.New("patron is inactive and cannot borrow")
	ErrPatronHasOpenLoans  = errors.New("patron has open loans")
	ErrLoanLimitReached    = errors.New("patron has reached the limit of open loans")
	ErrLoanAlreadyReturned = errors.New("loan has already been returned")
	ErrLoanNotRenewable    = errors.New("loan cannot be renewed")
	ErrLoanOverdue         = errors.New("loan is overdue and cannot be renewed")
)

var validationErrors = []error{
	ErrInvalidISBN,
	ErrInvalidYear,
	ErrDuplicateISBN,
	ErrBookHasOpenLoan,
	ErrBookUnavailable,
	ErrInvalidEmail,
	ErrDuplicateEmail,
	ErrPatronInactive,
	ErrPatronHasOpenLoans,
	ErrLoanLimitReached,
	ErrLoanAlreadyReturned,
	ErrLoanNotRenewable,
	ErrLoanOverdue,
}

// IsNotFound reports whether err is one of the not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrPatronNotFound) ||
		errors.Is(err, ErrLoanNotFound)
}

// IsValidation reports whether err is a domain precondition failure.
func IsValidation(err error) bool {
	for _, verr := range validationErrors {
		if errors.Is(err, verr) {
			return true
		}
	}
	return false
}
