package storefront

import "errors"

var (
	// ErrLoginRequired aborts operations that need an authenticated session.
	ErrLoginRequired = errors.New("storefront: login required")
	// ErrUnauthorized is returned when a session lacks admin access.
	ErrUnauthorized = errors.New("storefront: unauthorized")
	// ErrInvalidCredentials rejects an admin login attempt.
	ErrInvalidCredentials = errors.New("storefront: invalid credentials")
	// ErrOrderNotFound is returned for verification against unknown orders.
	ErrOrderNotFound = errors.New("storefront: order not found")
	// ErrVerificationFailed marks a payment whose signature did not check out.
	// The order is never settled on this path.
	ErrVerificationFailed = errors.New("storefront: payment verification failed")
)

// ValidationError communicates rule violations back to transports so they can
// answer with a client error instead of a server one.
type ValidationError struct {
	message string
}

func (e ValidationError) Error() string { return e.message }

func newValidationError(msg string) error {
	return ValidationError{message: msg}
}

// IsValidation distinguishes business rejections from infrastructure failures.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
