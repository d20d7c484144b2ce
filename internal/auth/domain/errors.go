package domain

import "errors"

// Sentinel errors for the authentication surface. Handlers map these to
// HTTP statuses; services wrap collaborator failures into them so callers
// never have to inspect Firebase error strings.
var (
	ErrEmailInUse          = errors.New("email already in use")
	ErrWeakPassword        = errors.New("password does not meet minimum strength")
	ErrInvalidEmail        = errors.New("malformed email address")
	ErrInvalidCredential   = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("no account for that email")
	ErrUserDisabled        = errors.New("account is disabled")
	ErrRequiresRecentLogin = errors.New("operation requires a recent sign-in")
	ErrWrongPassword       = errors.New("wrong password")
	ErrTooManyAttempts     = errors.New("too many attempts, try again later")
	ErrUnauthenticated     = errors.New("not authenticated")
)
