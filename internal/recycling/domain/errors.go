package domain

import "errors"

var (
	ErrProfileNotFound      = errors.New("user profile not found")
	ErrProfileAlreadyExists = errors.New("user profile already exists")
	ErrRecordInFlight       = errors.New("another recycling write is in flight for this user")
	ErrProfileUnderCredited = errors.New("activity recorded but profile increment failed")
	ErrNegativeImpact       = errors.New("impact estimate carries negative values")
)
