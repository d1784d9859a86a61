package auth

import "errors"

var (
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidRefreshToken   = errors.New("invalid or expired refresh token")
	ErrUserNotFound          = errors.New("user not found")
	ErrRefreshTokenRequired  = errors.New("refresh token is required")
	ErrReferralCodeExhausted = errors.New("could not allocate a unique referral code")
)
