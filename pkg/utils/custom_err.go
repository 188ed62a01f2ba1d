package utils

import "errors"

var (
	ErrDatabaseError        = errors.New("database error")
	ErrServiceBusy          = errors.New("service busy")
	ErrInvalidInput         = errors.New("invalid input")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidResetToken    = errors.New("invalid or expired reset token")
	ErrUserNotFound         = errors.New("user not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrInterventionNotFound = errors.New("intervention not found")
	ErrMediaNotFound        = errors.New("media not found")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrInsightsUnavailable  = errors.New("insights unavailable")
)
