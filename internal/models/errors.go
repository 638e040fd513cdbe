package models

import "errors"

var (
	ErrActivityNotFound  = errors.New("activity not found")
	ErrAvatarTooLarge    = errors.New("avatar_b64 exceeds 2,000,000 characters")
	ErrValidation        = errors.New("invalid request")
	ErrExportUnavailable = errors.New("activity export is not configured")
)
