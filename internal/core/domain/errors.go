package domain

import "errors"

var (
	ErrStreamNotFound     = errors.New("stream not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPremiumRequired    = errors.New("premium required")
	ErrSessionClosed      = errors.New("viewing session closed")
	ErrStoredSessionUnreadable = errors.New("stored session unreadable")
)
