package sos

import "errors"

var (
	ErrAlertNotFound       = errors.New("sos alert not found")
	ErrEmergencyTypeNeeded = errors.New("emergency_type is required")
)
