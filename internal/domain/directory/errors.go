package directory

import "errors"

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrInvalidFacilityType = errors.New("facility type must be one of all, hospital, clinic, pharmacy")
)
