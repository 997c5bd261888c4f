package payroll

import "errors"

var (
	ErrMissingCompensationProfile = errors.New("staff member has no compensation profile")
	ErrInvalidCompensationProfile = errors.New("compensation profile has no working days or scheduled hours")
)
