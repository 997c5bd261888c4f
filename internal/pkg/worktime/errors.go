package worktime

import "errors"

var (
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidMonth      = errors.New("invalid month format, expected YYYY-MM")
	ErrInvalidWeek       = errors.New("invalid week number")
)
