package timesheet

import "errors"

var (
	ErrEntryNotFound    = errors.New("timesheet entry not found")
	ErrInvalidDayType   = errors.New("invalid day type")
	ErrEmployeeNotFound = errors.New("employee not found for timesheet entry")
)
