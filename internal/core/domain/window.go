package domain

import "time"

const (
	queryDateLayout = "2006-01-02T00:00:00"
	fileDateLayout  = "2006-01-02"
)

// ReportDate returns local midnight of the day offsetDays before now, in loc.
func ReportDate(now time.Time, loc *time.Location, offsetDays int) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()-offsetDays, 0, 0, 0, 0, loc)
}

// QueryDate formats the day as the API's date filter value.
func QueryDate(day time.Time) string {
	return day.Format(queryDateLayout)
}

// FileDate formats the day for use in the report filename.
func FileDate(day time.Time) string {
	return day.Format(fileDateLayout)
}
