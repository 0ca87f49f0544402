package quandl

import "cloud.google.com/go/civil"

// validateDates fails when both dates are set and start is after end.
// A partial range is always valid.
func validateDates(start, end *civil.Date) error {
	if start == nil || end == nil {
		return nil
	}
	if start.After(*end) {
		return &DateRangeError{Start: *start, End: *end}
	}
	return nil
}

// parseDate parses a date in the yyyy-mm-dd format
func parseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, &ParseError{Value: s, err: err}
	}
	return d, nil
}
