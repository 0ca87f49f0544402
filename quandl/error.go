package quandl

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// ParseError is returned when a date string is not a valid yyyy-mm-dd calendar date
type ParseError struct {
	Value string
	err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Value, e.err)
}

func (e *ParseError) Unwrap() error {
	return e.err
}

// LogData returns the structured log data for the error
func (e *ParseError) LogData() map[string]interface{} {
	return map[string]interface{}{
		"value": e.Value,
	}
}

// DateRangeError is returned when a start date is after the end date
type DateRangeError struct {
	Start civil.Date
	End   civil.Date
}

func (e *DateRangeError) Error() string {
	return fmt.Sprintf("start date `%s` is after end date `%s`", e.Start, e.End)
}

// LogData returns the structured log data for the error
func (e *DateRangeError) LogData() map[string]interface{} {
	return map[string]interface{}{
		"start_date": e.Start.String(),
		"end_date":   e.End.String(),
	}
}

// APIError is returned when Quandl rejects a request, or when a response
// breaks the structure Quandl is known to produce.
// StatusCode is zero for structural errors on a successful response.
type APIError struct {
	StatusCode int
	Body       interface{}
	// QuandlCode and Message are taken from the quandl_error object, if any
	QuandlCode string
	Message    string
	msg        string
}

func (e *APIError) Error() string {
	return "quandl error: " + e.msg
}

// Code returns the HTTP status code returned by Quandl
func (e *APIError) Code() int {
	return e.StatusCode
}

// LogData returns the structured log data for the error
func (e *APIError) LogData() map[string]interface{} {
	logData := map[string]interface{}{}
	if e.StatusCode != 0 {
		logData["status_code"] = e.StatusCode
	}
	if e.QuandlCode != "" {
		logData["quandl_code"] = e.QuandlCode
	}
	return logData
}

// DecodeError is returned when a response body cannot be decoded as the
// format it was expected to be in (JSON, ZIP or CSV)
type DecodeError struct {
	Format string
	err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %s", e.Format, e.err)
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

// LogData returns the structured log data for the error
func (e *DecodeError) LogData() map[string]interface{} {
	return map[string]interface{}{
		"format": e.Format,
	}
}

// ConfigError is returned when the Quandl host or a request URL is malformed
type ConfigError struct {
	URL string
	err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid quandl url %q: %s", e.URL, e.err)
}

func (e *ConfigError) Unwrap() error {
	return e.err
}

// LogData returns the structured log data for the error
func (e *ConfigError) LogData() map[string]interface{} {
	return map[string]interface{}{
		"url": e.URL,
	}
}
