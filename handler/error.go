package handler

import (
	"errors"
	"net/http"

	"github.com/ONSdigital/dp-quandl-api/quandl"
	"github.com/ONSdigital/log.go/v2/log"
)

// Error is the handler package's error type. It carries the status the
// handler responds with and structured log data
type Error struct {
	err     error
	status  int
	logData map[string]interface{}
}

// NewError creates a new Error
func NewError(err error, status int, logData map[string]interface{}) *Error {
	return &Error{
		err:     err,
		status:  status,
		logData: logData,
	}
}

// Error implements the Go standard error interface
func (e *Error) Error() string {
	if e.err == nil {
		return "nil"
	}
	return e.err.Error()
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the status code the error is reported with
func (e *Error) Code() int {
	return e.status
}

// LogData implements the DataLogger interface which allows you extract
// embedded log.Data from an error
func (e *Error) LogData() map[string]interface{} {
	return e.logData
}

// statusCode maps an error to the status returned to the caller. Quandl
// client errors are passed on, anything else Quandl did wrong is a bad gateway
func statusCode(err error) int {
	var (
		handlerErr *Error
		parseErr   *quandl.ParseError
		rangeErr   *quandl.DateRangeError
		apiErr     *quandl.APIError
		decodeErr  *quandl.DecodeError
	)

	switch {
	case errors.As(err, &handlerErr):
		return handlerErr.Code()
	case errors.As(err, &parseErr), errors.As(err, &rangeErr):
		return http.StatusBadRequest
	case errors.As(err, &apiErr):
		if apiErr.Code() >= 400 && apiErr.Code() < 500 {
			return apiErr.Code()
		}
		return http.StatusBadGateway
	case errors.As(err, &decodeErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// unwrapLogData recursively unwraps logData from an error, with outer
// values taking precedence
func unwrapLogData(err error) log.Data {
	logData := log.Data{}
	var chain []map[string]interface{}

	for err != nil {
		if lderr, ok := err.(dataLogger); ok {
			if d := lderr.LogData(); d != nil {
				chain = append(chain, d)
			}
		}
		err = errors.Unwrap(err)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i] {
			logData[k] = v
		}
	}

	return logData
}
