package quandl

import (
	"errors"

	"cloud.google.com/go/civil"
)

var errNoSession = &ConfigError{err: errors.New("request was not created from a session")}

// DataRequest describes a query for the observations of one dataset.
//
// Setters return an updated copy and leave the receiver untouched, so a
// partially built request can be shared and extended safely. Only the date
// setters can fail.
type DataRequest struct {
	session      *Session
	databaseCode string
	datasetCode  string
	limit        *uint
	rows         *uint
	columnIndex  *uint
	startDate    *civil.Date
	endDate      *civil.Date
	order        Order
	collapse     Collapse
	transform    Transform
}

// DatabaseCode returns the database code, e.g. WIKI
func (r DataRequest) DatabaseCode() string { return r.databaseCode }

// DatasetCode returns the dataset code, e.g. AAPL
func (r DataRequest) DatasetCode() string { return r.datasetCode }

// Limit returns a copy of the request returning only the first n rows.
// Use a limit of 1 to get the latest observation.
func (r DataRequest) Limit(n uint) DataRequest {
	r.limit = &n
	return r
}

// Rows returns a copy of the request returning only the first n rows
func (r DataRequest) Rows(n uint) DataRequest {
	r.rows = &n
	return r
}

// ColumnIndex returns a copy of the request returning only one column.
// Column 0 is the date column and is always returned; data begins at 1.
func (r DataRequest) ColumnIndex(i uint) DataRequest {
	r.columnIndex = &i
	return r
}

// Order returns a copy of the request with the sort order set.
// Quandl sorts in descending order by default.
func (r DataRequest) Order(o Order) DataRequest {
	r.order = o
	return r
}

// Collapse returns a copy of the request with the frequency set. Quandl
// returns the last observation of each period.
func (r DataRequest) Collapse(c Collapse) DataRequest {
	r.collapse = c
	return r
}

// Transform returns a copy of the request with a calculation applied to the data
func (r DataRequest) Transform(t Transform) DataRequest {
	r.transform = t
	return r
}

// StartDate returns a copy of the request only returning data on or after d.
// It fails with a *DateRangeError if d is after the end date.
func (r DataRequest) StartDate(d civil.Date) (DataRequest, error) {
	if err := validateDates(&d, r.endDate); err != nil {
		return r, err
	}
	r.startDate = &d
	return r, nil
}

// EndDate returns a copy of the request only returning data on or before d.
// It fails with a *DateRangeError if d is before the start date.
func (r DataRequest) EndDate(d civil.Date) (DataRequest, error) {
	if err := validateDates(r.startDate, &d); err != nil {
		return r, err
	}
	r.endDate = &d
	return r, nil
}

// StartDateString is StartDate for a yyyy-mm-dd string. It fails with a
// *ParseError if s is not a valid date.
func (r DataRequest) StartDateString(s string) (DataRequest, error) {
	d, err := parseDate(s)
	if err != nil {
		return r, err
	}
	return r.StartDate(d)
}

// EndDateString is EndDate for a yyyy-mm-dd string. It fails with a
// *ParseError if s is not a valid date.
func (r DataRequest) EndDateString(s string) (DataRequest, error) {
	d, err := parseDate(s)
	if err != nil {
		return r, err
	}
	return r.EndDate(d)
}

// GetLimit returns the limit and whether it is set
func (r DataRequest) GetLimit() (uint, bool) { return derefUint(r.limit) }

// GetRows returns the number of rows and whether it is set
func (r DataRequest) GetRows() (uint, bool) { return derefUint(r.rows) }

// GetColumnIndex returns the column index and whether it is set
func (r DataRequest) GetColumnIndex() (uint, bool) { return derefUint(r.columnIndex) }

// GetStartDate returns the start date and whether it is set
func (r DataRequest) GetStartDate() (civil.Date, bool) { return derefDate(r.startDate) }

// GetEndDate returns the end date and whether it is set
func (r DataRequest) GetEndDate() (civil.Date, bool) { return derefDate(r.endDate) }

// GetOrder returns the order and whether it is set
func (r DataRequest) GetOrder() (Order, bool) { return r.order, r.order != 0 }

// GetCollapse returns the collapse frequency and whether it is set
func (r DataRequest) GetCollapse() (Collapse, bool) { return r.collapse, r.collapse != 0 }

// GetTransform returns the transform and whether it is set
func (r DataRequest) GetTransform() (Transform, bool) { return r.transform, r.transform != 0 }

func derefUint(p *uint) (uint, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func derefDate(p *civil.Date) (civil.Date, bool) {
	if p == nil {
		return civil.Date{}, false
	}
	return *p, true
}

// ListRequest describes a query for the codes of all datasets in a database
type ListRequest struct {
	session      *Session
	databaseCode string
}

// DatabaseCode returns the database code, e.g. YC
func (r ListRequest) DatabaseCode() string { return r.databaseCode }
