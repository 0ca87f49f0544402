package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ONSdigital/dp-quandl-api/quandl"
)

// parseDataRequest builds a data request from the query parameters, which
// use the same names and tokens as Quandl
func parseDataRequest(req quandl.DataRequest, query url.Values) (quandl.DataRequest, error) {
	if v := query.Get("limit"); v != "" {
		n, err := parseUint(v, "limit", 1)
		if err != nil {
			return req, err
		}
		req = req.Limit(n)
	}

	if v := query.Get("rows"); v != "" {
		n, err := parseUint(v, "rows", 1)
		if err != nil {
			return req, err
		}
		req = req.Rows(n)
	}

	if v := query.Get("column_index"); v != "" {
		n, err := parseUint(v, "column_index", 0)
		if err != nil {
			return req, err
		}
		req = req.ColumnIndex(n)
	}

	var err error
	if v := query.Get("start_date"); v != "" {
		if req, err = req.StartDateString(v); err != nil {
			return req, err
		}
	}

	if v := query.Get("end_date"); v != "" {
		if req, err = req.EndDateString(v); err != nil {
			return req, err
		}
	}

	order, ok, err := quandl.ParseOrder(query.Get("order"))
	if err != nil {
		return req, badRequest(err, "order", query.Get("order"))
	}
	if ok {
		req = req.Order(order)
	}

	collapse, ok, err := quandl.ParseCollapse(query.Get("collapse"))
	if err != nil {
		return req, badRequest(err, "collapse", query.Get("collapse"))
	}
	if ok {
		req = req.Collapse(collapse)
	}

	transform, ok, err := quandl.ParseTransform(query.Get("transform"))
	if err != nil {
		return req, badRequest(err, "transform", query.Get("transform"))
	}
	if ok {
		req = req.Transform(transform)
	}

	return req, nil
}

func parseUint(v, name string, min uint64) (uint, error) {
	n, err := strconv.ParseUint(v, 10, 0)
	if err != nil || n < min {
		return 0, badRequest(fmt.Errorf("invalid %s %q: must be an integer of at least %d", name, v, min), name, v)
	}
	return uint(n), nil
}

func badRequest(err error, param, value string) *Error {
	return NewError(err, http.StatusBadRequest, map[string]interface{}{
		"parameter": param,
		"value":     value,
	})
}
