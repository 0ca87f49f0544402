package quandl

import (
	"net/url"
	"strconv"
	"strings"
)

const apiPath = "/api/v3"

type queryParam struct {
	key, value string
}

// queryParams keeps parameters in the order they are added, which url.Values
// does not
type queryParams []queryParam

func (q *queryParams) add(key, value string) {
	*q = append(*q, queryParam{key: key, value: value})
}

func (q queryParams) encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// buildURL joins the host, the escaped path segments and the query, and
// checks the result is a valid URL
func (s *Session) buildURL(q queryParams, segments ...string) (string, error) {
	var b strings.Builder
	b.WriteString(s.host)
	b.WriteString(apiPath)
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	if len(q) > 0 {
		b.WriteByte('?')
		b.WriteString(q.encode())
	}

	uri := b.String()
	if _, err := url.ParseRequestURI(uri); err != nil {
		return "", &ConfigError{URL: s.host, err: err}
	}
	return uri, nil
}

// URL returns the Quandl URL for the request. Query parameters are only
// present for the fields that are set, in a fixed order.
func (r DataRequest) URL() (string, error) {
	if r.session == nil {
		return "", errNoSession
	}

	var q queryParams
	if r.session.apiKey != "" {
		q.add("api_key", r.session.apiKey)
	}
	if r.limit != nil {
		q.add("limit", strconv.FormatUint(uint64(*r.limit), 10))
	}
	if r.rows != nil {
		q.add("rows", strconv.FormatUint(uint64(*r.rows), 10))
	}
	if r.columnIndex != nil {
		q.add("column_index", strconv.FormatUint(uint64(*r.columnIndex), 10))
	}
	if r.startDate != nil {
		q.add("start_date", r.startDate.String())
	}
	if r.endDate != nil {
		q.add("end_date", r.endDate.String())
	}
	if r.order != 0 {
		q.add("order", r.order.String())
	}
	if r.collapse != 0 {
		q.add("collapse", r.collapse.String())
	}
	if r.transform != 0 {
		q.add("transform", r.transform.String())
	}

	return r.session.buildURL(q, "datasets", r.databaseCode, r.datasetCode, "data.json")
}

// URL returns the Quandl URL for the request. The server replies with a ZIP
// archive holding the CSV file.
func (r ListRequest) URL() (string, error) {
	if r.session == nil {
		return "", errNoSession
	}

	var q queryParams
	if r.session.apiKey != "" {
		q.add("api_key", r.session.apiKey)
	}

	return r.session.buildURL(q, "databases", r.databaseCode, "codes.csv")
}
