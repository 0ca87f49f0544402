// Package quandl is a client for the Quandl v3 API, which serves financial
// and economic time series.
//
// A Session holds what is shared by all requests (the API key and the HTTP
// client). Requests are values built from a Session and consumed by Run:
//
//	s := quandl.NewSession(dphttp.NewClient()).WithAPIKey(key)
//	req, err := s.NewDataRequest("WIKI", "AAPL").Rows(10).StartDateString("2015-02-10")
//	if err != nil {
//		return err
//	}
//	data, err := req.Run(ctx)
//
// Each Run performs a single HTTP round trip. Nothing is cached or retried.
package quandl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultHost is the Quandl host used by NewSession
const DefaultHost = "https://www.quandl.com"

//go:generate moq -out mock/http_client.go -pkg mock . HTTPClient

// HTTPClient is the transport used to reach Quandl. It is satisfied by the
// dp-net http client.
type HTTPClient interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Session holds the state shared by all requests. It is never modified
// after construction, so it is safe to share between goroutines.
type Session struct {
	host   string
	apiKey string
	client HTTPClient
}

// NewSession creates a Session for the default Quandl host
func NewSession(client HTTPClient) *Session {
	return &Session{
		host:   DefaultHost,
		client: client,
	}
}

// NewSessionWithHost creates a Session for the provided host, which must be
// an absolute http(s) URL, e.g. http://localhost:8080
func NewSessionWithHost(host string, client HTTPClient) (*Session, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, &ConfigError{URL: host, err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &ConfigError{URL: host, err: errors.New("scheme must be http or https")}
	}
	if u.Host == "" {
		return nil, &ConfigError{URL: host, err: errors.New("missing host")}
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return nil, &ConfigError{URL: host, err: errors.New("host must not have a query or fragment")}
	}

	return &Session{
		host:   strings.TrimSuffix(host, "/"),
		client: client,
	}, nil
}

// WithAPIKey returns a copy of the Session using the provided API key.
// The key is needed for premium databases and increased usage limits.
func (s *Session) WithAPIKey(key string) *Session {
	c := *s
	c.apiKey = key
	return &c
}

// APIKey returns the API key, empty if none is set
func (s *Session) APIKey() string {
	return s.apiKey
}

// Host returns the Quandl host requests are sent to
func (s *Session) Host() string {
	return s.host
}

// NewDataRequest creates a request for the observations of one dataset,
// with no optional parameters set
func (s *Session) NewDataRequest(databaseCode, datasetCode string) DataRequest {
	return DataRequest{
		session:      s,
		databaseCode: databaseCode,
		datasetCode:  datasetCode,
	}
}

// NewListRequest creates a request for the codes of all datasets in a database
func (s *Session) NewListRequest(databaseCode string) ListRequest {
	return ListRequest{
		session:      s,
		databaseCode: databaseCode,
	}
}

// get performs a GET and returns the body of a 200 response. Any other
// status is returned as an *APIError, or a *DecodeError when the error body
// is not JSON.
func (s *Session) get(ctx context.Context, uri string) ([]byte, error) {
	resp, err := s.client.Get(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("quandl request failed: %w", redactURLError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read quandl response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

// redactURLError hides the api key of a *url.Error, whose message holds the
// request URL. The cause stays reachable through Unwrap.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	u, perr := url.Parse(urlErr.URL)
	if perr != nil {
		return &url.Error{Op: urlErr.Op, URL: "", Err: urlErr.Err}
	}
	q := u.Query()
	if !q.Has("api_key") {
		return err
	}
	q.Set("api_key", "xxxxx")
	u.RawQuery = q.Encode()

	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}
