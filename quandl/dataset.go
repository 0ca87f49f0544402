package quandl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Run sends the request to Quandl and returns the decoded JSON response.
// Objects decode to map[string]interface{} and numbers to json.Number.
func (r DataRequest) Run(ctx context.Context) (interface{}, error) {
	var data interface{}
	if err := r.RunInto(ctx, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// RunInto sends the request to Quandl and decodes the JSON response into v
func (r DataRequest) RunInto(ctx context.Context, v interface{}) error {
	uri, err := r.URL()
	if err != nil {
		return err
	}

	body, err := r.session.get(ctx, uri)
	if err != nil {
		return err
	}

	return decodeJSON(body, v)
}

// quandlErrorResponse is the body Quandl sends with a non-200 status
type quandlErrorResponse struct {
	QuandlError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"quandl_error"`
}

func newAPIError(status int, body []byte) error {
	var payload interface{}
	if err := decodeJSON(body, &payload); err != nil {
		return err
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return &DecodeError{Format: "json", err: err}
	}

	apiErr := &APIError{
		StatusCode: status,
		Body:       payload,
		msg:        fmt.Sprintf("quandl request failed with code `%d` and response: %s", status, compact.String()),
	}

	var resp quandlErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.QuandlError != nil {
		apiErr.QuandlCode = resp.QuandlError.Code
		apiErr.Message = resp.QuandlError.Message
	}

	return apiErr
}

// decodeJSON decodes exactly one JSON value from b into v
func decodeJSON(b []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return &DecodeError{Format: "json", err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &DecodeError{Format: "json", err: errors.New("unexpected data after top-level value")}
	}
	return nil
}
