package steps

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newQueryAssertor(rawQuery string) *queryAssertor {
	return &queryAssertor{
		expected: rawQuery,
	}
}

// queryAssertor is a custom assertor function for httpfake.
// This asserts the exact query string Quandl is called with, including the
// order of its parameters, which the default httpfake query assertions ignore
type queryAssertor struct {
	expected string
}

func (q *queryAssertor) Assert(r *http.Request) error {
	if r.URL.RawQuery == q.expected {
		return nil
	}

	got, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return fmt.Errorf("failed to parse request query: %w", err)
	}
	expected, err := url.ParseQuery(q.expected)
	if err != nil {
		return fmt.Errorf("failed to parse expected query: %w", err)
	}

	if diff := cmp.Diff(got, expected); diff != "" {
		return fmt.Errorf("request query does not match expected (-got +expected):\n%s", diff)
	}

	return fmt.Errorf("request query parameters out of order: got %q, expected %q", r.URL.RawQuery, q.expected)
}

func (q *queryAssertor) Log(t testing.TB) {
	t.Log("asserting request query to quandl")
}

func (q *queryAssertor) Error(t testing.TB, err error) {
	t.Errorf("error asserting request query to quandl: %s", err)
}
