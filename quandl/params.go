package quandl

import "fmt"

// Order is the sort order of the returned observations
type Order int

// Possible values for Order
const (
	Ascending Order = iota + 1
	Descending
)

var orderTokens = map[Order]string{
	Ascending:  "asc",
	Descending: "desc",
}

func (o Order) String() string {
	return orderTokens[o]
}

// ParseOrder returns the Order for a query token.
// "none" and the empty string mean the order is not set.
func ParseOrder(s string) (o Order, ok bool, err error) {
	v, ok, err := parseToken(s, "order", len(orderTokens), func(i int) string { return orderTokens[Order(i)] })
	return Order(v), ok, err
}

// Collapse is the frequency the observations are resampled to before
// being returned
type Collapse int

// Possible values for Collapse
const (
	Daily Collapse = iota + 1
	Weekly
	Monthly
	Quarterly
	Annual
)

var collapseTokens = map[Collapse]string{
	Daily:     "daily",
	Weekly:    "weekly",
	Monthly:   "monthly",
	Quarterly: "quarterly",
	Annual:    "annual",
}

func (c Collapse) String() string {
	return collapseTokens[c]
}

// ParseCollapse returns the Collapse for a query token.
// "none" and the empty string mean no collapse is set.
func ParseCollapse(s string) (c Collapse, ok bool, err error) {
	v, ok, err := parseToken(s, "collapse", len(collapseTokens), func(i int) string { return collapseTokens[Collapse(i)] })
	return Collapse(v), ok, err
}

// Transform is a calculation Quandl performs on the data before returning it
type Transform int

// Possible values for Transform
const (
	// Diff is the row on row change
	Diff Transform = iota + 1
	// PercentChange is the row on row change divided by the previous row
	PercentChange
	// Cumulative is the sum of all preceding rows
	Cumulative
	// Normalize sets the oldest value to 100 and scales the rest accordingly
	Normalize
)

var transformTokens = map[Transform]string{
	Diff:          "diff",
	PercentChange: "rdiff",
	Cumulative:    "cumul",
	Normalize:     "normalize",
}

func (t Transform) String() string {
	return transformTokens[t]
}

// ParseTransform returns the Transform for a query token.
// "none" and the empty string mean no transform is set.
func ParseTransform(s string) (t Transform, ok bool, err error) {
	v, ok, err := parseToken(s, "transform", len(transformTokens), func(i int) string { return transformTokens[Transform(i)] })
	return Transform(v), ok, err
}

// parseToken looks up s among the tokens of an enum whose values run from 1 to n
func parseToken(s, name string, n int, token func(int) string) (int, bool, error) {
	if s == "" || s == "none" {
		return 0, false, nil
	}
	for i := 1; i <= n; i++ {
		if token(i) == s {
			return i, true, nil
		}
	}
	return 0, false, fmt.Errorf("invalid %s %q", name, s)
}
