package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/ONSdigital/dp-healthcheck/healthcheck"
	"github.com/ONSdigital/dp-quandl-api/quandl"
)

const (
	msgHealthy     = "quandl is ok"
	msgUnavailable = "quandl is unavailable"
)

// QuandlChecker returns a checker requesting the latest row of a known
// dataset. Quandl rejecting the request (e.g. usage limits) is a warning,
// anything else failing is critical.
func QuandlChecker(s *quandl.Session, databaseCode, datasetCode string) healthcheck.Checker {
	return func(ctx context.Context, state *healthcheck.CheckState) error {
		_, err := s.NewDataRequest(databaseCode, datasetCode).Rows(1).Run(ctx)
		if err == nil {
			return state.Update(healthcheck.StatusOK, msgHealthy, http.StatusOK)
		}

		var apiErr *quandl.APIError
		if errors.As(err, &apiErr) && apiErr.Code() >= 400 && apiErr.Code() < 500 {
			return state.Update(healthcheck.StatusWarning, err.Error(), apiErr.Code())
		}

		code := 0
		if apiErr != nil {
			code = apiErr.Code()
		}
		return state.Update(healthcheck.StatusCritical, msgUnavailable+": "+err.Error(), code)
	}
}
