package service

import (
	"context"
	"net/http"

	dphttp "github.com/ONSdigital/dp-net/v2/http"
	dpotelgo "github.com/ONSdigital/dp-otel-go"
	"github.com/ONSdigital/dp-quandl-api/config"
	"github.com/ONSdigital/dp-quandl-api/quandl"
	"github.com/ONSdigital/dp-healthcheck/healthcheck"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// GetHTTPServer creates an http server
var GetHTTPServer = func(bindAddr string, router http.Handler) HTTPServer {
	s := dphttp.NewServer(bindAddr, router)
	s.HandleOSSignals = false
	return s
}

// GetQuandlClient creates the http client used to reach Quandl. Requests are
// never retried.
var GetQuandlClient = func(cfg *config.Config) quandl.HTTPClient {
	var c dphttp.Clienter
	if cfg.OtelEnabled {
		c = dphttp.NewClientWithTransport(otelhttp.NewTransport(dphttp.DefaultTransport))
	} else {
		c = dphttp.NewClient()
	}
	c.SetTimeout(cfg.DefaultRequestTimeout)
	c.SetMaxRetries(0)
	return c
}

// GetQuandlSession creates the Quandl session shared by all requests
var GetQuandlSession = func(cfg *config.Config, client quandl.HTTPClient) (*quandl.Session, error) {
	s, err := quandl.NewSessionWithHost(cfg.QuandlURL, client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create quandl session")
	}
	return s.WithAPIKey(cfg.QuandlAPIKey), nil
}

// GetHealthCheck creates a healthcheck with versionInfo
var GetHealthCheck = func(cfg *config.Config, buildTime, gitCommit, version string) (HealthChecker, error) {
	versionInfo, err := healthcheck.NewVersionInfo(buildTime, gitCommit, version)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get version info")
	}

	hc := healthcheck.New(
		versionInfo,
		cfg.HealthCheckCriticalTimeout,
		cfg.HealthCheckInterval,
	)
	return &hc, nil
}

// SetupOTel sets up the OpenTelemetry SDK, returning its shutdown func
var SetupOTel = func(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	return dpotelgo.SetupOTelSDK(ctx, dpotelgo.Config{
		OtelServiceName:          cfg.OTServiceName,
		OtelExporterOtlpEndpoint: cfg.OTExporterOTLPEndpoint,
		OtelBatchTimeout:         cfg.OTBatchTimeout,
	})
}
