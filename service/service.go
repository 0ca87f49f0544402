package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ONSdigital/dp-quandl-api/config"
	"github.com/ONSdigital/dp-quandl-api/handler"
	"github.com/ONSdigital/dp-quandl-api/quandl"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// Service contains all the configs, server and clients to run dp-quandl-api
type Service struct {
	Cfg          *config.Config
	Server       HTTPServer
	HealthCheck  HealthChecker
	Session      *quandl.Session
	otelShutdown func(context.Context) error
}

// New creates a new empty service
func New() *Service {
	return &Service{}
}

// Init initialises the service and it's dependencies
func (svc *Service) Init(ctx context.Context, cfg *config.Config, buildTime, gitCommit, version string) error {
	var err error

	if cfg == nil {
		return errors.New("nil config passed to service init")
	}

	svc.Cfg = cfg

	if cfg.OtelEnabled {
		if svc.otelShutdown, err = SetupOTel(ctx, cfg); err != nil {
			return fmt.Errorf("failed to set up open telemetry: %w", err)
		}
	}

	if svc.Session, err = GetQuandlSession(cfg, GetQuandlClient(cfg)); err != nil {
		return fmt.Errorf("failed to initialise quandl session: %w", err)
	}

	if svc.HealthCheck, err = GetHealthCheck(cfg, buildTime, gitCommit, version); err != nil {
		return fmt.Errorf("could not instantiate healthcheck: %w", err)
	}

	if err := svc.registerCheckers(); err != nil {
		return fmt.Errorf("error initialising checkers: %w", err)
	}

	r := mux.NewRouter()
	if cfg.OtelEnabled {
		r.Use(otelmux.Middleware(cfg.OTServiceName))
	}
	r.StrictSlash(true).Path("/health").HandlerFunc(svc.HealthCheck.Handler)

	datasets := handler.NewDatasets(svc.Session)
	r.StrictSlash(true).Path("/datasets/{database}/{dataset}").Methods(http.MethodGet).HandlerFunc(datasets.GetData)
	r.StrictSlash(true).Path("/databases/{database}/codes").Methods(http.MethodGet).HandlerFunc(datasets.GetCodes)

	svc.Server = GetHTTPServer(cfg.BindAddr, r)

	return nil
}

// Start the service
func (svc *Service) Start(ctx context.Context, svcErrors chan error) error {
	log.Info(ctx, "starting service", log.Data{
		"bind_addr":  svc.Cfg.BindAddr,
		"quandl_url": svc.Cfg.QuandlURL,
	})

	svc.HealthCheck.Start(ctx)

	// Run the http server in a new go-routine
	go func() {
		if err := svc.Server.ListenAndServe(); err != nil {
			svcErrors <- fmt.Errorf("failure in http listen and serve: %w", err)
		}
	}()

	return nil
}

// Close gracefully shuts the service down in the required order, with timeout
func (svc *Service) Close(ctx context.Context) error {
	timeout := svc.Cfg.GracefulShutdownTimeout
	log.Info(ctx, "commencing graceful shutdown", log.Data{"graceful_shutdown_timeout": timeout})
	ctx, cancel := context.WithTimeout(ctx, timeout)
	hasShutdownError := false

	go func() {
		defer cancel()

		// stop healthcheck, as it depends on everything else
		if svc.HealthCheck != nil {
			svc.HealthCheck.Stop()
			log.Info(ctx, "stopped health checker")
		}

		// stop any incoming requests
		if svc.Server != nil {
			if err := svc.Server.Shutdown(ctx); err != nil {
				log.Error(ctx, "failed to shutdown http server", err)
				hasShutdownError = true
			}
			log.Info(ctx, "stopped http server")
		}

		if svc.otelShutdown != nil {
			if err := svc.otelShutdown(ctx); err != nil {
				log.Error(ctx, "failed to shutdown open telemetry", err)
				hasShutdownError = true
			}
		}
	}()

	// wait for shutdown success (via cancel) or failure (timeout)
	<-ctx.Done()

	// timeout expired
	if ctx.Err() == context.DeadlineExceeded {
		log.Error(ctx, "shutdown timed out", ctx.Err())
		return ctx.Err()
	}

	// other error
	if hasShutdownError {
		err := errors.New("failed to shutdown gracefully")
		log.Error(ctx, "failed to shutdown gracefully ", err)
		return err
	}

	log.Info(ctx, "graceful shutdown was successful")
	return nil
}

// registerCheckers adds the checkers for the service clients to the health check object.
func (svc *Service) registerCheckers() error {
	checker := QuandlChecker(svc.Session, svc.Cfg.QuandlHealthDatabase, svc.Cfg.QuandlHealthDataset)
	if err := svc.HealthCheck.AddCheck("Quandl", checker); err != nil {
		return fmt.Errorf("error adding check for quandl: %w", err)
	}

	return nil
}
