package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/ONSdigital/dp-healthcheck/healthcheck"
	"github.com/ONSdigital/dp-quandl-api/config"
	"github.com/ONSdigital/dp-quandl-api/quandl"
	"github.com/ONSdigital/dp-quandl-api/service"
	serviceMock "github.com/ONSdigital/dp-quandl-api/service/mock"

	. "github.com/smartystreets/goconvey/convey"
)

var (
	ctx           = context.Background()
	testBuildTime = "BuildTime"
	testGitCommit = "GitCommit"
	testVersion   = "Version"
)

var (
	errHealthcheck = fmt.Errorf("healthCheck error")
	errServer      = fmt.Errorf("HTTP Server error")
	errAddCheck    = fmt.Errorf("healthcheck add check error")
	errOtel        = fmt.Errorf("otel shutdown error")
)

func TestInit(t *testing.T) {
	Convey("Having a set of mocked dependencies", t, func() {
		cfg, err := config.Get()
		So(err, ShouldBeNil)

		hcMock := &serviceMock.HealthCheckerMock{
			AddCheckFunc: func(name string, checker healthcheck.Checker) error { return nil },
		}
		service.GetHealthCheck = func(cfg *config.Config, buildTime, gitCommit, version string) (service.HealthChecker, error) {
			return hcMock, nil
		}

		serverMock := &serviceMock.HTTPServerMock{}
		var registeredRouter http.Handler
		service.GetHTTPServer = func(bindAddr string, router http.Handler) service.HTTPServer {
			registeredRouter = router
			return serverMock
		}

		svc := &service.Service{}

		Convey("Given that initialising the quandl session returns an error", func() {
			cfgCopy := *cfg
			cfgCopy.QuandlURL = "ftp://quandl"

			Convey("Then service Init fails with the same error and no further initialisations are attempted", func() {
				err := svc.Init(ctx, &cfgCopy, testBuildTime, testGitCommit, testVersion)

				var cfgErr *quandl.ConfigError
				So(errors.As(err, &cfgErr), ShouldBeTrue)
				So(cfgErr.URL, ShouldEqual, "ftp://quandl")
				So(svc.Session, ShouldBeNil)
				So(svc.HealthCheck, ShouldBeNil)
				So(svc.Server, ShouldBeNil)
			})
		})

		Convey("Given that initialising healthcheck returns an error", func() {
			service.GetHealthCheck = func(cfg *config.Config, buildTime, gitCommit, version string) (service.HealthChecker, error) {
				return nil, errHealthcheck
			}

			Convey("Then service Init fails with the same error and no further initialisations are attempted", func() {
				err := svc.Init(ctx, cfg, testBuildTime, testGitCommit, testVersion)
				So(errors.Is(err, errHealthcheck), ShouldBeTrue)
				So(svc.Session, ShouldNotBeNil)
				So(svc.Server, ShouldBeNil)
			})
		})

		Convey("Given that Checkers cannot be registered", func() {
			hcMock.AddCheckFunc = func(name string, checker healthcheck.Checker) error { return errAddCheck }

			Convey("Then service Init fails with the expected error", func() {
				err := svc.Init(ctx, cfg, testBuildTime, testGitCommit, testVersion)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, errAddCheck), ShouldBeTrue)
				So(svc.Server, ShouldBeNil)

				Convey("And the quandl check was attempted", func() {
					So(hcMock.AddCheckCalls(), ShouldHaveLength, 1)
					So(hcMock.AddCheckCalls()[0].Name, ShouldEqual, "Quandl")
				})
			})
		})

		Convey("Given that all dependencies are successfully initialised", func() {
			Convey("Then service Init succeeds, all dependencies are initialised", func() {
				err := svc.Init(ctx, cfg, testBuildTime, testGitCommit, testVersion)
				So(err, ShouldBeNil)
				So(svc.Cfg, ShouldResemble, cfg)
				So(svc.Server, ShouldEqual, serverMock)
				So(svc.HealthCheck, ShouldResemble, hcMock)
				So(svc.Session, ShouldNotBeNil)
				So(svc.Session.Host(), ShouldEqual, cfg.QuandlURL)
				So(svc.Session.APIKey(), ShouldEqual, cfg.QuandlAPIKey)
				So(registeredRouter, ShouldNotBeNil)

				Convey("Then all checks are registered", func() {
					So(hcMock.AddCheckCalls(), ShouldHaveLength, 1)
					So(hcMock.AddCheckCalls()[0].Name, ShouldEqual, "Quandl")
				})
			})
		})

		Convey("Given a nil config", func() {
			Convey("Then service Init fails", func() {
				err := svc.Init(ctx, nil, testBuildTime, testGitCommit, testVersion)
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestStart(t *testing.T) {
	Convey("Having a correctly initialised Service with mocked dependencies", t, func() {
		cfg, err := config.Get()
		So(err, ShouldBeNil)

		hcMock := &serviceMock.HealthCheckerMock{
			StartFunc: func(ctx context.Context) {},
		}

		serverWg := &sync.WaitGroup{}
		serverMock := &serviceMock.HTTPServerMock{}

		svc := &service.Service{
			Cfg:         cfg,
			Server:      serverMock,
			HealthCheck: hcMock,
		}

		Convey("When a service with a successful HTTP server is started", func() {
			serverMock.ListenAndServeFunc = func() error {
				serverWg.Done()
				return nil
			}
			serverWg.Add(1)
			err := svc.Start(ctx, make(chan error, 1))
			So(err, ShouldBeNil)

			Convey("Then healthcheck is started and HTTP server starts listening", func() {
				So(len(hcMock.StartCalls()), ShouldEqual, 1)
				serverWg.Wait() // Wait for HTTP server go-routine to finish
				So(len(serverMock.ListenAndServeCalls()), ShouldEqual, 1)
			})
		})

		Convey("When a service with a failing HTTP server is started", func() {
			serverMock.ListenAndServeFunc = func() error {
				serverWg.Done()
				return errServer
			}
			errChan := make(chan error, 1)
			serverWg.Add(1)
			err := svc.Start(ctx, errChan)
			So(err, ShouldBeNil)

			Convey("Then HTTP server errors are reported to the provided errors channel", func() {
				rxErr := <-errChan
				So(rxErr.Error(), ShouldResemble, fmt.Sprintf("failure in http listen and serve: %s", errServer.Error()))
				So(errors.Is(rxErr, errServer), ShouldBeTrue)
			})
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Having a correctly initialised service", t, func() {
		cfg, err := config.Get()
		So(err, ShouldBeNil)

		hcStopped := false

		// healthcheck Stop does not depend on any other service being closed/stopped
		hcMock := &serviceMock.HealthCheckerMock{
			StopFunc: func() { hcStopped = true },
		}

		// server Shutdown will fail if healthcheck is not stopped
		serverMock := &serviceMock.HTTPServerMock{
			ShutdownFunc: func(ctx context.Context) error {
				if !hcStopped {
					return fmt.Errorf("server stopped before healthcheck")
				}
				return nil
			},
		}

		svc := &service.Service{
			Cfg:         cfg,
			Server:      serverMock,
			HealthCheck: hcMock,
		}

		Convey("Closing the service results in all the dependencies being closed in the expected order", func() {
			err := svc.Close(context.Background())
			So(err, ShouldBeNil)
			So(hcMock.StopCalls(), ShouldHaveLength, 1)
			So(serverMock.ShutdownCalls(), ShouldHaveLength, 1)
		})

		Convey("If the server fails to stop, the Close operation returns an error", func() {
			serverMock.ShutdownFunc = func(ctx context.Context) error {
				return errServer
			}

			err = svc.Close(context.Background())
			So(err, ShouldNotBeNil)
			So(hcMock.StopCalls(), ShouldHaveLength, 1)
			So(serverMock.ShutdownCalls(), ShouldHaveLength, 1)
		})

		Convey("If the service was never fully initialised, Close still succeeds", func() {
			svc := &service.Service{Cfg: cfg}
			err := svc.Close(context.Background())
			So(err, ShouldBeNil)
		})
	})
}

func TestCloseOtel(t *testing.T) {
	Convey("Having a service initialised with open telemetry enabled", t, func() {
		cfg, err := config.Get()
		So(err, ShouldBeNil)
		cfgCopy := *cfg
		cfgCopy.OtelEnabled = true

		otelClosed := 0
		service.SetupOTel = func(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
			return func(context.Context) error {
				otelClosed++
				return errOtel
			}, nil
		}
		service.GetHealthCheck = func(cfg *config.Config, buildTime, gitCommit, version string) (service.HealthChecker, error) {
			return &serviceMock.HealthCheckerMock{
				AddCheckFunc: func(name string, checker healthcheck.Checker) error { return nil },
				StopFunc:     func() {},
			}, nil
		}
		service.GetHTTPServer = func(bindAddr string, router http.Handler) service.HTTPServer {
			return &serviceMock.HTTPServerMock{
				ShutdownFunc: func(ctx context.Context) error { return nil },
			}
		}

		svc := service.New()
		So(svc.Init(ctx, &cfgCopy, testBuildTime, testGitCommit, testVersion), ShouldBeNil)

		Convey("When the open telemetry shutdown fails", func() {
			err := svc.Close(context.Background())

			Convey("Then close reports the failure after shutting it down once", func() {
				So(err, ShouldNotBeNil)
				So(otelClosed, ShouldEqual, 1)
			})
		})
	})
}
