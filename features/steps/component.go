package steps

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	componenttest "github.com/ONSdigital/dp-component-test"
	"github.com/ONSdigital/dp-quandl-api/config"
	"github.com/ONSdigital/dp-quandl-api/service"
	"github.com/maxcnunes/httpfake"
)

const testAPIKey = "test-key"

// Component runs the service against a fake Quandl server
type Component struct {
	Quandl     *httpfake.HTTPFake
	APIFeature *componenttest.APIFeature
	t          *testing.T
	cfg        *config.Config
	svc        *service.Service
	router     http.Handler
}

// NewComponent creates a component whose Quandl fake reports failed
// assertions to t
func NewComponent(t *testing.T) (*Component, error) {
	cfg, err := config.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	cfgCopy := *cfg
	cfgCopy.QuandlAPIKey = testAPIKey
	cfgCopy.OtelEnabled = false

	c := &Component{
		t:   t,
		cfg: &cfgCopy,
	}
	c.APIFeature = componenttest.NewAPIFeature(c.InitialiseService)
	c.Reset()

	return c, nil
}

// Reset starts a fresh Quandl fake and discards the service, which is
// initialised again by the first request of the next scenario
func (c *Component) Reset() {
	if c.Quandl != nil {
		c.Quandl.Close()
	}
	c.Quandl = httpfake.New(httpfake.WithTesting(c.t))
	c.cfg.QuandlURL = c.Quandl.Server.URL
	c.svc = nil
	c.router = nil
	c.APIFeature.Reset()
}

// Close stops the Quandl fake
func (c *Component) Close() {
	if c.Quandl != nil {
		c.Quandl.Close()
	}
}

// InitialiseService initialises the service without listening, returning
// its router
func (c *Component) InitialiseService() (http.Handler, error) {
	if c.router != nil {
		return c.router, nil
	}

	service.GetHTTPServer = func(bindAddr string, router http.Handler) service.HTTPServer {
		c.router = router
		return &http.Server{Addr: bindAddr, Handler: router}
	}

	c.svc = service.New()
	if err := c.svc.Init(context.Background(), c.cfg, "1", "component", "test"); err != nil {
		return nil, fmt.Errorf("failed to initialise service: %w", err)
	}

	return c.router, nil
}
