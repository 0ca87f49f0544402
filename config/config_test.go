package config

import (
	"os"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	Convey("Given an environment with no environment variables set", t, func() {
		os.Clearenv()
		cfg = nil
		cfg, err := Get()

		Convey("When the config values are retrieved", func() {

			Convey("Then there should be no error returned", func() {
				So(err, ShouldBeNil)
			})

			Convey("Then the values should be set to the expected defaults", func() {
				So(cfg.BindAddr, ShouldEqual, ":28300")
				So(cfg.GracefulShutdownTimeout, ShouldEqual, 5*time.Second)
				So(cfg.HealthCheckInterval, ShouldEqual, 30*time.Second)
				So(cfg.HealthCheckCriticalTimeout, ShouldEqual, 90*time.Second)
				So(cfg.DefaultRequestTimeout, ShouldEqual, 10*time.Second)
				So(cfg.QuandlURL, ShouldEqual, "https://www.quandl.com")
				So(cfg.QuandlAPIKey, ShouldEqual, "")
				So(cfg.QuandlHealthDatabase, ShouldEqual, "WIKI")
				So(cfg.QuandlHealthDataset, ShouldEqual, "AAPL")
				So(cfg.OTExporterOTLPEndpoint, ShouldEqual, "localhost:4317")
				So(cfg.OTServiceName, ShouldEqual, "dp-quandl-api")
				So(cfg.OTBatchTimeout, ShouldEqual, 5*time.Second)
				So(cfg.OtelEnabled, ShouldBeFalse)
			})

			Convey("Then a second call to config should return the same config", func() {
				newCfg, newErr := Get()
				So(newErr, ShouldBeNil)
				So(newCfg, ShouldResemble, cfg)
			})
		})
	})

	Convey("Given the Quandl settings are set in the environment", t, func() {
		os.Clearenv()
		os.Setenv("QUANDL_URL", "http://localhost:9999")
		os.Setenv("QUANDL_API_KEY", "secret")
		cfg = nil
		cfg, err := Get()

		Convey("Then they override the defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.QuandlURL, ShouldEqual, "http://localhost:9999")
			So(cfg.QuandlAPIKey, ShouldEqual, "secret")
		})

		Reset(func() {
			os.Clearenv()
		})
	})
}
