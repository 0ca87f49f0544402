package quandl_test

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/ONSdigital/dp-quandl-api/quandl"
	"github.com/klauspost/compress/zip"
	"github.com/maxcnunes/httpfake"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	testCodesPath = "/api/v3/databases/YC/codes.csv"
	testCodesCSV  = `"YC/MYS5Y","Malaysian Government 5-Year Bond Yield"
"YC/CHN7Y","Chinese Government 7-Year Bond Yield"
YC/SGP3M,"Singapore Government 3-Month Money Market Rate"
YC/ZAF9M,"South African Government 9-Month Money Market Rate, ""ZAR"""
`
)

// zipFiles returns a ZIP archive holding one file per content
func zipFiles(contents ...string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for i, c := range contents {
		f, err := w.Create(string(rune('a'+i)) + "-dataset-codes.csv")
		So(err, ShouldBeNil)
		_, err = f.Write([]byte(c))
		So(err, ShouldBeNil)
	}
	So(w.Close(), ShouldBeNil)
	return buf.Bytes()
}

func TestListRequestRun(t *testing.T) {
	Convey("Given Quandl returns a zip archive with one CSV file", t, func() {
		fake := httpfake.New()
		Reset(fake.Close)
		fake.NewHandler().Get(testCodesPath).Reply(http.StatusOK).
			SetHeader("Content-Type", "application/zip").
			Body(zipFiles(testCodesCSV))

		Convey("When the list request is run", func() {
			codes, err := newTestSession(fake).NewListRequest("YC").Run(ctx)

			Convey("Then the codes are returned in order without their database prefix", func() {
				So(err, ShouldBeNil)
				So(codes, ShouldHaveLength, 4)
				So(codes[0], ShouldResemble, quandl.DatasetCode{
					Code: "MYS5Y",
					Desc: "Malaysian Government 5-Year Bond Yield",
				})
				So(codes[1].Code, ShouldEqual, "CHN7Y")
				So(codes[2].Code, ShouldEqual, "SGP3M")
				So(codes[3], ShouldResemble, quandl.DatasetCode{
					Code: "ZAF9M",
					Desc: `South African Government 9-Month Money Market Rate, "ZAR"`,
				})
			})
		})
	})

	Convey("Given a code with several separators", t, func() {
		mockClient := respondWith(http.StatusOK, string(zipFiles(`"YC/SUB/MYS5Y","desc"`)))
		codes, err := quandl.NewSession(mockClient).NewListRequest("YC").Run(ctx)

		Convey("Then everything after the last separator is the code", func() {
			So(err, ShouldBeNil)
			So(codes, ShouldResemble, []quandl.DatasetCode{{Code: "MYS5Y", Desc: "desc"}})
		})
	})

	Convey("Given an archive holding an empty CSV file", t, func() {
		mockClient := respondWith(http.StatusOK, string(zipFiles("")))
		codes, err := quandl.NewSession(mockClient).NewListRequest("YC").Run(ctx)

		Convey("Then an empty list is returned", func() {
			So(err, ShouldBeNil)
			So(codes, ShouldNotBeNil)
			So(codes, ShouldBeEmpty)
		})
	})

	Convey("Given an archive that does not hold exactly one file", t, func() {
		for n, archive := range map[int][]byte{
			0: zipFiles(),
			2: zipFiles(testCodesCSV, testCodesCSV),
		} {
			mockClient := respondWith(http.StatusOK, string(archive))
			codes, err := quandl.NewSession(mockClient).NewListRequest("YC").Run(ctx)

			So(codes, ShouldBeNil)
			var apiErr *quandl.APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Message, ShouldEqual, "expected one file in archive, found "+string(rune('0'+n)))
		}
	})

	Convey("Given a row whose code has no separator", t, func() {
		csv := `"YC/MYS5Y","Malaysian Government 5-Year Bond Yield"
"CHN7Y","Chinese Government 7-Year Bond Yield"
"YC/SGP3M","Singapore Government 3-Month Money Market Rate"
`
		mockClient := respondWith(http.StatusOK, string(zipFiles(csv)))
		codes, err := quandl.NewSession(mockClient).NewListRequest("YC").Run(ctx)

		Convey("Then the whole listing fails naming the value", func() {
			So(codes, ShouldBeNil)
			var apiErr *quandl.APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "`CHN7Y`")
		})
	})

	Convey("Given a row without two columns", t, func() {
		mockClient := respondWith(http.StatusOK, string(zipFiles("YC/MYS5Y,desc,extra\n")))
		_, err := quandl.NewSession(mockClient).NewListRequest("YC").Run(ctx)

		Convey("Then a csv decode error is returned", func() {
			var decodeErr *quandl.DecodeError
			So(errors.As(err, &decodeErr), ShouldBeTrue)
			So(decodeErr.Format, ShouldEqual, "csv")
		})
	})

	Convey("Given a body that is not a zip archive", t, func() {
		mockClient := respondWith(http.StatusOK, "YC/MYS5Y,desc")
		_, err := quandl.NewSession(mockClient).NewListRequest("YC").Run(ctx)

		Convey("Then a zip decode error is returned", func() {
			var decodeErr *quandl.DecodeError
			So(errors.As(err, &decodeErr), ShouldBeTrue)
			So(decodeErr.Format, ShouldEqual, "zip")
		})
	})

	Convey("Given Quandl rejects the list request", t, func() {
		mockClient := respondWith(http.StatusForbidden, testErrorBody)
		_, err := quandl.NewSession(mockClient).WithAPIKey("key").NewListRequest("YC").Run(ctx)

		Convey("Then an API error with the status is returned", func() {
			var apiErr *quandl.APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Code(), ShouldEqual, http.StatusForbidden)
			So(mockClient.GetCalls()[0].URL, ShouldEqual, "https://www.quandl.com/api/v3/databases/YC/codes.csv?api_key=key")
		})
	})
}
