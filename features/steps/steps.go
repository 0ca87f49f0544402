package steps

import (
	"encoding/json"
	"fmt"
	"net/http"

	assistdog "github.com/ONSdigital/dp-assistdog"
	"github.com/ONSdigital/dp-quandl-api/handler"
	"github.com/ONSdigital/dp-quandl-api/quandl"
	"github.com/cucumber/godog"
	"github.com/google/go-cmp/cmp"
)

// RegisterSteps maps the human-readable regular expressions to their corresponding funcs
func (c *Component) RegisterSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^quandl returns the following data for dataset "([^"]*)" when queried with "([^"]*)":$`, c.quandlReturnsData)
	ctx.Step(`^quandl responds to dataset "([^"]*)" with status (\d+):$`, c.quandlRespondsWithStatus)
	ctx.Step(`^quandl lists the following codes for database "([^"]*)":$`, c.quandlListsCodes)
	ctx.Step(`^the listing should contain the following codes:$`, c.theListingShouldContain)
}

// quandlReturnsData generates a mocked response for Quandl
// GET /api/v3/datasets/{database}/{dataset}/data.json, asserting the query
// it is called with
func (c *Component) quandlReturnsData(dataset, query string, body *godog.DocString) error {
	c.Quandl.NewHandler().
		Get(datasetPath(dataset)).
		AssertCustom(newQueryAssertor(query)).
		Reply(http.StatusOK).
		BodyString(body.Content).
		AddHeader("Content-Type", "application/json")

	return nil
}

// quandlRespondsWithStatus generates a mocked failure for a Quandl dataset
func (c *Component) quandlRespondsWithStatus(dataset string, status int, body *godog.DocString) error {
	c.Quandl.NewHandler().
		Get(datasetPath(dataset)).
		Reply(status).
		BodyString(body.Content).
		AddHeader("Content-Type", "application/json")

	return nil
}

// quandlListsCodes generates a mocked response for Quandl
// GET /api/v3/databases/{database}/codes.csv holding the provided CSV
func (c *Component) quandlListsCodes(database string, csv *godog.DocString) error {
	archive, err := codesArchive(database, csv.Content)
	if err != nil {
		return fmt.Errorf("failed to generate codes archive: %w", err)
	}

	c.Quandl.NewHandler().
		Get("/api/v3/databases/"+database+"/codes.csv").
		AssertCustom(newQueryAssertor("api_key="+testAPIKey)).
		Reply(http.StatusOK).
		Body(archive).
		AddHeader("Content-Type", "application/zip")

	return nil
}

// theListingShouldContain validates the codes returned by the service
// against the table, in order
func (c *Component) theListingShouldContain(table *godog.Table) error {
	expected, err := assistdog.NewDefault().CreateSlice(new(quandl.DatasetCode), table)
	if err != nil {
		return fmt.Errorf("failed to create slice from godog table: %w", err)
	}

	resp := c.APIFeature.HttpResponse
	if resp == nil {
		return fmt.Errorf("no response received from the service")
	}
	defer resp.Body.Close()

	var listing handler.CodesResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return fmt.Errorf("failed to decode listing: %w", err)
	}

	if listing.Count != len(listing.Items) {
		return fmt.Errorf("listing count %d does not match its %d items", listing.Count, len(listing.Items))
	}

	got := make([]*quandl.DatasetCode, 0, len(listing.Items))
	for i := range listing.Items {
		got = append(got, &listing.Items[i])
	}

	if diff := cmp.Diff(got, expected); diff != "" {
		return fmt.Errorf("-got +expected)\n%s\n", diff)
	}

	return nil
}

func datasetPath(dataset string) string {
	return "/api/v3/datasets/" + dataset + "/data.json"
}
