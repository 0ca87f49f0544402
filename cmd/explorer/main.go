package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ONSdigital/dp-quandl-api/config"
	"github.com/ONSdigital/dp-quandl-api/quandl"
	"github.com/ONSdigital/dp-quandl-api/service"
	"github.com/ONSdigital/log.go/v2/log"
)

const serviceName = "dp-quandl-explorer"

type dataLogger interface {
	LogData() map[string]interface{}
}

// query is one lookup typed in by the user
type query struct {
	DatabaseCode string
	DatasetCode  string
	Rows         uint
}

func main() {
	log.Namespace = serviceName
	ctx := context.Background()

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(ctx, "error getting config", err)
		os.Exit(1)
	}

	session, err := service.GetQuandlSession(cfg, service.GetQuandlClient(cfg))
	if err != nil {
		log.Fatal(ctx, "fatal error trying to create quandl session", err, log.Data{"quandl_url": cfg.QuandlURL})
		os.Exit(1)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		q, ok := scanQuery(scanner)
		if !ok {
			return
		}
		log.Info(ctx, "querying quandl", log.Data{"query": q})

		result, err := run(ctx, session, q)
		if err != nil {
			logData := log.Data{"query": q}
			var dl dataLogger
			if errors.As(err, &dl) {
				for k, v := range dl.LogData() {
					logData[k] = v
				}
			}
			log.Error(ctx, "quandl query failed", err, logData)
			continue
		}

		b, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Error(ctx, "failed to marshal quandl result", err)
			continue
		}
		fmt.Println(string(b))
	}
}

// run lists the database codes when no dataset is given, otherwise fetches
// the dataset
func run(ctx context.Context, s *quandl.Session, q query) (interface{}, error) {
	if q.DatasetCode == "" {
		return s.NewListRequest(q.DatabaseCode).Run(ctx)
	}

	req := s.NewDataRequest(q.DatabaseCode, q.DatasetCode)
	if q.Rows > 0 {
		req = req.Rows(q.Rows)
	}
	return req.Run(ctx)
}

// scanQuery creates a query according to the user input
func scanQuery(scanner *bufio.Scanner) (query, bool) {
	fmt.Println("--- [Query Quandl] ---")

	fmt.Println("Please type the database code")
	fmt.Printf("$ ")
	if !scanner.Scan() {
		return query{}, false
	}
	database := scanner.Text()

	fmt.Println("Please type the dataset code (leave empty to list the database)")
	fmt.Printf("$ ")
	if !scanner.Scan() {
		return query{}, false
	}
	dataset := scanner.Text()

	q := query{
		DatabaseCode: database,
		DatasetCode:  dataset,
	}
	if dataset == "" {
		return q, true
	}

	fmt.Println("Please type the number of rows (leave empty for all)")
	fmt.Printf("$ ")
	if !scanner.Scan() {
		return query{}, false
	}
	if rows, err := strconv.ParseUint(scanner.Text(), 10, 0); err == nil {
		q.Rows = uint(rows)
	}

	return q, true
}
