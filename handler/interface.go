package handler

import (
	"github.com/ONSdigital/dp-quandl-api/quandl"
)

// Session contains the required methods for the Quandl session
type Session interface {
	NewDataRequest(databaseCode, datasetCode string) quandl.DataRequest
	NewListRequest(databaseCode string) quandl.ListRequest
}

type dataLogger interface {
	LogData() map[string]interface{}
}

type coder interface {
	Code() int
}
