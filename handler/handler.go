package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ONSdigital/dp-quandl-api/quandl"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/gorilla/mux"
)

// Datasets serves Quandl datasets and dataset listings
type Datasets struct {
	session Session
}

// CodesResponse is the body returned for a database listing
type CodesResponse struct {
	Count int                  `json:"count"`
	Items []quandl.DatasetCode `json:"items"`
}

// NewDatasets creates a new Datasets handler
func NewDatasets(s Session) *Datasets {
	return &Datasets{
		session: s,
	}
}

// GetData handles GET /datasets/{database}/{dataset}, returning the Quandl
// response body for the dataset
func (h *Datasets) GetData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	logData := log.Data{
		"database": vars["database"],
		"dataset":  vars["dataset"],
		"query":    r.URL.Query(),
	}

	req, err := parseDataRequest(h.session.NewDataRequest(vars["database"], vars["dataset"]), r.URL.Query())
	if err != nil {
		h.handleError(ctx, w, "invalid dataset query", err, logData)
		return
	}

	data, err := req.Run(ctx)
	if err != nil {
		h.handleError(ctx, w, "failed to get dataset from quandl", err, logData)
		return
	}

	log.Info(ctx, "dataset obtained from quandl", logData)
	writeJSON(ctx, w, data, logData)
}

// GetCodes handles GET /databases/{database}/codes, returning every dataset
// code in the database
func (h *Datasets) GetCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	database := mux.Vars(r)["database"]
	logData := log.Data{
		"database": database,
	}

	codes, err := h.session.NewListRequest(database).Run(ctx)
	if err != nil {
		h.handleError(ctx, w, "failed to get dataset codes from quandl", err, logData)
		return
	}

	logData["count"] = len(codes)
	log.Info(ctx, "dataset codes obtained from quandl", logData)
	writeJSON(ctx, w, CodesResponse{Count: len(codes), Items: codes}, logData)
}

func (h *Datasets) handleError(ctx context.Context, w http.ResponseWriter, event string, err error, logData log.Data) {
	status := statusCode(err)
	for k, v := range unwrapLogData(err) {
		logData[k] = v
	}
	logData["response_status"] = status

	log.Error(ctx, event, err, logData)

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	http.Error(w, msg, status)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v interface{}, logData log.Data) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error(ctx, "failed to marshal response", err, logData)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(b); err != nil {
		log.Error(ctx, "failed to write response", err, logData)
	}
}
