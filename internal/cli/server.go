package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roach88/airq/internal/chat"
)

// Asker answers free-text questions. *chat.Service implements it.
type Asker interface {
	Ask(ctx context.Context, question string) chat.Reply
}

// Partitioner lists the available movement partitions.
// *store.Accessor implements it.
type Partitioner interface {
	Partitions() ([]string, error)
}

type askRequest struct {
	Question string `json:"question"`
}

type errorBody struct {
	Error string `json:"error"`
}

// NewRouter builds the HTTP API:
//
//	POST /ask      {"question": "..."} -> chat.Reply
//	GET  /healthz  partition count, 503 when no data is readable
//	GET  /metrics  Prometheus exposition of reg
func NewRouter(svc Asker, data Partitioner, reg *prometheus.Registry, logger *slog.Logger) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/ask", func(w http.ResponseWriter, req *http.Request) {
		var body askRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<16)).Decode(&body); err != nil {
			writeJSON(w, logger, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
			return
		}
		q := strings.TrimSpace(body.Question)
		if q == "" {
			writeJSON(w, logger, http.StatusBadRequest, errorBody{Error: "question is required"})
			return
		}

		reply := svc.Ask(req.Context(), q)
		status := http.StatusOK
		if reply.Kind == chat.KindError {
			status = http.StatusInternalServerError
		}
		writeJSON(w, logger, status, reply)
	}).Methods(http.MethodPost)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		parts, err := data.Partitions()
		if err != nil || len(parts) == 0 {
			msg := "no movement partitions"
			if err != nil {
				msg = err.Error()
			}
			writeJSON(w, logger, http.StatusServiceUnavailable, errorBody{Error: msg})
			return
		}
		writeJSON(w, logger, http.StatusOK, map[string]any{"status": "ok", "partitions": len(parts)})
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})).Methods(http.MethodGet)

	return r
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("response not written", "error", err)
	}
}
