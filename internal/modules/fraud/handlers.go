package fraud

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/quantum-lab/internal/modules/kernel"
)

// Handler handles fraud analysis HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new fraud handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "fraud").Logger(),
	}
}

// AnalyzeRequest is the POST /analyze payload.
type AnalyzeRequest struct {
	Users [][]float64 `json:"users"`
	Nu    float64     `json:"nu,omitempty"`
	Seed  int64       `json:"seed,omitempty"`
}

// HandleDemo handles GET /demo - seeded synthetic detection pipeline
func (h *Handler) HandleDemo(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.service.Demo()
	if err != nil {
		h.log.Error().Err(err).Msg("Fraud demo failed")
		http.Error(w, "Fraud demo failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analysis)
}

// HandleAnalyze handles POST /analyze - detect anomalies in caller vectors
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if len(req.Users) < 2 {
		http.Error(w, "At least 2 feature vectors required", http.StatusBadRequest)
		return
	}

	analysis, err := h.service.Analyze(req.Users, req.Nu, req.Seed)
	if err != nil {
		var dimErr *kernel.DimensionError
		if errors.As(err, &dimErr) {
			http.Error(w, dimErr.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Fraud analysis failed")
		http.Error(w, "Fraud analysis failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analysis)
}
