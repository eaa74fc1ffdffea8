package pqc

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler handles PQC demo HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new PQC handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "pqc").Logger(),
	}
}

// HandleDemo handles GET /demo - key exchange round trip
func (h *Handler) HandleDemo(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.RunDemo()
	if err != nil {
		h.log.Error().Err(err).Msg("Key exchange demo failed")
		http.Error(w, "Key exchange demo failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
