package draws

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/aristath/quantum-lab/internal/modules/simulator"
)

// Handler handles draw HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new draws handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "draws").Logger(),
	}
}

// HandleDrawCard handles GET /card - quantum random card draw
func (h *Handler) HandleDrawCard(w http.ResponseWriter, r *http.Request) {
	result := h.service.DrawCard()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleFlipCoin handles GET /coin - quantum coin flip
func (h *Handler) HandleFlipCoin(w http.ResponseWriter, r *http.Request) {
	result := h.service.FlipCoin()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleDrawNumber handles GET /number?min=&max= - bounded random number
func (h *Handler) HandleDrawNumber(w http.ResponseWriter, r *http.Request) {
	min, err := queryInt(r, "min", 0)
	if err != nil {
		http.Error(w, "Invalid min parameter", http.StatusBadRequest)
		return
	}
	max, err := queryInt(r, "max", 100)
	if err != nil {
		http.Error(w, "Invalid max parameter", http.StatusBadRequest)
		return
	}

	result, err := h.service.DrawNumber(min, max)
	if err != nil {
		var overflow *simulator.OverflowError
		if errors.As(err, &overflow) {
			http.Error(w, overflow.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.log.Error().Err(err).Msg("Number draw failed")
		http.Error(w, "Number draw failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func queryInt(r *http.Request, key string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}
