package draws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleDrawCard(t *testing.T) {
	handler := NewHandler(newTestService(5, 4096), zerolog.Nop())

	req := httptest.NewRequest("GET", "/card", nil)
	w := httptest.NewRecorder()
	handler.HandleDrawCard(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var draw CardDraw
	require.NoError(t, json.NewDecoder(w.Body).Decode(&draw))
	assert.NotEmpty(t, draw.Card)
	assert.Equal(t, "quantum", draw.Method)
}

func TestHandleFlipCoin(t *testing.T) {
	handler := NewHandler(newTestService(9, 4096), zerolog.Nop())

	req := httptest.NewRequest("GET", "/coin", nil)
	w := httptest.NewRecorder()
	handler.HandleFlipCoin(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var flip CoinFlip
	require.NoError(t, json.NewDecoder(w.Body).Decode(&flip))
	assert.Contains(t, []string{"Heads", "Tails"}, flip.Outcome)
	assert.Equal(t, 0.5, flip.Probability)
}

func TestHandleDrawNumber(t *testing.T) {
	handler := NewHandler(newTestService(13, 4096), zerolog.Nop())

	req := httptest.NewRequest("GET", "/number?min=1&max=6", nil)
	w := httptest.NewRecorder()
	handler.HandleDrawNumber(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var draw NumberDraw
	require.NoError(t, json.NewDecoder(w.Body).Decode(&draw))
	assert.GreaterOrEqual(t, draw.Number, 1)
	assert.LessOrEqual(t, draw.Number, 6)
	assert.Equal(t, 1, draw.Min)
	assert.Equal(t, 6, draw.Max)
}

func TestHandleDrawNumberRejectsBadParams(t *testing.T) {
	handler := NewHandler(newTestService(13, 4096), zerolog.Nop())

	req := httptest.NewRequest("GET", "/number?min=abc", nil)
	w := httptest.NewRecorder()
	handler.HandleDrawNumber(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDrawNumberRejectsOversizedRange(t *testing.T) {
	handler := NewHandler(newTestService(13, 4096), zerolog.Nop())

	// [0, 100000] needs far more qubits than the register ceiling allows.
	req := httptest.NewRequest("GET", "/number?min=0&max=100000", nil)
	w := httptest.NewRecorder()
	handler.HandleDrawNumber(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
