package draws

import "time"

// CardDraw is the response for a quantum card draw.
type CardDraw struct {
	Card               string  `json:"card"`
	EntropyBitsPerByte float64 `json:"entropyBitsPerByte"`
	LatencyMs          float64 `json:"latencyMs"`
	Method             string  `json:"method"` // "quantum" or "fallback"
}

// CoinFlip is the response for a quantum coin flip.
type CoinFlip struct {
	Outcome     string  `json:"outcome"` // "Heads" or "Tails"
	Probability float64 `json:"probability"`
	Method      string  `json:"method"`
}

// NumberDraw is the response for a bounded random number draw.
type NumberDraw struct {
	Number int    `json:"number"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Method string `json:"method"`
}

// Record is one row in the draw audit ledger (append-only).
type Record struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"` // card, coin, number
	Outcome     string    `json:"outcome"`
	Index       int       `json:"index"`
	Probability float64   `json:"probability"`
	Method      string    `json:"method"`
	EntropyBits float64   `json:"entropy_bits"` // window bits-per-byte at draw time
	LatencyMs   float64   `json:"latency_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// Kind values for audit records.
const (
	KindCard   = "card"
	KindCoin   = "coin"
	KindNumber = "number"
)
