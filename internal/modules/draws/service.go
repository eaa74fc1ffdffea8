// Package draws provides the quantum random draw services: card draws, coin
// flips, and bounded number draws, with a classical fallback path and an
// append-only audit ledger.
package draws

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/quantum-lab/internal/events"
	"github.com/aristath/quantum-lab/internal/modules/entropy"
	"github.com/aristath/quantum-lab/internal/modules/sampler"
	"github.com/aristath/quantum-lab/internal/modules/simulator"
)

const cardQubits = 6 // 64 outcomes, 52 cards fold in by modulo

// Service runs draw circuits and maps sampled outcomes to domain values.
// Each draw allocates its own register and random source, so concurrent
// draws need no locking; the entropy windows synchronize internally.
type Service struct {
	sampler    *sampler.Sampler
	validator  *entropy.Validator
	cardWindow *entropy.Window
	coinWindow *entropy.Window
	repo       *Repository
	events     *events.Manager
	maxQubits  int
	log        zerolog.Logger

	// newSource supplies the per-call random source; tests override it for
	// deterministic, seed-driven draws.
	newSource func() *rand.Rand

	// buildProgram builds the draw circuit for a register width; tests
	// override it to exercise the fallback path.
	buildProgram func(numQubits int) (*simulator.CircuitProgram, error)
}

// Config holds draw service dependencies.
type Config struct {
	Sampler       *sampler.Sampler
	Validator     *entropy.Validator
	Repo          *Repository
	Events        *events.Manager
	MaxQubits     int
	EntropyWindow int
	Log           zerolog.Logger
}

// NewService creates the draw service.
func NewService(cfg Config) *Service {
	maxQubits := cfg.MaxQubits
	if maxQubits == 0 {
		maxQubits = simulator.DefaultMaxQubits
	}
	windowSize := cfg.EntropyWindow
	if windowSize == 0 {
		windowSize = 4096
	}

	return &Service{
		sampler:    cfg.Sampler,
		validator:  cfg.Validator,
		cardWindow: entropy.NewWindow(1<<cardQubits, windowSize),
		coinWindow: entropy.NewWindow(2, windowSize),
		repo:       cfg.Repo,
		events:     cfg.Events,
		maxQubits:  maxQubits,
		log:        cfg.Log.With().Str("service", "draws").Logger(),
		newSource: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		buildProgram: simulator.UniformProgram,
	}
}

// DrawCard samples a 6-qubit uniform circuit and maps the outcome to a card.
func (s *Service) DrawCard() CardDraw {
	start := time.Now()
	result := s.measure(cardQubits)

	card, err := CardFromIndex(result.Index)
	if err != nil {
		// Unreachable for a 6-qubit index; guard anyway.
		s.log.Error().Err(err).Int("index", result.Index).Msg("Card mapping failed")
		card, _ = CardFromIndex(result.Index & 0x3F)
	}

	s.cardWindow.Record(result.Index)
	bitsPerByte := s.cardWindow.BitsPerByte()
	latency := float64(time.Since(start).Microseconds()) / 1000

	s.audit(Record{
		Kind:        KindCard,
		Outcome:     card,
		Index:       result.Index,
		Probability: result.Probability,
		Method:      string(result.Method),
		EntropyBits: bitsPerByte,
		LatencyMs:   latency,
	})

	return CardDraw{
		Card:               card,
		EntropyBitsPerByte: bitsPerByte,
		LatencyMs:          latency,
		Method:             string(result.Method),
	}
}

// FlipCoin samples a single-qubit Hadamard circuit and maps the bit to a face.
func (s *Service) FlipCoin() CoinFlip {
	start := time.Now()
	result := s.measure(1)

	outcome, err := CoinFromBit(result.Index)
	if err != nil {
		s.log.Error().Err(err).Int("index", result.Index).Msg("Coin mapping failed")
		outcome = "Heads"
	}

	s.coinWindow.Record(result.Index)
	latency := float64(time.Since(start).Microseconds()) / 1000

	s.audit(Record{
		Kind:        KindCoin,
		Outcome:     outcome,
		Index:       result.Index,
		Probability: result.Probability,
		Method:      string(result.Method),
		EntropyBits: s.coinWindow.BitsPerByte(),
		LatencyMs:   latency,
	})

	return CoinFlip{
		Outcome:     outcome,
		Probability: 0.5,
		Method:      string(result.Method),
	}
}

// DrawNumber samples a number in [min, max]. Ranges needing more qubits than
// the configured ceiling are rejected before execution.
func (s *Service) DrawNumber(min, max int) (NumberDraw, error) {
	if min > max {
		min, max = max, min
	}

	numQubits := QubitsForRange(min, max)
	if err := simulator.CheckWidth(numQubits, s.maxQubits); err != nil {
		return NumberDraw{}, err
	}

	start := time.Now()
	result := s.measure(numQubits)
	number := NumberFromIndex(result.Index, min, max)

	s.audit(Record{
		Kind:        KindNumber,
		Outcome:     strconv.Itoa(number),
		Index:       result.Index,
		Probability: result.Probability,
		Method:      string(result.Method),
		LatencyMs:   float64(time.Since(start).Microseconds()) / 1000,
	})

	return NumberDraw{
		Number: number,
		Min:    min,
		Max:    max,
		Method: string(result.Method),
	}, nil
}

// CardEntropyHealth reports the card stream's randomness status.
func (s *Service) CardEntropyHealth() entropy.Status {
	return s.validator.Health(s.cardWindow)
}

// CoinEntropyHealth reports the coin stream's randomness status.
func (s *Service) CoinEntropyHealth() entropy.Status {
	return s.validator.Health(s.coinWindow)
}

// FallbackCount reports how many draws degraded to the classical path.
func (s *Service) FallbackCount() uint64 {
	return s.sampler.FallbackCount()
}

// measure builds and measures the uniform draw circuit, degrading to the
// classical fallback when circuit construction or simulation fails.
func (s *Service) measure(numQubits int) sampler.Result {
	rng := s.newSource()

	program, err := s.buildProgram(numQubits)
	if err != nil {
		result := s.sampler.Fallback(numQubits, rng, err.Error())
		s.emitFallback(numQubits, result.Reason)
		return result
	}

	result := s.sampler.Measure(program, rng)
	if result.Method == sampler.MethodFallback {
		s.emitFallback(numQubits, result.Reason)
	}
	return result
}

func (s *Service) emitFallback(numQubits int, reason string) {
	if s.events == nil {
		return
	}
	s.events.Emit(events.FallbackUsed, "draws", map[string]interface{}{
		"num_qubits": numQubits,
		"reason":     reason,
	})
}

func (s *Service) audit(rec Record) {
	if s.events != nil {
		s.events.Emit(events.DrawCompleted, "draws", map[string]interface{}{
			"kind":   rec.Kind,
			"method": rec.Method,
		})
	}

	if s.repo == nil {
		return
	}
	if err := s.repo.Create(rec); err != nil {
		s.log.Error().Err(err).Str("kind", rec.Kind).Msg("Failed to persist draw record")
	}
}
