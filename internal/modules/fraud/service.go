package fraud

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/quantum-lab/internal/events"
	"github.com/aristath/quantum-lab/internal/modules/kernel"
)

// demoSeed pins the synthetic demo batch for reproducible results.
const demoSeed = 42

// demoBatchSize matches the original demonstration batch.
const demoBatchSize = 15

// Analysis is the anomaly detection result for one batch.
type Analysis struct {
	Anomalies     []int     `json:"anomalies"`
	Scores        []float64 `json:"scores"`
	DetectionRate float64   `json:"detectionRate"`
	Error         string    `json:"error,omitempty"` // fit diagnostic; anomalies stay empty
}

// Service runs the kernel-matrix + one-class detection pipeline.
type Service struct {
	builder   *kernel.Builder
	events    *events.Manager
	defaultNu float64
	log       zerolog.Logger
}

// NewService creates the fraud analysis service.
func NewService(builder *kernel.Builder, ev *events.Manager, defaultNu float64, log zerolog.Logger) *Service {
	return &Service{
		builder:   builder,
		events:    ev,
		defaultNu: defaultNu,
		log:       log.With().Str("service", "fraud").Logger(),
	}
}

// Analyze builds the kernel matrix for the batch, fits the one-class boundary
// and classifies every sample. nu <= 0 selects the configured default. A
// degenerate batch yields an Analysis with empty anomalies and a diagnostic
// instead of guessed results; dimension errors are fatal.
func (s *Service) Analyze(vectors [][]float64, nu float64, seed int64) (*Analysis, error) {
	if nu <= 0 {
		nu = s.defaultNu
	}

	k, err := s.builder.Build(vectors)
	if err != nil {
		return nil, fmt.Errorf("failed to build kernel matrix: %w", err)
	}

	model, err := Fit(k, nu, seed)
	if err != nil {
		var fitErr *FitError
		if errors.As(err, &fitErr) {
			s.log.Error().Err(err).Int("n", len(vectors)).Msg("Anomaly fit failed")
			if s.events != nil {
				s.events.Emit(events.AnomalyFitFailed, "fraud", map[string]interface{}{
					"n":      len(vectors),
					"reason": fitErr.Reason,
				})
			}
			return &Analysis{
				Anomalies: []int{},
				Scores:    make([]float64, len(vectors)),
				Error:     fitErr.Reason,
			}, nil
		}
		return nil, err
	}

	scores, err := model.Scores(k)
	if err != nil {
		return nil, err
	}
	flags, err := model.Classify(k)
	if err != nil {
		return nil, err
	}

	anomalies := []int{}
	for i, flagged := range flags {
		if flagged {
			anomalies = append(anomalies, i)
		}
	}

	analysis := &Analysis{
		Anomalies:     anomalies,
		Scores:        scores,
		DetectionRate: float64(len(anomalies)) / float64(len(vectors)),
	}

	s.log.Info().
		Int("n", len(vectors)).
		Int("anomalies", len(anomalies)).
		Float64("nu", nu).
		Msg("Anomaly detection completed")

	if s.events != nil {
		s.events.Emit(events.AnomalyScanComplete, "fraud", map[string]interface{}{
			"n":         len(vectors),
			"anomalies": len(anomalies),
			"nu":        nu,
		})
	}

	return analysis, nil
}

// Demo runs the full synthetic pipeline: seeded 5-D behaviour data, PCA down
// to 3 components, rotation-angle scaling, then Analyze.
func (s *Service) Demo() (*Analysis, error) {
	users := GenerateUsers(demoBatchSize, demoSeed)

	reduced, err := ProjectTo3D(users)
	if err != nil {
		return nil, fmt.Errorf("failed to reduce demo data: %w", err)
	}

	return s.Analyze(NormalizeAngles(reduced), s.defaultNu, demoSeed)
}

// DefaultNu returns the configured contamination fraction.
func (s *Service) DefaultNu() float64 {
	return s.defaultNu
}
