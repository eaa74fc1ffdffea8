package scheduler

import (
	"fmt"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"github.com/aristath/quantum-lab/internal/events"
	"github.com/aristath/quantum-lab/internal/modules/draws"
	"github.com/aristath/quantum-lab/internal/modules/entropy"
)

// smaPeriod is the moving-average window over recent entropy readings.
const smaPeriod = 8

// auditReadings is how many recent readings the audit inspects per stream.
const auditReadings = 64

// EntropyAuditJob periodically reviews randomness quality: it reads recent
// entropy figures from the draw ledger, smooths them with a moving average
// and logs health per stream. Diagnostics only; it never touches outcomes.
type EntropyAuditJob struct {
	repo      *draws.Repository
	service   *draws.Service
	events    *events.Manager
	threshold float64
	log       zerolog.Logger
}

// NewEntropyAuditJob creates the entropy audit job.
func NewEntropyAuditJob(
	repo *draws.Repository,
	service *draws.Service,
	ev *events.Manager,
	threshold float64,
	log zerolog.Logger,
) *EntropyAuditJob {
	return &EntropyAuditJob{
		repo:      repo,
		service:   service,
		events:    ev,
		threshold: threshold,
		log:       log.With().Str("job", "entropy_audit").Logger(),
	}
}

// Name returns the job name
func (j *EntropyAuditJob) Name() string {
	return "entropy_audit"
}

// Run executes the audit
func (j *EntropyAuditJob) Run() error {
	for kind, status := range map[string]entropy.Status{
		draws.KindCard: j.service.CardEntropyHealth(),
		draws.KindCoin: j.service.CoinEntropyHealth(),
	} {
		if err := j.auditStream(kind, status); err != nil {
			return err
		}
	}
	return nil
}

func (j *EntropyAuditJob) auditStream(kind string, status entropy.Status) error {
	readings, err := j.repo.RecentEntropy(kind, auditReadings)
	if err != nil {
		return fmt.Errorf("failed to load %s entropy readings: %w", kind, err)
	}

	// Trend over the smoothed readings, once there is enough history.
	smaLatest := -1.0
	if len(readings) >= smaPeriod {
		sma := talib.Sma(readings, smaPeriod)
		smaLatest = sma[len(sma)-1]

		if smaLatest < j.threshold && status == entropy.StatusNominal {
			status = entropy.StatusDegraded
		}
	}

	event := j.log.Info()
	if status == entropy.StatusDegraded {
		event = j.log.Warn()
	}
	event = event.
		Str("stream", kind).
		Str("status", string(status)).
		Float64("threshold", j.threshold).
		Int("readings", len(readings))
	if smaLatest >= 0 {
		event = event.Float64("sma_bits_per_byte", smaLatest)
	}
	event.Msg("Entropy audit")

	if status == entropy.StatusDegraded && j.events != nil {
		j.events.Emit(events.EntropyDegraded, "scheduler", map[string]interface{}{
			"stream":    kind,
			"threshold": j.threshold,
		})
	}

	return nil
}
