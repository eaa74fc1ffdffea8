package draws

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repository persists draw audit records (append-only ledger).
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new draw audit repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "draws").Logger(),
	}
}

// Create inserts a new audit record. The ID is assigned here.
func (r *Repository) Create(rec Record) error {
	query := `
		INSERT INTO draws (
			id, kind, outcome, idx, probability, method, entropy_bits, latency_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC().Format("2006-01-02 15:04:05")

	_, err := r.db.Exec(
		query,
		uuid.NewString(),
		rec.Kind,
		rec.Outcome,
		rec.Index,
		rec.Probability,
		rec.Method,
		rec.EntropyBits,
		rec.LatencyMs,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert draw record: %w", err)
	}

	return nil
}

// RecentEntropy returns the most recent entropy readings for a draw kind,
// oldest first, for trend analysis.
func (r *Repository) RecentEntropy(kind string, limit int) ([]float64, error) {
	// rowid preserves insertion order within a second, unlike created_at.
	query := `
		SELECT entropy_bits FROM (
			SELECT rowid, entropy_bits FROM draws
			WHERE kind = ? AND entropy_bits > 0
			ORDER BY rowid DESC
			LIMIT ?
		) ORDER BY rowid ASC
	`

	rows, err := r.db.Query(query, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query entropy readings: %w", err)
	}
	defer rows.Close()

	var readings []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan entropy reading: %w", err)
		}
		readings = append(readings, v)
	}

	return readings, rows.Err()
}

// CountByMethod returns draw counts grouped by method, for observability.
func (r *Repository) CountByMethod() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT method, COUNT(*) FROM draws GROUP BY method`)
	if err != nil {
		return nil, fmt.Errorf("failed to count draws: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var method string
		var count int
		if err := rows.Scan(&method, &count); err != nil {
			return nil, fmt.Errorf("failed to scan draw count: %w", err)
		}
		counts[method] = count
	}

	return counts, rows.Err()
}
