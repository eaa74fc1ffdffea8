package draws

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/quantum-lab/internal/database"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())

	return NewRepository(db.Conn(), zerolog.Nop())
}

func TestRepositoryCreateAndCount(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Create(Record{
		Kind:        KindCard,
		Outcome:     "A♠",
		Index:       0,
		Probability: 0.015625,
		Method:      "quantum",
		EntropyBits: 7.9,
		LatencyMs:   0.4,
	}))
	require.NoError(t, repo.Create(Record{
		Kind:    KindCoin,
		Outcome: "Heads",
		Method:  "fallback",
	}))

	counts, err := repo.CountByMethod()
	require.NoError(t, err)
	assert.Equal(t, 1, counts["quantum"])
	assert.Equal(t, 1, counts["fallback"])
}

func TestRepositoryRecentEntropy(t *testing.T) {
	repo := newTestRepo(t)

	readings := []float64{7.1, 7.3, 7.5}
	for _, r := range readings {
		require.NoError(t, repo.Create(Record{
			Kind:        KindCard,
			Outcome:     "A♠",
			Method:      "quantum",
			EntropyBits: r,
		}))
	}
	// Zero-entropy rows (number draws carry no window figure) are excluded.
	require.NoError(t, repo.Create(Record{Kind: KindCard, Outcome: "2♠", Method: "quantum"}))

	got, err := repo.RecentEntropy(KindCard, 10)
	require.NoError(t, err)
	assert.Equal(t, readings, got)

	empty, err := repo.RecentEntropy(KindCoin, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
