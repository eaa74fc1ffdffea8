package kernel

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// Builder assembles symmetric N x N kernel matrices. Each kernel evaluation
// is pure and independent, so the upper triangle is computed by a bounded
// worker pool; the lower triangle is mirrored by the symmetric storage, never
// recomputed, which makes symmetry exact rather than approximate.
type Builder struct {
	workers int
	log     zerolog.Logger
}

// NewBuilder creates a matrix builder. workers <= 0 uses GOMAXPROCS.
func NewBuilder(workers int, log zerolog.Logger) *Builder {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Builder{
		workers: workers,
		log:     log.With().Str("component", "kernel_builder").Logger(),
	}
}

type cell struct {
	i, j int
}

// Build computes the kernel matrix for a batch of feature vectors. All
// vectors are dimension-checked up front; a kernel failure aborts the build.
func (b *Builder) Build(vectors [][]float64) (*mat.SymDense, error) {
	for i, v := range vectors {
		if err := ValidateVector(v); err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
	}

	n := len(vectors)
	if n == 0 {
		return nil, fmt.Errorf("kernel matrix requires at least one vector")
	}

	matrix := mat.NewSymDense(n, nil)

	cells := make(chan cell)
	errCh := make(chan error, b.workers)
	var wg sync.WaitGroup

	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range cells {
				value, err := Kernel(vectors[c.i], vectors[c.j])
				if err != nil {
					select {
					case errCh <- fmt.Errorf("kernel(%d, %d): %w", c.i, c.j, err):
					default:
					}
					continue
				}
				// Each (i, j) cell is written exactly once and cells are
				// disjoint, so no locking is needed around the matrix.
				matrix.SetSym(c.i, c.j, value)
			}
		}()
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cells <- cell{i: i, j: j}
		}
	}
	close(cells)
	wg.Wait()

	select {
	case err := <-errCh:
		return nil, err
	default:
	}

	b.log.Debug().Int("n", n).Int("workers", b.workers).Msg("Kernel matrix built")

	return matrix, nil
}
