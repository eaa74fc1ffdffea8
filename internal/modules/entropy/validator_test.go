package entropy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShannon(t *testing.T) {
	tests := []struct {
		name string
		hist []uint64
		want float64
	}{
		{name: "empty histogram", hist: []uint64{}, want: 0},
		{name: "single symbol has zero entropy", hist: []uint64{100}, want: 0},
		{name: "uniform 2 symbols", hist: []uint64{50, 50}, want: 1},
		{name: "uniform 4 symbols", hist: []uint64{25, 25, 25, 25}, want: 2},
		{name: "uniform 64 symbols", hist: uniformHist(64, 10), want: 6},
		{name: "skewed distribution", hist: []uint64{75, 25}, want: 0.8112781244591328},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Shannon(tt.hist), 1e-9)
		})
	}
}

func TestShannonBytes(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	assert.InDelta(t, 8.0, ShannonBytes(data), 1e-9)

	assert.InDelta(t, 0.0, ShannonBytes([]byte{7, 7, 7, 7}), 1e-9)
}

func TestWindowRecordAndEviction(t *testing.T) {
	w := NewWindow(2, 4)

	for i := 0; i < 4; i++ {
		w.Record(0)
	}
	assert.Equal(t, 4, w.Size())
	assert.InDelta(t, 0.0, w.BitsPerSymbol(), 1e-9)

	// Four ones push the zeros out of the 4-slot window.
	for i := 0; i < 4; i++ {
		w.Record(1)
	}
	assert.Equal(t, 4, w.Size())
	hist := w.Histogram()
	assert.Equal(t, uint64(0), hist[0])
	assert.Equal(t, uint64(4), hist[1])
}

func TestWindowIgnoresOutOfRange(t *testing.T) {
	w := NewWindow(2, 8)
	w.Record(-1)
	w.Record(2)
	assert.Equal(t, 0, w.Size())
}

func TestBitsPerByteNormalization(t *testing.T) {
	// A perfectly balanced coin stream scores the full 8.0 despite carrying
	// only 1 bit per symbol.
	coin := NewWindow(2, 128)
	for i := 0; i < 128; i++ {
		coin.Record(i % 2)
	}
	assert.InDelta(t, 1.0, coin.BitsPerSymbol(), 1e-9)
	assert.InDelta(t, 8.0, coin.BitsPerByte(), 1e-9)

	// Same for a uniform 6-bit card stream.
	card := NewWindow(64, 128)
	for i := 0; i < 128; i++ {
		card.Record(i % 64)
	}
	assert.InDelta(t, 6.0, card.BitsPerSymbol(), 1e-9)
	assert.InDelta(t, 8.0, card.BitsPerByte(), 1e-9)
}

func TestValidatorHealth(t *testing.T) {
	v := NewValidator(7.0)

	w := NewWindow(2, 256)
	assert.Equal(t, StatusWarmingUp, v.Health(w), "near-empty window cannot be judged")

	for i := 0; i < 256; i++ {
		w.Record(i % 2)
	}
	assert.Equal(t, StatusNominal, v.Health(w))

	// A stuck stream drops below threshold.
	stuck := NewWindow(2, 256)
	for i := 0; i < 256; i++ {
		stuck.Record(0)
	}
	assert.Equal(t, StatusDegraded, v.Health(stuck))
}

func TestEntropyOfBiasedStreamIsBelowUniform(t *testing.T) {
	w := NewWindow(64, 1024)
	for i := 0; i < 1024; i++ {
		// Heavily biased toward a handful of outcomes.
		w.Record(i % 4)
	}

	assert.Less(t, w.BitsPerSymbol(), math.Log2(64))
	assert.InDelta(t, 2.0, w.BitsPerSymbol(), 1e-9)
}

func uniformHist(symbols int, count uint64) []uint64 {
	hist := make([]uint64, symbols)
	for i := range hist {
		hist[i] = count
	}
	return hist
}
