package draws

import "fmt"

// Outcome mapping is pure and deterministic: all entropy originates upstream
// in the sampler, these functions only translate sampled integers into domain
// values.

var (
	cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	cardSuits = []string{"♠", "♥", "♦", "♣"}
)

// CardFromIndex maps a 6-qubit outcome in [0, 64) onto a playing card.
// The index folds onto [0, 52) by modulo, then rank = idx % 13, suit = idx / 13.
func CardFromIndex(index int) (string, error) {
	if index < 0 || index >= 64 {
		return "", fmt.Errorf("card index out of range [0, 64): %d", index)
	}

	idx := index % 52
	return cardRanks[idx%13] + cardSuits[idx/13], nil
}

// CoinFromBit maps a single-qubit outcome onto a coin face: 0 is Heads, 1 is Tails.
func CoinFromBit(bit int) (string, error) {
	switch bit {
	case 0:
		return "Heads", nil
	case 1:
		return "Tails", nil
	default:
		return "", fmt.Errorf("coin bit must be 0 or 1, got %d", bit)
	}
}

// NumberFromIndex folds a sampled index onto the inclusive range [min, max].
func NumberFromIndex(index, min, max int) int {
	rangeSize := max - min + 1
	return index%rangeSize + min
}

// QubitsForRange returns the minimum register width whose 2^n outcomes cover
// the inclusive range [min, max].
func QubitsForRange(min, max int) int {
	rangeSize := max - min + 1
	qubits := 0
	for 1<<qubits < rangeSize {
		qubits++
	}
	if qubits == 0 {
		qubits = 1
	}
	return qubits
}
