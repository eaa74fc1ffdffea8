package pqc

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDemoRoundTrip(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())

	result, err := svc.RunDemo()
	require.NoError(t, err)

	assert.True(t, result.Success, "both sides must derive the same shared secret")
	assert.Equal(t, "ML-KEM-768", result.Algorithm.Variant)
	assert.True(t, result.Algorithm.QuantumSafe)
}

func TestRunDemoKeySizes(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())

	result, err := svc.RunDemo()
	require.NoError(t, err)

	// ML-KEM-768 parameter set sizes are fixed by the standard.
	assert.Equal(t, 1184, result.KeySizes.PublicKey)
	assert.Equal(t, 1088, result.KeySizes.Ciphertext)
	assert.Equal(t, 32, result.KeySizes.SharedSecret)
	assert.Greater(t, result.KeySizes.SecretKey, 0)
}

func TestRunDemoSecretPreviewIsTruncated(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())

	result, err := svc.RunDemo()
	require.NoError(t, err)

	// 8 bytes of hex plus the ellipsis; never the full secret.
	assert.Len(t, result.SharedSecretPreview, 19)
	assert.True(t, strings.HasSuffix(result.SharedSecretPreview, "..."))
}

func TestRunDemoEntropyOfGeneratedMaterial(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())

	result, err := svc.RunDemo()
	require.NoError(t, err)

	// A 1184-byte public key drawn from the lattice distribution comfortably
	// exceeds 7 bits/byte; the 32-byte secret is too short to score that high
	// but must still look random.
	assert.Greater(t, result.Security.PublicKeyEntropy, 7.0)
	assert.Greater(t, result.Security.SharedSecretEntropy, 4.0)
	assert.LessOrEqual(t, result.Security.PublicKeyEntropy, 8.0)
}

func TestRunDemoTimingsAreRecorded(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())

	result, err := svc.RunDemo()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Performance.TotalMs, 0.0)
	assert.GreaterOrEqual(t, result.Performance.KeygenMs, 0.0)
	assert.GreaterOrEqual(t, result.Performance.EncapsMs, 0.0)
	assert.GreaterOrEqual(t, result.Performance.DecapsMs, 0.0)
}
