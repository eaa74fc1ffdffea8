// Package pqc demonstrates a post-quantum key exchange round trip.
//
// This is an independent collaborator on the service surface: it shares the
// router with the quantum simulator endpoints but has no data or control
// dependency on the simulation core.
package pqc

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	"github.com/rs/zerolog"

	"github.com/aristath/quantum-lab/internal/events"
	"github.com/aristath/quantum-lab/internal/modules/entropy"
)

// AlgorithmInfo describes the key-exchange scheme.
type AlgorithmInfo struct {
	Name          string `json:"name"`
	Variant       string `json:"variant"`
	SecurityLevel string `json:"security_level"`
	QuantumSafe   bool   `json:"quantum_safe"`
}

// KeySizes reports the byte lengths of the exchanged material.
type KeySizes struct {
	PublicKey    int `json:"public_key"`
	SecretKey    int `json:"secret_key"`
	Ciphertext   int `json:"ciphertext"`
	SharedSecret int `json:"shared_secret"`
}

// Performance reports per-phase timings of the round trip.
type Performance struct {
	TotalMs  float64 `json:"total_time_ms"`
	KeygenMs float64 `json:"keygen_time_ms"`
	EncapsMs float64 `json:"encaps_time_ms"`
	DecapsMs float64 `json:"decaps_time_ms"`
}

// SecurityAnalysis reports Shannon entropy of the generated material in bits
// per byte.
type SecurityAnalysis struct {
	PublicKeyEntropy    float64 `json:"public_key_entropy"`
	SharedSecretEntropy float64 `json:"shared_secret_entropy"`
}

// DemoResult is the key-exchange demonstration response.
type DemoResult struct {
	Success             bool             `json:"success"`
	SharedSecretPreview string           `json:"shared_secret"`
	Method              string           `json:"method"`
	Algorithm           AlgorithmInfo    `json:"algorithm_info"`
	KeySizes            KeySizes         `json:"key_sizes"`
	Performance         Performance      `json:"performance_metrics"`
	Security            SecurityAnalysis `json:"security_analysis"`
}

// Service runs key-exchange demonstrations.
type Service struct {
	events *events.Manager
	log    zerolog.Logger
}

// NewService creates the PQC demo service.
func NewService(ev *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		events: ev,
		log:    log.With().Str("service", "pqc").Logger(),
	}
}

// RunDemo performs one full ML-KEM-768 round trip: keygen, client-side
// encapsulation, server-side decapsulation, then verifies both sides derived
// the same shared secret.
func (s *Service) RunDemo() (*DemoResult, error) {
	scheme := mlkem768.Scheme()

	start := time.Now()

	keygenStart := time.Now()
	publicKey, secretKey, err := scheme.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("keypair generation failed: %w", err)
	}
	keygenTime := time.Since(keygenStart)

	encapsStart := time.Now()
	ciphertext, clientSecret, err := scheme.Encapsulate(publicKey)
	if err != nil {
		return nil, fmt.Errorf("encapsulation failed: %w", err)
	}
	encapsTime := time.Since(encapsStart)

	decapsStart := time.Now()
	serverSecret, err := scheme.Decapsulate(secretKey, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decapsulation failed: %w", err)
	}
	decapsTime := time.Since(decapsStart)

	totalTime := time.Since(start)
	success := bytes.Equal(clientSecret, serverSecret)

	publicKeyBytes, err := publicKey.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}

	result := &DemoResult{
		Success:             success,
		SharedSecretPreview: hex.EncodeToString(clientSecret)[:16] + "...",
		Method:              "ML-KEM-768 (CRYSTALS-Kyber)",
		Algorithm: AlgorithmInfo{
			Name:          "CRYSTALS-Kyber",
			Variant:       "ML-KEM-768",
			SecurityLevel: "NIST Level 3",
			QuantumSafe:   true,
		},
		KeySizes: KeySizes{
			PublicKey:    scheme.PublicKeySize(),
			SecretKey:    scheme.PrivateKeySize(),
			Ciphertext:   scheme.CiphertextSize(),
			SharedSecret: scheme.SharedKeySize(),
		},
		Performance: Performance{
			TotalMs:  ms(totalTime),
			KeygenMs: ms(keygenTime),
			EncapsMs: ms(encapsTime),
			DecapsMs: ms(decapsTime),
		},
		Security: SecurityAnalysis{
			PublicKeyEntropy:    entropy.ShannonBytes(publicKeyBytes),
			SharedSecretEntropy: entropy.ShannonBytes(clientSecret),
		},
	}

	if s.events != nil {
		s.events.Emit(events.KeyExchangeComplete, "pqc", map[string]interface{}{
			"success":  success,
			"total_ms": result.Performance.TotalMs,
		})
	}

	return result, nil
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
