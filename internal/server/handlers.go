package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// systemStatus is the GET /api/system/status response.
type systemStatus struct {
	Status            string  `json:"status"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	MaxQubits         int     `json:"max_qubits"`
	FallbackDraws     uint64  `json:"fallback_draws"`
	CardEntropy       string  `json:"card_entropy"`
	CoinEntropy       string  `json:"coin_entropy"`
}

// handleSystemStatus handles GET /api/system/status
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	status := systemStatus{
		Status:        "ok",
		UptimeSeconds: time.Since(s.startupTime).Seconds(),
		MaxQubits:     s.cfg.MaxQubits,
		FallbackDraws: s.drawsService.FallbackCount(),
		CardEntropy:   string(s.drawsService.CardEntropyHealth()),
		CoinEntropy:   string(s.drawsService.CoinEntropyHealth()),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status.MemoryUsedPercent = vm.UsedPercent
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
