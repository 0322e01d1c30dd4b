package config

import (
	"fmt"
	"sync"
)

// Jitter magnitude bounds for runtime adjustment.
const (
	maxTemperatureJitter = 1.0
	maxEfficiencyDecay   = 0.1
)

// RuntimeConfig holds plant parameters that can be changed while a
// serve-mode simulation is running. All methods are thread-safe.
type RuntimeConfig struct {
	mu                sync.RWMutex
	temperatureJitter float64 // symmetric range, °C per cycle
	efficiencyDecay   float64 // max decrement, % per cycle
}

// NewRuntimeConfig creates a RuntimeConfig from the static Config.
func NewRuntimeConfig(cfg *Config) *RuntimeConfig {
	return &RuntimeConfig{
		temperatureJitter: cfg.TemperatureJitter,
		efficiencyDecay:   cfg.EfficiencyDecay,
	}
}

// GetTemperatureJitter returns the current temperature jitter magnitude.
func (rc *RuntimeConfig) GetTemperatureJitter() float64 {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.temperatureJitter
}

// SetTemperatureJitter updates the temperature jitter magnitude.
func (rc *RuntimeConfig) SetTemperatureJitter(v float64) error {
	if v < 0 || v > maxTemperatureJitter {
		return fmt.Errorf("temperature jitter must be in [0, %g], got %g", maxTemperatureJitter, v)
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.temperatureJitter = v
	return nil
}

// GetEfficiencyDecay returns the current efficiency decay magnitude.
func (rc *RuntimeConfig) GetEfficiencyDecay() float64 {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.efficiencyDecay
}

// SetEfficiencyDecay updates the efficiency decay magnitude.
func (rc *RuntimeConfig) SetEfficiencyDecay(v float64) error {
	if v < 0 || v > maxEfficiencyDecay {
		return fmt.Errorf("efficiency decay must be in [0, %g], got %g", maxEfficiencyDecay, v)
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.efficiencyDecay = v
	return nil
}
