package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the simulator.
type Config struct {
	// Core settings
	SimulatorName string `yaml:"simulator_name"`
	OPCUAPort     int    `yaml:"-"`
	HealthPort    int    `yaml:"-"`

	// Factory topology
	Lines           int `yaml:"lines"`
	MachinesPerLine int `yaml:"machines_per_line"`

	// Simulation settings
	TotalCycles   int   `yaml:"total_cycles"`
	CycleInterval int   `yaml:"cycle_interval"`
	Seed          int64 `yaml:"seed"`
	Parallel      bool  `yaml:"parallel"`

	// Plant jitter tuning
	TemperatureJitter float64 `yaml:"temperature_jitter"`
	EfficiencyDecay   float64 `yaml:"efficiency_decay"`

	// Serve-mode pacing
	PublishInterval time.Duration `yaml:"-"`
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		// Core settings
		SimulatorName: getEnvOrDefault("SIMULATOR_NAME", "SmartMotorFactory"),
		OPCUAPort:     getEnvAsIntOrDefault("OPCUA_PORT", 4840),
		HealthPort:    getEnvAsIntOrDefault("HEALTH_PORT", 8081),

		// Factory topology
		Lines:           getEnvAsIntOrDefault("NUM_LINES", 2),
		MachinesPerLine: getEnvAsIntOrDefault("MACHINES_PER_LINE", 2),

		// Simulation settings
		TotalCycles:   getEnvAsIntOrDefault("TOTAL_CYCLES", 101),
		CycleInterval: getEnvAsIntOrDefault("CYCLE_INTERVAL", 50),
		Seed:          getEnvAsInt64OrDefault("SEED", 0),
		Parallel:      getEnvAsBoolOrDefault("PARALLEL", false),

		// Plant jitter tuning
		TemperatureJitter: getEnvAsFloatOrDefault("TEMPERATURE_JITTER", 0.05),
		EfficiencyDecay:   getEnvAsFloatOrDefault("EFFICIENCY_DECAY", 0.001),

		// Serve-mode pacing
		PublishInterval: getDurationOrDefault("PUBLISH_INTERVAL", 100*time.Millisecond),
	}

	return cfg, nil
}

// LoadFile overlays YAML settings from path onto env-derived defaults.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}
	return cfg, nil
}

// Validate fails fast on configurations the engine refuses to simulate.
func (c *Config) Validate() error {
	if c.Lines <= 0 {
		return errors.Errorf("invalid configuration: lines must be positive, got %d", c.Lines)
	}
	if c.MachinesPerLine <= 0 {
		return errors.Errorf("invalid configuration: machines per line must be positive, got %d", c.MachinesPerLine)
	}
	if c.TotalCycles <= 0 {
		return errors.Errorf("invalid configuration: total cycles must be positive, got %d", c.TotalCycles)
	}
	if c.CycleInterval <= 0 {
		return errors.Errorf("invalid configuration: cycle interval must be positive, got %d", c.CycleInterval)
	}
	if c.TemperatureJitter < 0 {
		return errors.Errorf("invalid configuration: temperature jitter must be non-negative, got %g", c.TemperatureJitter)
	}
	if c.EfficiencyDecay < 0 {
		return errors.Errorf("invalid configuration: efficiency decay must be non-negative, got %g", c.EfficiencyDecay)
	}
	return nil
}

// EffectiveSeed resolves the RNG seed: 0 means derive from wall clock.
func (c *Config) EffectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
