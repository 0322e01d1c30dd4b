package motor

import "github.com/sebastiankruger/motorplant-simulator/internal/config"

// Kind distinguishes the two motor variants. Each pairs a PI controller
// strategy with a matching plant-update strategy.
type Kind string

const (
	KindDC Kind = "DC"
	KindAC Kind = "AC"
)

// Initial state shared by both variants.
const (
	InitialEfficiency  = 92.0 // %
	InitialTemperature = 25.0 // °C
)

// State is the mutable physical state of a single motor. It is created
// at motor construction and mutated exactly once per cycle by the
// motor's own plant update; nothing else writes to it.
type State struct {
	Voltage        float64 // V
	Current        float64 // A
	Speed          float64 // RPM
	Torque         float64 // Nm
	Efficiency     float64 // %
	Temperature    float64 // °C
	OperatingHours int     // cycles
}

// NewState returns the fixed initial state every motor starts from.
func NewState() State {
	return State{
		Efficiency:  InitialEfficiency,
		Temperature: InitialTemperature,
	}
}

// Snapshot is the immutable per-cycle status record a motor emits.
// Values are rounded to their documented precision so that the log
// matches what a status display would show.
type Snapshot struct {
	MotorID        string  `json:"motorId"`
	Cycle          int     `json:"cycle"`
	Reference      float64 `json:"reference"`      // RPM
	Voltage        float64 `json:"voltage"`        // V
	Current        float64 `json:"current"`        // A
	Speed          float64 `json:"speed"`          // RPM
	Torque         float64 `json:"torque"`         // Nm
	Efficiency     float64 `json:"efficiency"`     // %
	Temperature    float64 `json:"temperature"`    // °C
	OperatingHours int     `json:"operatingHours"` // cycles
}

// Config holds the tunable plant parameters common to both variants.
// The jitter magnitudes are tuning constants, not contracts: only their
// sign conventions are load-bearing (temperature jitter is symmetric,
// efficiency decay is non-negative).
type Config struct {
	TemperatureJitter float64 // symmetric range, °C per cycle
	EfficiencyDecay   float64 // max non-negative decrement, % per cycle
	Runtime           *config.RuntimeConfig // runtime-adjustable overrides (optional)
}

// DefaultConfig returns the stock jitter magnitudes.
func DefaultConfig() Config {
	return Config{
		TemperatureJitter: 0.05,
		EfficiencyDecay:   0.001,
	}
}

// EffectiveTemperatureJitter returns the temperature jitter magnitude,
// using runtime config if available.
func (c Config) EffectiveTemperatureJitter() float64 {
	if c.Runtime != nil {
		return c.Runtime.GetTemperatureJitter()
	}
	return c.TemperatureJitter
}

// EffectiveEfficiencyDecay returns the efficiency decay magnitude,
// using runtime config if available.
func (c Config) EffectiveEfficiencyDecay() float64 {
	if c.Runtime != nil {
		return c.Runtime.GetEfficiencyDecay()
	}
	return c.EfficiencyDecay
}
