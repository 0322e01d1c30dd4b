package motor

import "github.com/sebastiankruger/motorplant-simulator/internal/core"

// Plant is the simulated physical motor. Update applies one discrete
// time step of first-order dynamics, mutating the bound State in place
// from the controller's actuation signal.
type Plant interface {
	Update(st *State, actuation float64)
}

// Shared plant constants. The (x − speed)/τ relaxation is an
// exponential approach to the set-point; τ=10 with unit cycle time is
// stable for any actuation within its clamp range.
const (
	timeConstant = 10.0
	torqueFactor = 0.5  // Nm per A
	currentScale = 10.0 // A at full signal
	tempRiseRate = 0.1  // °C per cycle at full signal
)

// DC plant constants.
const (
	dcMaxVoltage = 480.0 // V
	dcGain       = 3.125 // RPM per V: 480 V * 3.125 ≈ 1500 RPM
)

// DCPlant models a permanent-magnet DC motor driven by a voltage
// fraction in [0,1].
type DCPlant struct {
	cfg   Config
	noise *core.NoiseGenerator
}

// NewDCPlant creates a DC plant drawing jitter from the given source.
func NewDCPlant(cfg Config, noise *core.NoiseGenerator) *DCPlant {
	return &DCPlant{cfg: cfg, noise: noise}
}

// Update applies one cycle of DC dynamics for the given voltage fraction.
func (p *DCPlant) Update(st *State, signal float64) {
	appliedVoltage := signal * dcMaxVoltage
	st.Voltage = appliedVoltage
	st.Speed += (appliedVoltage*dcGain - st.Speed) / timeConstant
	st.Current = signal * currentScale
	st.Torque = st.Current * torqueFactor
	st.Temperature += signal*tempRiseRate + p.noise.Symmetric(p.cfg.EffectiveTemperatureJitter())
	st.Efficiency -= p.noise.NonNegative(p.cfg.EffectiveEfficiencyDecay())
	st.OperatingHours++
}

// AC plant constants.
const (
	acGain = 30.0 // RPM per Hz: 50 Hz * 30 ≈ 1500 RPM
)

// ACPlant models a squirrel-cage AC motor driven by a frequency in
// [40,60] Hz. The drive quantity is the frequency itself, not the
// normalized 0..1 signal.
type ACPlant struct {
	cfg   Config
	noise *core.NoiseGenerator
}

// NewACPlant creates an AC plant drawing jitter from the given source.
func NewACPlant(cfg Config, noise *core.NoiseGenerator) *ACPlant {
	return &ACPlant{cfg: cfg, noise: noise}
}

// Update applies one cycle of AC dynamics for the given drive frequency.
func (p *ACPlant) Update(st *State, frequency float64) {
	signal := frequency / acMaxFrequency
	st.Speed += (frequency*acGain - st.Speed) / timeConstant
	st.Current = signal * currentScale
	st.Torque = st.Current * torqueFactor
	st.Temperature += signal*tempRiseRate + p.noise.Symmetric(p.cfg.EffectiveTemperatureJitter())
	st.Efficiency -= p.noise.NonNegative(p.cfg.EffectiveEfficiencyDecay())
	st.OperatingHours++
}
