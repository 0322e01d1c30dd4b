package motor

import "github.com/sebastiankruger/motorplant-simulator/internal/core"

// Controller is a PI speed controller bound 1:1 to a plant. Actuate
// computes the actuation signal from the target and the measured speed,
// accumulating the error integral as a side effect. The meaning of the
// returned signal differs per variant: a supply-voltage fraction in
// [0,1] for DC, a drive frequency in [40,60] Hz for AC.
type Controller interface {
	Actuate(currentSpeed, targetSpeed float64) float64
}

// DC controller gains and clamps.
const (
	dcKp = 0.5
	dcKi = 0.01
)

// DCController emits a voltage fraction clamped to [0,1]. The plant
// scales it to the 480 V supply.
type DCController struct {
	integralError float64
}

// NewDCController creates a DC PI controller with zeroed integral state.
func NewDCController() *DCController {
	return &DCController{}
}

// Actuate computes the clamped voltage fraction for the given target.
// The integral accumulates without decay or reset; the only anti-windup
// is the clamp on the committed signal.
func (c *DCController) Actuate(currentSpeed, targetSpeed float64) float64 {
	err := targetSpeed - currentSpeed
	c.integralError += err
	return core.Clamp(dcKp*err+dcKi*c.integralError, 0, 1)
}

// IntegralError exposes the accumulator for diagnostics.
func (c *DCController) IntegralError() float64 {
	return c.integralError
}

// AC controller gains and clamps.
const (
	acBaseFrequency = 50.0 // Hz
	acKp            = 0.02
	acKi            = 0.005
	acMinFrequency  = 40.0 // Hz
	acMaxFrequency  = 60.0 // Hz
)

// ACController adjusts the drive frequency around the 50 Hz base and
// emits it clamped to [40,60] Hz.
type ACController struct {
	integralError float64
	frequency     float64
}

// NewACController creates an AC PI controller idling at base frequency.
func NewACController() *ACController {
	return &ACController{frequency: acBaseFrequency}
}

// Actuate computes the clamped drive frequency for the given target.
func (c *ACController) Actuate(currentSpeed, targetSpeed float64) float64 {
	err := targetSpeed - currentSpeed
	c.integralError += err
	c.frequency = core.Clamp(acBaseFrequency+acKp*err+acKi*c.integralError, acMinFrequency, acMaxFrequency)
	return c.frequency
}

// Frequency returns the last committed drive frequency.
func (c *ACController) Frequency() float64 {
	return c.frequency
}

// IntegralError exposes the accumulator for diagnostics.
func (c *ACController) IntegralError() float64 {
	return c.integralError
}
