package motor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDCControllerClampsHigh(t *testing.T) {
	c := NewDCController()
	// A large positive error saturates the signal at 1.
	assert.Equal(t, 1.0, c.Actuate(0, 1500))
}

func TestDCControllerClampsLow(t *testing.T) {
	c := NewDCController()
	// Running far above target drives the signal to 0, never negative.
	assert.Equal(t, 0.0, c.Actuate(1500, 0))
}

func TestDCControllerIntegralAccumulates(t *testing.T) {
	c := NewDCController()
	c.Actuate(0, 10)
	c.Actuate(0, 10)
	assert.Equal(t, 20.0, c.IntegralError())
}

func TestDCControllerSmallError(t *testing.T) {
	c := NewDCController()
	// error=1: Kp*1 + Ki*1 = 0.5 + 0.01 = 0.51, inside the clamp band.
	assert.InDelta(t, 0.51, c.Actuate(0, 1), 1e-12)
}

func TestACControllerFrequencyClamp(t *testing.T) {
	c := NewACController()
	f := c.Actuate(0, 1500)
	assert.Equal(t, 60.0, f)
	assert.Equal(t, 60.0, c.Frequency())

	c = NewACController()
	f = c.Actuate(1800, 0)
	assert.Equal(t, 40.0, f)
}

func TestACControllerTracksBaseFrequency(t *testing.T) {
	c := NewACController()
	// Zero error keeps the drive at the 50 Hz base.
	assert.Equal(t, 50.0, c.Actuate(1000, 1000))
	assert.Equal(t, 0.0, c.IntegralError())
}

func TestACControllerOutputAlwaysInBand(t *testing.T) {
	c := NewACController()
	speeds := []float64{0, 500, 2000, -100, 1e6}
	targets := []float64{0, 1000, 1499, 1e6, -1e6}
	for _, s := range speeds {
		for _, tgt := range targets {
			f := c.Actuate(s, tgt)
			assert.GreaterOrEqual(t, f, 40.0)
			assert.LessOrEqual(t, f, 60.0)
		}
	}
}
