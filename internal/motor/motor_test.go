package motor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiankruger/motorplant-simulator/internal/core"
	"github.com/sebastiankruger/motorplant-simulator/internal/reference"
)

func newTestMotor(kind Kind) *Motor {
	ref := reference.NewGenerator(50)
	noise := core.NewNoiseGenerator(42)
	if kind == KindDC {
		return NewDC("Line_1_M0_DC", ref, noise, DefaultConfig())
	}
	return NewAC("Line_1_M0_AC", ref, noise, DefaultConfig())
}

func TestMotorIdentity(t *testing.T) {
	m := newTestMotor(KindDC)
	assert.Equal(t, "Line_1_M0_DC", m.ID())
	assert.Equal(t, KindDC, m.Kind())
}

func TestMotorInitialState(t *testing.T) {
	st := newTestMotor(KindAC).State()
	assert.Equal(t, 0.0, st.Voltage)
	assert.Equal(t, 0.0, st.Current)
	assert.Equal(t, 0.0, st.Speed)
	assert.Equal(t, 0.0, st.Torque)
	assert.Equal(t, InitialEfficiency, st.Efficiency)
	assert.Equal(t, InitialTemperature, st.Temperature)
	assert.Equal(t, 0, st.OperatingHours)
}

func TestMotorStepSnapshot(t *testing.T) {
	m := newTestMotor(KindDC)
	snap := m.Step(1)

	assert.Equal(t, "Line_1_M0_DC", snap.MotorID)
	assert.Equal(t, 1, snap.Cycle)
	assert.Equal(t, float64(reference.Base("Line_1_M0_DC")), snap.Reference)
	assert.Equal(t, 1, snap.OperatingHours)

	// Snapshot values carry their documented precision.
	assert.Equal(t, core.Round(snap.Current, 5), snap.Current)
	assert.Equal(t, core.Round(snap.Efficiency, 2), snap.Efficiency)
	assert.Equal(t, core.Round(snap.Temperature, 2), snap.Temperature)
}

func TestMotorStepAdvancesState(t *testing.T) {
	m := newTestMotor(KindAC)
	for c := 1; c <= 10; c++ {
		snap := m.Step(c)
		require.Equal(t, c, snap.OperatingHours)
	}
	assert.Greater(t, m.State().Speed, 0.0)
}

func TestMotorStepReferenceFollowsSchedule(t *testing.T) {
	m := newTestMotor(KindDC)
	base := float64(reference.Base(m.ID()))
	for c := 1; c <= 120; c++ {
		snap := m.Step(c)
		want := base + 100*float64((c/50)%4)
		require.Equal(t, want, snap.Reference, "cycle %d", c)
	}
}
