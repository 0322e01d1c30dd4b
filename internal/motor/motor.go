package motor

import (
	"github.com/sebastiankruger/motorplant-simulator/internal/core"
	"github.com/sebastiankruger/motorplant-simulator/internal/reference"
)

// Motor composes one controller, one plant and an identity. Identities
// are generated once at construction and immutable thereafter; the
// identity seeds the motor's reference base level.
type Motor struct {
	id    string
	kind  Kind
	state State
	ctrl  Controller
	plant Plant
	ref   *reference.Generator
}

// NewDC creates a DC motor with the fixed initial state.
func NewDC(id string, ref *reference.Generator, noise *core.NoiseGenerator, cfg Config) *Motor {
	return &Motor{
		id:    id,
		kind:  KindDC,
		state: NewState(),
		ctrl:  NewDCController(),
		plant: NewDCPlant(cfg, noise),
		ref:   ref,
	}
}

// NewAC creates an AC motor with the fixed initial state.
func NewAC(id string, ref *reference.Generator, noise *core.NoiseGenerator, cfg Config) *Motor {
	return &Motor{
		id:    id,
		kind:  KindAC,
		state: NewState(),
		ctrl:  NewACController(),
		plant: NewACPlant(cfg, noise),
		ref:   ref,
	}
}

// ID returns the motor identity.
func (m *Motor) ID() string {
	return m.id
}

// Kind returns the motor variant.
func (m *Motor) Kind() Kind {
	return m.kind
}

// State returns a copy of the current motor state.
func (m *Motor) State() State {
	return m.state
}

// Step runs one closed-loop cycle: query the reference for this motor
// at this cycle, run the controller, apply the plant update, and return
// an immutable status snapshot.
func (m *Motor) Step(cycle int) Snapshot {
	target := m.ref.Target(cycle, m.id)
	actuation := m.ctrl.Actuate(m.state.Speed, target)
	m.plant.Update(&m.state, actuation)
	return m.snapshot(cycle, target)
}

func (m *Motor) snapshot(cycle int, target float64) Snapshot {
	return Snapshot{
		MotorID:        m.id,
		Cycle:          cycle,
		Reference:      target,
		Voltage:        m.state.Voltage,
		Current:        core.Round(m.state.Current, 5),
		Speed:          core.Round(m.state.Speed, 10),
		Torque:         core.Round(m.state.Torque, 10),
		Efficiency:     core.Round(m.state.Efficiency, 2),
		Temperature:    core.Round(m.state.Temperature, 2),
		OperatingHours: m.state.OperatingHours,
	}
}
