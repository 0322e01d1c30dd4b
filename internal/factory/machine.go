package factory

import (
	"hash/fnv"

	"github.com/sebastiankruger/motorplant-simulator/internal/core"
	"github.com/sebastiankruger/motorplant-simulator/internal/motor"
	"github.com/sebastiankruger/motorplant-simulator/internal/reference"
	"github.com/sebastiankruger/motorplant-simulator/internal/timeseries"
)

// Machine owns exactly two motors, one DC and one AC. Motor identities
// derive from the machine identity and are fixed at construction.
type Machine struct {
	id string
	dc *motor.Motor
	ac *motor.Motor
}

// NewMachine creates a machine and its two motors. Each motor gets its
// own jitter source seeded from the run seed and the motor identity, so
// jitter streams are independent of stepping order.
func NewMachine(id string, ref *reference.Generator, seed int64, cfg motor.Config) *Machine {
	dcID := id + "_DC"
	acID := id + "_AC"
	return &Machine{
		id: id,
		dc: motor.NewDC(dcID, ref, core.NewNoiseGenerator(motorSeed(seed, dcID)), cfg),
		ac: motor.NewAC(acID, ref, core.NewNoiseGenerator(motorSeed(seed, acID)), cfg),
	}
}

// ID returns the machine identity.
func (m *Machine) ID() string {
	return m.id
}

// DC returns the machine's DC motor.
func (m *Machine) DC() *motor.Motor {
	return m.dc
}

// AC returns the machine's AC motor.
func (m *Machine) AC() *motor.Motor {
	return m.ac
}

// MotorIDs returns the machine's motor identities, DC first.
func (m *Machine) MotorIDs() []string {
	return []string{m.dc.ID(), m.ac.ID()}
}

// Step runs one cycle for the DC motor then the AC motor, in that fixed
// order, appending each snapshot to the shared log. The order matters
// only for log-append sequencing; the motors are independent.
func (m *Machine) Step(cycle int, log *timeseries.Log) []motor.Snapshot {
	snaps := make([]motor.Snapshot, 0, 2)
	for _, mot := range []*motor.Motor{m.dc, m.ac} {
		snap := mot.Step(cycle)
		log.Append(snap.MotorID, timeseries.Point{
			Cycle:       snap.Cycle,
			Speed:       snap.Speed,
			Reference:   snap.Reference,
			Temperature: snap.Temperature,
			Efficiency:  snap.Efficiency,
			Current:     snap.Current,
			Torque:      snap.Torque,
		})
		snaps = append(snaps, snap)
	}
	return snaps
}

// motorSeed mixes the run seed with a motor identity so every motor
// draws from a distinct, reproducible jitter stream.
func motorSeed(seed int64, motorID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(motorID))
	return seed ^ int64(h.Sum64())
}
