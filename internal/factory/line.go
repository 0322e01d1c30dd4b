package factory

import (
	"fmt"

	"github.com/sebastiankruger/motorplant-simulator/internal/motor"
	"github.com/sebastiankruger/motorplant-simulator/internal/reference"
	"github.com/sebastiankruger/motorplant-simulator/internal/timeseries"
)

// ProductionLine owns an ordered sequence of machines.
type ProductionLine struct {
	id       string
	machines []*Machine
}

// NewProductionLine creates a line with numMachines machines named
// <lineID>_M0 … <lineID>_M<n-1>.
func NewProductionLine(id string, numMachines int, ref *reference.Generator, seed int64, cfg motor.Config) *ProductionLine {
	machines := make([]*Machine, 0, numMachines)
	for i := 0; i < numMachines; i++ {
		machines = append(machines, NewMachine(fmt.Sprintf("%s_M%d", id, i), ref, seed, cfg))
	}
	return &ProductionLine{id: id, machines: machines}
}

// ID returns the line identity.
func (pl *ProductionLine) ID() string {
	return pl.id
}

// Machines returns the line's machines in construction order.
func (pl *ProductionLine) Machines() []*Machine {
	return pl.machines
}

// Step runs one cycle for every machine in construction order.
func (pl *ProductionLine) Step(cycle int, log *timeseries.Log) []motor.Snapshot {
	snaps := make([]motor.Snapshot, 0, 2*len(pl.machines))
	for _, m := range pl.machines {
		snaps = append(snaps, m.Step(cycle, log)...)
	}
	return snaps
}
