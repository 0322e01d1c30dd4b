package factory

import (
	"fmt"

	"github.com/sebastiankruger/motorplant-simulator/internal/config"
	"github.com/sebastiankruger/motorplant-simulator/internal/motor"
	"github.com/sebastiankruger/motorplant-simulator/internal/reference"
	"github.com/sebastiankruger/motorplant-simulator/internal/timeseries"
)

// Factory is the composition root: it exclusively owns an ordered list
// of production lines, each owning its machines, each owning one DC and
// one AC motor. Identity generation happens once here and is immutable
// for the lifetime of the run.
type Factory struct {
	name    string
	lines   []*ProductionLine
	ref     *reference.Generator
	runtime *config.RuntimeConfig
}

// New builds a factory from configuration, failing fast on invalid
// topology. Lines are named Line_1 … Line_<n>.
func New(cfg *config.Config, seed int64) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ref := reference.NewGenerator(cfg.CycleInterval)
	runtime := config.NewRuntimeConfig(cfg)
	motorCfg := motor.Config{
		TemperatureJitter: cfg.TemperatureJitter,
		EfficiencyDecay:   cfg.EfficiencyDecay,
		Runtime:           runtime,
	}

	lines := make([]*ProductionLine, 0, cfg.Lines)
	for i := 0; i < cfg.Lines; i++ {
		lines = append(lines, NewProductionLine(
			fmt.Sprintf("Line_%d", i+1),
			cfg.MachinesPerLine,
			ref,
			seed,
			motorCfg,
		))
	}

	return &Factory{
		name:    cfg.SimulatorName,
		lines:   lines,
		ref:     ref,
		runtime: runtime,
	}, nil
}

// Runtime returns the runtime-adjustable plant parameters shared by all
// motors in the factory.
func (f *Factory) Runtime() *config.RuntimeConfig {
	return f.runtime
}

// Name returns the factory name.
func (f *Factory) Name() string {
	return f.name
}

// Lines returns the production lines in construction order.
func (f *Factory) Lines() []*ProductionLine {
	return f.lines
}

// Reference returns the factory's reference signal generator.
func (f *Factory) Reference() *reference.Generator {
	return f.ref
}

// Step runs one full factory-wide cycle: every line in construction
// order, every machine within it, DC motor before AC. Snapshots are
// returned in append order.
func (f *Factory) Step(cycle int, log *timeseries.Log) []motor.Snapshot {
	snaps := make([]motor.Snapshot, 0, f.MotorCount())
	for _, line := range f.lines {
		snaps = append(snaps, line.Step(cycle, log)...)
	}
	return snaps
}

// MotorCount returns the total number of motors in the factory.
func (f *Factory) MotorCount() int {
	n := 0
	for _, line := range f.lines {
		n += 2 * len(line.machines)
	}
	return n
}

// MotorIDs returns every motor identity in traversal order.
func (f *Factory) MotorIDs() []string {
	ids := make([]string, 0, f.MotorCount())
	for _, line := range f.lines {
		for _, m := range line.machines {
			ids = append(ids, m.MotorIDs()...)
		}
	}
	return ids
}
