package reference

import "hash/fnv"

// DefaultCycleInterval is the number of cycles a reference level is held
// before the generator advances to the next one.
const DefaultCycleInterval = 50

const (
	baseFloor  = 1000 // RPM
	baseSpread = 200  // RPM
	levelStep  = 100  // RPM
	levelCount = 4
)

// Generator produces the piecewise-constant target speed for each motor.
// It holds no mutable state: the target is a pure function of the cycle
// index and the motor identity, so dashboards and other consumers may
// re-derive values from the log at any time.
type Generator struct {
	// CycleInterval is the hold time of each level, in cycles.
	CycleInterval int
}

// NewGenerator creates a generator with the given cycle interval.
// A non-positive interval falls back to DefaultCycleInterval.
func NewGenerator(cycleInterval int) *Generator {
	if cycleInterval <= 0 {
		cycleInterval = DefaultCycleInterval
	}
	return &Generator{CycleInterval: cycleInterval}
}

// Target returns the reference speed in RPM for the given motor at the
// given cycle. Cycle 0 is valid and selects level index 0.
func (g *Generator) Target(cycle int, motorID string) float64 {
	base := Base(motorID)
	index := (cycle / g.CycleInterval) % levelCount
	return float64(base + index*levelStep)
}

// LevelIndex returns which of the four levels is active at the given cycle.
func (g *Generator) LevelIndex(cycle int) int {
	return (cycle / g.CycleInterval) % levelCount
}

// Base derives the lowest reference level for a motor identity. The
// value is a deterministic function of the identity string, spread
// roughly uniformly over [1000, 1200).
func Base(motorID string) int {
	h := fnv.New32a()
	h.Write([]byte(motorID))
	return int(h.Sum32()%baseSpread) + baseFloor
}
