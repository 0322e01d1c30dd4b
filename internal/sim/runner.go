package sim

import (
	"context"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sebastiankruger/motorplant-simulator/internal/factory"
	"github.com/sebastiankruger/motorplant-simulator/internal/motor"
	"github.com/sebastiankruger/motorplant-simulator/internal/timeseries"
)

// Observer receives every motor snapshot as it is produced, for
// collaborators wanting per-step notifications rather than only the
// post-run log. Observers run on the stepping goroutine after the cycle
// completes, in traversal order.
type Observer func(motor.Snapshot)

// Runner drives a factory through simulation cycles and owns the motor
// log. Cycles are 1-based; one full factory-wide update happens
// synchronously per cycle.
type Runner struct {
	runID   string
	factory *factory.Factory
	log     *timeseries.Log
	cycle   int

	pool      *workerpool.WorkerPool
	observers []Observer
}

// Option configures a Runner.
type Option func(*Runner)

// WithParallel steps machines concurrently within each cycle through a
// worker pool. Each motor owns a distinct log key, so the only guarded
// path is the log's first-sight insert.
func WithParallel(workers int) Option {
	return func(r *Runner) {
		if workers < 1 {
			workers = 1
		}
		r.pool = workerpool.New(workers)
	}
}

// WithObserver registers a per-snapshot observer.
func WithObserver(fn Observer) Option {
	return func(r *Runner) {
		r.observers = append(r.observers, fn)
	}
}

// NewRunner creates a runner for the given factory.
func NewRunner(f *factory.Factory, opts ...Option) *Runner {
	r := &Runner{
		runID:   uuid.NewString(),
		factory: f,
		log:     timeseries.NewLog(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunID returns the unique identity of this simulation run.
func (r *Runner) RunID() string {
	return r.runID
}

// Log returns the cumulative motor log.
func (r *Runner) Log() *timeseries.Log {
	return r.log
}

// Cycle returns the last completed cycle index, 0 before the first step.
func (r *Runner) Cycle() int {
	return r.cycle
}

// StepOnce advances the simulation by one cycle and returns the
// snapshots produced, in log-append order for sequential stepping and
// in traversal order for parallel stepping.
func (r *Runner) StepOnce() []motor.Snapshot {
	r.cycle++

	var snaps []motor.Snapshot
	if r.pool != nil {
		snaps = r.stepParallel(r.cycle)
	} else {
		snaps = r.factory.Step(r.cycle, r.log)
	}

	for _, fn := range r.observers {
		for _, snap := range snaps {
			fn(snap)
		}
	}
	return snaps
}

// stepParallel updates every machine concurrently within the cycle.
// Results land in per-machine slots so the returned order matches the
// sequential traversal regardless of scheduling.
func (r *Runner) stepParallel(cycle int) []motor.Snapshot {
	var machines []*factory.Machine
	for _, line := range r.factory.Lines() {
		machines = append(machines, line.Machines()...)
	}

	results := make([][]motor.Snapshot, len(machines))
	var wg sync.WaitGroup
	for i, m := range machines {
		i, m := i, m
		wg.Add(1)
		r.pool.Submit(func() {
			defer wg.Done()
			results[i] = m.Step(cycle, r.log)
		})
	}
	wg.Wait()

	snaps := make([]motor.Snapshot, 0, 2*len(machines))
	for _, rs := range results {
		snaps = append(snaps, rs...)
	}
	return snaps
}

// Run drives the factory for totalCycles cycles, checking for
// cancellation between cycles. The log is valid for reading whether or
// not the run completed.
func (r *Runner) Run(ctx context.Context, totalCycles int) error {
	log.Info().
		Str("run_id", r.runID).
		Str("factory", r.factory.Name()).
		Int("motors", r.factory.MotorCount()).
		Int("cycles", totalCycles).
		Msg("Starting simulation run")

	for i := 0; i < totalCycles; i++ {
		if err := ctx.Err(); err != nil {
			log.Warn().
				Str("run_id", r.runID).
				Int("completed_cycles", r.cycle).
				Msg("Simulation run cancelled")
			return err
		}
		r.StepOnce()
	}

	log.Info().
		Str("run_id", r.runID).
		Int("cycles", r.cycle).
		Msg("Simulation run complete")
	return nil
}

// Close releases the worker pool, if any. The runner must not be
// stepped afterwards.
func (r *Runner) Close() {
	if r.pool != nil {
		r.pool.StopWait()
		r.pool = nil
	}
}
