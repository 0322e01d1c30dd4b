package timeseries

import (
	"sort"
	"sync"
)

// Point is one per-cycle observation for a single motor.
type Point struct {
	Cycle       int
	Speed       float64
	Reference   float64
	Temperature float64
	Efficiency  float64
	Current     float64
	Torque      float64
}

// Series holds a motor's parallel sequences, ordered by cycle. Entries
// are appended exactly once per cycle, so all seven slices have the
// same length at any observation point.
type Series struct {
	Cycle       []int
	Speed       []float64
	Reference   []float64
	Temperature []float64
	Efficiency  []float64
	Current     []float64
	Torque      []float64
}

func (s *Series) append(p Point) {
	s.Cycle = append(s.Cycle, p.Cycle)
	s.Speed = append(s.Speed, p.Speed)
	s.Reference = append(s.Reference, p.Reference)
	s.Temperature = append(s.Temperature, p.Temperature)
	s.Efficiency = append(s.Efficiency, p.Efficiency)
	s.Current = append(s.Current, p.Current)
	s.Torque = append(s.Torque, p.Torque)
}

// Len returns the number of points in the series.
func (s *Series) Len() int {
	return len(s.Cycle)
}

// Log is the append-only mapping from motor identity to its time
// series. It is the engine's sole externally consumed artifact.
//
// The outer map is guarded so that first-time insertion of a motor ID
// is safe under concurrent stepping. Each motor is stepped by exactly
// one goroutine per cycle, so per-series appends need no further
// synchronization; readers pull after a step completes.
type Log struct {
	mu     sync.RWMutex
	series map[string]*Series
}

// NewLog creates an empty motor log.
func NewLog() *Log {
	return &Log{series: make(map[string]*Series)}
}

// Append records one observation for a motor, creating the series on
// first sight of the identity.
func (l *Log) Append(motorID string, p Point) {
	l.mu.RLock()
	s := l.series[motorID]
	l.mu.RUnlock()

	if s == nil {
		l.mu.Lock()
		s = l.series[motorID]
		if s == nil {
			s = &Series{}
			l.series[motorID] = s
		}
		l.mu.Unlock()
	}

	s.append(p)
}

// Len returns the number of points recorded for a motor, 0 if unknown.
func (l *Log) Len(motorID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.series[motorID]
	if !ok {
		return 0
	}
	return s.Len()
}

// MotorIDs returns the known motor identities in sorted order.
func (l *Log) MotorIDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]string, 0, len(l.series))
	for id := range l.series {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Series returns a copy of a motor's series so that callers cannot
// break the append-only invariant.
func (l *Log) Series(motorID string) (Series, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.series[motorID]
	if !ok {
		return Series{}, false
	}
	out := Series{
		Cycle:       append([]int(nil), s.Cycle...),
		Speed:       append([]float64(nil), s.Speed...),
		Reference:   append([]float64(nil), s.Reference...),
		Temperature: append([]float64(nil), s.Temperature...),
		Efficiency:  append([]float64(nil), s.Efficiency...),
		Current:     append([]float64(nil), s.Current...),
		Torque:      append([]float64(nil), s.Torque...),
	}
	return out, true
}

// Latest returns the most recent point for a motor.
func (l *Log) Latest(motorID string) (Point, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.series[motorID]
	if !ok || s.Len() == 0 {
		return Point{}, false
	}
	i := s.Len() - 1
	return Point{
		Cycle:       s.Cycle[i],
		Speed:       s.Speed[i],
		Reference:   s.Reference[i],
		Temperature: s.Temperature[i],
		Efficiency:  s.Efficiency[i],
		Current:     s.Current[i],
		Torque:      s.Torque[i],
	}, true
}
