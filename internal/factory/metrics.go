package factory

import (
	"github.com/sebastiankruger/motorplant-simulator/internal/timeseries"
)

// LineMetrics holds production line level aggregates derived from the
// motor log.
type LineMetrics struct {
	LineID         string  `json:"lineId"`
	MotorCount     int     `json:"motorCount"`
	Cycles         int     `json:"cycles"`         // longest series on the line
	AvgSpeed       float64 `json:"avgSpeed"`       // RPM, latest points
	AvgEfficiency  float64 `json:"avgEfficiency"`  // %, latest points
	MaxTemperature float64 `json:"maxTemperature"` // °C, latest points
}

// Metrics computes per-line aggregates from the latest log entry of
// each motor. Lines whose motors have no entries yet report zeroes.
func (f *Factory) Metrics(log *timeseries.Log) []LineMetrics {
	out := make([]LineMetrics, 0, len(f.lines))
	for _, line := range f.lines {
		lm := LineMetrics{LineID: line.id}
		var speedSum, effSum float64
		for _, m := range line.machines {
			for _, id := range m.MotorIDs() {
				p, ok := log.Latest(id)
				if !ok {
					continue
				}
				lm.MotorCount++
				speedSum += p.Speed
				effSum += p.Efficiency
				if p.Temperature > lm.MaxTemperature {
					lm.MaxTemperature = p.Temperature
				}
				if n := log.Len(id); n > lm.Cycles {
					lm.Cycles = n
				}
			}
		}
		if lm.MotorCount > 0 {
			lm.AvgSpeed = speedSum / float64(lm.MotorCount)
			lm.AvgEfficiency = effSum / float64(lm.MotorCount)
		}
		out = append(out, lm)
	}
	return out
}
