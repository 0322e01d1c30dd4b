package timeseries

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoint(cycle int) Point {
	return Point{
		Cycle:       cycle,
		Speed:       float64(cycle) * 10,
		Reference:   1200,
		Temperature: 25.0 + float64(cycle)*0.1,
		Efficiency:  92.0,
		Current:     4.2,
		Torque:      2.1,
	}
}

func TestAppendCreatesSeries(t *testing.T) {
	log := NewLog()
	assert.Empty(t, log.MotorIDs())

	log.Append("Line_1_M0_DC", testPoint(1))

	assert.Equal(t, []string{"Line_1_M0_DC"}, log.MotorIDs())
	assert.Equal(t, 1, log.Len("Line_1_M0_DC"))
}

func TestAppendReusesSeries(t *testing.T) {
	log := NewLog()
	for c := 1; c <= 5; c++ {
		log.Append("Line_1_M0_DC", testPoint(c))
	}
	assert.Len(t, log.MotorIDs(), 1)
	assert.Equal(t, 5, log.Len("Line_1_M0_DC"))
}

func TestSeriesColumnsStayAligned(t *testing.T) {
	log := NewLog()
	for c := 1; c <= 20; c++ {
		log.Append("Line_1_M0_AC", testPoint(c))
	}
	s, ok := log.Series("Line_1_M0_AC")
	require.True(t, ok)
	assert.Len(t, s.Cycle, 20)
	assert.Len(t, s.Speed, 20)
	assert.Len(t, s.Reference, 20)
	assert.Len(t, s.Temperature, 20)
	assert.Len(t, s.Efficiency, 20)
	assert.Len(t, s.Current, 20)
	assert.Len(t, s.Torque, 20)
}

func TestSeriesReturnsCopy(t *testing.T) {
	log := NewLog()
	log.Append("Line_1_M0_DC", testPoint(1))

	s, ok := log.Series("Line_1_M0_DC")
	require.True(t, ok)
	s.Speed[0] = -1
	s.Cycle[0] = -1

	again, ok := log.Series("Line_1_M0_DC")
	require.True(t, ok)
	assert.Equal(t, 10.0, again.Speed[0])
	assert.Equal(t, 1, again.Cycle[0])
}

func TestUnknownMotor(t *testing.T) {
	log := NewLog()
	_, ok := log.Series("Line_9_M9_DC")
	assert.False(t, ok)
	_, ok = log.Latest("Line_9_M9_DC")
	assert.False(t, ok)
	assert.Equal(t, 0, log.Len("Line_9_M9_DC"))
}

func TestLatest(t *testing.T) {
	log := NewLog()
	for c := 1; c <= 3; c++ {
		log.Append("Line_1_M1_AC", testPoint(c))
	}
	p, ok := log.Latest("Line_1_M1_AC")
	require.True(t, ok)
	assert.Equal(t, 3, p.Cycle)
	assert.Equal(t, 30.0, p.Speed)
}

func TestMotorIDsSorted(t *testing.T) {
	log := NewLog()
	for _, id := range []string{"Line_2_M0_DC", "Line_1_M1_AC", "Line_1_M0_DC"} {
		log.Append(id, testPoint(1))
	}
	assert.Equal(t, []string{"Line_1_M0_DC", "Line_1_M1_AC", "Line_2_M0_DC"}, log.MotorIDs())
}

func TestConcurrentAppendsDistinctMotors(t *testing.T) {
	log := NewLog()
	const motors = 16
	const cycles = 100

	var wg sync.WaitGroup
	for i := 0; i < motors; i++ {
		id := fmt.Sprintf("Line_%d_M0_DC", i+1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := 1; c <= cycles; c++ {
				log.Append(id, testPoint(c))
			}
		}()
	}
	wg.Wait()

	require.Len(t, log.MotorIDs(), motors)
	for _, id := range log.MotorIDs() {
		require.Equal(t, cycles, log.Len(id), "motor %s", id)
	}
}
