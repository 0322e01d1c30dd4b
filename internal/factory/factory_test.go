package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiankruger/motorplant-simulator/internal/config"
	"github.com/sebastiankruger/motorplant-simulator/internal/motor"
	"github.com/sebastiankruger/motorplant-simulator/internal/timeseries"
)

func testConfig(lines, machines int) *config.Config {
	return &config.Config{
		SimulatorName:     "TestFactory",
		Lines:             lines,
		MachinesPerLine:   machines,
		TotalCycles:       101,
		CycleInterval:     50,
		TemperatureJitter: 0.05,
		EfficiencyDecay:   0.001,
	}
}

func TestNewTopology(t *testing.T) {
	f, err := New(testConfig(2, 2), 42)
	require.NoError(t, err)

	assert.Equal(t, "TestFactory", f.Name())
	assert.Len(t, f.Lines(), 2)
	assert.Equal(t, 8, f.MotorCount())

	want := []string{
		"Line_1_M0_DC", "Line_1_M0_AC",
		"Line_1_M1_DC", "Line_1_M1_AC",
		"Line_2_M0_DC", "Line_2_M0_AC",
		"Line_2_M1_DC", "Line_2_M1_AC",
	}
	assert.Equal(t, want, f.MotorIDs())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(0, 2)
	_, err := New(cfg, 42)
	assert.Error(t, err)

	cfg = testConfig(2, 0)
	_, err = New(cfg, 42)
	assert.Error(t, err)

	cfg = testConfig(2, 2)
	cfg.TotalCycles = 0
	_, err = New(cfg, 42)
	assert.Error(t, err)
}

func TestStepAppendsEveryMotor(t *testing.T) {
	f, err := New(testConfig(2, 2), 42)
	require.NoError(t, err)

	log := timeseries.NewLog()
	const cycles = 10
	for c := 1; c <= cycles; c++ {
		snaps := f.Step(c, log)
		require.Len(t, snaps, 8)
	}

	require.Len(t, log.MotorIDs(), 8)
	for _, id := range log.MotorIDs() {
		require.Equal(t, cycles, log.Len(id), "motor %s", id)
	}
}

func TestStepSnapshotOrderDCBeforeAC(t *testing.T) {
	f, err := New(testConfig(1, 2), 42)
	require.NoError(t, err)

	snaps := f.Step(1, timeseries.NewLog())
	require.Len(t, snaps, 4)
	assert.Equal(t, "Line_1_M0_DC", snaps[0].MotorID)
	assert.Equal(t, "Line_1_M0_AC", snaps[1].MotorID)
	assert.Equal(t, "Line_1_M1_DC", snaps[2].MotorID)
	assert.Equal(t, "Line_1_M1_AC", snaps[3].MotorID)
}

func TestSameSeedSameSeries(t *testing.T) {
	run := func() *timeseries.Log {
		f, err := New(testConfig(2, 2), 7)
		require.NoError(t, err)
		log := timeseries.NewLog()
		for c := 1; c <= 50; c++ {
			f.Step(c, log)
		}
		return log
	}

	a, b := run(), run()
	for _, id := range a.MotorIDs() {
		sa, _ := a.Series(id)
		sb, _ := b.Series(id)
		assert.Equal(t, sa, sb, "motor %s", id)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	run := func(seed int64) *timeseries.Log {
		f, err := New(testConfig(1, 1), seed)
		require.NoError(t, err)
		log := timeseries.NewLog()
		for c := 1; c <= 50; c++ {
			f.Step(c, log)
		}
		return log
	}

	a, _ := run(1).Series("Line_1_M0_DC")
	b, _ := run(2).Series("Line_1_M0_DC")
	// Temperature carries seeded jitter, so the streams must differ.
	assert.NotEqual(t, a.Temperature, b.Temperature)
}

func TestMachineMotorKinds(t *testing.T) {
	m := NewMachine("Line_1_M0", nil, 42, motor.DefaultConfig())
	assert.Equal(t, motor.KindDC, m.DC().Kind())
	assert.Equal(t, motor.KindAC, m.AC().Kind())
	assert.Equal(t, "Line_1_M0", m.ID())
}

func TestRuntimeJitterAdjustment(t *testing.T) {
	f, err := New(testConfig(1, 1), 42)
	require.NoError(t, err)
	require.NoError(t, f.Runtime().SetTemperatureJitter(0))
	require.NoError(t, f.Runtime().SetEfficiencyDecay(0))

	log := timeseries.NewLog()
	f.Step(1, log)

	// Without jitter the first cycle heats exactly by the drive signal
	// contribution and efficiency holds its initial value.
	p, ok := log.Latest("Line_1_M0_DC")
	require.True(t, ok)
	assert.Equal(t, 25.1, p.Temperature)
	assert.Equal(t, 92.0, p.Efficiency)
}

func TestMetrics(t *testing.T) {
	f, err := New(testConfig(2, 2), 42)
	require.NoError(t, err)

	log := timeseries.NewLog()
	for c := 1; c <= 20; c++ {
		f.Step(c, log)
	}

	metrics := f.Metrics(log)
	require.Len(t, metrics, 2)
	for i, lm := range metrics {
		assert.Equal(t, f.Lines()[i].ID(), lm.LineID)
		assert.Equal(t, 4, lm.MotorCount)
		assert.Equal(t, 20, lm.Cycles)
		assert.Greater(t, lm.AvgSpeed, 0.0)
		assert.Greater(t, lm.AvgEfficiency, 0.0)
		assert.GreaterOrEqual(t, lm.MaxTemperature, 25.0)
	}
}
