package core

import (
	"math"
	"math/rand"
)

// NoiseGenerator provides the random perturbations applied by the motor
// plants (temperature jitter, efficiency decay). It wraps a private rand
// source so that a fixed seed reproduces a run exactly.
type NoiseGenerator struct {
	rng *rand.Rand
}

// NewNoiseGenerator creates a noise generator from an explicit seed.
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	return &NoiseGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Uniform returns a uniform random value in [min, max).
func (ng *NoiseGenerator) Uniform(min, max float64) float64 {
	return min + ng.rng.Float64()*(max-min)
}

// Symmetric returns a uniform random value in [-magnitude, magnitude).
func (ng *NoiseGenerator) Symmetric(magnitude float64) float64 {
	return ng.Uniform(-magnitude, magnitude)
}

// NonNegative returns a uniform random value in [0, magnitude).
// The plants use this for decrements that must never reverse sign.
func (ng *NoiseGenerator) NonNegative(magnitude float64) float64 {
	return ng.Uniform(0, magnitude)
}

// Gaussian returns a value from a Gaussian distribution with given mean and stdDev.
func (ng *NoiseGenerator) Gaussian(mean, stdDev float64) float64 {
	return mean + ng.rng.NormFloat64()*stdDev
}

// ClampPositive ensures a value is non-negative.
func ClampPositive(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}

// Clamp ensures a value is within bounds.
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Round rounds a value to the given number of decimal places.
func Round(value float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(value*shift) / shift
}
