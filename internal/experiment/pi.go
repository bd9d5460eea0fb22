package experiment

import "math/rand/v2"

// PiEstimation samples a point uniformly in the unit square and scores 1
// when it falls inside the quarter circle of radius 1. The mean of the
// outcomes converges to π/4.
type PiEstimation struct{}

// Produce samples one point.
func (PiEstimation) Produce(rng *rand.Rand) (float64, error) {
	x, y := rng.Float64(), rng.Float64()
	if x*x+y*y <= 1 {
		return 1, nil
	}
	return 0, nil
}

// PiScale is the factor that maps the mean of PiEstimation to π.
const PiScale = 4
