package tools

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	ε = 1e-12 // General epsilon
)

// CircularVelocity returns the speed of a circular orbit of radius r about a body of mass M.
func CircularVelocity(G, M, r float64) (float64, error) {
	if G <= 0 || M <= 0 {
		return 0, fmt.Errorf("G (%g) and M (%g) must be positive", G, M)
	}
	if r <= 0 {
		return 0, fmt.Errorf("orbit radius must be positive (got %g m)", r)
	}
	return math.Sqrt(G * M / r), nil
}

// OrbitalPeriod returns the period of an orbit of semi-major axis a about a body of mass M.
func OrbitalPeriod(G, M, a float64) (float64, error) {
	if G <= 0 || M <= 0 {
		return 0, fmt.Errorf("G (%g) and M (%g) must be positive", G, M)
	}
	if a <= 0 {
		return 0, fmt.Errorf("semi-major axis must be positive (got %g m)", a)
	}
	return 2 * math.Pi * math.Sqrt(math.Pow(a, 3)/(G*M)), nil
}

// OrbitalVelocity returns the velocity of a counter-clockwise circular orbit about center, which has mass M.
// The velocity is perpendicular to the radius vector.
func OrbitalVelocity(G, M float64, center, pos r2.Vec) (r2.Vec, error) {
	rVec := r2.Sub(pos, center)
	r := r2.Norm(rVec)
	if scalar.EqualWithinAbs(r, 0, ε) {
		return r2.Vec{}, errors.New("body is at the center of the orbit")
	}
	v, err := CircularVelocity(G, M, r)
	if err != nil {
		return r2.Vec{}, err
	}
	return r2.Vec{X: -rVec.Y / r * v, Y: rVec.X / r * v}, nil
}
