package retrograde

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	deg2rad = math.Pi / 180
)

// sign returns the sign of a given number.
func sign(v float64) float64 {
	if scalar.EqualWithinAbs(v, 0, 1e-12) {
		return 1
	}
	return v / math.Abs(v)
}

// lineEval evaluates a·x + b·y + c at p, i.e. on which side of the line a·x + b·y + c = 0 the point lies.
func lineEval(a, b, c float64, p r2.Vec) float64 {
	return a*p.X + b*p.Y + c
}

// unwrap returns the angle equivalent to next which is closest to prev.
func unwrap(prev, next float64) float64 {
	δ := math.Mod(next-prev, 2*math.Pi)
	if δ > math.Pi {
		δ -= 2 * math.Pi
	} else if δ < -math.Pi {
		δ += 2 * math.Pi
	}
	return prev + δ
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}
