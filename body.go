package retrograde

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Body is a celestial object being propagated.
type Body struct {
	Name     string
	Position r2.Vec // meters
	Velocity r2.Vec // meters per second
	Radius   float64 // display radius, in pixels
	Color    color.RGBA
	Anchor   bool     // immovable: never integrated
	Trail    []r2.Vec // past positions, for rendering only
	mass     float64
}

// NewBody returns a new body. The mass cannot be changed afterwards.
func NewBody(name string, position, velocity r2.Vec, mass float64, anchor bool) (*Body, error) {
	if name == "" {
		return nil, errors.New("body name cannot be empty")
	}
	if mass <= 0 {
		return nil, fmt.Errorf("mass of %s must be positive (got %g kg)", name, mass)
	}
	return &Body{Name: name, Position: position, Velocity: velocity, Anchor: anchor, mass: mass}, nil
}

// Mass returns the mass in kilograms (which is unexported because it cannot change).
func (b *Body) Mass() float64 {
	return b.mass
}

// String implements the Stringer interface.
func (b *Body) String() string {
	kind := "body"
	if b.Anchor {
		kind = "anchor"
	}
	return fmt.Sprintf("%s %s r=(%e, %e) m v=(%f, %f) m/s", b.Name, kind, b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y)
}

// Force returns the gravitational force (in Newtons) exerted by other on self.
func Force(self, other *Body, G float64) (r2.Vec, error) {
	dx := other.Position.X - self.Position.X
	dy := other.Position.Y - self.Position.Y
	r2d := dx*dx + dy*dy
	if r2d == 0 {
		return r2.Vec{}, newDomainError(ZeroDistance, "%s and %s are both at (%e, %e)", self.Name, other.Name, self.Position.X, self.Position.Y)
	}
	magnitude := G * self.mass * other.mass / r2d
	angle := math.Atan2(dy, dx)
	sθ, cθ := math.Sincos(angle)
	return r2.Vec{X: magnitude * cθ, Y: magnitude * sθ}, nil
}

// Distance returns the distance between two bodies, in meters.
func Distance(a, b *Body) float64 {
	return r2.Norm(r2.Sub(a.Position, b.Position))
}
