package retrograde

import (
	"fmt"
	"image/color"
	"strings"
)

const (
	// AU is one astronomical unit in meters.
	AU = 1.496e11
	// G is the gravitational constant in m^3 kg^-1 s^-2.
	G = 6.67e-11
)

// CelestialObject defines the initial state of a celestial object on the ecliptic plane.
// The state is a start on the X axis with a tangential velocity along Y.
type CelestialObject struct {
	Name     string
	Mass     float64 // kg
	Distance float64 // initial X position in AU (signed)
	Speed    float64 // initial Y velocity in m/s (signed)
	Radius   float64 // display radius in pixels
	Color    color.RGBA
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Mass == b.Mass && c.Distance == b.Distance && c.Speed == b.Speed
}

// BodyConfig returns the configuration of a body starting at this object's initial state.
func (c CelestialObject) BodyConfig() BodyConfig {
	return BodyConfig{
		Name:     c.Name,
		Position: [2]float64{c.Distance, 0},
		Velocity: [2]float64{0, c.Speed},
		Mass:     c.Mass,
		Radius:   c.Radius,
		Color:    c.Color,
		Anchor:   c.Equals(Sun),
	}
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "mercury":
		return Mercury, nil
	case "venus":
		return Venus, nil
	case "earth":
		return Earth, nil
	case "mars":
		return Mars, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined celestial object '%s'", name)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 1.989e30, 0, 0, 30, color.RGBA{255, 255, 0, 255}}

// Mercury is fast.
var Mercury = CelestialObject{"Mercury", 3.30e23, 0.387, -47.4e3, 8, color.RGBA{80, 78, 81, 255}}

// Venus is poisonous.
var Venus = CelestialObject{"Venus", 4.8685e24, 0.723, -35.02e3, 14, color.RGBA{255, 255, 255, 255}}

// Earth is home.
var Earth = CelestialObject{"Earth", 5.9722e24, -1, 29.78e3, 16, color.RGBA{100, 149, 237, 255}}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 6.4169e23, -1.524, 24.077e3, 12, color.RGBA{188, 39, 50, 255}}
