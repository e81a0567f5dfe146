package retrograde

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport maps simulation coordinates (meters) to screen coordinates (pixels).
type Viewport struct {
	Scale  float64 // pixels per meter
	Offset r2.Vec  // screen position of the origin
}

// NewViewport returns a viewport of the given size centered on the origin.
func NewViewport(pixelsPerAU, au float64, width, height int) Viewport {
	return Viewport{Scale: pixelsPerAU / au, Offset: r2.Vec{X: float64(width) / 2, Y: float64(height) / 2}}
}

// ToScreen returns the screen coordinates of p.
func (v Viewport) ToScreen(p r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(v.Scale, p), v.Offset)
}

// TrailToScreen returns the screen coordinates of a trail.
func (v Viewport) TrailToScreen(trail []r2.Vec) []r2.Vec {
	pts := make([]r2.Vec, len(trail))
	for i, p := range trail {
		pts[i] = v.ToScreen(p)
	}
	return pts
}

// Projection defines the sight-line from an observer body to a target body, projected on a fixed circle
// which stands for the sphere of fixed stars.
type Projection struct {
	Observer, Target string
	Radius           float64 // pixels
	Center           r2.Vec  // screen coordinates
}

// Sighting is the projection of the sight-line for a given frame, in screen coordinates.
type Sighting struct {
	Observer, Target, Point r2.Vec
}

// Point returns the current sighting. It must be called every frame since both bodies move.
// The observer and target screen positions are returned with a NoIntersection error so the host can still draw them.
func (p Projection) Point(sim *Simulation, view Viewport) (Sighting, error) {
	observer, err := sim.Body(p.Observer)
	if err != nil {
		return Sighting{}, err
	}
	target, err := sim.Body(p.Target)
	if err != nil {
		return Sighting{}, err
	}
	s := Sighting{Observer: view.ToScreen(observer.Position), Target: view.ToScreen(target.Position)}
	s.Point, err = Intersect(p.Radius, p.Center, s.Observer, s.Target)
	return s, err
}

// ApparentLongitude returns the direction (in radians, within ]-π, π]) in which the observer sees the target.
func ApparentLongitude(observer, target *Body) float64 {
	d := r2.Sub(target.Position, observer.Position)
	return math.Atan2(d.Y, d.X)
}

// RetrogradeTracker follows the apparent longitude of a target and flags when it moves backwards,
// i.e. against the sense of revolution of the observer.
type RetrogradeTracker struct {
	Observer, Target string
	longitude        float64 // unwrapped, radians
	sense            float64 // +1 for counter-clockwise revolution of the observer
	started          bool
	retrograde       bool
	episodes         uint
}

// NewRetrogradeTracker returns a tracker of the target as seen by the observer.
func NewRetrogradeTracker(observer, target string) *RetrogradeTracker {
	return &RetrogradeTracker{Observer: observer, Target: target}
}

// Update records the current apparent longitude. It returns whether the target is in retrograde motion.
func (t *RetrogradeTracker) Update(sim *Simulation) (bool, error) {
	observer, err := sim.Body(t.Observer)
	if err != nil {
		return false, err
	}
	target, err := sim.Body(t.Target)
	if err != nil {
		return false, err
	}
	λ := ApparentLongitude(observer, target)
	if !t.started {
		// Angular momentum about the origin gives the sense of revolution.
		t.sense = sign(observer.Position.X*observer.Velocity.Y - observer.Position.Y*observer.Velocity.X)
		t.longitude = λ
		t.started = true
		return false, nil
	}
	next := unwrap(t.longitude, λ)
	retro := (next-t.longitude)*t.sense < 0
	if retro && !t.retrograde {
		t.episodes++
	}
	t.retrograde = retro
	t.longitude = next
	return retro, nil
}

// Longitude returns the unwrapped apparent longitude in radians.
func (t *RetrogradeTracker) Longitude() float64 {
	return t.longitude
}

// Retrograde returns whether the last update was in retrograde motion.
func (t *RetrogradeTracker) Retrograde() bool {
	return t.retrograde
}

// Episodes returns the number of retrograde loops seen so far.
func (t *RetrogradeTracker) Episodes() uint {
	return t.episodes
}
