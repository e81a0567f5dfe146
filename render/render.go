// Package render turns the state of a simulation into drawing primitives for a host.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/ChristopherRabotin/retrograde"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// White is used for labels, text and the projection circle.
	White = color.RGBA{255, 255, 255, 255}
	// Black is the background.
	Black = color.RGBA{0, 0, 0, 255}
)

// Renderer draws primitives in screen coordinates.
type Renderer interface {
	Circle(center r2.Vec, radius float64, clr color.Color, filled bool)
	Polyline(points []r2.Vec, width float64, clr color.Color)
	Line(a, b r2.Vec, clr color.Color)
	Text(s string, at r2.Vec, clr color.Color, centered bool)
}

// View defines how a simulation is displayed.
type View struct {
	Title            string
	Width, Height    int
	PixelsPerAU      float64
	ProjectionRadius float64 // pixels
	Observer, Target string
	FPS              int
	TrailWidth       float64
}

// DefaultView returns an 800x800 window with Earth looking at Mars.
func DefaultView() View {
	return View{
		Title:            "Retrograde motion simulation",
		Width:            800,
		Height:           800,
		PixelsPerAU:      50,
		ProjectionRadius: 380,
		Observer:         retrograde.Earth.Name,
		Target:           retrograde.Mars.Name,
		FPS:              60,
		TrailWidth:       2,
	}
}

// LoadView reads the `render` section of a scenario, defaulting to DefaultView.
func LoadView(v *viper.Viper) (View, error) {
	view := DefaultView()
	if v.IsSet("render.title") {
		view.Title = v.GetString("render.title")
	}
	if v.IsSet("render.width") {
		view.Width = v.GetInt("render.width")
	}
	if v.IsSet("render.height") {
		view.Height = v.GetInt("render.height")
	}
	if v.IsSet("render.scale") {
		view.PixelsPerAU = v.GetFloat64("render.scale")
	}
	if v.IsSet("render.radius") {
		view.ProjectionRadius = v.GetFloat64("render.radius")
	}
	if v.IsSet("render.observer") {
		view.Observer = v.GetString("render.observer")
	}
	if v.IsSet("render.target") {
		view.Target = v.GetString("render.target")
	}
	if v.IsSet("render.fps") {
		view.FPS = v.GetInt("render.fps")
	}
	if v.IsSet("render.trail") {
		view.TrailWidth = v.GetFloat64("render.trail")
	}
	return view, view.Validate()
}

// Validate returns an error if this view cannot be drawn.
func (v View) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", v.Width, v.Height)
	}
	if v.PixelsPerAU <= 0 {
		return fmt.Errorf("scale must be positive (got %f px/AU)", v.PixelsPerAU)
	}
	if v.ProjectionRadius <= 0 {
		return fmt.Errorf("projection radius must be positive (got %f px)", v.ProjectionRadius)
	}
	if v.FPS <= 0 {
		return fmt.Errorf("FPS must be positive (got %d)", v.FPS)
	}
	if v.Observer == v.Target {
		return errors.New("observer and target must be different bodies")
	}
	return nil
}

// Viewport returns the mapping from meters to pixels.
func (v View) Viewport(au float64) retrograde.Viewport {
	return retrograde.NewViewport(v.PixelsPerAU, au, v.Width, v.Height)
}

// Projection returns the projection of the observer to target sight-line on the circle centered in the window.
func (v View) Projection() retrograde.Projection {
	return retrograde.Projection{
		Observer: v.Observer,
		Target:   v.Target,
		Radius:   v.ProjectionRadius,
		Center:   r2.Vec{X: float64(v.Width) / 2, Y: float64(v.Height) / 2},
	}
}

// Frame draws the current state of the simulation.
// The sight-line and its projection are drawn last: if the sight-line misses the circle,
// everything else is drawn and the NoIntersection error is returned.
func Frame(r Renderer, sim *retrograde.Simulation, view View) error {
	vp := view.Viewport(sim.AU)
	for _, b := range sim.Bodies() {
		if len(b.Trail) > 2 {
			r.Polyline(vp.TrailToScreen(b.Trail), view.TrailWidth, b.Color)
		}
		pos := vp.ToScreen(b.Position)
		r.Circle(pos, b.Radius, b.Color, true)
		label := White
		if b.Anchor {
			label = Black
		}
		r.Text(b.Name, pos, label, true)
	}

	proj := view.Projection()
	r.Circle(proj.Center, proj.Radius, White, false)

	observer, err := sim.Body(view.Observer)
	if err != nil {
		return err
	}
	target, err := sim.Body(view.Target)
	if err != nil {
		return err
	}
	r.Text(DistanceText(observer, target), r2.Vec{}, White, false)

	sighting, err := proj.Point(sim, vp)
	if err != nil {
		return err
	}
	r.Circle(sighting.Point, target.Radius, target.Color, true)
	r.Line(sighting.Observer, sighting.Point, White)
	return nil
}

// DistanceText returns the readout of the distance between two bodies.
func DistanceText(a, b *retrograde.Body) string {
	return fmt.Sprintf("Distance between %s and %s: %.0f km", a.Name, b.Name, retrograde.Distance(a, b)/1e3)
}
