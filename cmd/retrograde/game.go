package main

import (
	"errors"
	"image/color"

	"github.com/ChristopherRabotin/retrograde"
	"github.com/ChristopherRabotin/retrograde/render"
	kitlog "github.com/go-kit/kit/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
	"gonum.org/v1/gonum/spatial/r2"
)

// Game is the ebiten host of a simulation: one step per update, one frame per draw.
type Game struct {
	sim     *retrograde.Simulation
	view    render.View
	tracker *retrograde.RetrogradeTracker
	logger  kitlog.Logger
	paused  bool
	missed  bool  // whether the last frame had no projection
	err     error // set by Draw, returned by the next Update
}

// Update implements ebiten.Game. It polls for exit then advances the physics.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.sim.LogStatus()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}
	if err := g.sim.Step(); err != nil {
		return err
	}
	wasRetro := g.tracker.Retrograde()
	retro, err := g.tracker.Update(g.sim)
	if err != nil {
		return err
	}
	if retro != wasRetro {
		g.logger.Log("level", "info", "subsys", "projection", "retrograde", retro, "tick", g.sim.Tick(), "date", g.sim.CurrentDT().Format(dateFormat), "episodes", g.tracker.Episodes())
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Black)
	err := render.Frame(&ebitenRenderer{screen}, g.sim, g.view)
	var derr *retrograde.DomainError
	switch {
	case err == nil:
		g.missed = false
	case errors.As(err, &derr) && derr.Recoverable():
		if !g.missed {
			g.logger.Log("level", "warning", "subsys", "projection", "tick", g.sim.Tick(), "err", err)
		}
		g.missed = true
	default:
		g.logger.Log("level", "critical", "subsys", "projection", "tick", g.sim.Tick(), "err", err)
		g.err = err
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.view.Width, g.view.Height
}

var labelFace = text.NewGoXFace(basicfont.Face7x13)

// ebitenRenderer implements render.Renderer on an ebiten image.
type ebitenRenderer struct {
	dst *ebiten.Image
}

func (r *ebitenRenderer) Circle(center r2.Vec, radius float64, clr color.Color, filled bool) {
	if filled {
		vector.DrawFilledCircle(r.dst, float32(center.X), float32(center.Y), float32(radius), clr, true)
		return
	}
	vector.StrokeCircle(r.dst, float32(center.X), float32(center.Y), float32(radius), 1, clr, true)
}

func (r *ebitenRenderer) Polyline(points []r2.Vec, width float64, clr color.Color) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		vector.StrokeLine(r.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), clr, true)
	}
}

func (r *ebitenRenderer) Line(a, b r2.Vec, clr color.Color) {
	vector.StrokeLine(r.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, clr, true)
}

func (r *ebitenRenderer) Text(s string, at r2.Vec, clr color.Color, centered bool) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(at.X, at.Y)
	op.ColorScale.ScaleWithColor(clr)
	if centered {
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
	}
	text.Draw(r.dst, s, labelFace, op)
}
