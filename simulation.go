package retrograde

import (
	"context"
	"fmt"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"gonum.org/v1/gonum/spatial/r2"
)

/* Handles the propagation of all the bodies. */

// Simulation holds the bodies and advances them by a fixed time step.
type Simulation struct {
	bodies      []*Body
	names       map[string]*Body
	G, AU       float64
	step        time.Duration
	interaction Interaction
	epoch       time.Time
	tick        uint64
	logger      kitlog.Logger
	forces      []r2.Vec // per tick scratch, indexed like bodies
}

// NewSimulation returns a new simulation from a valid configuration.
// A nil logger discards all logs.
func NewSimulation(conf Config, logger kitlog.Logger) (*Simulation, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	s := &Simulation{
		bodies:      make([]*Body, 0, len(conf.Bodies)),
		names:       make(map[string]*Body, len(conf.Bodies)),
		G:           conf.G,
		AU:          conf.AU,
		step:        conf.Step,
		interaction: conf.Interaction,
		epoch:       conf.Epoch.UTC(),
		logger:      kitlog.With(logger, "subsys", "physics"),
		forces:      make([]r2.Vec, len(conf.Bodies)),
	}
	for _, bc := range conf.Bodies {
		pos := r2.Vec{X: bc.Position[0] * conf.AU, Y: bc.Position[1] * conf.AU}
		vel := r2.Vec{X: bc.Velocity[0], Y: bc.Velocity[1]}
		b, err := NewBody(bc.Name, pos, vel, bc.Mass, bc.Anchor)
		if err != nil {
			return nil, err
		}
		b.Radius = bc.Radius
		b.Color = bc.Color
		s.bodies = append(s.bodies, b)
		s.names[b.Name] = b
	}
	s.logger.Log("level", "info", "status", "created", "bodies", len(s.bodies), "interaction", s.interaction, "step", s.step, "epoch", s.epoch)
	return s, nil
}

// Bodies returns the bodies in configuration order.
func (s *Simulation) Bodies() []*Body {
	return s.bodies
}

// Body returns the body of the provided name.
func (s *Simulation) Body(name string) (*Body, error) {
	if b, ok := s.names[name]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("no body named `%s`", name)
}

// Tick returns the number of steps taken so far.
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// TimeStep returns the fixed time step.
func (s *Simulation) TimeStep() time.Duration {
	return s.step
}

// Interaction returns the interaction mode.
func (s *Simulation) Interaction() Interaction {
	return s.interaction
}

// CurrentDT returns the current simulated time.
func (s *Simulation) CurrentDT() time.Time {
	return s.epoch.Add(time.Duration(s.tick) * s.step)
}

// netForce returns the force applied on the i-th body from the start of tick positions.
func (s *Simulation) netForce(i int) (r2.Vec, error) {
	self := s.bodies[i]
	var net r2.Vec
	for j, other := range s.bodies {
		if j == i {
			continue
		}
		if s.interaction == TwoBody && !other.Anchor {
			continue
		}
		f, err := Force(self, other, s.G)
		if err != nil {
			return r2.Vec{}, err
		}
		net = r2.Add(net, f)
	}
	return net, nil
}

// Step moves every non anchored body by one time step.
// All the forces are computed before any body moves. If any of them cannot be computed,
// no body is changed and the error is returned.
func (s *Simulation) Step() error {
	for i, b := range s.bodies {
		if b.Anchor {
			continue
		}
		f, err := s.netForce(i)
		if err != nil {
			s.logger.Log("level", "critical", "status", "aborted", "tick", s.tick, "dt", s.CurrentDT(), "err", err)
			return err
		}
		s.forces[i] = f
	}
	dt := s.step.Seconds()
	for i, b := range s.bodies {
		if b.Anchor {
			continue
		}
		b.Velocity = r2.Add(b.Velocity, r2.Scale(dt/b.mass, s.forces[i]))
		b.Position = r2.Add(b.Position, r2.Scale(dt, b.Velocity))
		b.Trail = append(b.Trail, b.Position)
	}
	s.tick++
	return nil
}

// Propagate advances by n steps. It stops at the first error, or when the context is done.
// The context is only checked between two steps.
func (s *Simulation) Propagate(ctx context.Context, n uint64) error {
	for i := uint64(0); i < n; i++ {
		select {
		case <-ctx.Done():
			s.logger.Log("level", "notice", "status", "stopped", "tick", s.tick, "dt", s.CurrentDT())
			return ctx.Err()
		default:
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// LogStatus logs the current state of every body.
func (s *Simulation) LogStatus() {
	for _, b := range s.bodies {
		s.logger.Log("level", "info", "tick", s.tick, "date", s.CurrentDT().Format(time.RFC3339), "body", b.Name, "r(AU)", r2.Norm(b.Position)/s.AU, "v(km/s)", r2.Norm(b.Velocity)/1e3)
	}
}
