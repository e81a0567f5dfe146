package retrograde

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ChristopherRabotin/retrograde/tools"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

func twoBody(earth BodyConfig, step time.Duration) Config {
	conf := DefaultConfig()
	conf.Step = step
	conf.Bodies = []BodyConfig{Sun.BodyConfig(), earth}
	return conf
}

func TestCircularOrbit(t *testing.T) {
	conf := DefaultConfig()
	v, err := tools.CircularVelocity(conf.G, Sun.Mass, conf.AU)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	earth := Earth.BodyConfig()
	earth.Velocity = [2]float64{0, v}
	conf = twoBody(earth, time.Hour)
	period, _ := tools.OrbitalPeriod(conf.G, Sun.Mass, conf.AU)
	sim, err := NewSimulation(conf, nil)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	b, _ := sim.Body("Earth")
	ticks := uint64(period / time.Hour.Seconds())
	for i := uint64(0); i < ticks; i++ {
		if err := sim.Step(); err != nil {
			t.Fatalf("tick %d: %s", i, err)
		}
		if r := r2.Norm(b.Position); !scalar.EqualWithinRel(r, conf.AU, 1e-2) {
			t.Fatalf("tick %d: r = %f AU", i, r/conf.AU)
		}
	}
	// Back near the start after a period.
	if d := r2.Norm(r2.Sub(b.Position, r2.Vec{X: -conf.AU})); d > 0.01*conf.AU {
		t.Fatalf("%f AU away from the initial position after one period", d/conf.AU)
	}
}

func TestEarthYear(t *testing.T) {
	earth := Earth.BodyConfig()
	earth.Velocity = [2]float64{0, 29780}
	conf := twoBody(earth, 86400*time.Second)
	conf.G = 6.674e-11
	sim, err := NewSimulation(conf, nil)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if err := sim.Propagate(context.Background(), 365); err != nil {
		t.Fatalf("err %s", err)
	}
	b, _ := sim.Body("Earth")
	if r := r2.Norm(b.Position); !scalar.EqualWithinRel(r, conf.AU, 2e-2) {
		t.Fatalf("r = %f AU after a year", r/conf.AU)
	}
	if d := r2.Norm(r2.Sub(b.Position, r2.Vec{X: -conf.AU})); d > 0.02*conf.AU {
		t.Fatalf("%f AU away from the initial position after a year", d/conf.AU)
	}
	if len(b.Trail) != 365 {
		t.Fatalf("trail has %d points", len(b.Trail))
	}
	if b.Trail[364] != b.Position {
		t.Fatal("last trail point is not the current position")
	}
	if exp := conf.Epoch.Add(365 * 24 * time.Hour); !sim.CurrentDT().Equal(exp) {
		t.Fatalf("current date %s != %s", sim.CurrentDT(), exp)
	}
}

func TestAnchorInvariance(t *testing.T) {
	for _, interaction := range []Interaction{TwoBody, NBody} {
		conf := DefaultConfig()
		conf.Interaction = interaction
		sim, err := NewSimulation(conf, nil)
		if err != nil {
			t.Fatalf("err %s", err)
		}
		sun, _ := sim.Body("Sun")
		sun.Velocity = r2.Vec{X: 1e-3, Y: -2e-3} // Would move if integrated.
		r0, v0 := sun.Position, sun.Velocity
		if err := sim.Propagate(context.Background(), 500); err != nil {
			t.Fatalf("err %s", err)
		}
		if sun.Position != r0 || sun.Velocity != v0 {
			t.Fatalf("[%s] anchor moved: r=%+v v=%+v", interaction, sun.Position, sun.Velocity)
		}
		if len(sun.Trail) != 0 {
			t.Fatalf("[%s] anchor has a trail", interaction)
		}
		t.Logf("[OK] %s", interaction)
	}
}

func TestTwoBodyIgnoresPlanets(t *testing.T) {
	// Earth alone and Earth with a (very) massive neighbor must move the same in two-body mode.
	alone, _ := NewSimulation(twoBody(Earth.BodyConfig(), StepSize), nil)
	conf := DefaultConfig()
	conf.Bodies[2].Mass = 1e30
	crowded, _ := NewSimulation(conf, nil)
	for i := 0; i < 100; i++ {
		alone.Step()
		crowded.Step()
	}
	a, _ := alone.Body("Earth")
	c, _ := crowded.Body("Earth")
	if a.Position != c.Position {
		t.Fatalf("two-body trajectory depends on planets: %+v != %+v", a.Position, c.Position)
	}
	conf.Interaction = NBody
	nbody, _ := NewSimulation(conf, nil)
	for i := 0; i < 100; i++ {
		nbody.Step()
	}
	n, _ := nbody.Body("Earth")
	if n.Position == c.Position {
		t.Fatal("n-body trajectory ignores planets")
	}
}

func TestNBodyOrderIndependence(t *testing.T) {
	// Swapping the bodies in the configuration must not change the result.
	conf := NBodyConfig(Venus)
	swapped := NBodyConfig(Venus)
	swapped.Bodies[1], swapped.Bodies[3] = swapped.Bodies[3], swapped.Bodies[1]
	s1, err := NewSimulation(conf, nil)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	s2, _ := NewSimulation(swapped, nil)
	s1.Propagate(context.Background(), 50)
	s2.Propagate(context.Background(), 50)
	for _, name := range []string{"Sun", "Earth", "Mars", "Venus"} {
		b1, _ := s1.Body(name)
		b2, _ := s2.Body(name)
		if !scalar.EqualWithinAbsOrRel(b1.Position.X, b2.Position.X, 1e-3, 1e-9) || !scalar.EqualWithinAbsOrRel(b1.Position.Y, b2.Position.Y, 1e-3, 1e-9) {
			t.Fatalf("%s: %+v != %+v", name, b1.Position, b2.Position)
		}
	}
}

func TestNBodyMomentum(t *testing.T) {
	// Without an anchor, the total momentum is conserved by pairwise forces.
	sim, err := NewSimulation(NBodyConfig(Mercury, Venus), nil)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	momentum := func() r2.Vec {
		var p r2.Vec
		for _, b := range sim.Bodies() {
			p = r2.Add(p, r2.Scale(b.Mass(), b.Velocity))
		}
		return p
	}
	p0 := momentum()
	sim.Propagate(context.Background(), 365)
	p1 := momentum()
	scale := Earth.Mass * 29783
	if d := r2.Norm(r2.Sub(p1, p0)); d > 1e-9*scale {
		t.Fatalf("momentum changed by %e", d)
	}
}

func TestAtomicTick(t *testing.T) {
	conf := NBodyConfig()
	conf.Bodies[2].Position = conf.Bodies[1].Position // Mars on Earth
	sim, err := NewSimulation(conf, nil)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	before := make([]Body, len(sim.Bodies()))
	for i, b := range sim.Bodies() {
		before[i] = *b
	}
	err = sim.Step()
	if !errors.Is(err, ErrZeroDistance) {
		t.Fatalf("expected zero distance, got %v", err)
	}
	for i, b := range sim.Bodies() {
		if b.Position != before[i].Position || b.Velocity != before[i].Velocity || len(b.Trail) != 0 {
			t.Fatalf("%s changed on a failed tick", b.Name)
		}
	}
	if sim.Tick() != 0 {
		t.Fatal("failed tick was counted")
	}
	if err := sim.Propagate(context.Background(), 10); !errors.Is(err, ErrZeroDistance) {
		t.Fatalf("propagate should fail the same way, got %v", err)
	}
}

func TestPropagateCancel(t *testing.T) {
	sim, _ := NewSimulation(DefaultConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sim.Propagate(ctx, 10); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if sim.Tick() != 0 {
		t.Fatalf("%d ticks after cancellation", sim.Tick())
	}
}

func TestSimulationBodies(t *testing.T) {
	sim, err := NewSimulation(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if len(sim.Bodies()) != 3 {
		t.Fatalf("%d bodies", len(sim.Bodies()))
	}
	if _, err := sim.Body("Pluto"); err == nil {
		t.Fatal("Pluto should not be found")
	}
	mars, _ := sim.Body("Mars")
	if !scalar.EqualWithinAbs(mars.Position.X, -1.5*AU, 1) || mars.Velocity.Y != 24.07e3 {
		t.Fatalf("unexpected initial state of Mars: %s", mars)
	}
	if sim.TimeStep() != StepSize || sim.Interaction() != TwoBody {
		t.Fatal("unexpected step or interaction")
	}
	if _, err := NewSimulation(Config{}, nil); err == nil {
		t.Fatal("empty config should fail")
	}
	if math.Abs(r2.Norm(mars.Position)-1.5*AU) > 1 {
		t.Fatal("Mars is not at 1.5 AU")
	}
}
