package retrograde

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewBody(t *testing.T) {
	if _, err := NewBody("", r2.Vec{}, r2.Vec{}, 1, false); err == nil {
		t.Fatal("a body without a name should fail")
	}
	for _, mass := range []float64{0, -1} {
		if _, err := NewBody("Fake", r2.Vec{}, r2.Vec{}, mass, false); err == nil {
			t.Fatalf("mass of %f should fail", mass)
		}
	}
	b, err := NewBody("Earth", r2.Vec{X: -AU}, r2.Vec{Y: 29780}, Earth.Mass, false)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if b.Mass() != Earth.Mass {
		t.Fatalf("mass %f != %f", b.Mass(), Earth.Mass)
	}
	if len(b.Trail) != 0 {
		t.Fatal("a new body should not have a trail")
	}
}

func TestForce(t *testing.T) {
	sun, _ := NewBody("Sun", r2.Vec{}, r2.Vec{}, Sun.Mass, true)
	earth, _ := NewBody("Earth", r2.Vec{X: -AU}, r2.Vec{Y: 29780}, Earth.Mass, false)
	f, err := Force(earth, sun, G)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	exp := G * Sun.Mass * Earth.Mass / (AU * AU)
	if !scalar.EqualWithinRel(f.X, exp, 1e-12) {
		t.Fatalf("Fx = %e != %e", f.X, exp)
	}
	if !scalar.EqualWithinAbs(f.Y, 0, 1e-6*exp) {
		t.Fatalf("Fy = %e != 0", f.Y)
	}
}

func TestForceSymmetry(t *testing.T) {
	a, _ := NewBody("Earth", r2.Vec{X: -AU, Y: 0.3 * AU}, r2.Vec{}, Earth.Mass, false)
	b, _ := NewBody("Mars", r2.Vec{X: 1.2 * AU, Y: -0.7 * AU}, r2.Vec{}, Mars.Mass, false)
	fab, err := Force(a, b, G)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	fba, err := Force(b, a, G)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if !scalar.EqualWithinRel(r2.Norm(fab), r2.Norm(fba), 1e-12) {
		t.Fatalf("|F_ab| = %e != |F_ba| = %e", r2.Norm(fab), r2.Norm(fba))
	}
	sum := r2.Add(fab, fba)
	if r2.Norm(sum) > 1e-12*r2.Norm(fab) {
		t.Fatalf("F_ab + F_ba = %+v is not nil", sum)
	}
	// Direction of the force is towards the other body.
	if r2.Dot(fab, r2.Sub(b.Position, a.Position)) <= 0 {
		t.Fatal("force is repulsive")
	}
}

func TestForceZeroDistance(t *testing.T) {
	a, _ := NewBody("A", r2.Vec{X: 1, Y: 1}, r2.Vec{}, 1, false)
	b, _ := NewBody("B", r2.Vec{X: 1, Y: 1}, r2.Vec{}, 1, false)
	_, err := Force(a, b, G)
	if !errors.Is(err, ErrZeroDistance) {
		t.Fatalf("expected zero distance error, got %v", err)
	}
}

func TestDistance(t *testing.T) {
	a, _ := NewBody("A", r2.Vec{X: 3}, r2.Vec{}, 1, false)
	b, _ := NewBody("B", r2.Vec{Y: 4}, r2.Vec{}, 1, false)
	if d := Distance(a, b); d != 5 {
		t.Fatalf("distance %f != 5", d)
	}
	if Distance(a, b) != Distance(b, a) {
		t.Fatal("distance is not symmetric")
	}
	if math.IsNaN(Distance(a, a)) || Distance(a, a) != 0 {
		t.Fatal("distance to self should be zero")
	}
}
