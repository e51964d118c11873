package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestPairForceMagnitude(t *testing.T) {
	a := Body{Mass: 2e30, Pos: r2.Vec{X: 0, Y: 0}}
	b := Body{Mass: 6e24, Pos: r2.Vec{X: AU, Y: 0}}

	f := PairForce(a, b, G)
	want := G * a.Mass * b.Mass / (AU * AU)

	if math.Abs(f.X-want)/want > 1e-12 {
		t.Errorf("F.X = %g, want %g", f.X, want)
	}
	if f.Y != 0 {
		t.Errorf("F.Y = %g, want 0", f.Y)
	}
}

func TestPairForceNewtonsThirdLaw(t *testing.T) {
	tests := []struct {
		name string
		a, b Body
	}{
		{"axis aligned", Body{Mass: 1, Pos: r2.Vec{}}, Body{Mass: 3, Pos: r2.Vec{X: 5}}},
		{"diagonal", Body{Mass: 6e30, Pos: r2.Vec{X: -1e11, Y: 2e11}}, Body{Mass: 2e30, Pos: r2.Vec{X: 3e11, Y: -4e11}}},
		{"unequal tiny", Body{Mass: 1e-3, Pos: r2.Vec{X: 0.5, Y: 0.25}}, Body{Mass: 7e3, Pos: r2.Vec{X: -0.75, Y: 1.5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fab := PairForce(tt.a, tt.b, G)
			fba := PairForce(tt.b, tt.a, G)

			sum := r2.Add(fab, fba)
			scale := r2.Norm(fab)
			if scale == 0 {
				t.Fatal("expected nonzero force")
			}
			if r2.Norm(sum)/scale > 1e-12 {
				t.Errorf("forces not opposite: %v vs %v", fab, fba)
			}
			if math.Abs(r2.Norm(fab)-r2.Norm(fba))/scale > 1e-12 {
				t.Errorf("magnitudes differ: %g vs %g", r2.Norm(fab), r2.Norm(fba))
			}
		})
	}
}

func TestPairForceZeroSeparation(t *testing.T) {
	a := Body{Mass: 1e30, Pos: r2.Vec{X: 1, Y: 1}}
	f := PairForce(a, a, G)
	if f != (r2.Vec{}) {
		t.Errorf("expected zero force for coincident bodies, got %v", f)
	}
}

func TestDirectSolverSkipsSelfAndCoincident(t *testing.T) {
	bodies := []Body{
		{Mass: 1e30, Pos: r2.Vec{X: 0, Y: 0}},
		{Mass: 1e30, Pos: r2.Vec{X: 0, Y: 0}},
		{Mass: 1e30, Pos: r2.Vec{X: AU, Y: 0}},
	}

	forces := DirectSolver{}.Forces(nil, bodies, G)
	if len(forces) != 3 {
		t.Fatalf("expected 3 forces, got %d", len(forces))
	}
	for i, f := range forces {
		if math.IsNaN(f.X) || math.IsNaN(f.Y) {
			t.Fatalf("force %d is NaN", i)
		}
	}

	// The first two only feel the third body.
	want := G * 1e30 * 1e30 / (AU * AU)
	if math.Abs(forces[0].X-want)/want > 1e-12 {
		t.Errorf("forces[0].X = %g, want %g", forces[0].X, want)
	}
	// Net force on a closed system is zero.
	net := r2.Add(r2.Add(forces[0], forces[1]), forces[2])
	if r2.Norm(net)/want > 1e-12 {
		t.Errorf("net force should vanish, got %v", net)
	}
}

func TestDirectSolverReusesBuffer(t *testing.T) {
	bodies := []Body{
		{Mass: 1, Pos: r2.Vec{X: 0}},
		{Mass: 1, Pos: r2.Vec{X: 1}},
	}
	buf := make([]r2.Vec, 0, 8)
	out := DirectSolver{}.Forces(buf, bodies, 1)
	if &out[0] != &buf[:1][0] {
		t.Error("expected the scratch buffer to be reused")
	}

	// Stale values from a previous call must not leak into the sum.
	out = DirectSolver{}.Forces(out, bodies, 1)
	if math.Abs(out[0].X-1) > 1e-12 {
		t.Errorf("out[0].X = %g, want 1", out[0].X)
	}
}

func TestBarnesHutMatchesDirectWithZeroTheta(t *testing.T) {
	bodies := []Body{
		{Mass: 6e30, Pos: r2.Vec{X: 8 * AU, Y: 11 * AU}},
		{Mass: 2e30, Pos: r2.Vec{X: 8 * AU, Y: 8 * AU}},
		{Mass: 1e29, Pos: r2.Vec{X: 3 * AU, Y: 5 * AU}},
		{Mass: 4e28, Pos: r2.Vec{X: -2 * AU, Y: 1 * AU}},
	}

	direct := DirectSolver{}.Forces(nil, bodies, G)
	bh := &BarnesHutSolver{Theta: 0}
	approx := bh.Forces(nil, bodies, G)

	for i := range bodies {
		diff := r2.Norm(r2.Sub(direct[i], approx[i]))
		if diff/r2.Norm(direct[i]) > 1e-9 {
			t.Errorf("body %d: direct %v, barnes-hut %v", i, direct[i], approx[i])
		}
	}
}

func TestBarnesHutApproximatesDirect(t *testing.T) {
	var bodies []Body
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			bodies = append(bodies, Body{
				Mass: 1e28 * float64(1+i+j),
				Pos:  r2.Vec{X: float64(i) * AU, Y: float64(j) * 1.3 * AU},
			})
		}
	}

	direct := DirectSolver{}.Forces(nil, bodies, G)
	approx := (&BarnesHutSolver{Theta: 0.3}).Forces(nil, bodies, G)

	for i := range bodies {
		rel := r2.Norm(r2.Sub(direct[i], approx[i])) / r2.Norm(direct[i])
		if rel > 0.2 {
			t.Errorf("body %d: relative error %.3f too large", i, rel)
		}
	}
}

func TestBarnesHutEmpty(t *testing.T) {
	out := (&BarnesHutSolver{Theta: 0.5}).Forces(nil, nil, G)
	if len(out) != 0 {
		t.Errorf("expected no forces, got %d", len(out))
	}
}
