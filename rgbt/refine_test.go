package rgbt

import (
	"context"
	"testing"
	"time"

	"github.com/unixpickle/model3d/model3d"
)

func TestRefinerUniform(t *testing.T) {
	for _, simple := range []bool{false, true} {
		for _, scheme := range []func() Scheme{
			func() Scheme { return NewButterflyScheme() },
			func() Scheme { return NewLoopScheme() },
		} {
			tri := testSphere(t, WithScheme(scheme()))
			numFaces := tri.NumFaces()
			r := NewRefiner(tri, nil)
			r.Start(false, simple)
			mustValidate(t, tri)
			if r.Running() {
				t.Fatal("session should be over")
			}
			if tri.NumFaces() != numFaces*4 {
				t.Fatalf("simple=%v: expected %d faces but got %d", simple, numFaces*4,
					tri.NumFaces())
			}
			for _, f := range tri.FaceIndices() {
				if c, l := tri.Face(f).Color(), tri.Face(f).Level(); c != Green || l != 1 {
					t.Fatalf("simple=%v: expected GREEN level 1 but got %s level %d", simple,
						c, l)
				}
			}
			if r.Steps() == 0 {
				t.Fatal("expected some steps")
			}
		}
	}
}

func TestRefinerBudget(t *testing.T) {
	for _, simple := range []bool{false, true} {
		tri := testSphere(t)
		config := DefaultRefinementConfig()
		config.MaxTriangles = 40
		config.MinEdgeLevel = 3
		r := NewRefiner(tri, config)
		r.Start(false, simple)
		mustValidate(t, tri)
		if n := tri.NumFaces(); n < 40 || n > 60 {
			t.Fatalf("simple=%v: expected about 40 faces but got %d", simple, n)
		}
	}
}

func TestRefinerBox(t *testing.T) {
	tri := testSphere(t)
	config := DefaultRefinementConfig()
	config.MinEdgeLevel = 0
	config.MaxEdgeLength = 10
	config.MaxEdgeLengthInBox = 0.3
	config.MaxEdgeLevelInBox = 2
	config.Box = &model3d.Rect{
		MinVal: model3d.XYZ(0, -2, -2),
		MaxVal: model3d.XYZ(2, 2, 2),
	}
	r := NewRefiner(tri, config)
	r.Start(false, false)
	mustValidate(t, tri)

	var inside, outside int
	for _, f := range tri.FaceIndices() {
		for i := 0; i < 3; i++ {
			if l := tri.Face(f).EdgeLevel(i); l > 2 {
				t.Fatalf("expected edge level at most 2 but got %d", l)
			}
		}
		var center model3d.Coord3D
		for i := 0; i < 3; i++ {
			center = center.Add(tri.Face(f).Vertex(i).Position().Scale(1.0 / 3))
		}
		if tri.Face(f).Level() == 0 && center.X < -0.5 {
			outside++
		} else if tri.Face(f).Level() == 2 && center.X > 0.5 {
			inside++
		}
	}
	if inside == 0 || outside == 0 {
		t.Fatalf("expected fine faces inside and coarse faces outside but got %d and %d",
			inside, outside)
	}
}

func TestRefinerCoarsen(t *testing.T) {
	tri := testSphere(t, WithScheme(NewLoopScheme()))
	config := DefaultRefinementConfig()
	config.MinEdgeLevel = 2
	NewRefiner(tri, config).Start(false, false)
	mustValidate(t, tri)
	refined := tri.NumFaces()

	config.MinEdgeLevel = 0
	r := NewRefiner(tri, config)
	r.Start(false, false)
	mustValidate(t, tri)
	if tri.NumFaces() >= refined {
		t.Fatalf("expected fewer than %d faces but got %d", refined, tri.NumFaces())
	}
	if r.Steps() == 0 {
		t.Fatal("expected some steps")
	}
}

func TestRefinerStop(t *testing.T) {
	tri := testSphere(t)
	r := NewRefiner(tri, nil)
	r.Start(true, false)
	if !r.Running() {
		t.Fatal("session should be running")
	}
	for i := 0; i < 3; i++ {
		if !r.Step() {
			t.Fatalf("step %d did nothing", i)
		}
	}
	r.Stop()
	if r.Step() || r.Running() {
		t.Fatal("session should be stopped")
	}
	if r.Steps() != 3 {
		t.Fatalf("expected 3 steps but got %d", r.Steps())
	}
	mustValidate(t, tri)
}

func TestRefinerRun(t *testing.T) {
	tri := testHexagon(t)
	r := NewRefiner(tri, nil)
	r.Start(true, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if n, err := r.Run(ctx); err != context.Canceled || n != 0 {
		t.Fatalf("expected cancellation but got %d steps and %v", n, err)
	}

	var calls int
	n, err := r.RunPaced(context.Background(), time.Millisecond, func(step int) {
		calls++
		if step != calls {
			t.Fatalf("expected step %d but got %d", calls, step)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 || n != calls {
		t.Fatalf("expected %d steps but got %d", calls, n)
	}
	if tri.NumFaces() != 24 {
		t.Fatalf("expected 24 faces but got %d", tri.NumFaces())
	}
	mustValidate(t, tri)
}
