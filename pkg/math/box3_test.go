package math

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestEmptyBox3(t *testing.T) {
	b := EmptyBox3()
	if !b.IsEmpty() {
		t.Fatal("EmptyBox3 should be empty")
	}
	if b.Size() != (mgl32.Vec3{}) {
		t.Errorf("empty Size: got %v, want zero", b.Size())
	}

	b.ExpandByPoint(mgl32.Vec3{1, 2, 3})
	if b.IsEmpty() {
		t.Fatal("box with one point should not be empty")
	}
	if b.Min != b.Max {
		t.Errorf("single point box: min %v max %v", b.Min, b.Max)
	}
}

func TestBox3Union(t *testing.T) {
	a := NewBox3(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	a.Union(NewBox3(mgl32.Vec3{-1, 0.5, 0}, mgl32.Vec3{0.5, 3, 2}))
	a.Union(EmptyBox3())

	want := NewBox3(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 3, 2})
	if a != want {
		t.Errorf("Union: got %v, want %v", a, want)
	}
	if c := a.Center(); c != (mgl32.Vec3{0, 1.5, 1}) {
		t.Errorf("Center: got %v", c)
	}
}

func TestBox3TransformRotateY(t *testing.T) {
	b := NewBox3(mgl32.Vec3{-2, 0, -1}, mgl32.Vec3{2, 1, 1})
	out := b.Transform(mgl32.HomogRotate3DY(float32(gomath.Pi / 2)))
	size := out.Size()

	if abs(size[0]-2) > 1e-5 || abs(size[2]-4) > 1e-5 {
		t.Errorf("rotated size: got %v, want (2, 1, 4)", size)
	}
}

func TestBox3ContainsBox(t *testing.T) {
	outer := NewBox3(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 10, 10})
	tests := []struct {
		name  string
		inner Box3
		want  bool
	}{
		{"inside", NewBox3(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{2, 2, 2}), true},
		{"touching", NewBox3(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 10, 10}), true},
		{"overflow", NewBox3(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{2, 2, 2}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.ContainsBox(tt.inner, 0); got != tt.want {
				t.Errorf("ContainsBox = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	pos := mgl32.Vec3{1, -2, 3}
	rot := mgl32.Vec3{0.3, -0.7, 1.1}
	scale := mgl32.Vec3{2, 0.5, 1.5}

	p, r, s := Decompose(Compose(pos, rot, scale))
	for i := 0; i < 3; i++ {
		if abs(p[i]-pos[i]) > 1e-4 || abs(r[i]-rot[i]) > 1e-4 || abs(s[i]-scale[i]) > 1e-4 {
			t.Fatalf("Decompose: got (%v %v %v), want (%v %v %v)", p, r, s, pos, rot, scale)
		}
	}
}

func TestEulerFromQuat(t *testing.T) {
	q := mgl32.QuatRotate(float32(gomath.Pi/2), mgl32.Vec3{0, 1, 0})
	e := EulerXYZFromQuat(q)
	if abs(e[0]) > 1e-4 || abs(e[1]-float32(gomath.Pi/2)) > 1e-4 || abs(e[2]) > 1e-4 {
		t.Errorf("EulerXYZFromQuat: got %v, want (0, pi/2, 0)", e)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
