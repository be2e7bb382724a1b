package quantity

import (
	"math"
	"testing"
)

func TestVec3CrossAntiCommutative(t *testing.T) {
	a := Vec3[float64]{1, 2, 3}
	b := Vec3[float64]{-4, 5, 0.5}

	ab := a.Cross(b)
	ba := b.Cross(a)

	if ab != ba.Neg() {
		t.Errorf("a×b = %+v, -(b×a) = %+v; cross product must anti-commute", ab, ba.Neg())
	}
}

func TestVec3CrossOrthogonalBasis(t *testing.T) {
	x := Vec3[float64]{1, 0, 0}
	y := Vec3[float64]{0, 1, 0}
	z := Vec3[float64]{0, 0, 1}

	if got := x.Cross(y); got != z {
		t.Errorf("x×y = %+v, want z", got)
	}
	if got := y.Cross(z); got != x {
		t.Errorf("y×z = %+v, want x", got)
	}
	if got := z.Cross(x); got != y {
		t.Errorf("z×x = %+v, want y", got)
	}
}

func TestVec3CrossParallelIsZero(t *testing.T) {
	a := Vec3[float64]{2, -4, 8}
	if got := a.Cross(a.Scale(3)); got != (Vec3[float64]{}) {
		t.Errorf("parallel cross product = %+v, want zero vector", got)
	}
}

func TestNorm(t *testing.T) {
	if got := (Vec2[float64]{3, 4}).Norm(); got != 5 {
		t.Errorf("Vec2 norm = %v, want 5", got)
	}
	if got := (Vec3[float64]{2, 3, 6}).Norm(); got != 7 {
		t.Errorf("Vec3 norm = %v, want 7", got)
	}
	if got := (Vec4[float64]{1, 1, 1, 1}).Norm(); got != 2 {
		t.Errorf("Vec4 norm = %v, want 2", got)
	}
}

func TestDotMatchesNormSquared(t *testing.T) {
	v := Vec3[float64]{1.5, -2, 0.25}
	if d, n := v.Dot(v), v.Norm(); math.Abs(d-n*n) > 1e-12 {
		t.Errorf("v·v = %v, |v|² = %v", d, n*n)
	}
}

func TestVectorArithmetic(t *testing.T) {
	a := Vec3[float64]{1, 2, 3}
	b := Vec3[float64]{4, 5, 6}

	if got := a.Add(b); got != (Vec3[float64]{5, 7, 9}) {
		t.Errorf("Add = %+v", got)
	}
	if got := b.Sub(a); got != (Vec3[float64]{3, 3, 3}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != (Vec3[float64]{2, 4, 6}) {
		t.Errorf("Scale = %+v", got)
	}
	if got := a.Add(a.Neg()); got != (Vec3[float64]{}) {
		t.Errorf("a + (-a) = %+v, want zero", got)
	}
}

func TestFloat32Vectors(t *testing.T) {
	a := Vec2[float32]{3, 4}
	if got := a.Norm(); got != 5 {
		t.Errorf("float32 Vec2 norm = %v, want 5", got)
	}
}
