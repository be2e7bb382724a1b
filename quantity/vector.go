package quantity

import "math"

// Vec2 is a 2-component directional value. Directional forms have no
// total order; only equality is defined.
type Vec2[T Float] struct{ X, Y T }

// Add returns the component-wise sum.
func (v Vec2[T]) Add(o Vec2[T]) Vec2[T] { return Vec2[T]{v.X + o.X, v.Y + o.Y} }

// Sub returns the component-wise difference.
func (v Vec2[T]) Sub(o Vec2[T]) Vec2[T] { return Vec2[T]{v.X - o.X, v.Y - o.Y} }

// Scale multiplies every component by k.
func (v Vec2[T]) Scale(k T) Vec2[T] { return Vec2[T]{v.X * k, v.Y * k} }

// Neg returns the opposite vector.
func (v Vec2[T]) Neg() Vec2[T] { return Vec2[T]{-v.X, -v.Y} }

// Dot returns the scalar product of two vectors.
func (v Vec2[T]) Dot(o Vec2[T]) T { return v.X*o.X + v.Y*o.Y }

// Norm returns the Euclidean magnitude.
func (v Vec2[T]) Norm() T { return T(math.Sqrt(float64(v.Dot(v)))) }

// Vec3 is a 3-component directional value.
type Vec3[T Float] struct{ X, Y, Z T }

// Add returns the component-wise sum.
func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] { return Vec3[T]{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the component-wise difference.
func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] { return Vec3[T]{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale multiplies every component by k.
func (v Vec3[T]) Scale(k T) Vec3[T] { return Vec3[T]{v.X * k, v.Y * k, v.Z * k} }

// Neg returns the opposite vector.
func (v Vec3[T]) Neg() Vec3[T] { return Vec3[T]{-v.X, -v.Y, -v.Z} }

// Dot returns the scalar product of two vectors.
func (v Vec3[T]) Dot(o Vec3[T]) T { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the vector product by the standard determinant formula.
// Only defined for 3-component forms.
func (v Vec3[T]) Cross(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Norm returns the Euclidean magnitude.
func (v Vec3[T]) Norm() T { return T(math.Sqrt(float64(v.Dot(v)))) }

// Vec4 is a 4-component directional value.
type Vec4[T Float] struct{ X, Y, Z, W T }

// Add returns the component-wise sum.
func (v Vec4[T]) Add(o Vec4[T]) Vec4[T] {
	return Vec4[T]{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W}
}

// Sub returns the component-wise difference.
func (v Vec4[T]) Sub(o Vec4[T]) Vec4[T] {
	return Vec4[T]{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W}
}

// Scale multiplies every component by k.
func (v Vec4[T]) Scale(k T) Vec4[T] {
	return Vec4[T]{v.X * k, v.Y * k, v.Z * k, v.W * k}
}

// Neg returns the opposite vector.
func (v Vec4[T]) Neg() Vec4[T] { return Vec4[T]{-v.X, -v.Y, -v.Z, -v.W} }

// Dot returns the scalar product of two vectors.
func (v Vec4[T]) Dot(o Vec4[T]) T {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z + v.W*o.W
}

// Norm returns the Euclidean magnitude.
func (v Vec4[T]) Norm() T { return T(math.Sqrt(float64(v.Dot(v)))) }
