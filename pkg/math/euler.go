package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// EulerXYZFromQuat returns intrinsic XYZ Euler angles (radians) for q.
func EulerXYZFromQuat(q mgl32.Quat) mgl32.Vec3 {
	return EulerXYZFromMat3(q.Normalize().Mat4().Mat3())
}

// EulerXYZFromMat3 decomposes a pure rotation matrix into XYZ Euler angles,
// matching the composition Rx * Ry * Rz.
func EulerXYZFromMat3(m mgl32.Mat3) mgl32.Vec3 {
	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	y := math32.Asin(Clamp(m13, -1, 1))
	if math32.Abs(m13) < 0.9999999 {
		return mgl32.Vec3{math32.Atan2(-m23, m33), y, math32.Atan2(-m12, m11)}
	}
	return mgl32.Vec3{math32.Atan2(m32, m22), y, 0}
}

// RotationXYZ builds the rotation matrix for XYZ Euler angles.
func RotationXYZ(e mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(e[0]).
		Mul4(mgl32.HomogRotate3DY(e[1])).
		Mul4(mgl32.HomogRotate3DZ(e[2]))
}

// Compose builds translation * rotation(euler XYZ) * scale.
func Compose(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position[0], position[1], position[2]).
		Mul4(RotationXYZ(rotation)).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// Decompose splits an affine matrix into translation, XYZ Euler rotation and
// scale. Shear is discarded.
func Decompose(m mgl32.Mat4) (position, rotation, scale mgl32.Vec3) {
	position = m.Col(3).Vec3()
	cx, cy, cz := m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()
	scale = mgl32.Vec3{cx.Len(), cy.Len(), cz.Len()}
	if scale[0] == 0 || scale[1] == 0 || scale[2] == 0 {
		return position, mgl32.Vec3{}, scale
	}
	rot := mgl32.Mat3FromCols(cx.Mul(1/scale[0]), cy.Mul(1/scale[1]), cz.Mul(1/scale[2]))
	return position, EulerXYZFromMat3(rot), scale
}
