package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	for k := 0; k < 3; k++ {
		assert.InDelta(t, want[k], got[k], 1e-9, "component %d", k)
	}
}

func TestRotations(t *testing.T) {
	assertVec(t, Vec3{0, 0, 1}, RotX(math.Pi/2).MulVec3(Vec3{0, 1, 0}))
	assertVec(t, Vec3{0, 0, -1}, RotY(math.Pi/2).MulVec3(Vec3{1, 0, 0}))
	assert.InDelta(t, math.Pi, Deg2Rad(180), 1e-12)
}

func TestMat3Mul(t *testing.T) {
	m := Mat3Mul(RotX(math.Pi/2), RotY(math.Pi/2))
	// Ry first: x -> -z, then Rx: -z -> y
	assertVec(t, Vec3{0, 1, 0}, m.MulVec3(Vec3{1, 0, 0}))
	assert.Equal(t, RotX(0.4), Mat3Mul(Mat3Identity(), RotX(0.4)))
}

func TestVec3(t *testing.T) {
	a, b := Vec3{1, -2, 3}, Vec3{0, 5, 3}
	assert.Equal(t, Vec3{1, 3, 6}, a.Add(b))
	assert.Equal(t, Vec3{2, -4, 6}, a.Scale(2))
	assert.Equal(t, Vec3{0, -2, 3}, a.Min(b))
	assert.Equal(t, Vec3{1, 5, 3}, a.Max(b))
	assert.Equal(t, Vec3{1.5, 0, -2}, V32(1.5, 0, -2))
}

func TestCameraByName(t *testing.T) {
	assert.Equal(t, FrontCamera, CameraByName("front"))
	assert.Equal(t, PreviewCamera, CameraByName(""))
	assertVec(t, Vec3{0, 0, 1}, CameraByName("top").MulVec3(Vec3{0, 1, 0}))
	assertVec(t, Vec3{0, 0, 1}, CameraByName("side").MulVec3(Vec3{1, 0, 0}))
}
