package mathutil

import "math"

// Preview camera matrices. Model space is Y-up and right-handed; after the
// camera transform larger Z is nearer the viewer.
var (
	// PreviewCamera looks down slightly from the front-left: Rx(20°) @ Ry(-35°)
	PreviewCamera = Mat3Mul(RotX(Deg2Rad(20)), RotY(Deg2Rad(-35)))

	// FrontCamera is the axis-aligned front view.
	FrontCamera = Mat3Identity()
)

// CameraByName returns a named preview camera, falling back to PreviewCamera.
func CameraByName(name string) Mat3 {
	switch name {
	case "front":
		return FrontCamera
	case "top":
		return RotX(math.Pi / 2)
	case "side":
		return RotY(math.Pi / -2)
	}
	return PreviewCamera
}
