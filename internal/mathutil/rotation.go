package mathutil

import "math"

// RotX and RotY are right-handed rotations about one axis. Angles in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{1, 0, 0, 0, c, -s, 0, s, c}
}

func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{c, 0, s, 0, 1, 0, -s, 0, c}
}

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
