package render

import "math"

// nearClip rejects points that rotate too close to or behind the camera.
const nearClip = 0.1

// Camera is a pinhole projection looking down -z from (0, 0, Dist) at the
// origin, with no roll.
type Camera struct {
	W, H  int     // output size in pixels
	Dist  float64 // camera distance from the origin along +z
	Focal float64 // focal length in pixels
}

// DefaultCamera frames the standard cloud (sphere radius 3.5, glyph span 18
// world units) with a small margin inside a w×h view.
func DefaultCamera(w, h int) Camera {
	return Camera{W: w, H: h, Dist: 16, Focal: float64(h) * 1.1}
}

// RotateYX spins a point around the Y axis, then tilts it around X, matching
// the rotation order the engine reports for the scene node.
func RotateYX(x, y, z, yaw, pitch float64) (float64, float64, float64) {
	siny, cosy := math.Sincos(yaw)
	x, z = x*cosy+z*siny, -x*siny+z*cosy
	sinx, cosx := math.Sincos(pitch)
	y, z = y*cosx-z*sinx, y*sinx+z*cosx
	return x, y, z
}

// Project maps a world point to pixel coordinates plus its camera-space
// depth. ok reports false for points on the wrong side of the near plane;
// screen y grows downward.
func (c Camera) Project(x, y, z float64) (sx, sy, depth float64, ok bool) {
	depth = c.Dist - z
	if depth < nearClip {
		return 0, 0, 0, false
	}
	k := c.Focal / depth
	sx = float64(c.W)/2 + x*k
	sy = float64(c.H)/2 - y*k
	return sx, sy, depth, true
}
