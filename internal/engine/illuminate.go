package engine

import "morphcloud/internal/core"

// Illumination tunables. A non-physical "flashlight" proximity effect: the
// pointer drags a light probe across the front of the field and nearby
// particles brighten. Values are artistic, tuned for the wanted look.
const (
	// lightAmbient is the floor intensity every particle keeps regardless
	// of pointer distance.
	lightAmbient = 0.5
	// lightSoftening is added to the squared distance so a coincident
	// particle peaks at ambient + falloff/softening instead of diverging.
	lightSoftening = 10.0
	// lightHalfWidth and lightHalfHeight are half the viewport span in
	// world units the normalized pointer maps onto.
	lightHalfWidth  = 9.0
	lightHalfHeight = 6.0
	// lightZ holds the probe a fixed small offset in front of the glyph
	// plane, on the camera side of the field.
	lightZ = 2.0
)

// LightWorldPoint projects the normalized pointer onto the approximate
// world-space light probe position. The probe ignores scene rotation: it
// tracks the screen, not the cloud.
func LightWorldPoint(p core.Pointer) (x, y, z float64) {
	return p.X * lightHalfWidth, p.Y * lightHalfHeight, lightZ
}

// illuminate writes a grayscale brightness for every particle from its
// squared distance to the light probe. Intensity peaks at
// ambient + falloff/softening on the probe itself and falls off toward the
// ambient floor; the same value lands on all three channels so the material
// color keeps its hue.
func (e *Engine) illuminate(p core.Pointer) {
	lx, ly, lz := LightWorldPoint(p)
	falloff := e.cfg.LightFalloff
	for i := 0; i < e.count; i++ {
		dx := e.pos[3*i+0] - lx
		dy := e.pos[3*i+1] - ly
		dz := e.pos[3*i+2] - lz
		v := lightAmbient + falloff/(dx*dx+dy*dy+dz*dz+lightSoftening)
		e.colors[3*i+0] = v
		e.colors[3*i+1] = v
		e.colors[3*i+2] = v
	}
}
