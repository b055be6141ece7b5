package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"morphcloud/internal/core"
)

// maxSplatSize caps the footprint of a single particle so points grazing the
// near plane cannot flood the buffer.
const maxSplatSize = 16

// fillCloudRGBA clears buf and splats every particle into it: rotate, project,
// then additively blend a depth-scaled square of the lit material color.
// Overlapping particles saturate toward white, which is what makes dense
// regions glow. Mismatched buffer lengths leave the frame cleared.
func fillCloudRGBA(buf []byte, cam Camera, positions, intensities []float64, material colorful.Color, rot core.Rotation, pointSize float64) {
	clearRGBA(buf)
	if len(positions) != len(intensities) {
		return
	}
	for i := 0; i+2 < len(positions); i += 3 {
		x, y, z := RotateYX(positions[i+0], positions[i+1], positions[i+2], rot.Y, rot.X)
		sx, sy, depth, ok := cam.Project(x, y, z)
		if !ok {
			continue
		}
		size := int(math.Round(pointSize * cam.Dist / depth))
		if size < 1 {
			size = 1
		} else if size > maxSplatSize {
			size = maxSplatSize
		}
		r := channelByte(material.R * intensities[i+0])
		g := channelByte(material.G * intensities[i+1])
		b := channelByte(material.B * intensities[i+2])
		splatRGBA(buf, cam.W, cam.H, int(math.Round(sx)), int(math.Round(sy)), size, r, g, b)
	}
}

// clearRGBA resets the buffer to transparent black.
func clearRGBA(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// splatRGBA additively blends a size×size square centered on (cx, cy),
// clipped to the w×h pixel grid.
func splatRGBA(buf []byte, w, h, cx, cy, size int, r, g, b uint8) {
	half := size / 2
	x0 := cx - half
	y0 := cy - half
	for y := y0; y < y0+size; y++ {
		if y < 0 || y >= h {
			continue
		}
		row := y * w
		for x := x0; x < x0+size; x++ {
			if x < 0 || x >= w {
				continue
			}
			base := (row + x) * 4
			buf[base+0] = satAdd(buf[base+0], r)
			buf[base+1] = satAdd(buf[base+1], g)
			buf[base+2] = satAdd(buf[base+2], b)
			buf[base+3] = 255
		}
	}
}

func satAdd(a, b uint8) uint8 {
	v := int(a) + int(b)
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// channelByte maps a lit channel value onto a byte, clamping the overshoot
// that comes from intensities above 1.
func channelByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
