package shape

import "math"

// goldenAngle is π·(3−√5), the azimuth increment that spreads successive
// points evenly around the vertical axis.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// Sphere returns count points on a sphere surface of the given radius as a
// flat xyz-strided slice, laid out along the Fibonacci spiral. Purely a
// function of its arguments: identical inputs produce bit-identical output,
// and the y coordinates are monotonically non-increasing in index order.
func Sphere(count int, radius float64) []float64 {
	if count <= 0 {
		return nil
	}
	pts := make([]float64, 3*count)
	if count == 1 {
		// A single point sits on the equator, avoiding the 0/0 spread term.
		pts[0] = radius
		return pts
	}
	for i := 0; i < count; i++ {
		y := 1 - (float64(i)/float64(count-1))*2
		r := math.Sqrt(1 - y*y)
		theta := goldenAngle * float64(i)
		pts[3*i+0] = math.Cos(theta) * r * radius
		pts[3*i+1] = y * radius
		pts[3*i+2] = math.Sin(theta) * r * radius
	}
	return pts
}
