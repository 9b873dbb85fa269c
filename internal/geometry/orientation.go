package geometry

import (
	"fmt"
	"math"
)

// WrapAngle wraps an angle in degrees to the range [-180, 180).
func WrapAngle(deg float64) float64 {
	return math.Mod(math.Mod(deg+180, 360)+360, 360) - 180
}

// RotateVectors rotates each named 2D vector by theta degrees about the
// origin and returns a new map; the input is not modified.
func RotateVectors(vectors map[string]Point, thetaDeg float64) map[string]Point {
	theta := thetaDeg * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)

	rotated := make(map[string]Point, len(vectors))
	for name, v := range vectors {
		rotated[name] = Point{
			X: v.X*cos - v.Y*sin,
			Y: v.X*sin + v.Y*cos,
		}
	}
	return rotated
}

// DirectionOfLongestSide returns the direction, in degrees within
// [-180, 180), of the longest side of a quadrilateral, measured from the
// side's first vertex to its second relative to the positive x-axis. Shapes
// with a vertex count other than 4 fail with ErrUnsupportedGeometry.
func DirectionOfLongestSide(p Polygon) (float64, error) {
	if len(p) != 4 {
		return 0, fmt.Errorf("%w: expected 4 vertices, got %d", ErrUnsupportedGeometry, len(p))
	}

	bestLength := -1.0
	bestAngle := 0.0
	for i, a := range p {
		b := p[(i+1)%len(p)]
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length > bestLength {
			bestLength = length
			bestAngle = math.Atan2(dy, dx) * 180 / math.Pi
		}
	}
	return WrapAngle(bestAngle), nil
}
