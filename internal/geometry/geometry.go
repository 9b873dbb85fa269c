// Package geometry derives physical quantities from 2D body outlines:
// moment of inertia about the centroid's normal axis, and characteristic
// widths (bideltoid breadth, chest depth) extracted from boundary points.
// Coordinates are in centimetres; inertia is reported in kg·m².
package geometry

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/crowd-dynamics/crowdsynth/internal/units"
)

// ErrUnsupportedGeometry flags a shape the derivation engine cannot handle:
// wrong shape kind, too few vertices, or a degenerate (zero-area) outline.
var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// Point is a 2D coordinate in centimetres.
type Point struct {
	X, Y float64
}

// Polygon is a simple polygon given by its exterior ring in order. The
// closing edge back to the first vertex is implied; the last vertex should
// not repeat the first.
type Polygon []Point

// MultiPolygon is a shape made of several disjoint polygons, such as the
// torso-plus-arms cross-section of a pedestrian body.
type MultiPolygon []Polygon

// Shape is any 2D outline the derivation engine may be handed. Only Polygon
// and MultiPolygon are supported; anything else fails with
// ErrUnsupportedGeometry.
type Shape interface {
	Area() float64
	Centroid() Point
}

// signedArea is the shoelace sum; positive for counter-clockwise rings.
func (p Polygon) signedArea() float64 {
	sum := 0.0
	for i, a := range p {
		b := p[(i+1)%len(p)]
		sum += a.X*b.Y - a.Y*b.X
	}
	return sum / 2
}

// Area returns the polygon's area in cm².
func (p Polygon) Area() float64 {
	return math.Abs(p.signedArea())
}

// Centroid returns the polygon's area centroid.
func (p Polygon) Centroid() Point {
	signed := p.signedArea()
	if signed == 0 {
		return Point{}
	}
	var cx, cy float64
	for i, a := range p {
		b := p[(i+1)%len(p)]
		cross := a.X*b.Y - a.Y*b.X
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	return Point{X: cx / (6 * signed), Y: cy / (6 * signed)}
}

// Area returns the summed area of all parts in cm².
func (m MultiPolygon) Area() float64 {
	total := 0.0
	for _, p := range m {
		total += p.Area()
	}
	return total
}

// Centroid returns the area-weighted centroid of all parts.
func (m MultiPolygon) Centroid() Point {
	total := m.Area()
	if total == 0 {
		return Point{}
	}
	var cx, cy float64
	for _, p := range m {
		c := p.Centroid()
		a := p.Area()
		cx += c.X * a
		cy += c.Y * a
	}
	return Point{X: cx / total, Y: cy / total}
}

// cross2D is the scalar cross product of two 2D vectors.
func cross2D(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// dot2D is the dot product of two 2D vectors.
func dot2D(a, b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// MomentOfInertia computes I_z in kg·m² for a shape whose coordinates are in
// centimetres, using the second moment of area of the exterior ring. For a
// multi-part shape the mass is split across parts in proportion to area and
// the per-part moments are summed.
func MomentOfInertia(shape Shape, massKg float64) (float64, error) {
	switch s := shape.(type) {
	case Polygon:
		return polygonInertia(s, massKg)
	case MultiPolygon:
		totalArea := s.Area()
		if totalArea == 0 {
			return 0, fmt.Errorf("%w: zero-area multipolygon", ErrUnsupportedGeometry)
		}
		moment := 0.0
		for _, p := range s {
			partMass := massKg * (p.Area() / totalArea)
			partMoment, err := polygonInertia(p, partMass)
			if err != nil {
				return 0, err
			}
			moment += partMoment
		}
		return moment, nil
	default:
		return 0, fmt.Errorf("%w: %T is neither Polygon nor MultiPolygon", ErrUnsupportedGeometry, shape)
	}
}

// polygonInertia accumulates |cross(Pn,Pn1)| * (Pn·Pn + Pn·Pn1 + Pn1·Pn1)
// over the centred exterior ring; the moment is density * sum / 12, with a
// 1e-4 correction taking cm-based units to kg·m².
func polygonInertia(p Polygon, massKg float64) (float64, error) {
	if len(p) < 3 {
		return 0, fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", ErrUnsupportedGeometry, len(p))
	}
	area := p.Area()
	if area == 0 {
		return 0, fmt.Errorf("%w: degenerate polygon", ErrUnsupportedGeometry)
	}

	centroid := p.Centroid()
	centred := make([]Point, len(p))
	for i, v := range p {
		centred[i] = Point{X: v.X - centroid.X, Y: v.Y - centroid.Y}
	}

	density := massKg / area
	sum := 0.0
	for i, pn := range centred {
		pn1 := centred[(i+1)%len(centred)]
		sum += math.Abs(cross2D(pn, pn1)) * (dot2D(pn, pn) + dot2D(pn, pn1) + dot2D(pn1, pn1))
	}
	return density * sum / 12 * units.SquareCentimetersToSquareMeters, nil
}

// WidthTolerance is the maximum coordinate difference, in centimetres, for
// two boundary points to count as lying on the same scan line during width
// extraction.
const WidthTolerance = 0.1

// BideltoidBreadth returns the largest horizontal distance between boundary
// points of near-equal height. The shape is assumed to be in its default,
// unrotated orientation. Cost is quadratic in the worst case when many
// points share near-identical heights; accepted for simplicity.
func BideltoidBreadth(m MultiPolygon) (float64, error) {
	coords, err := centredBoundary(m)
	if err != nil {
		return 0, err
	}
	along := func(p Point) float64 { return p.X }
	across := func(p Point) float64 { return p.Y }
	return maxAxisSeparation(coords, along, across), nil
}

// ChestDepth returns the largest vertical distance between boundary points
// of near-equal horizontal position. Same orientation assumption and cost
// trade-off as BideltoidBreadth.
func ChestDepth(m MultiPolygon) (float64, error) {
	coords, err := centredBoundary(m)
	if err != nil {
		return 0, err
	}
	along := func(p Point) float64 { return p.Y }
	across := func(p Point) float64 { return p.X }
	return maxAxisSeparation(coords, along, across), nil
}

// centredBoundary collects every boundary vertex of the multipolygon,
// recentred on the shape's centroid.
func centredBoundary(m MultiPolygon) ([]Point, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: empty multipolygon", ErrUnsupportedGeometry)
	}
	centroid := m.Centroid()
	var coords []Point
	for _, p := range m {
		for _, v := range p {
			coords = append(coords, Point{X: v.X - centroid.X, Y: v.Y - centroid.Y})
		}
	}
	return coords, nil
}

// maxAxisSeparation sorts points by their across-axis coordinate, then scans
// a tolerance window over the sorted sequence and returns the maximum
// along-axis distance among point pairs whose across-axis coordinates differ
// by at most WidthTolerance.
func maxAxisSeparation(coords []Point, along, across func(Point) float64) float64 {
	sort.Slice(coords, func(i, j int) bool {
		return across(coords[i]) < across(coords[j])
	})

	maxDistance := 0.0
	for i := range coords {
		for j := i + 1; j < len(coords); j++ {
			if across(coords[j])-across(coords[i]) > WidthTolerance {
				break
			}
			if d := math.Abs(along(coords[j]) - along(coords[i])); d > maxDistance {
				maxDistance = d
			}
		}
	}
	return maxDistance
}
