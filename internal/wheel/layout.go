// internal/wheel/layout.go
//
// Geometry for the circular letter wheel.
// Responsibilities:
//   - Pick a wheel radius/size band from the number of slots.
//   - Place slot N of T at angle 2π·N/T − π/2 (slot 0 on top, clockwise).
//
// The layout is presentational. Hit-testing never uses it directly; it only uses
// the centers the rendering surface reports back through a Registry.

package wheel

import "math"

// Point is a position in the rendering surface's coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Layout describes the circle letters are placed on.
type Layout struct {
	Radius float64 `json:"radius"` // distance from center to each slot center
	Size   float64 `json:"size"`   // side of the square container
}

// LayoutFor returns the layout band for a wheel of total slots:
// small (≤5), medium (6–13) or large (>13).
func LayoutFor(total int) Layout {
	switch {
	case total <= 5:
		return Layout{Radius: 70, Size: 200}
	case total > 13:
		return Layout{Radius: 130, Size: 320}
	default:
		return Layout{Radius: 110, Size: 280}
	}
}

// Center is the middle of the container.
func (l Layout) Center() Point {
	return Point{X: l.Size / 2, Y: l.Size / 2}
}

// Position returns the center of slot index on a wheel of total slots.
func (l Layout) Position(index, total int) Point {
	if total <= 0 {
		return l.Center()
	}
	angle := float64(index)*2*math.Pi/float64(total) - math.Pi/2
	c := l.Center()
	return Point{
		X: c.X + l.Radius*math.Cos(angle),
		Y: c.Y + l.Radius*math.Sin(angle),
	}
}

// Positions returns every slot center in index order.
func (l Layout) Positions(total int) []Point {
	out := make([]Point, total)
	for i := range out {
		out[i] = l.Position(i, total)
	}
	return out
}
