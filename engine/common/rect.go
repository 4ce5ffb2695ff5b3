package common

import (
	"fmt"
	"math"
)

// Rect is an axis aligned rectangle on the horizontal X/Z plane
type Rect struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// RectAround returns the square centered at center with the given diameter
func RectAround(center Vector2, diameter float64) Rect {
	radius := diameter / 2.0
	return Rect{
		MinX: center.X - radius,
		MinZ: center.Y - radius,
		MaxX: center.X + radius,
		MaxZ: center.Y + radius,
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.2f,%.2f)-(%.2f,%.2f)", r.MinX, r.MinZ, r.MaxX, r.MaxZ)
}

// Inset shrinks the rectangle by d on every edge
func (r Rect) Inset(d float64) Rect {
	return Rect{
		MinX: r.MinX + d,
		MinZ: r.MinZ + d,
		MaxX: r.MaxX - d,
		MaxZ: r.MaxZ - d,
	}
}

// Contains returns if the position lies strictly inside the rectangle
func (r Rect) Contains(pos Vector3) bool {
	x, z := float64(pos.X), float64(pos.Z)
	return x > r.MinX && x < r.MaxX && z > r.MinZ && z < r.MaxZ
}

// DistanceToEdge returns the distance from pos to the closest edge, negative when outside
func (r Rect) DistanceToEdge(pos Vector3) float64 {
	x, z := float64(pos.X), float64(pos.Z)
	return math.Min(math.Min(x-r.MinX, r.MaxX-x), math.Min(z-r.MinZ, r.MaxZ-z))
}

// ClampX moves x one unit inside the rectangle if it is on or beyond an X edge
func (r Rect) ClampX(x float64) float64 {
	if x >= r.MaxX {
		return r.MaxX - 1
	}
	if x <= r.MinX {
		return r.MinX + 1
	}
	return x
}

// ClampZ moves z one unit inside the rectangle if it is on or beyond a Z edge
func (r Rect) ClampZ(z float64) float64 {
	if z >= r.MaxZ {
		return r.MaxZ - 1
	}
	if z <= r.MinZ {
		return r.MinZ + 1
	}
	return z
}
