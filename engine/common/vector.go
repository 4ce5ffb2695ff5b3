package common

import (
	"fmt"
	"math"
)

// Coord is the type of coordinations (x, y, z)
type Coord float32

// Vector3 is the type of entity positions and rotations
type Vector3 struct {
	X Coord
	Y Coord
	Z Coord
}

// Vec3 creates a Vector3
func Vec3(x, y, z float64) Vector3 {
	return Vector3{Coord(x), Coord(y), Coord(z)}
}

func (p Vector3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
}

// DistanceTo calculates distance between two positions
func (p Vector3) DistanceTo(o Vector3) Coord {
	dx := p.X - o.X
	dy := p.Y - o.Y
	dz := p.Z - o.Z
	return Coord(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}

// Sub calculates Vector3 p - Vector3 o
func (p Vector3) Sub(o Vector3) Vector3 {
	return Vector3{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

// Add calculates Vector3 p + Vector3 o
func (p Vector3) Add(o Vector3) Vector3 {
	return Vector3{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Vector2 is the type of horizontal points, Y of a Vector2 maps to Z of a Vector3
type Vector2 struct {
	X float64
	Y float64
}

func (p Vector2) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
