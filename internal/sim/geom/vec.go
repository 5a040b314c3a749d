package geom

import "math"

// Vec3 is a world-space position or direction. All operations return new
// values; a Vec3 is never mutated in place.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z} }

func (v Vec3) Scale(f float64) Vec3 { return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f} }

func (v Vec3) Equals(o Vec3) bool { return v.X == o.X && v.Y == o.Y && v.Z == o.Z }

// Floor truncates each component toward negative infinity, producing the grid
// cell that contains the position.
func (v Vec3) Floor() Vec3i {
	return Vec3i{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(v.Y)),
		Z: int(math.Floor(v.Z)),
	}
}

// NormalizedXZ projects the vector onto the horizontal plane and scales it to
// unit length. ok is false when the horizontal component has zero length
// (actor looking straight up or down), in which case the zero vector is
// returned and callers must not sweep.
func (v Vec3) NormalizedXZ() (n Vec3, ok bool) {
	l := math.Hypot(v.X, v.Z)
	if l == 0 {
		return Vec3{}, false
	}
	return Vec3{X: v.X / l, Z: v.Z / l}, true
}

// RotateY rotates the vector around the vertical axis by deg degrees.
func (v Vec3) RotateY(deg float64) Vec3 {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec3{
		X: v.X*cos - v.Z*sin,
		Y: v.Y,
		Z: v.X*sin + v.Z*cos,
	}
}

func (v Vec3) ToArray() [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func V3(a [3]float64) Vec3 { return Vec3{X: a[0], Y: a[1], Z: a[2]} }

// Vec3i is an integer grid cell.
type Vec3i struct {
	X int
	Y int
	Z int
}

func (v Vec3i) Add(o Vec3i) Vec3i { return Vec3i{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

func (v Vec3i) Above() Vec3i { return Vec3i{X: v.X, Y: v.Y + 1, Z: v.Z} }

func (v Vec3i) Below() Vec3i { return Vec3i{X: v.X, Y: v.Y - 1, Z: v.Z} }

// Center is the world-space center of the cell.
func (v Vec3i) Center() Vec3 {
	return Vec3{X: float64(v.X) + 0.5, Y: float64(v.Y) + 0.5, Z: float64(v.Z) + 0.5}
}

func (v Vec3i) ToArray() [3]int { return [3]int{v.X, v.Y, v.Z} }

func V3i(a [3]int) Vec3i { return Vec3i{X: a[0], Y: a[1], Z: a[2]} }

func Manhattan(a, b Vec3i) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y) + absInt(a.Z-b.Z)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
