package explorer

// PackedPoint is a two byte coordinate used where memory matters: frontier entries and
// predecessor links.
type PackedPoint struct {
	X uint8
	Y uint8
}

// NoPoint is the PackedPoint meaning "none".
var NoPoint = PackedPoint{X: 0xff, Y: 0xff}

// Pack compresses an in-bounds point.
func Pack(p Point) PackedPoint {
	return PackedPoint{X: uint8(p.X), Y: uint8(p.Y)}
}

// Unpack expands the packed point. It returns false for NoPoint.
func (pp PackedPoint) Unpack() (Point, bool) {
	if pp == NoPoint {
		return Point{}, false
	}
	return Point{X: int(pp.X), Y: int(pp.Y)}, true
}
