package explorer

// Direction is one of the eight neighbor directions, or NoDir.
type Direction uint8

const (
	NoDir Direction = iota
	Up
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight
)

// neighborOrder is the order in which Expand evaluates neighbors. Among frontier candidates
// with equal priority, the one evaluated first is popped first.
var neighborOrder = [neighborCount]Direction{Up, Right, Down, Left, UpLeft, UpRight, DownLeft, DownRight}

var directionNames = [...]string{
	NoDir:     "none",
	Up:        "up",
	Down:      "down",
	Left:      "left",
	Right:     "right",
	UpLeft:    "up-left",
	UpRight:   "up-right",
	DownLeft:  "down-left",
	DownRight: "down-right",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "invalid"
}

// IsDiagonal reports whether d is one of the four diagonal directions.
func (d Direction) IsDiagonal() bool {
	return d >= UpLeft && d <= DownRight
}

// Split returns the vertical and horizontal components of a diagonal direction.
// Orthogonal directions come back unchanged in the matching slot, with NoDir in the other.
func (d Direction) Split() (vertical, horizontal Direction) {
	switch d {
	case Up, Down:
		return d, NoDir
	case Left, Right:
		return NoDir, d
	case UpLeft:
		return Up, Left
	case UpRight:
		return Up, Right
	case DownLeft:
		return Down, Left
	case DownRight:
		return Down, Right
	}
	return NoDir, NoDir
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	case UpLeft:
		return DownRight
	case UpRight:
		return DownLeft
	case DownLeft:
		return UpRight
	case DownRight:
		return UpLeft
	}
	return NoDir
}

func (d Direction) offset() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case UpLeft:
		return -1, 1
	case UpRight:
		return 1, 1
	case DownLeft:
		return -1, -1
	case DownRight:
		return 1, -1
	}
	return 0, 0
}
