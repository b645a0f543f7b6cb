package explorer

// SensorReport is what the robot saw around one cell. WallUnknown means "no new
// information", not "no wall".
type SensorReport struct {
	P     Point
	Up    Wall
	Down  Wall
	Left  Wall
	Right Wall
}

func (r SensorReport) valid() bool {
	return r.Up.valid() && r.Down.valid() && r.Left.valid() && r.Right.valid()
}

// Update applies a sensor report. The up and right walls are stored on the reported cell,
// the down and left walls on the neighbors that own them; those are skipped at the grid
// border. A cell can be reported only once.
func (e *Explorer) Update(r SensorReport) error {
	if !r.P.InBounds() {
		return violation(ErrOutOfBounds)
	}
	if !r.valid() {
		return violation(ErrInvalidWall)
	}
	c := &e.cells[r.P.Y][r.P.X]
	if c.Flags.Has(FlagUpdated) {
		return violation(ErrAlreadyUpdated)
	}

	c.setWall(true, r.Up)
	c.setWall(false, r.Right)
	if r.P.Y > 0 {
		e.cells[r.P.Y-1][r.P.X].setWall(true, r.Down)
	}
	if r.P.X > 0 {
		e.cells[r.P.Y][r.P.X-1].setWall(false, r.Left)
	}

	c.Flags |= FlagUpdated
	return nil
}
