package explorer

import (
	"encoding/binary"
	"fmt"
)

const (
	snapshotVersion  = 1
	snapshotHeader   = 8 // version, width, height, goal x, goal y, reserved, frontier count
	snapshotCellSize = 8 // cost, from x, from y, flags
)

// MarshalBinary encodes the explorer into a fixed layout snapshot.
func (e *Explorer) MarshalBinary() ([]byte, error) {
	size := snapshotHeader + 2*e.frontier.Count() + snapshotCellSize*MazeWidth*MazeHeight
	buf := make([]byte, 0, size)

	buf = append(buf, snapshotVersion, MazeWidth, MazeHeight, uint8(e.goal.X), uint8(e.goal.Y), 0)
	buf = binary.BigEndian.AppendUint16(buf, uint16(e.frontier.Count()))
	for _, pp := range e.frontier.entries[:e.frontier.Count()] {
		buf = append(buf, pp.X, pp.Y)
	}
	for y := range e.cells {
		for _, c := range e.cells[y] {
			buf = binary.BigEndian.AppendUint16(buf, c.Cost)
			buf = append(buf, c.From.X, c.From.Y)
			buf = binary.BigEndian.AppendUint32(buf, uint32(c.Flags))
		}
	}
	return buf, nil
}

// UnmarshalBinary restores a snapshot written by MarshalBinary. The explorer is left
// untouched when the snapshot is rejected.
func (e *Explorer) UnmarshalBinary(data []byte) error {
	if len(data) < snapshotHeader {
		return fmt.Errorf("%w: short header", ErrInvalidSnapshot)
	}
	if data[0] != snapshotVersion || data[1] != MazeWidth || data[2] != MazeHeight {
		return fmt.Errorf("%w: version %d grid %dx%d", ErrInvalidSnapshot, data[0], data[1], data[2])
	}
	goal := Point{X: int(data[3]), Y: int(data[4])}
	if !goal.InBounds() {
		return fmt.Errorf("%w: goal %s", ErrInvalidSnapshot, goal)
	}
	count := int(binary.BigEndian.Uint16(data[6:8]))
	if count > FrontierCapacity {
		return fmt.Errorf("%w: frontier holds %d entries", ErrInvalidSnapshot, count)
	}
	want := snapshotHeader + 2*count + snapshotCellSize*MazeWidth*MazeHeight
	if len(data) != want {
		return fmt.Errorf("%w: %d bytes, want %d", ErrInvalidSnapshot, len(data), want)
	}

	var restored Explorer
	restored.goal = goal
	off := snapshotHeader
	for i := 0; i < count; i++ {
		p := Point{X: int(data[off]), Y: int(data[off+1])}
		if !p.InBounds() {
			return fmt.Errorf("%w: frontier entry %s", ErrInvalidSnapshot, p)
		}
		restored.frontier.Push(p)
		off += 2
	}
	for y := range restored.cells {
		for x := range restored.cells[y] {
			restored.cells[y][x] = Cell{
				Cost:  binary.BigEndian.Uint16(data[off:]),
				From:  PackedPoint{X: data[off+2], Y: data[off+3]},
				Flags: CellFlag(binary.BigEndian.Uint32(data[off+4:])),
			}
			off += snapshotCellSize
		}
	}

	*e = restored
	return nil
}
