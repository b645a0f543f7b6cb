package explorer

// FrontierCapacity is the size of the frontier store. Each cell is queued at most once,
// so a full grid fits exactly.
const FrontierCapacity = MazeWidth * MazeHeight

// Frontier is a fixed-capacity LIFO stack of cells waiting for expansion.
//
// It is not a priority queue: Expand pushes each batch of new cells worst first, so the best
// candidate of the latest expansion is popped first while older ones sink.
type Frontier struct {
	entries [FrontierCapacity]PackedPoint
	wr      int
}

// Push adds p on top of the stack. It returns false when the stack is full.
func (f *Frontier) Push(p Point) bool {
	if f.wr >= len(f.entries) {
		if debugAssertions {
			panic("explorer: frontier overflow")
		}
		return false
	}
	f.entries[f.wr] = Pack(p)
	f.wr++
	return true
}

// Pop removes and returns the most recently pushed point.
func (f *Frontier) Pop() (Point, bool) {
	if f.wr == 0 {
		return Point{}, false
	}
	f.wr--
	return f.entries[f.wr].Unpack()
}

// Clear empties the stack.
func (f *Frontier) Clear() {
	f.wr = 0
}

// Count returns the number of queued points.
func (f *Frontier) Count() int {
	return f.wr
}

// Free returns the number of points that can still be pushed.
func (f *Frontier) Free() int {
	return len(f.entries) - f.wr
}
