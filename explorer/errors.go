package explorer

import "errors"

// Explorer errors. Contract violations leave the explorer unchanged.
var (
	ErrOutOfBounds     = errors.New("point is outside the maze")
	ErrAlreadyUpdated  = errors.New("cell walls were already reported")
	ErrCostUnavailable = errors.New("cell has no available cost")
	ErrInvalidWall     = errors.New("invalid wall state")
	ErrFrontierFull    = errors.New("frontier has no room for an expansion")
	ErrInvalidSnapshot = errors.New("invalid explorer snapshot")
)

// violation reports a broken caller contract. Debug builds stop right here.
func violation(err error) error {
	if debugAssertions {
		panic(err)
	}
	return err
}
