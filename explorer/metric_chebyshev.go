//go:build !manhattan

package explorer

// metric is the Chebyshev distance. Diagonal moves cost one step, so it never
// overestimates the remaining steps.
func metric(dx, dy int) int {
	return max(dx, dy)
}
