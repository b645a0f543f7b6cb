//go:build manhattan

package explorer

func metric(dx, dy int) int {
	return dx + dy
}
