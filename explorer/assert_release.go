//go:build !explorerdebug

package explorer

const debugAssertions = false
