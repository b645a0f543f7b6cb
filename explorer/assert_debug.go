//go:build explorerdebug

package explorer

const debugAssertions = true
