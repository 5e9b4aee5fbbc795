package util

import "runtime"

// GetOptimalPoolSize returns the concurrency used for parser pools and the
// component build runner.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
// Parsing is CGO-bound, so twice the core count keeps cores busy while
// goroutines sit in tree-sitter calls. The parser pool and the build runner
// MUST use the same value or workers block waiting for a parser.
func GetOptimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// GetOptimalPoolSizeWithOverride returns override when it is positive,
// otherwise GetOptimalPoolSize().
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
