// Package paging holds the offset arithmetic for paginated and
// randomly-windowed name listings.
package paging

import "math/rand/v2"

// Offset converts a 1-based page number into a row offset.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// RandomOffset returns a uniformly distributed offset in
// [0, max(0, total-window)], so a window of rows starting there
// always fits the result set when total >= window.
func RandomOffset(total, window int) int {
	maxSkip := total - window
	if maxSkip < 0 {
		maxSkip = 0
	}
	return rand.IntN(maxSkip + 1)
}
