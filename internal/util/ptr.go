// Package util holds small generic helpers.
package util

// Ptr returns a pointer to a copy of v. Optional JSON fields use it for
// values that are not addressable.
func Ptr[T any](v T) *T {
	return &v
}
