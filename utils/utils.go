// Package utils provides small shared helpers for dates, numbers and pointers.
package utils

func ToPtr[T any](v T) *T {
	return &v
}
