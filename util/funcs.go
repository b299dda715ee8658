package util

import (
	"iter"
)

// Reverse iterates a slice from its last element to its first.
func Reverse[A any](slice []A) iter.Seq[A] {
	return func(yield func(A) bool) {
		for i := len(slice) - 1; i >= 0; i-- {
			if !yield(slice[i]) {
				return
			}
		}
	}
}

// Map applies f to every element of a slice, returning a new slice.
func Map[A, B any](slice []A, f func(A) B) []B {
	out := make([]B, len(slice))
	for i, a := range slice {
		out[i] = f(a)
	}
	return out
}

// ConcatIter chains iterators one after another.
func ConcatIter[A any](iters ...iter.Seq[A]) iter.Seq[A] {
	return func(yield func(A) bool) {
		for _, thisIter := range iters {
			for v := range thisIter {
				if !yield(v) {
					return
				}
			}
		}
	}
}
