package engine

import "math/rand/v2"

// PickVariant picks one element of list uniformly at random, using seed as
// the only source of randomness. The same seed always picks the same element.
// It reports false for an empty list.
func PickVariant[T any](seed uint64, list []T) (T, bool) {
	var zero T
	if len(list) == 0 {
		return zero, false
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return list[r.IntN(len(list))], true
}
