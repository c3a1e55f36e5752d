package app

import "slices"

// VariationSeeds returns n distinct seeds starting at first. Later seeds
// follow a splitmix64 sequence so neighbouring variations are unrelated.
func VariationSeeds(first uint64, n int) []uint64 {
	if n <= 0 {
		return nil
	}
	seeds := make([]uint64, n)
	seeds[0] = first
	state := first
	for i := 1; i < n; i++ {
		for {
			var s uint64
			state, s = splitmix64(state)
			if !slices.Contains(seeds[:i], s) {
				seeds[i] = s
				break
			}
		}
	}
	return seeds
}

func splitmix64(state uint64) (next, out uint64) {
	next = state + 0x9e3779b97f4a7c15
	z := next
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return next, z ^ (z >> 31)
}
