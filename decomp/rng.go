// SPDX-License-Identifier: MIT

// Deterministic random sources for the initializers.
//
// Determinism:
//   - Same seed ⇒ identical factors and identical solve trajectories.
//   - No time-based sources anywhere; every solve owns its *rand.Rand.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Derive one seed per restart with
//     DeriveSeed instead of sharing a generator.

package decomp

import "math/rand"

// defaultRNGSeed replaces seed==0 so that the zero Options value stays reproducible.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	var s int64
	s = seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// DeriveSeed mixes a parent seed and a stream identifier into an independent
// seed (SplitMix64 finalizer). Use it to give parallel restarts their own streams.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}
