package solver

import (
	"math"
	"math/rand/v2"
)

// Stream identifiers mixed into the PCG state so the split, the fold
// assignment and each degree's bootstrap draws use independent streams of
// the same seed.
const (
	streamSplit     uint64 = 0x5851f42d4c957f2d
	streamFolds     uint64 = 0x14057b7ef767814f
	streamBootstrap uint64 = 0x9e3779b97f4a7c15
)

func newRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// trainTestSplit shuffles 0..n-1 and reserves ceil(n·testFraction) indices
// for testing. Both parts keep at least one index when n >= 2.
func trainTestSplit(n int, testFraction float64, seed uint64) (train, test []int) {
	perm := newRand(seed, streamSplit).Perm(n)
	nTest := int(math.Ceil(float64(n) * testFraction))
	if nTest < 1 {
		nTest = 1
	}
	if nTest > n-1 {
		nTest = n - 1
	}
	return perm[nTest:], perm[:nTest]
}

// kFolds partitions 0..n-1 into k shuffled folds whose sizes differ by at most one.
func kFolds(n, k int, seed uint64) [][]int {
	perm := newRand(seed, streamFolds).Perm(n)
	folds := make([][]int, k)
	start := 0
	for i := range folds {
		size := n / k
		if i < n%k {
			size++
		}
		folds[i] = perm[start : start+size]
		start += size
	}
	return folds
}

// complement returns 0..n-1 without the members of fold, in ascending order.
func complement(n int, fold []int) []int {
	skip := make([]bool, n)
	for _, i := range fold {
		skip[i] = true
	}
	out := make([]int, 0, n-len(fold))
	for i := 0; i < n; i++ {
		if !skip[i] {
			out = append(out, i)
		}
	}
	return out
}

// resample draws n indices from 0..n-1 with replacement.
func resample(rng *rand.Rand, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.IntN(n)
	}
	return out
}
