package common

import (
	"hash/fnv"
	"log"
)

func B2Kib(numB int64) int64 {
	return numB / 1024
}

func B2Mib(numB int64) float64 {
	return float64(numB) / (1024 * 1024)
}

func MinOf(vars ...int) int {
	min := vars[0]

	for _, i := range vars {
		if min > i {
			min = i
		}
	}

	return min
}

func MaxOf(vars ...int) int {
	max := vars[0]

	for _, i := range vars {
		if max < i {
			max = i
		}
	}

	return max
}

func Check(e error) {
	if e != nil {
		log.Fatal(e)
	}
}

// Hash gives a stable 64-bit digest of s. Used to derive per-job
// sub-seeds so that resampling stays reproducible across runs.
func Hash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
