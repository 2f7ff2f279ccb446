/*
 * MIT License
 *
 * Copyright (c) 2025 The optbench authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package workload describes the deterministic compute kernels the harness
// builds and measures. The kernels themselves live outside this repository;
// here we only keep their identities, their workload class, and the result
// value a correct build must print.
package workload

// Category groups workloads by the resource they stress. Speedup
// distributions are compared across categories, so every workload
// must belong to exactly one.
type Category int

const (
	CPURecursive Category = iota
	CPUIterative
	MemoryCacheSensitive
	MemoryRandomAccess
	DataStructures
	StringProcessing
	Serialization
	IOBound
)

func (c Category) String() string {
	switch c {
	case CPURecursive:
		return "cpu-recursive"
	case CPUIterative:
		return "cpu-iterative"
	case MemoryCacheSensitive:
		return "memory-cache-sensitive"
	case MemoryRandomAccess:
		return "memory-random-access"
	case DataStructures:
		return "data-structures"
	case StringProcessing:
		return "string-processing"
	case Serialization:
		return "serialization"
	case IOBound:
		return "io-bound"
	default:
		return "unknown"
	}
}

// Categories lists every category once, in declaration order.
func Categories() []Category {
	return []Category{
		CPURecursive,
		CPUIterative,
		MemoryCacheSensitive,
		MemoryRandomAccess,
		DataStructures,
		StringProcessing,
		Serialization,
		IOBound,
	}
}

// Spec identifies one workload kernel.
type Spec struct {
	// Name is the stable identifier used in job keys and reports.
	Name string `json:"Name"`
	// Package is what the toolchain is asked to build.
	Package string `json:"Package"`
	// ExpectedResult is the exact RESULT line payload a correct
	// artifact must print. A mismatch marks the job as miscompiled.
	ExpectedResult string `json:"ExpectedResult"`
	Category       Category
	Description    string `json:"Description"`
}

// Catalog returns the builtin workload set in a fixed order.
func Catalog() []Spec {
	return []Spec{
		{
			Name:           "ackermann",
			Package:        "ackermann",
			ExpectedResult: "8189",
			Category:       CPURecursive,
			Description:    "Ackermann(3, 10), deep non-memoized recursion",
		},
		{
			Name:           "fibonacci",
			Package:        "fibonacci",
			ExpectedResult: "102334155",
			Category:       CPURecursive,
			Description:    "Naive recursive Fibonacci of 40",
		},
		{
			Name:           "prime-sieve",
			Package:        "prime-sieve",
			ExpectedResult: "78498",
			Category:       CPUIterative,
			Description:    "Sieve of Eratosthenes up to 1e6, counts primes",
		},
		{
			Name:           "matrix-mult",
			Package:        "matrix-mult",
			ExpectedResult: "256",
			Category:       MemoryCacheSensitive,
			Description:    "Dense 128x128 matrix product, prints c[0][0]",
		},
		{
			Name:           "quicksort",
			Package:        "quicksort",
			ExpectedResult: "1",
			Category:       MemoryRandomAccess,
			Description:    "Iterative quicksort of 1e6 pseudo-random ints, prints sortedness",
		},
		{
			Name:           "string-parse",
			Package:        "string-parse",
			ExpectedResult: "500000500000",
			Category:       StringProcessing,
			Description:    "Parses and sums 1e6 newline-separated integers",
		},
		{
			Name:           "hashmap-ops",
			Package:        "hashmap-ops",
			ExpectedResult: "999999000000",
			Category:       DataStructures,
			Description:    "1e6 hash map inserts and lookups, sums doubled values",
		},
		{
			Name:           "btreemap-ops",
			Package:        "btreemap-ops",
			ExpectedResult: "999999000000",
			Category:       DataStructures,
			Description:    "1e6 ordered map inserts and lookups, sums doubled values",
		},
		{
			Name:           "json-parse",
			Package:        "json-parse",
			ExpectedResult: "10000",
			Category:       Serialization,
			Description:    "Serializes and re-parses 1e4 records, prints record count",
		},
		{
			Name:           "file-io",
			Package:        "file-io",
			ExpectedResult: "104857600",
			Category:       IOBound,
			Description:    "Writes and reads back a 100 MiB file, prints byte count",
		},
	}
}

// ByName finds a workload in the given set.
func ByName(workloads []Spec, name string) (Spec, bool) {
	for _, w := range workloads {
		if w.Name == name {
			return w, true
		}
	}
	return Spec{}, false
}

// CategoryOf maps a workload name to its catalog category. Names not
// in the catalog fall back to CPUIterative.
func CategoryOf(name string) Category {
	if w, ok := ByName(Catalog(), name); ok {
		return w.Category
	}
	return CPUIterative
}
