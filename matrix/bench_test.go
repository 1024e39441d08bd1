// SPDX-License-Identifier: MIT
// Package matrix_test provides benchmarks for the hot matrix kernels,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvtensor/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{64, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkF float64
)

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n, n)
			B := mustDense(b, n, n)
			fillDenseRand(b, A, 1337)
			fillDenseRand(b, B, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkKhatriRao(b *testing.B) {
	b.ReportAllocs()
	const rank = 8
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n, rank)
			B := mustDense(b, n, rank)
			fillDenseRand(b, A, 1)
			fillDenseRand(b, B, 2)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.KhatriRao(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkGram(b *testing.B) {
	b.ReportAllocs()
	const rank = 16
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n*n, rank)
			fillDenseRand(b, A, 3)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Gram(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkPinvSym(b *testing.B) {
	b.ReportAllocs()
	for _, rank := range []int{4, 16, 32} {
		b.Run(fmt.Sprintf("rank=%d", rank), func(b *testing.B) {
			A := mustDense(b, 4*rank, rank)
			fillDenseRand(b, A, 5)
			G, err := matrix.Gram(A)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.PinvSym(G)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkFrobeniusNorm(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := mustDense(b, n, n)
			fillDenseRand(b, A, 9)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f, err := matrix.FrobeniusNorm(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkF = f
			}
		})
	}
}
