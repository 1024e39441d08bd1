// SPDX-License-Identifier: MIT
package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/katalvlaran/lvtensor/matrix"
	"github.com/katalvlaran/lvtensor/tensor"
)

const approxTol = 1e-10

// mustTensor builds a tensor from data or fails the test.
func mustTensor(t testing.TB, data []float64, shape ...int) *tensor.Dense {
	t.Helper()
	x, err := tensor.FromSlice(data, shape...)
	if err != nil {
		t.Fatalf("FromSlice(%v): %v", shape, err)
	}

	return x
}

// seq returns 0, 1, …, n-1 as float64.
func seq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}

	return out
}

// randTensor returns a tensor with deterministic U(-1,1) entries.
func randTensor(t testing.TB, seed int64, shape ...int) *tensor.Dense {
	t.Helper()
	x, err := tensor.New(shape...)
	if err != nil {
		t.Fatalf("New(%v): %v", shape, err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range x.RawData() {
		x.RawData()[i] = rng.Float64()*2 - 1
	}

	return x
}

// randMatrix returns an r×c matrix with deterministic U(-1,1) entries.
func randMatrix(t testing.TB, seed int64, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range m.RawData() {
		m.RawData()[i] = rng.Float64()*2 - 1
	}

	return m
}

// requireTensorClose fails when shapes differ or any element differs beyond approxTol.
func requireTensorClose(t *testing.T, want, got *tensor.Dense) {
	t.Helper()
	if diff := cmp.Diff([]int(want.Shape()), []int(got.Shape())); diff != "" {
		t.Fatalf("shape mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.RawData(), got.RawData(), cmpopts.EquateApprox(approxTol, approxTol)); diff != "" {
		t.Fatalf("tensors differ (-want +got):\n%s", diff)
	}
}
