// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"math"
)

const (
	opNew      = "New"
	opFrom     = "FromSlice"
	opAt       = "At"
	opSet      = "Set"
	opDistance = "Distance"
	opAddOuter = "AddOuter"
	opSuperDia = "SuperDiagonal"
)

// Dense is an N-way float64 array stored row-major (last mode fastest).
// The shape is fixed at construction.
type Dense struct {
	shape   Shape
	strides []int
	data    []float64
}

// New allocates a zero tensor of the given shape.
// Errors: ErrBadShape when the shape is empty or holds a non-positive dimension.
func New(shape ...int) (*Dense, error) {
	s := Shape(shape)
	if err := s.Validate(); err != nil {
		return nil, tensorErrorf(opNew, fmt.Errorf("%v: %w", shape, err))
	}
	s = s.Clone()

	return &Dense{
		shape:   s,
		strides: s.Strides(),
		data:    make([]float64, s.NumElements()),
	}, nil
}

// FromSlice builds a tensor holding a copy of data, read in row-major order.
// Errors: ErrBadShape, ErrShapeMismatch (len(data) != ∏ shape).
func FromSlice(data []float64, shape ...int) (*Dense, error) {
	t, err := New(shape...)
	if err != nil {
		return nil, tensorErrorf(opFrom, err)
	}
	if len(data) != len(t.data) {
		return nil, tensorErrorf(opFrom, fmt.Errorf("len %d for shape %v: %w", len(data), shape, ErrShapeMismatch))
	}
	copy(t.data, data)

	return t, nil
}

// Shape returns a copy of the tensor shape.
func (t *Dense) Shape() Shape { return t.shape.Clone() }

// NDims returns the number of modes N.
func (t *Dense) NDims() int { return len(t.shape) }

// Dim returns d_mode. The mode must lie in [0, NDims()).
func (t *Dense) Dim(mode int) int { return t.shape[mode] }

// Len returns the number of elements.
func (t *Dense) Len() int { return len(t.data) }

// RawData exposes the row-major backing buffer. Writes go straight to the tensor.
func (t *Dense) RawData() []float64 { return t.data }

func (t *Dense) offset(idx []int) (int, error) {
	if len(idx) != len(t.shape) {
		return 0, ErrIndexOutOfRange
	}
	off := 0
	for k, i := range idx {
		if i < 0 || i >= t.shape[k] {
			return 0, ErrIndexOutOfRange
		}
		off += i * t.strides[k]
	}

	return off, nil
}

// At returns the element at the multi-index idx.
// Errors: ErrIndexOutOfRange.
func (t *Dense) At(idx ...int) (float64, error) {
	off, err := t.offset(idx)
	if err != nil {
		return 0, tensorErrorf(opAt, fmt.Errorf("%v: %w", idx, err))
	}

	return t.data[off], nil
}

// Set writes v at the multi-index idx.
// Errors: ErrIndexOutOfRange.
func (t *Dense) Set(v float64, idx ...int) error {
	off, err := t.offset(idx)
	if err != nil {
		return tensorErrorf(opSet, fmt.Errorf("%v: %w", idx, err))
	}
	t.data[off] = v

	return nil
}

// Clone returns a deep copy.
func (t *Dense) Clone() *Dense {
	data := make([]float64, len(t.data))
	copy(data, t.data)

	return &Dense{shape: t.shape.Clone(), strides: append([]int(nil), t.strides...), data: data}
}

// Norm returns the Frobenius norm sqrt(Σ x²).
func (t *Dense) Norm() float64 {
	var sum float64
	for _, v := range t.data {
		sum += v * v
	}

	return math.Sqrt(sum)
}

// Scale multiplies every element by alpha in place.
func (t *Dense) Scale(alpha float64) {
	for i := range t.data {
		t.data[i] *= alpha
	}
}

// Distance returns ‖a − b‖_F.
// Errors: ErrNilTensor, ErrShapeMismatch.
func Distance(a, b *Dense) (float64, error) {
	if a == nil || b == nil {
		return 0, tensorErrorf(opDistance, ErrNilTensor)
	}
	if !a.shape.Equal(b.shape) {
		return 0, tensorErrorf(opDistance, fmt.Errorf("%v vs %v: %w", a.shape, b.shape, ErrShapeMismatch))
	}
	var sum, d float64
	for i := range a.data {
		d = a.data[i] - b.data[i]
		sum += d * d
	}

	return math.Sqrt(sum), nil
}

// AddOuter accumulates weight·(v_0 ∘ v_1 ∘ … ∘ v_{N-1}) into t.
// One vector per mode, len(v_n) == d_n.
// Errors: ErrShapeMismatch.
func (t *Dense) AddOuter(weight float64, vecs ...[]float64) error {
	if len(vecs) != len(t.shape) {
		return tensorErrorf(opAddOuter, fmt.Errorf("%d vectors for %d modes: %w", len(vecs), len(t.shape), ErrShapeMismatch))
	}
	for n, v := range vecs {
		if len(v) != t.shape[n] {
			return tensorErrorf(opAddOuter, fmt.Errorf("mode %d: %w", n, ErrShapeMismatch))
		}
	}

	// prefix[n] holds weight·∏_{m<n} v_m[idx_m] for the current multi-index.
	n := len(t.shape)
	idx := make([]int, n)
	prefix := make([]float64, n+1)
	prefix[0] = weight
	for k := 0; k < n; k++ {
		prefix[k+1] = prefix[k] * vecs[k][0]
	}
	for off := range t.data {
		t.data[off] += prefix[n]
		// advance the row-major counter, refreshing the prefix products it touched
		k := n - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < t.shape[k] {
				break
			}
			idx[k] = 0
		}
		if k < 0 {
			break
		}
		for ; k < n; k++ {
			prefix[k+1] = prefix[k] * vecs[k][idx[k]]
		}
	}

	return nil
}

// SuperDiagonal returns the order-way cube of side len(values) with
// values[r] at (r, r, …, r) and zeros elsewhere.
// Errors: ErrBadShape (order < 1 or no values).
func SuperDiagonal(order int, values []float64) (*Dense, error) {
	if order < 1 || len(values) == 0 {
		return nil, tensorErrorf(opSuperDia, ErrBadShape)
	}
	shape := make([]int, order)
	for i := range shape {
		shape[i] = len(values)
	}
	t, err := New(shape...)
	if err != nil {
		return nil, tensorErrorf(opSuperDia, err)
	}
	step := 0
	for _, s := range t.strides {
		step += s
	}
	for r, v := range values {
		t.data[r*step] = v
	}

	return t, nil
}

// String renders the shape and the flat data, for diagnostics.
func (t *Dense) String() string {
	return fmt.Sprintf("tensor%v%v", []int(t.shape), t.data)
}
