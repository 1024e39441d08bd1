// SPDX-License-Identifier: MIT

package tensor

// Shape lists the dimension of every mode, slowest first.
type Shape []int

// NumElements returns ∏ d_i (1 for an empty shape).
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}

	return n
}

// Validate checks N ≥ 1 and every d_i > 0.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return ErrBadShape
	}
	for _, d := range s {
		if d <= 0 {
			return ErrBadShape
		}
	}

	return nil
}

// Equal reports element-wise equality.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}

	return true
}

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)

	return out
}

// Strides returns row-major strides: s[N-1] = 1, s[i] = s[i+1]·d[i+1].
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}

	return strides
}

// product returns ∏ s[m] over the listed modes.
func (s Shape) product(modes []int) int {
	n := 1
	for _, m := range modes {
		n *= s[m]
	}

	return n
}
