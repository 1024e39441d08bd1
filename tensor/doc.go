// SPDX-License-Identifier: MIT

// Package tensor provides a dense N-way float64 array and the multilinear
// kernels the decompositions are built on.
//
// Layout: row-major, last mode fastest. Offsets use strides
// s[N-1] = 1, s[i] = s[i+1]·d[i+1]. Modes are numbered from 0.
//
// Kernels:
//
//   - Unfold / RowUnfold / ColUnfold: matricize a tensor by splitting its
//     modes into row and column groups. Always a copy.
//   - Fold / FoldInto / FoldRow: the exact inverse of Unfold.
//   - ModeProduct / ModeProductInto: contraction of one mode against a
//     matrix, in one of two orientations (see Contraction).
//   - MultiModeProduct / MultiModeProductInto: a chain of mode products.
//
// Destination-buffer variants validate the destination shape and refuse a
// destination that shares storage with the input.
package tensor
