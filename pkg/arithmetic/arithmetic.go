// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package arithmetic implements the convolution arithmetic of 2-D sliding-window operations:
// the output size of a convolution (or pooling) given its input size, padding, kernel size,
// stride and dilation; the mapping from an animation step to the output cell it highlights;
// and the transformation that describes a transposed convolution as the forward convolution
// that computes it.
//
// Everything here is pure: there is no state and no I/O, and all values are Vec2 (one integer
// per spatial axis, axis 0 horizontal and axis 1 vertical).
package arithmetic

import "github.com/pkg/errors"

var (
	// ErrInvalidParameters is returned (wrapped) when a combination of shape parameters is invalid:
	// non-positive sizes or strides, negative padding, or a kernel larger than the padded input.
	ErrInvalidParameters = errors.New("invalid convolution parameters")

	// ErrStepOutOfRange is returned (wrapped) when a step is not in [0, number of steps).
	ErrStepOutOfRange = errors.New("step out of range")
)
