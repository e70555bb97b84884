// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package arithmetic

import (
	"fmt"

	"github.com/pkg/errors"
)

// Params holds the shape parameters of one sliding-window operation: it's shared (read-only)
// by all the steps of an animation.
//
// Create it with Build, which validates the parameters and derives the output size.
// Params is a value type: copies are independent and none of the functions in this package modify it.
type Params struct {
	InputSize, OutputSize Vec2
	Padding               Vec2
	KernelSize            Vec2
	Stride                Vec2
	Dilation              Vec2
}

// String implements fmt.Stringer.
func (p Params) String() string {
	return fmt.Sprintf("input=%s, output=%s, padding=%s, kernel=%s, stride=%s, dilation=%s",
		p.InputSize, p.OutputSize, p.Padding, p.KernelSize, p.Stride, p.Dilation)
}

// ParamsBuilder configures Params. Create it with Build, set the desired parameters and
// call ParamsBuilder.Done.
type ParamsBuilder struct {
	params        Params
	hasOutputSize bool
}

// Build prepares the Params of an operation with the given input and kernel sizes.
//
// The defaults are no padding, unit stride and unit dilation, and an output size derived with OutputSize.
func Build(inputSize, kernelSize Vec2) *ParamsBuilder {
	return &ParamsBuilder{
		params: Params{
			InputSize:  inputSize,
			KernelSize: kernelSize,
			Stride:     Splat(1),
			Dilation:   Splat(1),
		},
	}
}

// Padding sets the zero-padding added to both sides of each axis. Default is 0.
func (b *ParamsBuilder) Padding(padding Vec2) *ParamsBuilder {
	b.params.Padding = padding
	return b
}

// Stride sets the stride of the window. Default is 1.
func (b *ParamsBuilder) Stride(stride Vec2) *ParamsBuilder {
	b.params.Stride = stride
	return b
}

// Dilation sets the spacing between kernel taps. Default is 1, meaning no dilation.
func (b *ParamsBuilder) Dilation(dilation Vec2) *ParamsBuilder {
	b.params.Dilation = dilation
	return b
}

// OutputSize sets the expected output size. It is only used as a cross-check: Done fails if it differs
// from the one derived from the other parameters.
func (b *ParamsBuilder) OutputSize(outputSize Vec2) *ParamsBuilder {
	b.params.OutputSize = outputSize
	b.hasOutputSize = true
	return b
}

// Done validates the configuration and returns the Params.
//
// It returns an error wrapping ErrInvalidParameters if the parameters are invalid.
func (b *ParamsBuilder) Done() (Params, error) {
	p := b.params
	derived, err := OutputSize(p.InputSize, p.Padding, p.KernelSize, p.Stride, p.Dilation)
	if err != nil {
		return Params{}, err
	}
	if b.hasOutputSize && derived != p.OutputSize {
		return Params{}, errors.Wrapf(ErrInvalidParameters,
			"output size %s given, but the other parameters (%s) imply an output size of %s",
			p.OutputSize, p, derived)
	}
	p.OutputSize = derived
	return p, nil
}
