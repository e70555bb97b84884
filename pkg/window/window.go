// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package window evaluates windowed reductions (convolution, average pooling and max pooling)
// over synthetic, reproducible 2-D data.
//
// Grids are gonum dense matrices: rows index the horizontal axis (axis 0) and columns
// the vertical axis (axis 1), matching arithmetic.Vec2.
package window

import (
	"github.com/gomlx/convarithmetic/pkg/arithmetic"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"
)

var (
	// ErrInvalidMode is returned (wrapped) for a reduction mode other than convolution, average or max.
	ErrInvalidMode = errors.New("invalid reduction mode")

	// ErrUnsupportedDilation is returned (wrapped) if a dilation other than 1 is requested:
	// dilated windows are only supported for geometry-only (arithmetic) figures.
	ErrUnsupportedDilation = errors.New("only a dilation of 1 is supported for numerical figures")
)

const (
	// InputValues is the exclusive upper bound of the generated input values.
	InputValues = 4

	// KernelValues is the exclusive upper bound of the generated kernel weights.
	KernelValues = 3
)

// Validate checks that mode and params can be evaluated. It has no side effects.
func Validate(params arithmetic.Params, mode Mode) error {
	if !mode.IsValid() {
		return errors.Wrapf(ErrInvalidMode, "mode %d, valid modes are %v", int(mode), Modes())
	}
	if params.Dilation != arithmetic.Splat(1) {
		return errors.Wrapf(ErrUnsupportedDilation, "dilation %s requested", params.Dilation)
	}
	return nil
}

// Generate samples the input and kernel of an animation from src.
//
// The input has the padded size InputSize+2*Padding: it is zero in the padding, and uniformly
// sampled in [0, InputValues) in the center. The kernel has size KernelSize, uniformly sampled
// in [0, KernelValues). Values are drawn row by row, first the input then the kernel, so the
// same seed always yields the same data.
func Generate(params arithmetic.Params, src Source) (input, kernel *mat.Dense) {
	total := params.InputSize.Add(params.Padding.Scale(2))
	input = mat.NewDense(total.X(), total.Y(), nil)
	for i := range params.InputSize.X() {
		for j := range params.InputSize.Y() {
			input.Set(params.Padding.X()+i, params.Padding.Y()+j, float64(src.IntN(InputValues)))
		}
	}
	kernel = mat.NewDense(params.KernelSize.X(), params.KernelSize.Y(), nil)
	for i := range params.KernelSize.X() {
		for j := range params.KernelSize.Y() {
			kernel.Set(i, j, float64(src.IntN(KernelValues)))
		}
	}
	return
}

// Reduce computes the output of the windowed reduction for every output cell:
//
//	output[ox, oy] = reduce(input[stride.X*ox : stride.X*ox+kernel.X, stride.Y*oy : stride.Y*oy+kernel.Y])
//
// Where reduce is the sum of the elementwise product with kernel for Convolution, the mean for Average
// and the maximum for Max. The kernel is only used for Convolution.
func Reduce(params arithmetic.Params, mode Mode, input, kernel *mat.Dense) (*mat.Dense, error) {
	if err := Validate(params, mode); err != nil {
		return nil, err
	}
	total := params.InputSize.Add(params.Padding.Scale(2))
	if rows, cols := input.Dims(); rows != total.X() || cols != total.Y() {
		return nil, errors.Errorf("Reduce: input is %dx%d, but the padded input size is %s", rows, cols, total)
	}
	if mode == Convolution {
		if rows, cols := kernel.Dims(); rows != params.KernelSize.X() || cols != params.KernelSize.Y() {
			return nil, errors.Errorf("Reduce: kernel is %dx%d, but the kernel size is %s", rows, cols, params.KernelSize)
		}
	}

	outputSize := params.OutputSize
	output := mat.NewDense(outputSize.X(), outputSize.Y(), nil)
	windowSize := float64(params.KernelSize.Product())
	var product mat.Dense
	for ox := range outputSize.X() {
		for oy := range outputSize.Y() {
			w := windowAt(params, input, arithmetic.V(ox, oy))
			var value float64
			switch mode {
			case Convolution:
				product.Reset()
				product.MulElem(w, kernel)
				value = mat.Sum(&product)
			case Average:
				value = mat.Sum(w) / windowSize
			case Max:
				value = mat.Max(w)
			}
			output.Set(ox, oy, value)
		}
	}
	return output, nil
}

// windowAt returns a view of the input window reduced into the output cell outputCoord.
func windowAt(params arithmetic.Params, input *mat.Dense, outputCoord arithmetic.Vec2) mat.Matrix {
	from := params.Stride.Mul(outputCoord)
	to := from.Add(params.KernelSize)
	return input.Slice(from.X(), to.X(), from.Y(), to.Y())
}

// Data holds the input, kernel and output of one numerical animation. It's created once per animation by
// Evaluate and shared, read-only, by all its steps.
type Data struct {
	Params arithmetic.Params
	Mode   Mode

	// Input is the padded input, Kernel the convolution weights and Output the result of the reduction.
	Input, Kernel, Output *mat.Dense
}

// Evaluate validates the parameters, generates the data with src and computes the output.
//
// Invalid modes (ErrInvalidMode) and dilations (ErrUnsupportedDilation) are rejected before anything is
// drawn from src.
func Evaluate(params arithmetic.Params, mode Mode, src Source) (*Data, error) {
	if err := Validate(params, mode); err != nil {
		return nil, err
	}
	input, kernel := Generate(params, src)
	output, err := Reduce(params, mode, input, kernel)
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("evaluated %s over %s", mode, params)
	return &Data{
		Params: params,
		Mode:   mode,
		Input:  input,
		Kernel: kernel,
		Output: output,
	}, nil
}

// Window returns a view of the input window reduced into the output cell at outputCoord.
func (d *Data) Window(outputCoord arithmetic.Vec2) mat.Matrix {
	return windowAt(d.Params, d.Input, outputCoord)
}
