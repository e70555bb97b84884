// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package arithmetic

import "github.com/pkg/errors"

// Geometry describes where things are drawn for an operation: the (padded) input, the position of the
// input units within it, the kernel footprint at each step and the output.
//
// For a forward convolution it's a direct reading of Params. For a transposed convolution it describes
// the equivalent forward convolution (the "adjoint" view): the roles of input and output are swapped, the
// input units are spread apart by the original stride (Spacing), and the kernel slides with unit stride
// over the input padded by KernelSize-1-Padding.
//
// Create it with NewGeometry.
type Geometry struct {
	// InputSize and OutputSize of the operation drawn. For a transposed convolution they are the output and
	// input sizes of the original Params, respectively.
	InputSize, OutputSize Vec2

	// Padding around the input units.
	Padding Vec2

	// KernelSize is the effective (dilated) footprint of the kernel: (kernel-1)*dilation + 1.
	KernelSize Vec2

	// KernelTaps is the number of kernel taps (the original, non-dilated, kernel size).
	KernelTaps Vec2

	// Dilation is the distance between kernel taps.
	Dilation Vec2

	// Stride between consecutive kernel positions.
	Stride Vec2

	// Spacing between consecutive input units: the original stride for transposed convolutions, 1 otherwise.
	Spacing Vec2

	// BottomPad is the extra padding at the bottom of a transposed convolution input, accounting
	// for the input cells the original convolution skips when (input + 2*padding - kernel) is not a
	// multiple of the stride. It is 0 for forward convolutions.
	BottomPad Vec2

	// TotalInputSize is the size of the input including padding (and spacing, for transposed convolutions).
	TotalInputSize Vec2

	// YAdjustment shifts the kernel footprint up, so its last row aligns with the top of the padded input
	// when the vertical padded input size minus the kernel is not a multiple of the vertical stride:
	// (TotalInputSize.Y - KernelSize.Y) mod Stride.Y. It is 0 for transposed convolutions.
	YAdjustment int

	// Transposed is set if this is the geometry of a transposed convolution.
	Transposed bool
}

// NewGeometry returns the Geometry of the operation described by params, or of its transposed
// convolution if transposed is set.
//
// It returns an error wrapping ErrInvalidParameters if a transposed convolution is requested with a padding larger
// than the effective kernel size minus one, since the equivalent forward convolution would need negative padding.
func NewGeometry(params Params, transposed bool) (Geometry, error) {
	kernelSize := EffectiveKernelSize(params.KernelSize, params.Dilation)
	g := Geometry{
		KernelSize: kernelSize,
		KernelTaps: params.KernelSize,
		Dilation:   params.Dilation,
		Transposed: transposed,
	}
	if !transposed {
		g.InputSize, g.OutputSize = params.InputSize, params.OutputSize
		g.Padding = params.Padding
		g.Stride = params.Stride
		g.Spacing = Splat(1)
		g.TotalInputSize = params.InputSize.Add(params.Padding.Scale(2))
		// Only the vertical remainder matters: the shift is applied to the vertical axis.
		g.YAdjustment = g.TotalInputSize.Sub(kernelSize.Sub(params.Stride)).Mod(params.Stride).Y()
		return g, nil
	}

	// Transposed: computed from the original parameters, before the swap.
	g.BottomPad = params.InputSize.Add(params.Padding.Scale(2)).Sub(kernelSize).Mod(params.Stride)

	g.InputSize, g.OutputSize = params.OutputSize, params.InputSize
	g.Padding = kernelSize.AddScalar(-1).Sub(params.Padding)
	if g.Padding.Min() < 0 {
		return Geometry{}, errors.Wrapf(ErrInvalidParameters,
			"transposed convolution requires padding (%s) <= effective kernel size - 1 (%s)",
			params.Padding, kernelSize.AddScalar(-1))
	}
	g.Spacing = params.Stride
	g.Stride = Splat(1)
	g.TotalInputSize = g.OutputSize.Add(kernelSize).AddScalar(-1)
	return g, nil
}

// NumSteps returns the number of animation steps: one per output cell.
func (g Geometry) NumSteps() int {
	return NumSteps(g.OutputSize)
}

// Step returns the output coordinate highlighted at step. See StepLocation.
func (g Geometry) Step(step int) (Vec2, error) {
	return StepLocation(g.OutputSize, step)
}

// Window returns the corners (bottom-left and top-right) of the kernel footprint, in input cells,
// for the output cell at outputCoord.
func (g Geometry) Window(outputCoord Vec2) (from, to Vec2) {
	from = g.Stride.Mul(outputCoord).Add(Vec2{0, g.YAdjustment})
	to = from.Add(g.KernelSize)
	return
}

// Taps returns the bottom-left corner of each kernel tap for the output cell at outputCoord.
// Taps are spread by Dilation within the Window; they are listed column by column, left to right.
func (g Geometry) Taps(outputCoord Vec2) []Vec2 {
	from, _ := g.Window(outputCoord)
	taps := make([]Vec2, 0, g.KernelTaps.Product())
	for i := range g.KernelTaps.X() {
		for j := range g.KernelTaps.Y() {
			taps = append(taps, from.Add(g.Dilation.Mul(Vec2{i, j})))
		}
	}
	return taps
}

// InputUnit returns the bottom-left corner of the input unit (i, j) in the padded input.
// The unit occupies one cell: its top-right corner is InputUnit(i, j).AddScalar(1).
func (g Geometry) InputUnit(i, j int) Vec2 {
	return g.Padding.Add(g.Spacing.Mul(Vec2{i, j})).Add(Vec2{0, g.BottomPad.Y()})
}

// InputExtent returns the corners (bottom-left and top-right) of the region spanned by the input units.
func (g Geometry) InputExtent() (from, to Vec2) {
	from = g.InputUnit(0, 0)
	to = g.InputUnit(g.InputSize.X()-1, g.InputSize.Y()-1).AddScalar(1)
	return
}
