// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package figure

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gomlx/convarithmetic/pkg/arithmetic"
	"github.com/gomlx/convarithmetic/pkg/window"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Numerical returns the values of a figure showing the data of the reduction at step: a label for each
// cell of the padded input and of the output, and for convolutions, a label for each kernel weight placed
// over the input window.
//
// The canvas y-axis points up while the grids' vertical index grows downwards, so labels are read
// flipped along the vertical axis. The output grid is drawn to the right of the input (XSHIFT), vertically
// centered (YSHIFT).
//
// The geometry g must be the forward (not transposed) geometry of data.Params, see arithmetic.NewGeometry.
// It's shared by all the steps of an animation.
//
// It returns an error wrapping arithmetic.ErrStepOutOfRange if step is not in [0, number of steps).
func Numerical(data *window.Data, g arithmetic.Geometry, step int, palette Palette) (Values, error) {
	if g.Transposed || g.InputSize != data.Params.InputSize || g.OutputSize != data.Params.OutputSize ||
		g.Padding != data.Params.Padding || g.Stride != data.Params.Stride {
		return nil, errors.Wrapf(arithmetic.ErrInvalidParameters,
			"Numerical: geometry (transposed=%v, input=%s, output=%s) doesn't match the data parameters (%s)",
			g.Transposed, g.InputSize, g.OutputSize, data.Params)
	}
	outputCoord, err := g.Step(step)
	if err != nil {
		return nil, err
	}
	windowFrom, windowTo := g.Window(outputCoord)
	inputFrom, inputTo := g.InputExtent()

	var kernelValues string
	if data.Mode == window.Convolution {
		kernelValues = labels(data.Kernel, windowFrom, 0.8, 0.2, "\\tiny", formatValue)
	}
	total, outputSize := g.TotalInputSize, g.OutputSize
	xShift := total.X() + 1
	yShift := (total.Y() - outputSize.Y()) / 2
	values := Values{
		"STEP":          strconv.Itoa(step),
		"PADDING_TO":    total.String(),
		"INPUT_FROM":    inputFrom.String(),
		"INPUT_TO":      inputTo.String(),
		"INPUT_VALUES":  labels(data.Input, arithmetic.Vec2{}, 0.5, 0.5, "\\footnotesize", formatValue),
		"KERNEL_VALUES": kernelValues,
		"OUTPUT_TO":     outputSize.String(),
		"OUTPUT_VALUES": labels(data.Output, arithmetic.Vec2{}, 0.5, 0.5, "\\footnotesize", formatValue),
		"XSHIFT":        length(xShift),
		"YSHIFT":        length(yShift),
		"OUTPUT_SHIFT":  arithmetic.V(xShift, yShift).String(),
	}
	setHighlights(values, windowFrom, windowTo, outputCoord)
	palette.set(values, false)
	return values, nil
}

// labels returns one TikZ node per cell of grid, placed at origin + (i+dx, j+dy), where the cell (i, j) of
// the canvas shows grid[i, cols-1-j].
func labels(grid *mat.Dense, origin arithmetic.Vec2, dx, dy float64, size string, format func(float64) string) string {
	var sb strings.Builder
	rows, cols := grid.Dims()
	for i := range rows {
		for j := range cols {
			x := float64(origin.X()+i) + dx
			y := float64(origin.Y()+j) + dy
			_, _ = fmt.Fprintf(&sb, "\\node (node) at (%s) {%s %s};\n", pairf(x, y), size, format(grid.At(i, cols-1-j)))
		}
	}
	return sb.String()
}

// formatValue prints integers (inputs, kernel weights, sums and maxima) without decimals, and other
// values (averages) with at most two decimals.
func formatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
