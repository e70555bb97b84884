// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package figure

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gomlx/convarithmetic/pkg/arithmetic"
)

// Arithmetic returns the values of a geometry-only figure at step: input units (not values) on the
// padded input, the kernel footprint and its taps, and the output cell they map to.
//
// The output grid is drawn above the input grid (OUTPUT_ELEVATION), centered horizontally (OUTPUT_XSHIFT).
//
// It returns an error wrapping arithmetic.ErrStepOutOfRange if step is not in [0, g.NumSteps()).
func Arithmetic(g arithmetic.Geometry, step int, palette Palette) (Values, error) {
	outputCoord, err := g.Step(step)
	if err != nil {
		return nil, err
	}
	windowFrom, windowTo := g.Window(outputCoord)
	inputFrom, inputTo := g.InputExtent()

	var units strings.Builder
	for i := range g.InputSize.X() {
		for j := range g.InputSize.Y() {
			from := g.InputUnit(i, j)
			_, _ = fmt.Fprintf(&units, "\\draw[fill=inputcolor] (%s) rectangle (%s);\n", from, from.AddScalar(1))
		}
	}
	var taps strings.Builder
	for _, tap := range g.Taps(outputCoord) {
		_, _ = fmt.Fprintf(&taps, "\\draw[fill=kernelcolor, opacity=0.4] (%s) rectangle (%s);\n", tap, tap.AddScalar(1))
	}

	xShift := float64(g.TotalInputSize.X()-g.OutputSize.X()) / 2
	elevation := g.TotalInputSize.Y() + 1
	values := Values{
		"STEP":             strconv.Itoa(step),
		"PADDING_TO":       g.TotalInputSize.String(),
		"INPUT_FROM":       inputFrom.String(),
		"INPUT_TO":         inputTo.String(),
		"INPUT_UNITS":      units.String(),
		"KERNEL_TAPS":      taps.String(),
		"DILATION":         g.Dilation.String(),
		"OUTPUT_TO":        g.OutputSize.String(),
		"OUTPUT_ELEVATION": length(elevation),
		"OUTPUT_XSHIFT":    length(xShift),
		"OUTPUT_SHIFT":     pairf(xShift, float64(elevation)),
	}
	setHighlights(values, windowFrom, windowTo, outputCoord)
	palette.set(values, g.Transposed)
	return values, nil
}
