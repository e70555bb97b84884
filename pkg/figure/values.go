// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package figure assembles the values substituted into a figure template for one animation step.
//
// It does no rendering: the result is a flat map of named placeholders to strings, formatted as:
//
//   - Integer pairs (coordinates and sizes): "x,y".
//   - Colors: "r,g,b", with components in [0, 255].
//   - Lengths: "<n>cm".
//   - Repeated per-cell content (labels, unit markers): concatenated TikZ commands, one per line.
//
// Arithmetic builds the values of geometry-only figures (optionally of transposed convolutions), and
// Numerical the values of figures that also show the data of the reduction.
package figure

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/gomlx/convarithmetic/pkg/arithmetic"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Values maps placeholder names to their formatted values.
type Values map[string]string

// Keys returns the placeholder names, sorted.
func (v Values) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}

// Color is an RGB triple.
type Color [3]uint8

// String implements fmt.Stringer, formatting the color as "r,g,b".
func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d", c[0], c[1], c[2])
}

// ParseColor parses a color given either in hex ("#268bd2" or "#2bd") or as an "r,g,b" triple.
func ParseColor(value string) (Color, error) {
	if strings.HasPrefix(value, "#") {
		c, err := colorful.Hex(value)
		if err != nil {
			return Color{}, errors.Wrapf(err, "invalid color %q", value)
		}
		r, g, b := c.RGB255()
		return Color{r, g, b}, nil
	}
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return Color{}, errors.Errorf("invalid color %q: expected \"#rrggbb\" or \"r,g,b\"", value)
	}
	var c Color
	for ii, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return Color{}, errors.Wrapf(err, "invalid color %q: components must be in [0, 255]", value)
		}
		c[ii] = uint8(n)
	}
	return c, nil
}

// Set implements pflag.Value, see ParseColor.
func (c *Color) Set(value string) error {
	parsed, err := ParseColor(value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Type implements pflag.Value.
func (c *Color) Type() string {
	return "color"
}

// Palette holds the colors of a figure.
type Palette struct {
	Input, Output, Kernel, Padding Color
}

// DefaultPalette used by the figures.
var DefaultPalette = Palette{
	Input:   Color{38, 139, 210},
	Output:  Color{42, 161, 152},
	Kernel:  Color{7, 54, 66},
	Padding: Color{238, 232, 213},
}

// set adds the colors to values. If swap is set, the input and output colors are exchanged: that's
// used for transposed convolutions, where the input drawn is the output of the original convolution.
func (p Palette) set(values Values, swap bool) {
	input, output := p.Input, p.Output
	if swap {
		input, output = output, input
	}
	values["INPUT_COLOR"] = input.String()
	values["OUTPUT_COLOR"] = output.String()
	values["KERNEL_COLOR"] = p.Kernel.String()
	values["PADDING_COLOR"] = p.Padding.String()
}

func length[N int | float64](n N) string {
	return fmt.Sprintf("%gcm", float64(n))
}

func pairf(x, y float64) string {
	return fmt.Sprintf("%g,%g", x, y)
}

// setHighlights adds the highlighted input window and output cell.
func setHighlights(values Values, windowFrom, windowTo, outputCoord arithmetic.Vec2) {
	values["INPUT_GRID_FROM"] = windowFrom.String()
	values["INPUT_GRID_TO"] = windowTo.String()
	values["INPUT_GRID_FROM_X"] = fmt.Sprint(windowFrom.X())
	values["INPUT_GRID_FROM_Y"] = fmt.Sprint(windowFrom.Y())
	values["INPUT_GRID_TO_X"] = fmt.Sprint(windowTo.X())
	values["INPUT_GRID_TO_Y"] = fmt.Sprint(windowTo.Y())

	values["OUTPUT_GRID_FROM"] = outputCoord.String()
	values["OUTPUT_GRID_TO"] = outputCoord.AddScalar(1).String()
	values["OUTPUT_BOTTOM_LEFT"] = outputCoord.String()
	values["OUTPUT_BOTTOM_RIGHT"] = outputCoord.Add(arithmetic.V(1, 0)).String()
	values["OUTPUT_TOP_LEFT"] = outputCoord.Add(arithmetic.V(0, 1)).String()
	values["OUTPUT_TOP_RIGHT"] = outputCoord.AddScalar(1).String()
}
