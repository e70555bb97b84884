// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package arithmetic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Vec2 is a pair of integers, one per spatial axis: axis 0 is horizontal and axis 1 is vertical.
//
// All shape quantities (sizes, paddings, strides, dilations and coordinates) are Vec2.
type Vec2 [2]int

// V creates a Vec2 from its horizontal and vertical components.
func V(x, y int) Vec2 {
	return Vec2{x, y}
}

// Splat broadcasts the scalar n to both axes.
//
// It's the expansion of the "single integer" convenience form accepted by the command line and presets.
func Splat(n int) Vec2 {
	return Vec2{n, n}
}

// X returns the horizontal component.
func (v Vec2) X() int { return v[0] }

// Y returns the vertical component.
func (v Vec2) Y() int { return v[1] }

// Add returns v+o elementwise.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v[0] + o[0], v[1] + o[1]}
}

// AddScalar returns v+n on both axes.
func (v Vec2) AddScalar(n int) Vec2 {
	return Vec2{v[0] + n, v[1] + n}
}

// Sub returns v-o elementwise.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v[0] - o[0], v[1] - o[1]}
}

// Mul returns v*o elementwise.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v[0] * o[0], v[1] * o[1]}
}

// Scale returns v*n on both axes.
func (v Vec2) Scale(n int) Vec2 {
	return Vec2{v[0] * n, v[1] * n}
}

// Div returns v/o elementwise, using floor division.
func (v Vec2) Div(o Vec2) Vec2 {
	return Vec2{floorDiv(v[0], o[0]), floorDiv(v[1], o[1])}
}

// Mod returns the elementwise non-negative remainder of v/o (the counterpart of Div).
func (v Vec2) Mod(o Vec2) Vec2 {
	return Vec2{v[0] - floorDiv(v[0], o[0])*o[0], v[1] - floorDiv(v[1], o[1])*o[1]}
}

// Product returns the product of both components.
func (v Vec2) Product() int {
	return v[0] * v[1]
}

// Max returns the largest component.
func (v Vec2) Max() int {
	return max(v[0], v[1])
}

// Min returns the smallest component.
func (v Vec2) Min() int {
	return min(v[0], v[1])
}

// String implements fmt.Stringer and pflag.Value, formatting the pair as "x,y".
func (v Vec2) String() string {
	return fmt.Sprintf("%d,%d", v[0], v[1])
}

// Set implements pflag.Value. It accepts either "n" (broadcast to both axes) or "x,y".
func (v *Vec2) Set(value string) error {
	parsed, err := ParseVec2(value)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Type implements pflag.Value.
func (v *Vec2) Type() string {
	return "int[,int]"
}

// UnmarshalText implements encoding.TextUnmarshaler, with the same syntax as Set.
func (v *Vec2) UnmarshalText(text []byte) error {
	return v.Set(string(text))
}

// ParseVec2 parses "n" (broadcast to both axes) or "x,y".
func ParseVec2(value string) (Vec2, error) {
	parts := strings.Split(value, ",")
	if len(parts) > 2 {
		return Vec2{}, errors.Errorf("invalid value %q: expected an integer or a pair \"x,y\"", value)
	}
	var v Vec2
	for ii, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Vec2{}, errors.Wrapf(err, "invalid value %q: expected an integer or a pair \"x,y\"", value)
		}
		v[ii] = n
	}
	if len(parts) == 1 {
		v[1] = v[0]
	}
	return v, nil
}

// floorDiv rounds towards negative infinity, so a negative numerator is never silently rounded up to 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
