// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package arithmetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParams(t *testing.T, b *ParamsBuilder) Params {
	t.Helper()
	p, err := b.Done()
	require.NoError(t, err)
	return p
}

func TestGeometryForward(t *testing.T) {
	// padding_strides_odd: the padded input (8) minus the kernel (3) is not a multiple of the stride (2).
	p := mustParams(t, Build(Splat(6), Splat(3)).Padding(Splat(1)).Stride(Splat(2)))
	g, err := NewGeometry(p, false)
	require.NoError(t, err)
	assert.False(t, g.Transposed)
	assert.Equal(t, Splat(6), g.InputSize)
	assert.Equal(t, Splat(3), g.OutputSize)
	assert.Equal(t, Splat(1), g.Padding)
	assert.Equal(t, Splat(2), g.Stride)
	assert.Equal(t, Splat(1), g.Spacing)
	assert.Equal(t, Splat(0), g.BottomPad)
	assert.Equal(t, Splat(8), g.TotalInputSize)
	assert.Equal(t, 1, g.YAdjustment)
	assert.Equal(t, 9, g.NumSteps())

	// First step: top-left output cell, window aligned with the top of the padded input.
	coord, err := g.Step(0)
	require.NoError(t, err)
	assert.Equal(t, V(0, 2), coord)
	from, to := g.Window(coord)
	assert.Equal(t, V(0, 5), from)
	assert.Equal(t, V(3, 8), to)

	// Last step: bottom-right, the bottom row of the padded input is never visited.
	coord, err = g.Step(8)
	require.NoError(t, err)
	from, to = g.Window(coord)
	assert.Equal(t, V(4, 1), from)
	assert.Equal(t, V(7, 4), to)

	from, to = g.InputExtent()
	assert.Equal(t, V(1, 1), from)
	assert.Equal(t, V(7, 7), to)

	// Exact multiples need no adjustment.
	p = mustParams(t, Build(Splat(5), Splat(3)).Stride(Splat(2)))
	g, err = NewGeometry(p, false)
	require.NoError(t, err)
	assert.Equal(t, 0, g.YAdjustment)
	assert.Equal(t, Splat(5), g.TotalInputSize)
}

func TestGeometryForwardNonSquare(t *testing.T) {
	type testCase struct {
		name        string
		params      Params
		yAdjustment int
	}
	for _, tc := range []testCase{
		// Horizontal remainder (6-3)%2=1 larger than the vertical one (5-3)%2=0.
		{"horizontal remainder", mustParams(t, Build(V(6, 5), Splat(3)).Stride(Splat(2))), 0},
		// Vertical remainder (6-3)%2=1 larger than the horizontal one (5-3)%2=0.
		{"vertical remainder", mustParams(t, Build(V(5, 6), Splat(3)).Stride(Splat(2))), 1},
		{"non-square kernel and stride", mustParams(t, Build(V(7, 8), V(3, 2)).Stride(V(2, 3))), 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewGeometry(tc.params, false)
			require.NoError(t, err)
			assert.Equal(t, tc.yAdjustment, g.YAdjustment)

			// Every window must lie within the padded input.
			for step := range g.NumSteps() {
				coord, err := g.Step(step)
				require.NoError(t, err)
				from, to := g.Window(coord)
				assert.GreaterOrEqual(t, from.Min(), 0, "step %d: window %s..%s", step, from, to)
				assert.LessOrEqual(t, to.X(), g.TotalInputSize.X(), "step %d: window %s..%s", step, from, to)
				assert.LessOrEqual(t, to.Y(), g.TotalInputSize.Y(), "step %d: window %s..%s", step, from, to)
			}
		})
	}
}

func TestGeometryDilation(t *testing.T) {
	p := mustParams(t, Build(Splat(7), Splat(3)).Dilation(Splat(2)))
	assert.Equal(t, Splat(3), p.OutputSize)
	g, err := NewGeometry(p, false)
	require.NoError(t, err)
	assert.Equal(t, Splat(5), g.KernelSize)
	assert.Equal(t, Splat(3), g.KernelTaps)

	from, to := g.Window(V(1, 0))
	assert.Equal(t, V(1, 0), from)
	assert.Equal(t, V(6, 5), to)
	taps := g.Taps(V(1, 0))
	require.Len(t, taps, 9)
	assert.Equal(t, []Vec2{{1, 0}, {1, 2}, {1, 4}, {3, 0}, {3, 2}, {3, 4}, {5, 0}, {5, 2}, {5, 4}}, taps)
}

func TestGeometryTransposed(t *testing.T) {
	type testCase struct {
		name   string
		params *ParamsBuilder

		inputSize, outputSize, padding, spacing, bottomPad, totalInputSize Vec2
		kernelSize                                                         Vec2
	}
	testCases := []testCase{
		{
			name:           "no padding, strides",
			params:         Build(Splat(5), Splat(3)).Stride(Splat(2)),
			inputSize:      Splat(2),
			outputSize:     Splat(5),
			padding:        Splat(2),
			spacing:        Splat(2),
			bottomPad:      Splat(0),
			totalInputSize: Splat(7),
			kernelSize:     Splat(3),
		},
		{
			name:           "padding, strides, odd",
			params:         Build(Splat(6), Splat(3)).Padding(Splat(1)).Stride(Splat(2)),
			inputSize:      Splat(3),
			outputSize:     Splat(6),
			padding:        Splat(1),
			spacing:        Splat(2),
			bottomPad:      Splat(1),
			totalInputSize: Splat(8),
			kernelSize:     Splat(3),
		},
		{
			name:           "full padding",
			params:         Build(Splat(5), Splat(3)).Padding(Splat(2)),
			inputSize:      Splat(7),
			outputSize:     Splat(5),
			padding:        Splat(0),
			spacing:        Splat(1),
			bottomPad:      Splat(0),
			totalInputSize: Splat(7),
			kernelSize:     Splat(3),
		},
		{
			name:           "dilation",
			params:         Build(Splat(7), Splat(3)).Dilation(Splat(2)),
			inputSize:      Splat(3),
			outputSize:     Splat(7),
			padding:        Splat(4),
			spacing:        Splat(1),
			bottomPad:      Splat(0),
			totalInputSize: Splat(11),
			kernelSize:     Splat(5),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParams(t, tc.params)
			g, err := NewGeometry(p, true)
			require.NoError(t, err)
			assert.True(t, g.Transposed)
			assert.Equal(t, p.OutputSize, g.InputSize, "roles of input and output must be swapped")
			assert.Equal(t, p.InputSize, g.OutputSize, "roles of input and output must be swapped")
			assert.Equal(t, tc.inputSize, g.InputSize)
			assert.Equal(t, tc.outputSize, g.OutputSize)
			assert.Equal(t, tc.padding, g.Padding)
			assert.Equal(t, tc.spacing, g.Spacing)
			assert.Equal(t, Splat(1), g.Stride)
			assert.Equal(t, tc.bottomPad, g.BottomPad)
			assert.Equal(t, tc.totalInputSize, g.TotalInputSize)
			assert.Equal(t, tc.kernelSize, g.KernelSize)
			assert.Equal(t, 0, g.YAdjustment)
			assert.Equal(t, p.InputSize.Product(), g.NumSteps())

			// Input units plus padding (and bottom padding) fill the total input exactly.
			from, to := g.InputExtent()
			assert.Equal(t, g.Padding.Add(V(0, g.BottomPad.Y())), from)
			assert.Equal(t, g.TotalInputSize, to.Add(g.Padding).Add(V(g.BottomPad.X(), 0)))

			// The window at the last step ends at the right edge of the total input.
			last, err := g.Step(g.NumSteps() - 1)
			require.NoError(t, err)
			_, windowTo := g.Window(last)
			assert.Equal(t, g.TotalInputSize.X(), windowTo.X())
		})
	}
}

func TestGeometryTransposedInvalidPadding(t *testing.T) {
	p := mustParams(t, Build(Splat(5), Splat(3)).Padding(Splat(3)))
	_, err := NewGeometry(p, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	// The forward geometry is fine.
	_, err = NewGeometry(p, false)
	require.NoError(t, err)
}
