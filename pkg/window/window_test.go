// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package window

import (
	"testing"

	"github.com/gomlx/convarithmetic/pkg/arithmetic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// countingSource wraps a Source and counts the number of values drawn.
type countingSource struct {
	src   Source
	count int
}

func (c *countingSource) IntN(n int) int {
	c.count++
	return c.src.IntN(n)
}

func mustParams(t *testing.T, b *arithmetic.ParamsBuilder) arithmetic.Params {
	t.Helper()
	p, err := b.Done()
	require.NoError(t, err)
	return p
}

func TestParseMode(t *testing.T) {
	for _, mode := range Modes() {
		parsed, err := ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
	mode, err := ParseMode("MAX")
	require.NoError(t, err)
	assert.Equal(t, Max, mode)

	_, err = ParseMode("sum")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMode)
	assert.Equal(t, "invalid", Mode(7).String())
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := mustParams(t, arithmetic.Build(arithmetic.Splat(5), arithmetic.Splat(3)).Padding(arithmetic.Splat(1)))
	input1, kernel1 := Generate(p, NewSource(DefaultSeed))
	input2, kernel2 := Generate(p, NewSource(DefaultSeed))
	assert.True(t, mat.Equal(input1, input2))
	assert.True(t, mat.Equal(kernel1, kernel2))

	rows, cols := input1.Dims()
	assert.Equal(t, 7, rows)
	assert.Equal(t, 7, cols)
	for i := range rows {
		for j := range cols {
			v := input1.At(i, j)
			if i == 0 || j == 0 || i == rows-1 || j == cols-1 {
				assert.Zerof(t, v, "padding at (%d, %d) must be zero", i, j)
				continue
			}
			assert.Truef(t, v >= 0 && v < InputValues && v == float64(int(v)), "input value %g at (%d, %d)", v, i, j)
		}
	}
	rows, cols = kernel1.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
	for i := range rows {
		for j := range cols {
			v := kernel1.At(i, j)
			assert.Truef(t, v >= 0 && v < KernelValues, "kernel value %g at (%d, %d)", v, i, j)
		}
	}

	// A different seed generates different data (with overwhelming probability for 25+9 values).
	input3, kernel3 := Generate(p, NewSource(DefaultSeed+1))
	assert.False(t, mat.Equal(input1, input3) && mat.Equal(kernel1, kernel3))
}

func TestReduce(t *testing.T) {
	p := mustParams(t, arithmetic.Build(arithmetic.Splat(4), arithmetic.Splat(2)).Stride(arithmetic.Splat(2)))
	require.Equal(t, arithmetic.Splat(2), p.OutputSize)
	input := mat.NewDense(4, 4, []float64{
		1, 2, 0, 3,
		3, 2, 1, 1,
		0, 0, 3, 2,
		1, 3, 2, 2,
	})
	kernel := mat.NewDense(2, 2, []float64{
		1, 0,
		2, 1,
	})

	type testCase struct {
		mode Mode
		want []float64
	}
	for _, tc := range []testCase{
		{mode: Average, want: []float64{8.0 / 4, 5.0 / 4, 4.0 / 4, 9.0 / 4}},
		{mode: Max, want: []float64{3, 3, 3, 3}},
		{mode: Convolution, want: []float64{1 + 6 + 2, 0 + 2 + 1, 0 + 0 + 2 + 3, 3 + 4 + 2}},
	} {
		t.Run(tc.mode.String(), func(t *testing.T) {
			output, err := Reduce(p, tc.mode, input, kernel)
			require.NoError(t, err)
			assert.Equal(t, tc.want, output.RawMatrix().Data)
		})
	}

	// Mismatched shapes.
	_, err := Reduce(p, Average, mat.NewDense(3, 4, nil), kernel)
	require.Error(t, err)
	_, err = Reduce(p, Convolution, input, mat.NewDense(3, 3, nil))
	require.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	p := mustParams(t, arithmetic.Build(arithmetic.Splat(5), arithmetic.Splat(3)).Padding(arithmetic.Splat(1)).Stride(arithmetic.Splat(2)))
	data, err := Evaluate(p, Convolution, NewSource(DefaultSeed))
	require.NoError(t, err)
	again, err := Evaluate(p, Convolution, NewSource(DefaultSeed))
	require.NoError(t, err)
	assert.True(t, mat.Equal(data.Output, again.Output))

	// Each output is the reduction of its window.
	for ox := range p.OutputSize.X() {
		for oy := range p.OutputSize.Y() {
			var product mat.Dense
			product.MulElem(data.Window(arithmetic.V(ox, oy)), data.Kernel)
			assert.Equal(t, mat.Sum(&product), data.Output.At(ox, oy))
		}
	}

	// Same data, different reduction.
	maxData, err := Evaluate(p, Max, NewSource(DefaultSeed))
	require.NoError(t, err)
	assert.True(t, mat.Equal(data.Input, maxData.Input))
	for ox := range p.OutputSize.X() {
		for oy := range p.OutputSize.Y() {
			assert.Equal(t, mat.Max(maxData.Window(arithmetic.V(ox, oy))), maxData.Output.At(ox, oy))
		}
	}
}

func TestEvaluateValidatesBeforeSampling(t *testing.T) {
	p := mustParams(t, arithmetic.Build(arithmetic.Splat(5), arithmetic.Splat(3)))
	src := &countingSource{src: NewSource(DefaultSeed)}
	_, err := Evaluate(p, Mode(3), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMode)
	assert.Zero(t, src.count)

	dilated := mustParams(t, arithmetic.Build(arithmetic.Splat(7), arithmetic.Splat(3)).Dilation(arithmetic.Splat(2)))
	_, err = Evaluate(dilated, Average, src)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedDilation)
	assert.Zero(t, src.count)

	_, err = Evaluate(p, Average, src)
	require.NoError(t, err)
	assert.Equal(t, 25+9, src.count)
}
