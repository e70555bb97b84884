// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package presets

import (
	"strings"
	"testing"

	"github.com/gomlx/convarithmetic/pkg/animation"
	"github.com/gomlx/convarithmetic/pkg/arithmetic"
	"github.com/gomlx/convarithmetic/pkg/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	all := All()
	require.Len(t, all, 19)
	var numTransposed, numNumerical int
	for _, p := range all {
		t.Run(p.Name, func(t *testing.T) {
			config, err := p.Config()
			require.NoError(t, err)
			assert.Equal(t, p.Name, config.Name)
			assert.Equal(t, window.DefaultSeed, config.Seed)
			geometry, err := arithmetic.NewGeometry(config.Params, config.Transposed)
			require.NoError(t, err)
			assert.Positive(t, geometry.NumSteps())
			if config.Transposed {
				assert.True(t, strings.HasSuffix(p.Name, "_transposed"))
				// Steps of transposed animations visit the cells of the original input.
				assert.Equal(t, config.Params.InputSize.Product(), geometry.NumSteps())
			}
		})
		if p.Transposed {
			numTransposed++
		}
		if p.Kind == "numerical" {
			numNumerical++
		}
	}
	assert.Equal(t, 7, numTransposed)
	assert.Equal(t, 4, numNumerical)
}

func TestGet(t *testing.T) {
	p, err := Get("padding_strides_odd")
	require.NoError(t, err)
	config, err := p.Config()
	require.NoError(t, err)
	assert.Equal(t, animation.Arithmetic, config.Kind)
	assert.Equal(t, arithmetic.Params{
		InputSize:  arithmetic.Splat(6),
		OutputSize: arithmetic.Splat(3),
		Padding:    arithmetic.Splat(1),
		KernelSize: arithmetic.Splat(3),
		Stride:     arithmetic.Splat(2),
		Dilation:   arithmetic.Splat(1),
	}, config.Params)

	p, err = Get("numerical_max_pooling")
	require.NoError(t, err)
	config, err = p.Config()
	require.NoError(t, err)
	assert.Equal(t, animation.Numerical, config.Kind)
	assert.Equal(t, window.Max, config.Mode)

	p, err = Get("dilation")
	require.NoError(t, err)
	assert.Equal(t, arithmetic.Splat(2), p.Dilation)

	_, err = Get("padding_strides_even")
	require.ErrorIs(t, err, ErrUnknownPreset)
}

func TestParse(t *testing.T) {
	presets, err := Parse([]byte(`
- name: wide
  kind: numerical
  mode: average
  input_size: "6,4"
  kernel_size: "3,2"
`))
	require.NoError(t, err)
	require.Len(t, presets, 1)
	config, err := presets[0].Config()
	require.NoError(t, err)
	assert.Equal(t, arithmetic.V(4, 3), config.Params.OutputSize)
	assert.Equal(t, window.Average, config.Mode)

	// Inconsistent output size.
	presets, err = Parse([]byte(`
- name: wrong
  kind: arithmetic
  input_size: 5
  output_size: 4
  kernel_size: 3
`))
	require.NoError(t, err)
	_, err = presets[0].Config()
	require.ErrorIs(t, err, arithmetic.ErrInvalidParameters)

	// Unknown mode.
	presets, err = Parse([]byte("- {name: sum, kind: numerical, mode: sum, input_size: 5, kernel_size: 3}"))
	require.NoError(t, err)
	_, err = presets[0].Config()
	require.ErrorIs(t, err, window.ErrInvalidMode)

	// Duplicates and malformed sizes.
	_, err = Parse([]byte("- {name: a}\n- {name: a}\n"))
	require.Error(t, err)
	_, err = Parse([]byte("- {name: a, input_size: \"1,2,3\"}"))
	require.Error(t, err)
}
