// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package presets holds the catalog of the standard animations: each preset names the shape parameters
// of one animation, and whether it is an arithmetic (optionally transposed) or a numerical one.
package presets

import (
	_ "embed"
	"sync"

	"github.com/gomlx/convarithmetic/pkg/animation"
	"github.com/gomlx/convarithmetic/pkg/arithmetic"
	"github.com/gomlx/convarithmetic/pkg/figure"
	"github.com/gomlx/convarithmetic/pkg/window"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var catalogYAML []byte

// ErrUnknownPreset is returned by Get for names not in the catalog.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset describes one animation.
//
// Zero values of Stride and Dilation mean 1. A zero OutputSize is derived from the other parameters,
// otherwise it must match the derived one.
type Preset struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Transposed bool   `yaml:"transposed"`
	Mode       string `yaml:"mode"`

	InputSize  arithmetic.Vec2 `yaml:"input_size"`
	OutputSize arithmetic.Vec2 `yaml:"output_size"`
	Padding    arithmetic.Vec2 `yaml:"padding"`
	KernelSize arithmetic.Vec2 `yaml:"kernel_size"`
	Stride     arithmetic.Vec2 `yaml:"stride"`
	Dilation   arithmetic.Vec2 `yaml:"dilation"`
}

// Params builds and validates the shape parameters of the preset.
func (p Preset) Params() (arithmetic.Params, error) {
	b := arithmetic.Build(p.InputSize, p.KernelSize).Padding(p.Padding)
	if p.Stride != (arithmetic.Vec2{}) {
		b.Stride(p.Stride)
	}
	if p.Dilation != (arithmetic.Vec2{}) {
		b.Dilation(p.Dilation)
	}
	if p.OutputSize != (arithmetic.Vec2{}) {
		b.OutputSize(p.OutputSize)
	}
	params, err := b.Done()
	if err != nil {
		return params, errors.WithMessagef(err, "preset %q", p.Name)
	}
	return params, nil
}

// Config returns the configuration of the animation of the preset, with the default palette and seed.
func (p Preset) Config() (animation.Config, error) {
	config := animation.Config{
		Name:       p.Name,
		Transposed: p.Transposed,
		Seed:       window.DefaultSeed,
		Palette:    figure.DefaultPalette,
	}
	var err error
	config.Kind, err = animation.ParseKind(p.Kind)
	if err != nil {
		return config, errors.WithMessagef(err, "preset %q", p.Name)
	}
	if config.Kind == animation.Numerical {
		config.Mode, err = window.ParseMode(p.Mode)
		if err != nil {
			return config, errors.WithMessagef(err, "preset %q", p.Name)
		}
	}
	config.Params, err = p.Params()
	return config, err
}

// Parse a YAML list of presets.
func Parse(data []byte) ([]Preset, error) {
	var presets []Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, errors.Wrap(err, "failed to parse presets")
	}
	seen := make(map[string]bool, len(presets))
	for _, p := range presets {
		if seen[p.Name] {
			return nil, errors.Errorf("preset %q defined more than once", p.Name)
		}
		seen[p.Name] = true
	}
	return presets, nil
}

var catalog = sync.OnceValues(func() ([]Preset, error) {
	return Parse(catalogYAML)
})

// All returns the presets of the catalog, in the order they are defined.
func All() []Preset {
	presets, err := catalog()
	if err != nil {
		// The catalog is embedded: this is a build problem.
		panic(err)
	}
	return presets
}

// Get returns the preset with the given name.
func Get(name string) (Preset, error) {
	for _, p := range All() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, errors.Wrapf(ErrUnknownPreset, "%q", name)
}
