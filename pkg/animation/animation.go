// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package animation generates the figures of every step of one animation: it validates the configuration,
// generates the data once, assembles the values of each step, executes the template into markup and
// hands the markup over to a Compiler.
package animation

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/gomlx/convarithmetic/pkg/arithmetic"
	"github.com/gomlx/convarithmetic/pkg/figure"
	"github.com/gomlx/convarithmetic/pkg/window"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// ErrInvalidConfig is returned by New for configurations that cannot be animated.
var ErrInvalidConfig = errors.New("invalid animation configuration")

// Kind of animation: it selects the figure assembly and the template.
type Kind int

const (
	// Arithmetic animations show the geometry only: input units, kernel footprint and output cell.
	Arithmetic Kind = iota

	// Numerical animations show the values of the input, the kernel and the output of the reduction.
	Numerical
)

var kindNames = []string{"arithmetic", "numerical"}

// String returns the name of the kind, also used as the name of its template.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// ParseKind parses the name of a Kind.
func ParseKind(name string) (Kind, error) {
	for k, kindName := range kindNames {
		if strings.EqualFold(name, kindName) {
			return Kind(k), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "unknown animation kind %q, valid values are %q", name, kindNames)
}

// Config of one animation.
type Config struct {
	// Name is the prefix of the job names of the steps.
	Name string

	Kind   Kind
	Params arithmetic.Params

	// Transposed is only valid for Arithmetic animations.
	Transposed bool

	// Mode and Seed are only used by Numerical animations.
	Mode window.Mode
	Seed uint64

	Palette figure.Palette
}

// Animation holds the geometry and, for numerical animations, the data shared read-only by all its steps.
type Animation struct {
	config   Config
	geometry arithmetic.Geometry
	data     *window.Data
	tmpl     *template.Template
}

// New validates the configuration and prepares the animation.
//
// Configuration errors (including window.ErrInvalidMode and window.ErrUnsupportedDilation) are reported before
// any data is generated. Numerical animations draw their data once, from window.NewSource(config.Seed).
func New(config Config, tmpl *template.Template) (*Animation, error) {
	if err := validate(config); err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "animation %q has no template", config.Name)
	}
	a := &Animation{config: config, tmpl: tmpl}
	var err error
	a.geometry, err = arithmetic.NewGeometry(config.Params, config.Transposed)
	if err != nil {
		return nil, errors.WithMessagef(err, "animation %q", config.Name)
	}
	if config.Kind == Numerical {
		a.data, err = window.Evaluate(config.Params, config.Mode, window.NewSource(config.Seed))
		if err != nil {
			return nil, errors.WithMessagef(err, "animation %q", config.Name)
		}
	}
	klog.V(1).Infof("animation %q (%s): %s, %d steps", config.Name, config.Kind, config.Params, a.NumSteps())
	return a, nil
}

func validate(config Config) error {
	if config.Name == "" || strings.ContainsAny(config.Name, `/\`) || config.Name != filepath.Clean(config.Name) {
		return errors.Wrapf(ErrInvalidConfig, "invalid animation name %q", config.Name)
	}
	switch config.Kind {
	case Arithmetic:
		return nil
	case Numerical:
		if config.Transposed {
			return errors.Wrapf(ErrInvalidConfig, "animation %q: numerical animations cannot be transposed", config.Name)
		}
		return window.Validate(config.Params, config.Mode)
	default:
		return errors.Wrapf(ErrInvalidConfig, "animation %q: invalid kind %d", config.Name, config.Kind)
	}
}

// Config returns the configuration of the animation.
func (a *Animation) Config() Config {
	return a.config
}

// Geometry of the animation, after the transposition if configured.
func (a *Animation) Geometry() arithmetic.Geometry {
	return a.geometry
}

// Data returns the data of a numerical animation, or nil for arithmetic animations.
func (a *Animation) Data() *window.Data {
	return a.data
}

// NumSteps returns the number of steps (frames) of the animation.
func (a *Animation) NumSteps() int {
	return a.geometry.NumSteps()
}

// Steps returns all the steps of the animation, in increasing order.
func (a *Animation) Steps() []int {
	steps := make([]int, a.NumSteps())
	for i := range steps {
		steps[i] = i
	}
	return steps
}

// JobName returns the name of the compilation job of the step, e.g. "padding_strides_03".
func (a *Animation) JobName(step int) string {
	return fmt.Sprintf("%s_%02d", a.config.Name, step)
}

// Values returns the figure values of the step.
func (a *Animation) Values(step int) (figure.Values, error) {
	if a.config.Kind == Numerical {
		return figure.Numerical(a.data, a.geometry, step, a.config.Palette)
	}
	return figure.Arithmetic(a.geometry, step, a.config.Palette)
}

// Markup returns the markup document of the step: the template executed with the values of the step.
func (a *Animation) Markup(step int) ([]byte, error) {
	values, err := a.Values(step)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, values); err != nil {
		return nil, errors.Wrapf(err, "failed to execute template %q for %s", a.tmpl.Name(), a.JobName(step))
	}
	return buf.Bytes(), nil
}

// Markups returns the markup of each of the steps (in the same order), evaluated concurrently.
//
// The first error cancels the remaining evaluations and is returned.
func (a *Animation) Markups(ctx context.Context, steps []int) ([][]byte, error) {
	markups := make([][]byte, len(steps))
	g, ctx := errgroup.WithContext(ctx)
	for i, step := range steps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			markup, err := a.Markup(step)
			if err != nil {
				return err
			}
			markups[i] = markup
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return markups, nil
}
