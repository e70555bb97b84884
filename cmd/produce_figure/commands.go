// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/gomlx/convarithmetic/pkg/animation"
	"github.com/gomlx/convarithmetic/pkg/arithmetic"
	"github.com/gomlx/convarithmetic/pkg/presets"
	"github.com/gomlx/convarithmetic/pkg/window"
	"github.com/gomlx/convarithmetic/ui/commandline"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Shapes are given as "n" or "x,y".
var _ pflag.Value = (*arithmetic.Vec2)(nil)

// shapeFlags are the shape parameters given in the command line.
type shapeFlags struct {
	name string

	inputSize, outputSize, padding, kernelSize, stride, dilation arithmetic.Vec2
}

func (s *shapeFlags) register(cmd *cobra.Command, defaultName string) {
	s.stride, s.dilation = arithmetic.Splat(1), arithmetic.Splat(1)
	flags := cmd.Flags()
	flags.StringVar(&s.name, "name", defaultName, "Name of the animation, prefix of the figure files.")
	flags.Var(&s.inputSize, "input-size", "Size of the input, either \"n\" or \"x,y\".")
	flags.Var(&s.kernelSize, "kernel-size", "Size of the kernel, either \"n\" or \"x,y\".")
	flags.Var(&s.outputSize, "output-size", "Expected size of the output, checked against the derived one if given.")
	flags.Var(&s.padding, "padding", "Zero padding on both sides of each axis.")
	flags.Var(&s.stride, "stride", "Stride of the window.")
	flags.Var(&s.dilation, "dilation", "Dilation of the kernel.")
	must.M(cmd.MarkFlagRequired("input-size"))
	must.M(cmd.MarkFlagRequired("kernel-size"))
}

func (s *shapeFlags) params(cmd *cobra.Command) (arithmetic.Params, error) {
	b := arithmetic.Build(s.inputSize, s.kernelSize).
		Padding(s.padding).
		Stride(s.stride).
		Dilation(s.dilation)
	if cmd.Flags().Changed("output-size") {
		b.OutputSize(s.outputSize)
	}
	return b.Done()
}

func newArithmeticCmd(opts *options) *cobra.Command {
	var (
		shape      shapeFlags
		transposed bool
	)
	cmd := &cobra.Command{
		Use:   "arithmetic [step]",
		Short: "Produce the figures showing the geometry of a convolution, or of a transposed convolution",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := shape.params(cmd)
			if err != nil {
				return err
			}
			config := animation.Config{
				Name:       shape.name,
				Kind:       animation.Arithmetic,
				Params:     params,
				Transposed: transposed,
			}
			return opts.produce(cmd.Context(), config, args)
		},
	}
	shape.register(cmd, "arithmetic")
	cmd.Flags().BoolVar(&transposed, "transposed", false, "Show the transposed convolution instead.")
	return cmd
}

func newNumericalCmd(opts *options) *cobra.Command {
	var (
		shape    shapeFlags
		modeName string
		seed     uint64
	)
	cmd := &cobra.Command{
		Use:   "numerical [step]",
		Short: "Produce the figures showing the values of a convolution, an average pooling or a max pooling",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Mode is validated before anything else is computed.
			mode, err := window.ParseMode(modeName)
			if err != nil {
				return err
			}
			params, err := shape.params(cmd)
			if err != nil {
				return err
			}
			config := animation.Config{
				Name:   shape.name,
				Kind:   animation.Numerical,
				Params: params,
				Mode:   mode,
				Seed:   seed,
			}
			return opts.produce(cmd.Context(), config, args)
		},
	}
	shape.register(cmd, "numerical")
	cmd.Flags().StringVar(&modeName, "mode", window.Convolution.String(),
		fmt.Sprintf("Reduction over each window, one of %v.", window.Modes()))
	cmd.Flags().Uint64Var(&seed, "seed", window.DefaultSeed, "Seed of the generated input and kernel.")
	return cmd
}

func newPresetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "preset NAME [step]",
		Short: "Produce the figures of one of the standard animations (see \"presets\")",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := presets.Get(args[0])
			if err != nil {
				return errors.WithMessage(err, "see \"produce_figure presets\" for the list")
			}
			config, err := p.Config()
			if err != nil {
				return err
			}
			return opts.produce(cmd.Context(), config, args[1:])
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the standard animations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(commandline.PresetsTable(presets.All()))
		},
	}
}
