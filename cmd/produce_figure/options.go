// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gomlx/convarithmetic/internal/latex"
	"github.com/gomlx/convarithmetic/internal/workerspool"
	"github.com/gomlx/convarithmetic/pkg/animation"
	"github.com/gomlx/convarithmetic/pkg/figure"
	"github.com/gomlx/convarithmetic/pkg/support/fsutil"
	"github.com/gomlx/convarithmetic/templates"
	"github.com/gomlx/convarithmetic/ui/commandline"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// options shared by the commands that produce figures.
type options struct {
	outputDir    string
	templatesDir string
	latexBinary  string
	parallelism  int
	markupOnly   bool
	quiet        bool
	palette      figure.Palette
}

func (opts *options) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "pdf", "Directory where the figures are written.")
	flags.StringVar(&opts.templatesDir, "templates-dir", "",
		"Directory with arithmetic_figure.txt and numerical_figure.txt overriding the embedded templates.")
	flags.StringVar(&opts.latexBinary, "latex", latex.DefaultBinary, "Typesetting program used to compile the figures.")
	flags.IntVar(&opts.parallelism, "parallelism", 0,
		"Maximum number of figures compiled concurrently. 0 uses the number of CPUs, -1 is unlimited.")
	flags.BoolVar(&opts.markupOnly, "markup-only", false,
		"Write the markup (.tex) of the figures instead of compiling them.")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Don't display tables and progress bars.")

	opts.palette = figure.DefaultPalette
	flags.Var(&opts.palette.Input, "input-color", "Color of the input, \"#rrggbb\" or \"r,g,b\".")
	flags.Var(&opts.palette.Output, "output-color", "Color of the output.")
	flags.Var(&opts.palette.Kernel, "kernel-color", "Color of the kernel.")
	flags.Var(&opts.palette.Padding, "padding-color", "Color of the padding.")
}

// parseSteps returns the step given in args, or all the steps of the animation if args is empty.
func parseSteps(a *animation.Animation, args []string) ([]int, error) {
	if len(args) == 0 {
		return a.Steps(), nil
	}
	step, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, errors.Wrapf(err, "invalid step %q", args[0])
	}
	if _, err := a.Geometry().Step(step); err != nil {
		return nil, err
	}
	return []int{step}, nil
}

// produce creates the animation and writes the figures of the requested steps.
func (opts *options) produce(ctx context.Context, config animation.Config, args []string) error {
	config.Palette = opts.palette
	tmpl, err := templates.Load(config.Kind.String(), opts.templatesDir)
	if err != nil {
		return err
	}
	a, err := animation.New(config, tmpl)
	if err != nil {
		return err
	}
	steps, err := parseSteps(a, args)
	if err != nil {
		return err
	}
	outputDir, err := fsutil.EnsureDir(opts.outputDir)
	if err != nil {
		return err
	}
	if !opts.quiet {
		fmt.Println(commandline.TitleStyle.Render(config.Name))
		fmt.Println(commandline.AnimationTable(a))
	}
	if opts.markupOnly {
		return writeMarkups(ctx, a, steps, outputDir)
	}

	compiler := latex.New(outputDir)
	compiler.Binary = opts.latexBinary
	pool := workerspool.New(opts.parallelism)
	pBar := commandline.NewProgressBar(os.Stderr, config.Name, len(steps), !opts.quiet)
	start := time.Now()
	results := a.Compile(ctx, compiler, pool, steps, pBar.Done)
	pBar.Finish()
	if !opts.quiet {
		fmt.Println(commandline.ResultsTable(results, compiler.LogPath, time.Since(start)))
	}
	if failed := animation.Failed(results); len(failed) > 0 {
		return errors.Errorf("%d of %d figures of %q failed to compile", len(failed), len(results), config.Name)
	}
	return nil
}

func writeMarkups(ctx context.Context, a *animation.Animation, steps []int, outputDir string) error {
	markups, err := a.Markups(ctx, steps)
	if err != nil {
		return err
	}
	for i, step := range steps {
		filePath := filepath.Join(outputDir, a.JobName(step)+".tex")
		if err := os.WriteFile(filePath, markups[i], 0o644); err != nil {
			return errors.Wrapf(err, "failed to write markup of step %d", step)
		}
		klog.V(1).Infof("wrote %q", filePath)
	}
	return nil
}
