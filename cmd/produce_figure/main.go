// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// produce_figure generates the figures of convolution arithmetic animations: one page per step.
//
// Usage:
//
//	produce_figure arithmetic --input-size=5 --kernel-size=3 --padding=1 --stride=2 [step]
//	produce_figure numerical --input-size=5 --kernel-size=3 --mode=max [step]
//	produce_figure preset padding_strides_transposed [step]
//	produce_figure presets
//
// Without a step, every step of the animation is produced.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/gomlx/exceptions"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCmd := newRootCmd()
	var err error
	exception := exceptions.Try(func() {
		err = rootCmd.ExecuteContext(ctx)
	})
	if exception != nil {
		klog.Fatalf("Failed with panic: %v", exception)
	}
	klog.Flush()
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "produce_figure",
		Short: "Produce the figures of convolution arithmetic animations",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
		},
	}
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)
	opts.register(rootCmd)

	rootCmd.AddCommand(
		newArithmeticCmd(opts),
		newNumericalCmd(opts),
		newPresetCmd(opts),
		newPresetsCmd(),
	)
	return rootCmd
}
