// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package latex compiles markup documents into pages by running an external typesetting
// binary (pdflatex by default).
package latex

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultBinary is the typesetting program used by New.
const DefaultBinary = "pdflatex"

// ErrCompilation is wrapped by every *CompilationError.
var ErrCompilation = errors.New("latex compilation failed")

// FailureMarkers are the strings in the output of the binary that indicate the compilation failed,
// even if it exited successfully.
var FailureMarkers = []string{"Emergency stop", "! LaTeX Error", "Fatal error occurred"}

// CompilationError reports a failed compilation of one job. The artifacts of the job, in particular
// its log, are preserved.
type CompilationError struct {
	Job     string
	LogPath string

	// Output is what the binary wrote to stdout and stderr.
	Output string
}

// Error implements error.
func (e *CompilationError) Error() string {
	return "latex compilation of " + e.Job + " failed, see " + e.LogPath
}

// Unwrap returns ErrCompilation.
func (e *CompilationError) Unwrap() error {
	return ErrCompilation
}

// Compiler runs the typesetting binary for each job, writing the artifacts to OutputDir.
//
// It is safe for concurrent use, as long as the job names are different.
type Compiler struct {
	// Binary is the name or path of the typesetting program.
	Binary string

	// OutputDir where the pages (and the logs of failed jobs) are written.
	OutputDir string
}

// New returns a Compiler that uses DefaultBinary and writes to outputDir.
func New(outputDir string) *Compiler {
	return &Compiler{Binary: DefaultBinary, OutputDir: outputDir}
}

// PagePath returns the path of the page produced for the job.
func (c *Compiler) PagePath(job string) string {
	return filepath.Join(c.OutputDir, job+".pdf")
}

// LogPath returns the path of the log of the job.
func (c *Compiler) LogPath(job string) string {
	return filepath.Join(c.OutputDir, job+".log")
}

// Compile the markup into the page OutputDir/job.pdf.
//
// On success, the log and auxiliary files are removed. If the output of the binary contains one of the
// FailureMarkers, it returns a *CompilationError and leaves every artifact in place.
func (c *Compiler) Compile(ctx context.Context, job string, markup []byte) error {
	binPath, err := exec.LookPath(c.Binary)
	if err != nil {
		return errors.Wrapf(err, "cannot find %q required to compile %q", c.Binary, job)
	}
	cmd := exec.CommandContext(ctx, binPath,
		"-interaction=nonstopmode", "-halt-on-error",
		"-jobname", job, "-output-directory", c.OutputDir)
	var outputBuf bytes.Buffer
	cmd.Stdin = bytes.NewReader(markup)
	cmd.Stdout, cmd.Stderr = &outputBuf, &outputBuf
	runErr := cmd.Run()
	output := outputBuf.String()
	for _, marker := range FailureMarkers {
		if strings.Contains(output, marker) {
			klog.Warningf("compilation of %q failed (%q), artifacts preserved in %q", job, marker, c.OutputDir)
			return &CompilationError{Job: job, LogPath: c.LogPath(job), Output: output}
		}
	}
	if runErr != nil {
		err = errors.Wrapf(runErr, "failed executing %q for %q", cmd, job)
		return errors.WithMessagef(err, "output captured:\n%s\n", output)
	}

	for _, ext := range []string{".log", ".aux"} {
		artifact := filepath.Join(c.OutputDir, job+ext)
		if err := os.Remove(artifact); err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Wrapf(err, "failed to remove %q", artifact)
		}
	}
	klog.V(1).Infof("compiled %q", c.PagePath(job))
	return nil
}
