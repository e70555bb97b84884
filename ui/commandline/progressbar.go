// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"fmt"
	"io"
	"os"

	"github.com/gomlx/convarithmetic/pkg/animation"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
)

// ProgressbarStyle to use. Defaults to the ASCII version.
// Consider "progressbar.ThemeUnicode" for a prettier version.
// But it requires some of the graphical symbols to be supported.
var ProgressbarStyle = progressbar.ThemeASCII

// ProgressBar displays the progression of the compilation of the steps of an animation.
//
// ProgressBar.Done is meant to be used as the onDone callback of animation.Animation.Compile, which
// serializes the calls.
type ProgressBar struct {
	bar       *progressbar.ProgressBar
	termenv   *termenv.Output
	title     string
	numFailed int
}

// NewProgressBar creates a progress bar over numSteps steps, written to w (os.Stderr if nil).
// If visible is false, nothing is displayed.
func NewProgressBar(w io.Writer, title string, numSteps int, visible bool) *ProgressBar {
	if w == nil {
		w = os.Stderr
	}
	pBar := &ProgressBar{title: title}
	if visible {
		pBar.termenv = termenv.NewOutput(w)
		pBar.termenv.HideCursor()
	}
	pBar.bar = progressbar.NewOptions(numSteps,
		progressbar.OptionSetDescription(pBar.description()),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("steps"),
		progressbar.OptionSetTheme(ProgressbarStyle),
	)
	return pBar
}

func (pBar *ProgressBar) description() string {
	if pBar.numFailed == 0 {
		return fmt.Sprintf("[bold]%s[reset]", pBar.title)
	}
	return fmt.Sprintf("[bold]%s[reset] [red]%d failed[reset]", pBar.title, pBar.numFailed)
}

// Done advances the bar by one step, and updates the count of failures.
func (pBar *ProgressBar) Done(result animation.Result) {
	if result.Err != nil {
		pBar.numFailed++
		pBar.bar.Describe(pBar.description())
	}
	_ = pBar.bar.Add(1)
}

// NumFailed returns the number of failed steps reported so far.
func (pBar *ProgressBar) NumFailed() int {
	return pBar.numFailed
}

// Finish the progress bar, and restores the cursor.
func (pBar *ProgressBar) Finish() {
	_ = pBar.bar.Finish()
	if pBar.termenv != nil {
		pBar.termenv.ShowCursor()
		_, _ = fmt.Fprintln(pBar.termenv)
	}
}
