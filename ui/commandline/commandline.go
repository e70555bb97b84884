// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package commandline contains the command-line UI tools: a progress bar over the compiled steps, and
// tables summarizing animations, results and presets.
package commandline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/convarithmetic/pkg/animation"
	"github.com/gomlx/convarithmetic/pkg/presets"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94")).
			PaddingLeft(1).PaddingRight(1)

	// TitleStyle is used for the titles printed above tables.
	TitleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 0, 4)
)

func newPlainTable(withHeader bool) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row == lgtable.HeaderRow {
				s = headerRowStyle
				return
			}
			switch {
			case row%2 == 0:
				s = evenRowStyle
			default:
				s = oddRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

// AnimationTable describes the animation: its configuration and derived geometry.
func AnimationTable(a *animation.Animation) string {
	config := a.Config()
	g := a.Geometry()
	table := newPlainTable(false)
	table.Row("name", config.Name)
	table.Row("kind", config.Kind.String())
	if config.Kind == animation.Numerical {
		table.Row("mode", config.Mode.String())
		table.Row("seed", fmt.Sprintf("%d", config.Seed))
	} else {
		table.Row("transposed", fmt.Sprintf("%v", config.Transposed))
	}
	table.Row("input size", config.Params.InputSize.String())
	table.Row("output size", config.Params.OutputSize.String())
	table.Row("padding", config.Params.Padding.String())
	table.Row("kernel size", config.Params.KernelSize.String())
	table.Row("stride", config.Params.Stride.String())
	table.Row("dilation", config.Params.Dilation.String())
	table.Row("canvas", g.TotalInputSize.String())
	table.Row("# steps", humanize.Comma(int64(a.NumSteps())))
	return table.String()
}

// ResultsTable summarizes the compilation of the steps. Failed steps are listed with the log to inspect.
func ResultsTable(results []animation.Result, logPath func(job string) string, elapsed time.Duration) string {
	failed := animation.Failed(results)
	table := newPlainTable(false)
	table.Row("# steps", humanize.Comma(int64(len(results))))
	table.Row("# compiled", humanize.Comma(int64(len(results)-len(failed))))
	table.Row("# failed", humanize.Comma(int64(len(failed))))
	table.Row("elapsed", FormatDuration(elapsed))
	if len(failed) == 0 {
		return table.String()
	}

	failedTable := newPlainTable(true).
		Headers("step", "job", "log").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerRowStyle
			}
			return failedStyle
		})
	for _, result := range failed {
		failedTable.Row(fmt.Sprintf("%d", result.Step), result.Job, filepath.Clean(logPath(result.Job)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, table.String(), failedTable.String())
}

// PresetsTable lists the presets with their parameters.
func PresetsTable(list []presets.Preset) string {
	table := newPlainTable(true).
		Headers("name", "kind", "input", "output", "padding", "kernel", "stride", "dilation")
	for _, p := range list {
		kind := p.Kind
		switch {
		case p.Transposed:
			kind += " (transposed)"
		case p.Mode != "":
			kind += " (" + p.Mode + ")"
		}
		params, err := p.Params()
		if err != nil {
			table.Row(p.Name, kind, "invalid: "+err.Error())
			continue
		}
		table.Row(p.Name, kind, params.InputSize.String(), params.OutputSize.String(), params.Padding.String(),
			params.KernelSize.String(), params.Stride.String(), params.Dilation.String())
	}
	return table.String()
}
