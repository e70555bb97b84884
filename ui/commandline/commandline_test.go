// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"bytes"
	"testing"
	"time"

	"github.com/gomlx/convarithmetic/pkg/animation"
	"github.com/gomlx/convarithmetic/pkg/presets"
	"github.com/gomlx/convarithmetic/templates"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.23s", FormatDuration(1234567890*time.Nanosecond))
	assert.Equal(t, "2m3s", FormatDuration(123456*time.Millisecond))
	assert.Equal(t, "12.35ms", FormatDuration(12345678*time.Nanosecond))
	assert.Equal(t, "500ns", FormatDuration(500*time.Nanosecond))
}

func TestAnimationTable(t *testing.T) {
	p, err := presets.Get("numerical_average_pooling")
	require.NoError(t, err)
	config, err := p.Config()
	require.NoError(t, err)
	tmpl, err := templates.Load(config.Kind.String(), "")
	require.NoError(t, err)
	a, err := animation.New(config, tmpl)
	require.NoError(t, err)

	table := AnimationTable(a)
	for _, want := range []string{"numerical_average_pooling", "average", "5,5", "3,3", "# steps"} {
		assert.Contains(t, table, want)
	}
}

func TestResultsTable(t *testing.T) {
	logPath := func(job string) string { return "/tmp/pdf/" + job + ".log" }
	results := []animation.Result{
		{Step: 0, Job: "dilation_00"},
		{Step: 1, Job: "dilation_01", Err: errors.New("boom")},
		{Step: 2, Job: "dilation_02"},
	}
	table := ResultsTable(results, logPath, 3*time.Second)
	assert.Contains(t, table, "# failed")
	assert.Contains(t, table, "/tmp/pdf/dilation_01.log")
	assert.NotContains(t, table, "dilation_00.log")

	table = ResultsTable(results[:1], logPath, time.Second)
	assert.NotContains(t, table, ".log")
}

func TestPresetsTable(t *testing.T) {
	table := PresetsTable(presets.All())
	assert.Contains(t, table, "padding_strides_odd_transposed")
	assert.Contains(t, table, "arithmetic (transposed)")
	assert.Contains(t, table, "numerical (max)")
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	pBar := NewProgressBar(&buf, "dilation", 3, false)
	pBar.Done(animation.Result{Step: 0})
	pBar.Done(animation.Result{Step: 1, Err: errors.New("boom")})
	pBar.Done(animation.Result{Step: 2})
	pBar.Finish()
	assert.Equal(t, 1, pBar.NumFailed())
}
