// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package templates holds the TikZ templates of the figures, and loads them.
//
// Placeholders are text/template actions delimited by "<<" and ">>" (TikZ already uses braces), for
// instance "<<.PADDING_TO>>". Templates are executed with missingkey=error, so every placeholder
// must be given a value.
package templates

import (
	"embed"
	"os"
	"text/template"

	"github.com/gomlx/convarithmetic/pkg/support/fsutil"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

//go:embed *_figure.txt
var embedded embed.FS

const (
	// LeftDelim and RightDelim delimit the placeholders in the templates.
	LeftDelim, RightDelim = "<<", ">>"

	// Arithmetic is the name of the template of geometry-only figures.
	Arithmetic = "arithmetic"

	// Numerical is the name of the template of figures showing the data.
	Numerical = "numerical"
)

// FileName returns the file name of the template with the given name, e.g. "arithmetic_figure.txt".
func FileName(name string) string {
	return name + "_figure.txt"
}

// Load the template with the given name (Arithmetic or Numerical).
//
// If dir is not empty, the template is read from dir ("~" is expanded). Otherwise, the embedded copy is used.
func Load(name, dir string) (*template.Template, error) {
	fileName := FileName(name)
	var (
		contents []byte
		err      error
	)
	if dir == "" {
		contents, err = embedded.ReadFile(fileName)
		if err != nil {
			return nil, errors.Wrapf(err, "unknown template %q", name)
		}
	} else {
		var filePath string
		filePath, err = fsutil.FindFile(dir, fileName)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to find template %q", name)
		}
		contents, err = os.ReadFile(filePath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read template %q", filePath)
		}
		klog.V(1).Infof("using template %q", filePath)
	}
	return Parse(name, string(contents))
}

// Parse a template text with the figure delimiters and options.
func Parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Delims(LeftDelim, RightDelim).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse template %q", name)
	}
	return tmpl, nil
}
