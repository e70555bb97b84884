// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package window

import (
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
)

// Mode of the windowed reduction.
type Mode int

const (
	// Convolution sums the elementwise product of the window with the kernel.
	Convolution Mode = iota

	// Average takes the arithmetic mean of the window (average pooling).
	Average

	// Max takes the maximum of the window (max pooling).
	Max
)

var modeNames = []string{"convolution", "average", "max"}

// Modes returns the valid modes.
func Modes() []Mode {
	return []Mode{Convolution, Average, Max}
}

// IsValid returns whether m is one of the defined modes.
func (m Mode) IsValid() bool {
	return m >= Convolution && m <= Max
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if !m.IsValid() {
		return "invalid"
	}
	return modeNames[m]
}

// ParseMode converts "convolution", "average" or "max" (case-insensitive) to a Mode.
// Anything else returns an error wrapping ErrInvalidMode.
func ParseMode(name string) (Mode, error) {
	for ii, modeName := range modeNames {
		if strings.EqualFold(name, modeName) {
			return Mode(ii), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidMode, "mode %q, choices are %q", name, modeNames)
}

// Source of random integers used to generate the data. *rand.Rand implements it.
type Source interface {
	// IntN returns a uniformly sampled integer in [0, n).
	IntN(n int) int
}

// DefaultSeed used to generate the figures' data.
const DefaultSeed uint64 = 1234

// NewSource returns a deterministic Source seeded with seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
