// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package arithmetic

import "github.com/pkg/errors"

// NumSteps returns the number of animation steps for the given output size: one per output cell.
func NumSteps(outputSize Vec2) int {
	return outputSize.Product()
}

// StepLocation returns the output coordinate (x, y) highlighted at the given step.
//
// Output cells are enumerated top-down, left to right: the vertical axis is iterated in
// decreasing order (from outputSize.Y()-1 down to 0) in the outer loop, and the horizontal axis
// in increasing order in the inner loop. So step 0 is the top-left cell (0, outputSize.Y()-1).
//
// It returns an error wrapping ErrStepOutOfRange if step is not in [0, NumSteps(outputSize)).
func StepLocation(outputSize Vec2, step int) (Vec2, error) {
	numSteps := NumSteps(outputSize)
	if step < 0 || step >= numSteps {
		return Vec2{}, errors.Wrapf(ErrStepOutOfRange, "step %d out of bounds (there are %d steps for an output of size %s)",
			step, numSteps, outputSize)
	}
	row, col := step/outputSize.X(), step%outputSize.X()
	return Vec2{col, outputSize.Y() - 1 - row}, nil
}
