// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package arithmetic

import "github.com/pkg/errors"

// EffectiveKernelSize returns the footprint of a kernel after dilation: (kernelSize-1)*dilation + 1.
func EffectiveKernelSize(kernelSize, dilation Vec2) Vec2 {
	return kernelSize.AddScalar(-1).Mul(dilation).AddScalar(1)
}

// OutputSize returns the output size of a convolution (or pooling) over a 2-D input, per axis:
//
//	output = (input + 2*padding - kernel - (kernel-1)*(dilation-1)) / stride + 1
//
// It returns an error wrapping ErrInvalidParameters if the parameters are out of their domain, or if the
// effective (dilated) kernel doesn't fit in the padded input.
func OutputSize(inputSize, padding, kernelSize, stride, dilation Vec2) (Vec2, error) {
	// Convenient error returns.
	errorf := func(format string, args ...any) (Vec2, error) {
		return Vec2{}, errors.Wrapf(ErrInvalidParameters, "OutputSize: "+format, args...)
	}

	var output Vec2
	for axis := range 2 {
		inputDim, kernelDim := inputSize[axis], kernelSize[axis]
		if inputDim < 1 {
			return errorf("inputSize[%d]=%d must be >= 1", axis, inputDim)
		}
		if kernelDim < 1 {
			return errorf("kernelSize[%d]=%d must be >= 1", axis, kernelDim)
		}
		if padding[axis] < 0 {
			return errorf("padding[%d]=%d must be non-negative", axis, padding[axis])
		}
		if stride[axis] < 1 {
			return errorf("stride[%d]=%d must be >= 1", axis, stride[axis])
		}
		if dilation[axis] < 1 {
			return errorf("dilation[%d]=%d must be >= 1", axis, dilation[axis])
		}

		effectiveKernelDim := (kernelDim-1)*dilation[axis] + 1
		paddedInputDim := inputDim + 2*padding[axis]
		if effectiveKernelDim > paddedInputDim {
			return errorf("effective kernel dimension %d for axis %d is larger than padded input dimension %d "+
				"(input_dim: %d, padding: %d, kernel_dim: %d, dilation: %d)",
				effectiveKernelDim, axis, paddedInputDim, inputDim, padding[axis], kernelDim, dilation[axis])
		}
		output[axis] = (paddedInputDim-effectiveKernelDim)/stride[axis] + 1
	}
	return output, nil
}
