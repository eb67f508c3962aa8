// Package conv provides the linear convolution kernels used by the curve
// smoothers.
//
// Two strategies are available:
//
//   - Direct convolution: O(N*M) time-domain convolution, best for short kernels
//   - Overlap-add (OLA): FFT-based block convolution for long kernels
//
// [Convolve] picks between them from the kernel length; smoothing windows of
// a few hundred samples (common for dense loading curves) take the FFT path.
//
// # Usage
//
//	full, err := conv.Convolve(curve, kernel)
//	valid, err := conv.ConvolveMode(curve, kernel, conv.ModeValid)
//
// For repeated convolution with the same kernel, create a reusable convolver:
//
//	oa, err := conv.NewOverlapAdd(kernel, 0)
//	out, err := oa.Process(curve)
package conv
