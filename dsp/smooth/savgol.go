package smooth

import (
	"fmt"

	"github.com/cwbudde/algo-curves/dsp/conv"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// savgol holds the least-squares projection of one window onto polynomials
// of degree <= order. Row i of proj maps the window samples to the fitted
// value at window position i, so row half is the interior kernel and the
// outer rows evaluate the edge fits.
type savgol struct {
	window int
	half   int
	proj   [][]float64
	kernel []float64 // proj[half] reversed, for convolution
}

func newSavgol(window, order int) (*savgol, error) {
	half := window / 2

	// Abscissae are scaled to [-1, 1]; the fitted values do not depend on
	// the scale and the normal equations stay well conditioned.
	scale := float64(max(half, 1))
	v := mat.NewDense(window, order+1, nil)
	for i := 0; i < window; i++ {
		t := float64(i-half) / scale
		p := 1.0
		for k := 0; k <= order; k++ {
			v.Set(i, k, p)
			p *= t
		}
	}

	ones := make([]float64, window)
	for i := range ones {
		ones[i] = 1
	}

	var pinv mat.Dense
	if err := pinv.Solve(v, mat.NewDiagDense(window, ones)); err != nil {
		return nil, fmt.Errorf("smooth: savitzky-golay fit (window %d, order %d): %w", window, order, err)
	}

	var h mat.Dense
	h.Mul(v, &pinv)

	proj := make([][]float64, window)
	for i := range proj {
		proj[i] = mat.Row(nil, i, &h)
	}

	kernel := make([]float64, window)
	for i, c := range proj[half] {
		kernel[window-1-i] = c
	}

	return &savgol{window: window, half: half, proj: proj, kernel: kernel}, nil
}

// Coefficients returns the interior Savitzky-Golay kernel for the given
// window and order (the weights applied to a centered window).
func Coefficients(window, order int) ([]float64, error) {
	f, err := New(SavitzkyGolay, WithWindow(window), WithPolyOrder(order))
	if err != nil {
		return nil, err
	}
	sg := f.impl.(*savgol)
	return append([]float64(nil), sg.proj[sg.half]...), nil
}

func (s *savgol) smooth(curve []float64) ([]float64, error) {
	n := len(curve)
	if n < s.window {
		return nil, fmt.Errorf("%w: %d samples, window %d", ErrCurveTooShort, n, s.window)
	}

	out := make([]float64, n)

	interior, err := conv.ConvolveMode(curve, s.kernel, conv.ModeValid)
	if err != nil {
		return nil, err
	}
	copy(out[s.half:n-s.half], interior)

	head := curve[:s.window]
	tail := curve[n-s.window:]
	for i := 0; i < s.half; i++ {
		out[i] = vecmath.DotProduct(s.proj[i], head)
	}
	for j := s.window - s.half; j < s.window; j++ {
		out[n-s.window+j] = vecmath.DotProduct(s.proj[j], tail)
	}

	return out, nil
}
