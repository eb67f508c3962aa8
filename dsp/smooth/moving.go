package smooth

import "github.com/cwbudde/algo-curves/dsp/conv"

type movingAverage struct {
	half   int
	kernel []float64
}

func newMovingAverage(window int) *movingAverage {
	kernel := make([]float64, window)
	for i := range kernel {
		kernel[i] = 1 / float64(window)
	}
	return &movingAverage{half: window / 2, kernel: kernel}
}

func (m *movingAverage) smooth(curve []float64) ([]float64, error) {
	n := len(curve)
	padded := make([]float64, n+2*m.half)
	for i := 0; i < m.half; i++ {
		padded[i] = curve[0]
		padded[m.half+n+i] = curve[n-1]
	}
	copy(padded[m.half:], curve)

	return conv.ConvolveMode(padded, m.kernel, conv.ModeValid)
}
