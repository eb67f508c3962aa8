package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-curves/dsp/signal"
)

func ExampleGenerator_LoadingCurve() {
	g := signal.NewGenerator()
	x, err := g.LoadingCurve(2, 1, 5)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.3f %.3f %.3f %.3f %.3f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0.000 0.680 1.000 0.828 0.541
}

func ExampleNormalize() {
	x, err := signal.Normalize([]float64{-0.5, 0.25, 1}, 0.8)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f %.2f %.2f\n", x[0], x[1], x[2])

	// Output:
	// -0.40 0.20 0.80
}
