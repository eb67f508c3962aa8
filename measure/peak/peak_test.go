package peak

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-curves/internal/testutil"
)

func TestFirstSingleGaussian(t *testing.T) {
	curve := testutil.Gaussian(1000, 300, 40, 1)

	p, err := First(curve)
	if err != nil {
		t.Fatal(err)
	}
	if p.Index != 300 {
		t.Fatalf("Index = %d, want 300", p.Index)
	}
	if p.Value != 1 {
		t.Fatalf("Value = %v, want 1", p.Value)
	}
	if p.LeftBase != 0 || p.RightBase != 999 {
		t.Fatalf("bases = (%d, %d), want (0, 999)", p.LeftBase, p.RightBase)
	}
}

func TestDistanceKeepsTallestPeak(t *testing.T) {
	curve := testutil.Add(
		testutil.Gaussian(1000, 300, 30, 0.8),
		testutil.Gaussian(1000, 700, 30, 1),
	)

	p, err := First(curve)
	if err != nil {
		t.Fatal(err)
	}
	if p.Index != 700 {
		t.Fatalf("default distance: Index = %d, want 700", p.Index)
	}

	p, err = First(curve, WithDistance(100))
	if err != nil {
		t.Fatal(err)
	}
	if p.Index != 300 {
		t.Fatalf("distance 100: Index = %d, want 300", p.Index)
	}

	all, err := Find(curve, WithDistance(100))
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[1].Index != 700 {
		t.Fatalf("Find = %+v, want peaks at 300 and 700", all)
	}
}

func TestProminenceThreshold(t *testing.T) {
	curve := testutil.Add(
		testutil.Gaussian(1000, 200, 5, 0.02),
		testutil.Gaussian(1000, 800, 20, 1),
	)
	opts := []Option{WithDistance(10), WithHeight(0.01)}

	p, err := First(curve, opts...)
	if err != nil {
		t.Fatal(err)
	}
	if p.Index != 800 {
		t.Fatalf("Index = %d, want 800 (small bump is not prominent)", p.Index)
	}

	p, err = First(curve, append(opts, WithProminence(0.01))...)
	if err != nil {
		t.Fatal(err)
	}
	if p.Index != 200 {
		t.Fatalf("Index = %d, want 200", p.Index)
	}
}

func TestAdaptiveHeight(t *testing.T) {
	curve := []float64{0, 0.4, 0, 1, 0}
	opts := []Option{WithDistance(1), WithProminence(0)}

	p, err := First(curve, opts...)
	if err != nil {
		t.Fatal(err)
	}
	if p.Index != 3 {
		t.Fatalf("adaptive height: Index = %d, want 3", p.Index)
	}

	p, err = First(curve, append(opts, WithHeight(0.3))...)
	if err != nil {
		t.Fatal(err)
	}
	if p.Index != 1 {
		t.Fatalf("explicit height: Index = %d, want 1", p.Index)
	}
}

func TestHeightIsInclusive(t *testing.T) {
	p, err := First([]float64{0, 2, 0}, WithDistance(1), WithProminence(0), WithHeight(2))
	if err != nil {
		t.Fatal(err)
	}
	if p.Index != 1 {
		t.Fatalf("Index = %d, want 1", p.Index)
	}
}

func TestLocalMaxima(t *testing.T) {
	tests := []struct {
		name  string
		curve []float64
		want  []int
	}{
		{name: "single", curve: []float64{0, 1, 0}, want: []int{1}},
		{name: "odd plateau", curve: []float64{0, 1, 3, 3, 3, 1, 0}, want: []int{3}},
		{name: "even plateau rounds down", curve: []float64{0, 2, 2, 0}, want: []int{1}},
		{name: "plateau into rise", curve: []float64{0, 2, 2, 3, 0}, want: []int{3}},
		{name: "endpoints ignored", curve: []float64{5, 1, 0, 1, 5}, want: nil},
		{name: "plateau at end", curve: []float64{0, 1, 1}, want: nil},
		{name: "two", curve: []float64{0, 3, 1, 4, 0}, want: []int{1, 3}},
		{name: "flat", curve: testutil.DC(1, 16), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocalMaxima(tt.curve)
			if len(got) != len(tt.want) {
				t.Fatalf("LocalMaxima = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("LocalMaxima = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestProminence(t *testing.T) {
	curve := []float64{0, 3, 1, 4, 0}

	prom, left, right := Prominence(curve, 1)
	if prom != 2 || left != 0 || right != 2 {
		t.Fatalf("Prominence(1) = %v, %d, %d; want 2, 0, 2", prom, left, right)
	}

	prom, left, right = Prominence(curve, 3)
	if prom != 4 || left != 0 || right != 4 {
		t.Fatalf("Prominence(3) = %v, %d, %d; want 4, 0, 4", prom, left, right)
	}
}

func TestNoPeak(t *testing.T) {
	tests := []struct {
		name  string
		curve []float64
	}{
		{name: "flat", curve: testutil.DC(0.5, 1000)},
		{name: "monotonic", curve: []float64{1, 2, 3, 4, 5}},
		{name: "edge maximum", curve: []float64{5, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := First(tt.curve); !errors.Is(err, ErrNoPeak) {
				t.Fatalf("err = %v, want ErrNoPeak", err)
			}
		})
	}

	if _, err := First(nil); !errors.Is(err, ErrEmptyCurve) {
		t.Fatalf("err = %v, want ErrEmptyCurve", err)
	}
}

func TestInvalidOptions(t *testing.T) {
	curve := []float64{0, 1, 0}
	if _, err := Find(curve, WithDistance(0)); !errors.Is(err, ErrDistance) {
		t.Fatalf("err = %v, want ErrDistance", err)
	}
	if _, err := Find(curve, WithProminence(-1)); !errors.Is(err, ErrProminence) {
		t.Fatalf("err = %v, want ErrProminence", err)
	}
}

func TestFindDoesNotModifyInput(t *testing.T) {
	curve := testutil.Add(testutil.Gaussian(600, 200, 20, 1), testutil.DeterministicNoise(3, 0.01, 600))
	orig := append([]float64(nil), curve...)

	if _, err := Find(curve, WithDistance(50)); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, curve, orig, 0)
}
