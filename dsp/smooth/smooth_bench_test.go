package smooth

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-curves/internal/testutil"
)

func BenchmarkSavgolApply(b *testing.B) {
	curve := testutil.DeterministicNoise(1, 1, 4096)
	for _, window := range []int{11, 63, 255, 1023} {
		f, err := New(SavitzkyGolay, WithWindow(window))
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("window=%d", window), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := f.Apply(curve); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
