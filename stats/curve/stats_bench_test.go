package curve

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-curves/internal/testutil"
)

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{256, 1024, 4096, 65536} {
		curve := testutil.DeterministicNoise(1, 1, n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))
			for range b.N {
				Calculate(curve)
			}
		})
	}
}
