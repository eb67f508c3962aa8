// Package peak locates peaks in a sampled curve.
//
// Detection runs in four stages, each of which can only remove candidates:
//
//   - local maxima: samples strictly higher than their left neighbour and
//     not lower than a run of equal samples ending in a strictly lower one.
//     A flat plateau reports its middle index. Endpoints never qualify.
//   - height: candidates below the minimum height are dropped.
//   - distance: candidates are visited tallest first and any candidate
//     closer than the minimum distance to a kept one is dropped.
//   - prominence: candidates whose prominence is below the minimum are
//     dropped.
//
// The defaults (distance 500, prominence 0.025, height half the curve's own
// maximum) suit densely sampled measurement curves with a single dominant
// feature.
//
// # Usage
//
//	p, err := peak.First(curve, peak.WithDistance(100))
//	if errors.Is(err, peak.ErrNoPeak) {
//		// no qualifying peak
//	}
//	fmt.Println(p.Index, p.Value)
package peak
