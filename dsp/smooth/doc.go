// Package smooth provides curve smoothing filters for measurement traces.
//
// The set of smoothing strategies is closed and selected with a [Method]:
//
//   - SavitzkyGolay: local least-squares polynomial fit over a centered,
//     odd-length window. The first and last window/2 samples are taken from
//     the polynomial fitted to the first and last full window.
//   - MovingAverage: centered mean over an odd-length window with the edge
//     values repeated beyond both ends of the curve.
//
// A [Filter] is built once from a method and options and can then be applied
// to any number of curves. Filters are immutable and safe for concurrent use.
//
// # Usage
//
//	f, err := smooth.New(smooth.SavitzkyGolay, smooth.WithWindow(101), smooth.WithPolyOrder(3))
//	if err != nil {
//		return err
//	}
//	for _, w := range f.Warnings() {
//		log.Println(w)
//	}
//	out, err := f.Apply(curve)
//
// An even window length is not an error: it is raised to the next odd value
// and reported through [Filter.Warnings].
package smooth
