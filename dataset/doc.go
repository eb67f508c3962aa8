// Package dataset manages a paired feature/target dataset of measurement
// curves.
//
// A [Dataset] owns feature rows x, target curves y and the derived peak
// values ymax. It smooths curves ([Dataset.SmoothY]), extracts the first
// qualifying peak of every curve ([Dataset.FindMaximum]), runs both as one
// atomic step ([Dataset.PrepData]) and grows incrementally as new
// measurements arrive ([Dataset.ExtendData], [Dataset.ExtendYmax]).
//
// Targets come in two shapes. A single curve ([NewCurve]) pairs one feature
// row with every point of the curve. A batch ([NewCurves]) pairs one feature
// row with every curve; all curves must have the same length.
//
// Rows appended with [PeakValues] carry a pre-extracted maximum but no
// curve. They are tracked so that later peak extraction leaves their values
// untouched, and the dataset keeps
//
//	len(x) == y.Len() + len(PeakOnlyRows())
//
// Every mutating operation either succeeds completely or leaves the
// Dataset unchanged. Validation failures match [ErrValidation]; curves
// without a qualifying peak are reported as [NoPeakFoundError].
//
// # Usage
//
//	y, err := dataset.NewCurves(curves)
//	ds, err := dataset.New(features, y, dataset.WithLogger(logger))
//	err = ds.PrepData(dataset.Prep{
//		Method: smooth.SavitzkyGolay,
//		Smooth: []smooth.Option{smooth.WithWindow(51)},
//	})
//	ymax, _ := ds.Ymax()
//
// A Dataset is not safe for concurrent mutation. Per-curve work inside one
// call fans out over a bounded worker pool.
package dataset
