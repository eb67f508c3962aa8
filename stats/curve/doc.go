// Package curve computes descriptive statistics for measurement curves.
//
// [Calculate] walks one curve once and reports its extremes, energy and
// moments. [Summarize] describes a distribution of scalar values, such as
// the extracted peak value of every curve in a dataset.
package curve
