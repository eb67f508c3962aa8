package dataset

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below.
var (
	ErrValidation  = errors.New("dataset: validation failed")
	ErrNoPeakFound = errors.New("dataset: no peak found")
)

// Causes wrapped by ValidationError.
var (
	ErrLengthMismatch  = errors.New("length mismatch")
	ErrEmptyTargets    = errors.New("targets are empty")
	ErrRaggedFeatures  = errors.New("feature rows differ in width")
	ErrCurveLength     = errors.New("curve length differs from the dataset")
	ErrNotExtendable   = errors.New("single-curve datasets cannot be extended")
	ErrExtensionKind   = errors.New("extension kind must be RawCurves or PeakValues")
	ErrNoYmax          = errors.New("peak values are not present")
	ErrYmaxLength      = errors.New("peak values do not cover every sample")
	ErrYmaxOverflow    = errors.New("more peak values than samples")
	ErrPeakOnlyRows    = errors.New("invalid peak-only rows")
)

// ValidationError reports a shape, length or parameter violation.
// It matches ErrValidation and unwraps to the specific cause.
type ValidationError struct {
	Op  string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dataset: %s: %v", e.Op, e.Err)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(op string, cause error, format string, args ...any) error {
	return &ValidationError{Op: op, Err: fmt.Errorf("%w: "+format, append([]any{cause}, args...)...)}
}

// NoPeakFoundError reports a curve without a peak satisfying the detection
// thresholds. Curve is the index within the batch that was searched.
type NoPeakFoundError struct {
	Curve int
	Err   error
}

func (e *NoPeakFoundError) Error() string {
	return fmt.Sprintf("dataset: curve %d: %v", e.Curve, e.Err)
}

// Is reports whether target is ErrNoPeakFound.
func (e *NoPeakFoundError) Is(target error) bool {
	return target == ErrNoPeakFound
}

func (e *NoPeakFoundError) Unwrap() error {
	return e.Err
}

// FailedCurves returns the curve indices of every NoPeakFoundError in err,
// including errors joined with errors.Join.
func FailedCurves(err error) []int {
	var out []int
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if np, ok := err.(*NoPeakFoundError); ok {
			out = append(out, np.Curve)
			return
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
