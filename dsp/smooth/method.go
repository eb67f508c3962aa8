package smooth

import (
	"fmt"
	"strings"
)

// Method identifies a smoothing strategy.
type Method int

const (
	SavitzkyGolay Method = iota
	MovingAverage
)

var methodNames = map[Method]string{
	SavitzkyGolay: "savgol",
	MovingAverage: "moving-average",
}

// String returns the configuration name of the method.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod resolves a configuration name ("savgol", "moving-average").
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// strategy smooths one curve with parameters fixed at construction.
type strategy interface {
	smooth(curve []float64) ([]float64, error)
}

func newStrategy(m Method, cfg Config) (strategy, error) {
	switch m {
	case SavitzkyGolay:
		return newSavgol(cfg.Window, cfg.PolyOrder)
	case MovingAverage:
		return newMovingAverage(cfg.Window), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}
}
