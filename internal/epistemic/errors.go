package epistemic

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDomain         = errors.New("value outside probability domain")
	ErrSearchDiverged = errors.New("tipping point search diverged")
)

// DomainError reports an input probability outside [0,1] or an undefined
// ratio.
type DomainError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrDomain, e.Reason)
	}
	return fmt.Sprintf("%s: %s=%v: %s", ErrDomain, e.Field, e.Value, e.Reason)
}

func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// SearchDivergedError reports a tipping point search that left (0,1) or ran
// out of steps.
type SearchDivergedError struct {
	Candidate float64
	Steps     int
	Reason    string
}

func (e *SearchDivergedError) Error() string {
	return fmt.Sprintf("%s after %d steps at content capacity %.4f: %s",
		ErrSearchDiverged, e.Steps, e.Candidate, e.Reason)
}

func (e *SearchDivergedError) Is(target error) bool {
	return target == ErrSearchDiverged
}

func checkProbability(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return &DomainError{Field: field, Value: v, Reason: "must lie in [0,1]"}
	}
	return nil
}
