package epistemic

import "math"

const (
	DefaultTippingDegree = 4
	TippingStart         = 0.5
	TippingStep          = 0.01
	MaxTippingSteps      = 10000
)

// FindTippingContentCapacity returns the content evaluative capacity at which
// consulting degree peers stops being worse than relying on one's own
// competence, rounded to two decimals.
//
// The search walks from 0.5 in steps of 0.01. Walking up, it returns the
// first capacity whose accuracy reaches assoc. Walking down, it stops at the
// first capacity whose accuracy falls below assoc and returns the one above
// it. Both directions therefore report the lowest visited capacity that is
// still beneficial.
func FindTippingContentCapacity(assoc, opp, source float64, degree int) (float64, error) {
	if degree < 0 {
		return 0, &DomainError{Field: "degree_open_mindedness", Value: float64(degree), Reason: "must be non-negative"}
	}
	for _, c := range []struct {
		field string
		v     float64
	}{
		{"competence_associate", assoc},
		{"competence_opposer", opp},
		{"source_evaluative_capacity", source},
	} {
		if err := checkProbability(c.field, c.v); err != nil {
			return 0, err
		}
	}
	if assoc <= 0 || assoc >= 1 {
		return 0, &SearchDivergedError{
			Candidate: TippingStart,
			Reason:    "competence_associate must lie strictly inside (0,1)",
		}
	}

	params := AgentParameters{
		DegreeOpenMindedness:     degree,
		CompetenceAssociate:      assoc,
		CompetenceOpposer:        opp,
		SourceEvaluativeCapacity: source,
	}
	accuracyAt := func(content float64) (float64, error) {
		params.ContentEvaluativeCapacity = content
		return ExpectedAccuracy(params, Derived)
	}

	candidate := TippingStart
	acc, err := accuracyAt(candidate)
	if err != nil {
		return 0, err
	}

	step := TippingStep
	increasing := acc < assoc
	if !increasing {
		step = -TippingStep
	}

	for steps := 1; ; steps++ {
		if increasing && acc >= assoc {
			return roundCents(candidate), nil
		}
		if !increasing && acc < assoc {
			return roundCents(candidate + TippingStep), nil
		}
		if steps > MaxTippingSteps {
			return 0, &SearchDivergedError{Candidate: candidate, Steps: steps - 1, Reason: "step limit reached"}
		}

		candidate += step
		if candidate <= 0 || candidate >= 1 {
			return 0, &SearchDivergedError{Candidate: candidate, Steps: steps, Reason: "content capacity left (0,1)"}
		}
		if acc, err = accuracyAt(candidate); err != nil {
			return 0, err
		}
	}
}

// TippingSourceCapacity is the source evaluative capacity above which
// testimony filtered by source alone is more often right than wrong:
// (opp - 1/2) / (assoc + opp - 1).
func TippingSourceCapacity(assoc, opp float64) (float64, error) {
	if err := checkProbability("competence_associate", assoc); err != nil {
		return 0, err
	}
	if err := checkProbability("competence_opposer", opp); err != nil {
		return 0, err
	}
	denom := assoc + opp - 1
	if denom == 0 {
		return 0, &DomainError{Reason: "competences sum to one; source evaluation has no effect"}
	}
	return (opp - 0.5) / denom, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
