package epistemic

// ExpectedAccuracy returns the probability that the agent ends up with the
// right belief after voting together with DegreeOpenMindedness peers whose
// accepted testimony is right with the companion accuracy.
//
// When companion is Derived, the companion accuracy is InformationAccuracy
// under the agent's own content evaluative capacity for both right and wrong
// content.
func ExpectedAccuracy(p AgentParameters, companion Companion) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	// Closed-minded agent relies on its own judgment only.
	if p.DegreeOpenMindedness == 0 {
		return p.CompetenceAssociate, nil
	}

	q, err := resolveCompanion(p, companion)
	if err != nil {
		return 0, err
	}

	n := p.DegreeOpenMindedness
	a := p.CompetenceAssociate

	if n%2 == 0 {
		// Self plus n peers is odd, so there is no tie. The agent decides
		// when exactly half of the peers are right.
		half := n / 2
		return a*pmf(half, n, q) + sf(half, n, q), nil
	}

	// Self plus n peers is even: ties are broken by a fair coin.
	upper := (n + 1) / 2
	return a*pmf(upper, n, q) + sf(upper, n, q) + TieProbability(n, a, q)/2, nil
}

// TieProbability is the chance of an even split of votes for an odd number of
// peers: the agent is right and (n-1)/2 peers are right, or the agent is wrong
// and (n+1)/2 peers are right. It is zero for even n.
func TieProbability(n int, competence, companion float64) float64 {
	if n <= 0 || n%2 == 0 {
		return 0
	}
	lower := (n - 1) / 2
	upper := (n + 1) / 2
	return competence*pmf(lower, n, companion) + (1-competence)*pmf(upper, n, companion)
}

// BenefitOpenMind is the accuracy gained by consulting peers over relying on
// the agent's own competence. Negative values mean open-mindedness hurts.
func BenefitOpenMind(p AgentParameters, companion Companion) (float64, error) {
	acc, err := ExpectedAccuracy(p, companion)
	if err != nil {
		return 0, err
	}
	return acc - p.CompetenceAssociate, nil
}

// ResolveCompanion returns the companion accuracy ExpectedAccuracy would use.
func ResolveCompanion(p AgentParameters, companion Companion) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return resolveCompanion(p, companion)
}

func resolveCompanion(p AgentParameters, companion Companion) (float64, error) {
	if companion.Set {
		if err := checkProbability("companion_accuracy", companion.Value); err != nil {
			return 0, err
		}
		return companion.Value, nil
	}
	return InformationAccuracy(
		p.SourceEvaluativeCapacity,
		p.CompetenceAssociate,
		p.CompetenceOpposer,
		p.ContentEvaluativeCapacity,
		p.ContentEvaluativeCapacity,
	)
}
