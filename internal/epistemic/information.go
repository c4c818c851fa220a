package epistemic

// NeutralContent is the content evaluative capacity of an agent that cannot
// tell right from wrong content. At this value InformationAccuracy reduces to
// CompanionAccuracyWithoutContent.
const NeutralContent = 0.5

// InformationAccuracy returns the probability that testimony which survives
// both the source filter and the content filter is correct.
func InformationAccuracy(source, assoc, opp, contentRight, contentWrong float64) (float64, error) {
	for _, c := range []struct {
		field string
		v     float64
	}{
		{"source_evaluative_capacity", source},
		{"competence_associate", assoc},
		{"competence_opposer", opp},
		{"content_evaluation_right", contentRight},
		{"content_evaluation_wrong", contentWrong},
	} {
		if err := checkProbability(c.field, c.v); err != nil {
			return 0, err
		}
	}

	// Source says "right": an associate who is right, or a misclassified
	// opposer who is wrong.
	pRight := (source*assoc + (1-source)*(1-opp)) * contentRight
	pWrong := (source*(1-assoc) + (1-source)*opp) * (1 - contentWrong)

	accept := pRight + pWrong
	if accept == 0 {
		return 0, &DomainError{Reason: "no testimony survives source and content evaluation"}
	}
	return pRight / accept, nil
}

// CompanionAccuracyWithoutContent is the accuracy of testimony filtered by
// source evaluation only.
func CompanionAccuracyWithoutContent(source, assoc, opp float64) (float64, error) {
	for _, c := range []struct {
		field string
		v     float64
	}{
		{"source_evaluative_capacity", source},
		{"competence_associate", assoc},
		{"competence_opposer", opp},
	} {
		if err := checkProbability(c.field, c.v); err != nil {
			return 0, err
		}
	}
	return source*assoc + (1-source)*(1-opp), nil
}

// ContentFilteredAccuracy applies content evaluation to testimony from a
// trustee whose accuracy without content evaluation is known.
func ContentFilteredAccuracy(trustee, content float64) (float64, error) {
	if err := checkProbability("trustee_accuracy", trustee); err != nil {
		return 0, err
	}
	if err := checkProbability("content_evaluative_capacity", content); err != nil {
		return 0, err
	}
	right := trustee * content
	accept := right + (1-trustee)*(1-content)
	if accept == 0 {
		return 0, &DomainError{Reason: "no testimony survives content evaluation"}
	}
	return right / accept, nil
}

// AddedContentValue is the accuracy gained by evaluating content on top of
// trusting the source.
func AddedContentValue(trustee, content float64) (float64, error) {
	filtered, err := ContentFilteredAccuracy(trustee, content)
	if err != nil {
		return 0, err
	}
	return filtered - trustee, nil
}
