package service

import (
	"github.com/Harshitk-cp/openmind/internal/epistemic"
	"go.uber.org/zap"
)

// InformationQuery asks for the accuracy of filtered testimony. Nil content
// evaluation fields mean a neutral 0.5.
type InformationQuery struct {
	SourceEvaluativeCapacity float64  `json:"source_evaluative_capacity" yaml:"source_evaluative_capacity"`
	CompetenceAssociate      float64  `json:"competence_associate" yaml:"competence_associate"`
	CompetenceOpposer        float64  `json:"competence_opposer" yaml:"competence_opposer"`
	ContentEvaluationRight   *float64 `json:"content_evaluation_right,omitempty" yaml:"content_evaluation_right,omitempty"`
	ContentEvaluationWrong   *float64 `json:"content_evaluation_wrong,omitempty" yaml:"content_evaluation_wrong,omitempty"`
}

// InformationResult is the answer to an InformationQuery.
type InformationResult struct {
	InformationAccuracy             float64 `json:"information_accuracy" yaml:"information_accuracy"`
	CompanionAccuracyWithoutContent float64 `json:"companion_accuracy_without_content" yaml:"companion_accuracy_without_content"`
	// AddedContentValue is InformationAccuracy minus the accuracy without
	// content evaluation.
	AddedContentValue float64 `json:"added_content_value" yaml:"added_content_value"`
}

type ExpectedResult struct {
	Parameters        epistemic.AgentParameters `json:"parameters" yaml:"parameters"`
	ExpectedAccuracy  float64                   `json:"expected_accuracy" yaml:"expected_accuracy"`
	BenefitOpenMind   float64                   `json:"benefit_open_mind" yaml:"benefit_open_mind"`
	CompanionAccuracy *float64                  `json:"companion_accuracy,omitempty" yaml:"companion_accuracy,omitempty"`
	CompanionInjected bool                      `json:"companion_injected" yaml:"companion_injected"`
	TieProbability    float64                   `json:"tie_probability" yaml:"tie_probability"`
}

type TippingContentResult struct {
	CompetenceAssociate       float64 `json:"competence_associate" yaml:"competence_associate"`
	CompetenceOpposer         float64 `json:"competence_opposer" yaml:"competence_opposer"`
	SourceEvaluativeCapacity  float64 `json:"source_evaluative_capacity" yaml:"source_evaluative_capacity"`
	DegreeOpenMindedness      int     `json:"degree_open_mindedness" yaml:"degree_open_mindedness"`
	TippingContentCapacity    float64 `json:"tipping_content_capacity" yaml:"tipping_content_capacity"`
	ExpectedAccuracyAtTipping float64 `json:"expected_accuracy_at_tipping" yaml:"expected_accuracy_at_tipping"`
}

type TippingSourceResult struct {
	CompetenceAssociate   float64 `json:"competence_associate" yaml:"competence_associate"`
	CompetenceOpposer     float64 `json:"competence_opposer" yaml:"competence_opposer"`
	TippingSourceCapacity float64 `json:"tipping_source_capacity" yaml:"tipping_source_capacity"`
}

// AccuracyService answers single-point queries against the engine.
type AccuracyService struct {
	logger *zap.Logger
}

// NewAccuracyService creates a new accuracy service.
func NewAccuracyService(logger *zap.Logger) *AccuracyService {
	return &AccuracyService{logger: logger}
}

// Information computes the accuracy of filtered testimony from a single companion.
func (s *AccuracyService) Information(q InformationQuery) (*InformationResult, error) {
	right := epistemic.NeutralContent
	if q.ContentEvaluationRight != nil {
		right = *q.ContentEvaluationRight
	}
	wrong := epistemic.NeutralContent
	if q.ContentEvaluationWrong != nil {
		wrong = *q.ContentEvaluationWrong
	}

	acc, err := epistemic.InformationAccuracy(q.SourceEvaluativeCapacity, q.CompetenceAssociate, q.CompetenceOpposer, right, wrong)
	if err != nil {
		s.logger.Debug("information accuracy rejected", zap.Error(err))
		return nil, err
	}
	base, err := epistemic.CompanionAccuracyWithoutContent(q.SourceEvaluativeCapacity, q.CompetenceAssociate, q.CompetenceOpposer)
	if err != nil {
		return nil, err
	}

	return &InformationResult{
		InformationAccuracy:             acc,
		CompanionAccuracyWithoutContent: base,
		AddedContentValue:               acc - base,
	}, nil
}

// Expected computes an agent's expected accuracy and its benefit over a
// closed mind.
func (s *AccuracyService) Expected(p epistemic.AgentParameters, companion epistemic.Companion) (*ExpectedResult, error) {
	acc, err := epistemic.ExpectedAccuracy(p, companion)
	if err != nil {
		s.logger.Debug("expected accuracy rejected",
			zap.Int("degree_open_mindedness", p.DegreeOpenMindedness),
			zap.Error(err))
		return nil, err
	}

	res := &ExpectedResult{
		Parameters:        p,
		ExpectedAccuracy:  acc,
		BenefitOpenMind:   acc - p.CompetenceAssociate,
		CompanionInjected: companion.Set,
	}

	// A closed mind never consults anyone, so its companion accuracy may be
	// undefined without making the query fail.
	if q, err := epistemic.ResolveCompanion(p, companion); err == nil {
		res.CompanionAccuracy = &q
		res.TieProbability = epistemic.TieProbability(p.DegreeOpenMindedness, p.CompetenceAssociate, q)
	}

	s.logger.Debug("expected accuracy computed",
		zap.Int("degree_open_mindedness", p.DegreeOpenMindedness),
		zap.Bool("companion_injected", companion.Set),
		zap.Float64("expected_accuracy", acc))
	return res, nil
}

// TippingContent finds the smallest content evaluative capacity at which an
// open mind stops being harmful.
func (s *AccuracyService) TippingContent(assoc, opp, source float64, degree int) (*TippingContentResult, error) {
	tip, err := epistemic.FindTippingContentCapacity(assoc, opp, source, degree)
	if err != nil {
		s.logger.Debug("tipping content search failed",
			zap.Float64("competence_associate", assoc),
			zap.Float64("competence_opposer", opp),
			zap.Float64("source_evaluative_capacity", source),
			zap.Int("degree_open_mindedness", degree),
			zap.Error(err))
		return nil, err
	}

	acc, err := epistemic.ExpectedAccuracy(epistemic.AgentParameters{
		DegreeOpenMindedness:      degree,
		CompetenceAssociate:       assoc,
		CompetenceOpposer:         opp,
		SourceEvaluativeCapacity:  source,
		ContentEvaluativeCapacity: tip,
	}, epistemic.Derived)
	if err != nil {
		return nil, err
	}

	return &TippingContentResult{
		CompetenceAssociate:       assoc,
		CompetenceOpposer:         opp,
		SourceEvaluativeCapacity:  source,
		DegreeOpenMindedness:      degree,
		TippingContentCapacity:    tip,
		ExpectedAccuracyAtTipping: acc,
	}, nil
}

// TippingSource returns the source evaluative capacity above which filtered
// testimony beats the agent's own judgement.
func (s *AccuracyService) TippingSource(assoc, opp float64) (*TippingSourceResult, error) {
	tip, err := epistemic.TippingSourceCapacity(assoc, opp)
	if err != nil {
		s.logger.Debug("tipping source rejected", zap.Error(err))
		return nil, err
	}
	return &TippingSourceResult{
		CompetenceAssociate:   assoc,
		CompetenceOpposer:     opp,
		TippingSourceCapacity: tip,
	}, nil
}
