// Package epistemic computes how often an agent that weighs its own judgment
// against filtered testimony from peers reaches the right conclusion.
package epistemic

const (
	DefaultDegreeOpenMindedness      = 10
	DefaultCompetenceOpposer         = 0.7
	DefaultCompetenceAssociate       = 0.6
	DefaultSourceEvaluativeCapacity  = 0.5
	DefaultContentEvaluativeCapacity = 0.5
)

// AgentParameters describes the receiving agent and the peers it consults.
type AgentParameters struct {
	// DegreeOpenMindedness is the number of peers consulted before voting.
	DegreeOpenMindedness int `json:"degree_open_mindedness" yaml:"degree_open_mindedness"`
	// CompetenceAssociate is the probability an aligned peer is right. The
	// agent's own competence equals it.
	CompetenceAssociate float64 `json:"competence_associate" yaml:"competence_associate"`
	// CompetenceOpposer is the probability an opposed peer is right.
	CompetenceOpposer float64 `json:"competence_opposer" yaml:"competence_opposer"`
	// SourceEvaluativeCapacity is the probability a peer is classified
	// correctly as associate or opposer.
	SourceEvaluativeCapacity float64 `json:"source_evaluative_capacity" yaml:"source_evaluative_capacity"`
	// ContentEvaluativeCapacity is the probability testimony content is
	// correctly accepted or rejected.
	ContentEvaluativeCapacity float64 `json:"content_evaluative_capacity" yaml:"content_evaluative_capacity"`
}

// DefaultParameters returns the parameters used when a query omits them.
func DefaultParameters() AgentParameters {
	return AgentParameters{
		DegreeOpenMindedness:      DefaultDegreeOpenMindedness,
		CompetenceAssociate:       DefaultCompetenceAssociate,
		CompetenceOpposer:         DefaultCompetenceOpposer,
		SourceEvaluativeCapacity:  DefaultSourceEvaluativeCapacity,
		ContentEvaluativeCapacity: DefaultContentEvaluativeCapacity,
	}
}

// Validate reports the first parameter outside its allowed range.
func (p AgentParameters) Validate() error {
	if p.DegreeOpenMindedness < 0 {
		return &DomainError{
			Field:  "degree_open_mindedness",
			Value:  float64(p.DegreeOpenMindedness),
			Reason: "must be non-negative",
		}
	}
	checks := []struct {
		field string
		v     float64
	}{
		{"competence_associate", p.CompetenceAssociate},
		{"competence_opposer", p.CompetenceOpposer},
		{"source_evaluative_capacity", p.SourceEvaluativeCapacity},
		{"content_evaluative_capacity", p.ContentEvaluativeCapacity},
	}
	for _, c := range checks {
		if err := checkProbability(c.field, c.v); err != nil {
			return err
		}
	}
	return nil
}

// Companion is an optional companion accuracy. The zero value means
// "derive it from the agent parameters".
type Companion struct {
	Value float64
	Set   bool
}

// Derived asks ExpectedAccuracy to compute the companion accuracy itself.
var Derived = Companion{}

// Injected supplies the companion accuracy directly.
func Injected(v float64) Companion {
	return Companion{Value: v, Set: true}
}

// CompanionFromPtr converts a nullable decoded field into a Companion.
func CompanionFromPtr(v *float64) Companion {
	if v == nil {
		return Derived
	}
	return Injected(*v)
}
