package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SweepKind string

const (
	SweepBenefitSource   SweepKind = "benefit_source"
	SweepBenefitContent  SweepKind = "benefit_content"
	SweepTippingContent  SweepKind = "tipping_content"
	SweepAddedContent    SweepKind = "added_content"
	SweepSourcePotential SweepKind = "source_potential"
	SweepAccuracyCurve   SweepKind = "accuracy_curve"
)

// AllSweepKinds lists the sweep kinds in display order.
var AllSweepKinds = []SweepKind{
	SweepBenefitSource,
	SweepBenefitContent,
	SweepTippingContent,
	SweepAddedContent,
	SweepSourcePotential,
	SweepAccuracyCurve,
}

// SweepRequest describes a grid of engine evaluations. Nil optional fields
// take the defaults of the sweep kind.
type SweepRequest struct {
	Kind                      SweepKind `json:"kind" yaml:"kind"`
	Rows                      []float64 `json:"rows,omitempty" yaml:"rows,omitempty"`
	Columns                   []float64 `json:"columns,omitempty" yaml:"columns,omitempty"`
	DegreeOpenMindedness      *int      `json:"degree_open_mindedness,omitempty" yaml:"degree_open_mindedness,omitempty"`
	Advantage                 float64   `json:"advantage,omitempty" yaml:"advantage,omitempty"`
	SourceEvaluativeCapacity  *float64  `json:"source_evaluative_capacity,omitempty" yaml:"source_evaluative_capacity,omitempty"`
	ContentEvaluativeCapacity *float64  `json:"content_evaluative_capacity,omitempty" yaml:"content_evaluative_capacity,omitempty"`
	// Precision is the number of decimals values are rounded to. Negative
	// disables rounding.
	Precision *int `json:"precision,omitempty" yaml:"precision,omitempty"`
}

// SweepCell is one evaluated grid point. Value is nil when the engine
// rejected the point, in which case Error holds the reason.
type SweepCell struct {
	Row     float64  `json:"row" yaml:"row"`
	Column  float64  `json:"column" yaml:"column"`
	Value   *float64 `json:"value" yaml:"value"`
	Harmful bool     `json:"harmful,omitempty" yaml:"harmful,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

type SweepRun struct {
	ID         uuid.UUID     `json:"id" yaml:"id"`
	Kind       SweepKind     `json:"kind" yaml:"kind"`
	Request    SweepRequest  `json:"request" yaml:"request"`
	Rows       []float64     `json:"rows" yaml:"rows"`
	Columns    []float64     `json:"columns" yaml:"columns"`
	Cells      [][]SweepCell `json:"cells" yaml:"cells"`
	DurationMS int64         `json:"duration_ms" yaml:"duration_ms"`
	CreatedAt  time.Time     `json:"created_at" yaml:"created_at"`
}

// SweepSummary is a SweepRun without its cells, for listings.
type SweepSummary struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	Kind        SweepKind `json:"kind" yaml:"kind"`
	RowCount    int       `json:"row_count" yaml:"row_count"`
	ColumnCount int       `json:"column_count" yaml:"column_count"`
	DurationMS  int64     `json:"duration_ms" yaml:"duration_ms"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

func (r *SweepRun) Summary() SweepSummary {
	return SweepSummary{
		ID:          r.ID,
		Kind:        r.Kind,
		RowCount:    len(r.Rows),
		ColumnCount: len(r.Columns),
		DurationMS:  r.DurationMS,
		CreatedAt:   r.CreatedAt,
	}
}

// SweepKindSpec carries the axis meaning and defaults of a sweep kind.
type SweepKindSpec struct {
	Kind           SweepKind
	RowLabel       string
	ColumnLabel    string
	ValueLabel     string
	DefaultRows    []float64
	DefaultColumns []float64
	// IntegerColumns marks column values that are peer counts.
	IntegerColumns bool
	// Benefit marks kinds whose values are accuracy gains over a closed mind.
	Benefit bool
}

var (
	competenceAxis      = []float64{0.9, 0.85, 0.8, 0.75, 0.7, 0.65, 0.6}
	sourceAxis          = []float64{0.6, 0.65, 0.7, 0.75, 0.8, 0.85, 0.9}
	contentAxis         = []float64{0.5, 0.55, 0.6, 0.65, 0.7, 0.75, 0.8}
	trusteeAxis         = []float64{0.8, 0.75, 0.7, 0.65, 0.6, 0.55}
	addedContentAxis    = []float64{0.55, 0.6, 0.65, 0.7, 0.75, 0.8}
	opposerAxis         = []float64{0.9, 0.85, 0.8, 0.75, 0.7, 0.65, 0.6, 0.55}
	curveCompetenceAxis = []float64{0.6, 0.65, 0.7, 0.75, 0.8, 0.85}
	degreeAxis          = []float64{2, 4, 6, 8, 10, 12, 14, 16, 18, 20}
)

func associateAxis() []float64 {
	axis := make([]float64, 0, 41)
	for i := 50; i <= 90; i++ {
		axis = append(axis, float64(i)/100)
	}
	return axis
}

var SweepKinds = map[SweepKind]SweepKindSpec{
	SweepBenefitSource: {
		Kind:           SweepBenefitSource,
		RowLabel:       "competence",
		ColumnLabel:    "source_evaluative_capacity",
		ValueLabel:     "benefit_open_mind",
		DefaultRows:    competenceAxis,
		DefaultColumns: sourceAxis,
		Benefit:        true,
	},
	SweepBenefitContent: {
		Kind:           SweepBenefitContent,
		RowLabel:       "competence",
		ColumnLabel:    "content_evaluative_capacity",
		ValueLabel:     "benefit_open_mind",
		DefaultRows:    competenceAxis,
		DefaultColumns: contentAxis,
		Benefit:        true,
	},
	SweepTippingContent: {
		Kind:           SweepTippingContent,
		RowLabel:       "competence",
		ColumnLabel:    "source_evaluative_capacity",
		ValueLabel:     "tipping_content_capacity",
		DefaultRows:    competenceAxis,
		DefaultColumns: sourceAxis,
	},
	SweepAddedContent: {
		Kind:           SweepAddedContent,
		RowLabel:       "trustee_accuracy",
		ColumnLabel:    "content_evaluative_capacity",
		ValueLabel:     "added_content_value",
		DefaultRows:    trusteeAxis,
		DefaultColumns: addedContentAxis,
	},
	SweepSourcePotential: {
		Kind:           SweepSourcePotential,
		RowLabel:       "competence_associate",
		ColumnLabel:    "competence_opposer",
		ValueLabel:     "tipping_source_capacity",
		DefaultRows:    associateAxis(),
		DefaultColumns: opposerAxis,
	},
	SweepAccuracyCurve: {
		Kind:           SweepAccuracyCurve,
		RowLabel:       "competence",
		ColumnLabel:    "degree_open_mindedness",
		ValueLabel:     "benefit_open_mind",
		DefaultRows:    curveCompetenceAxis,
		DefaultColumns: degreeAxis,
		IntegerColumns: true,
		Benefit:        true,
	},
}

func GetSweepKindSpec(kind SweepKind) (SweepKindSpec, bool) {
	spec, ok := SweepKinds[kind]
	return spec, ok
}

type SweepStore interface {
	Create(ctx context.Context, run *SweepRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*SweepRun, error)
	List(ctx context.Context, limit int) ([]SweepSummary, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
