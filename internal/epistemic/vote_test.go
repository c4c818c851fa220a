package epistemic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pinned from the closed form at the default parameters:
// 0.6·P[X=5] + P[X>5] with X ~ Binomial(10, 0.45).
const defaultParametersAccuracy = 0.4019823253100392

func TestExpectedAccuracy_DefaultParametersRegression(t *testing.T) {
	p := AgentParameters{
		DegreeOpenMindedness:      10,
		CompetenceOpposer:         0.7,
		CompetenceAssociate:       0.6,
		SourceEvaluativeCapacity:  0.5,
		ContentEvaluativeCapacity: 0.5,
	}
	require.Equal(t, DefaultParameters(), p)

	got, err := ExpectedAccuracy(p, Derived)
	require.NoError(t, err)
	assert.InDelta(t, defaultParametersAccuracy, got, 1e-12)
}

func TestExpectedAccuracy_ClosedMind(t *testing.T) {
	for i := 0; i < 10; i++ {
		c := 0.5 + 0.05*float64(i)
		for _, p := range []AgentParameters{
			{CompetenceAssociate: 0.6, CompetenceOpposer: c, SourceEvaluativeCapacity: 0.5, ContentEvaluativeCapacity: 0.5},
			{CompetenceAssociate: c, CompetenceOpposer: 0.7, SourceEvaluativeCapacity: 0.5, ContentEvaluativeCapacity: 0.5},
			{CompetenceAssociate: c, CompetenceOpposer: 0, SourceEvaluativeCapacity: 1, ContentEvaluativeCapacity: 1},
		} {
			got, err := ExpectedAccuracy(p, Derived)
			require.NoError(t, err)
			if got != p.CompetenceAssociate {
				t.Errorf("ExpectedAccuracy(%+v) = %v, want %v", p, got, p.CompetenceAssociate)
			}

			injected, err := ExpectedAccuracy(p, Injected(0.99))
			require.NoError(t, err)
			assert.Equal(t, p.CompetenceAssociate, injected)
		}
	}
}

func TestExpectedAccuracy_KnownValues(t *testing.T) {
	tests := []struct {
		name      string
		params    AgentParameters
		companion Companion
		want      float64
	}{
		{
			name:      "even degree with weak companions",
			params:    AgentParameters{DegreeOpenMindedness: 4, CompetenceAssociate: 0.9, CompetenceOpposer: 0.3, SourceEvaluativeCapacity: 0.5, ContentEvaluativeCapacity: 0.5},
			companion: Injected(0.2),
			want:      0.16544,
		},
		{
			name:      "odd degree with weak companions",
			params:    AgentParameters{DegreeOpenMindedness: 5, CompetenceAssociate: 0.9, CompetenceOpposer: 0.3, SourceEvaluativeCapacity: 0.5, ContentEvaluativeCapacity: 0.5},
			companion: Injected(0.2),
			want:      0.14752,
		},
		{
			name:      "single peer ties half the time",
			params:    AgentParameters{DegreeOpenMindedness: 1, CompetenceAssociate: 0.7, CompetenceOpposer: 0.6, SourceEvaluativeCapacity: 0.8, ContentEvaluativeCapacity: 0.6},
			companion: Derived,
			want:      0.7136363636363636,
		},
		{
			name:      "three peers",
			params:    AgentParameters{DegreeOpenMindedness: 3, CompetenceAssociate: 0.7, CompetenceOpposer: 0.6, SourceEvaluativeCapacity: 0.8, ContentEvaluativeCapacity: 0.6},
			companion: Derived,
			want:      0.8093163035311796,
		},
		{
			name:      "two fair coins",
			params:    AgentParameters{DegreeOpenMindedness: 2, CompetenceAssociate: 0.5, CompetenceOpposer: 0.5, SourceEvaluativeCapacity: 0.5, ContentEvaluativeCapacity: 0.5},
			companion: Derived,
			want:      0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpectedAccuracy(tt.params, tt.companion)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestExpectedAccuracy_InjectedMatchesDerived(t *testing.T) {
	grid := []float64{0.1, 0.3, 0.5, 0.6, 0.75, 0.9}
	for n := 0; n <= 12; n++ {
		for _, a := range grid {
			for _, s := range grid {
				for _, c := range grid {
					p := AgentParameters{
						DegreeOpenMindedness:      n,
						CompetenceAssociate:       a,
						CompetenceOpposer:         0.65,
						SourceEvaluativeCapacity:  s,
						ContentEvaluativeCapacity: c,
					}
					companion, err := InformationAccuracy(s, a, 0.65, c, c)
					require.NoError(t, err)

					derived, err := ExpectedAccuracy(p, Derived)
					require.NoError(t, err)
					injected, err := ExpectedAccuracy(p, Injected(companion))
					require.NoError(t, err)

					if diff := derived - injected; diff > 1e-9 || diff < -1e-9 {
						t.Errorf("derived %v != injected %v for %+v", derived, injected, p)
					}

					resolved, err := ResolveCompanion(p, Derived)
					require.NoError(t, err)
					assert.Equal(t, companion, resolved)
				}
			}
		}
	}
}

func TestExpectedAccuracy_MonotoneInCompanion(t *testing.T) {
	for n := 1; n <= 11; n++ {
		for _, a := range []float64{0.2, 0.5, 0.6, 0.9} {
			p := AgentParameters{DegreeOpenMindedness: n, CompetenceAssociate: a}
			prev := -1.0
			for i := 0; i <= 100; i++ {
				q := float64(i) / 100
				got, err := ExpectedAccuracy(p, Injected(q))
				require.NoError(t, err)
				if got < prev-1e-12 {
					t.Errorf("n=%d a=%v: accuracy dropped from %v to %v at companion %v", n, a, prev, got, q)
				}
				prev = got
			}
		}
	}
}

func TestExpectedAccuracy_Parity(t *testing.T) {
	for _, a := range []float64{0, 0.3, 0.6, 1} {
		for i := 0; i <= 20; i++ {
			q := float64(i) / 20
			for _, n := range []int{4, 5} {
				got, err := ExpectedAccuracy(AgentParameters{DegreeOpenMindedness: n, CompetenceAssociate: a}, Injected(q))
				require.NoError(t, err)
				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, 1.0+1e-12)
			}
			assert.GreaterOrEqual(t, TieProbability(5, a, q), 0.0)
			assert.Equal(t, 0.0, TieProbability(4, a, q))
		}
	}
}

func TestExpectedAccuracy_DegenerateCompanion(t *testing.T) {
	// A content filter that rejects every wrong argument leaves only right
	// testimony.
	p := AgentParameters{DegreeOpenMindedness: 2, CompetenceAssociate: 0.6, CompetenceOpposer: 0.7, SourceEvaluativeCapacity: 0.5, ContentEvaluativeCapacity: 1}
	got, err := ExpectedAccuracy(p, Derived)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	for n := 1; n <= 6; n++ {
		p := AgentParameters{DegreeOpenMindedness: n, CompetenceAssociate: 0.6}
		wrong, err := ExpectedAccuracy(p, Injected(0))
		require.NoError(t, err)
		right, err := ExpectedAccuracy(p, Injected(1))
		require.NoError(t, err)

		if n == 1 {
			// Self against a single peer ties whenever they disagree.
			assert.InDelta(t, 0.3, wrong, 1e-12)
			assert.InDelta(t, 0.8, right, 1e-12)
			continue
		}
		assert.Equal(t, 0.0, wrong, "n=%d", n)
		assert.Equal(t, 1.0, right, "n=%d", n)
	}
}

func TestExpectedAccuracy_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		params    AgentParameters
		companion Companion
	}{
		{"negative degree", AgentParameters{DegreeOpenMindedness: -1, CompetenceAssociate: 0.6}, Derived},
		{"associate above one", AgentParameters{DegreeOpenMindedness: 2, CompetenceAssociate: 1.2}, Derived},
		{"injected companion negative", AgentParameters{DegreeOpenMindedness: 2, CompetenceAssociate: 0.6}, Injected(-0.1)},
		{"undefined companion", AgentParameters{DegreeOpenMindedness: 2, CompetenceAssociate: 1, SourceEvaluativeCapacity: 1}, Derived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpectedAccuracy(tt.params, tt.companion)
			if !errors.Is(err, ErrDomain) {
				t.Errorf("ExpectedAccuracy() error = %v, want ErrDomain", err)
			}
		})
	}
}

func TestBenefitOpenMind(t *testing.T) {
	p := DefaultParameters()
	got, err := BenefitOpenMind(p, Derived)
	require.NoError(t, err)
	assert.InDelta(t, defaultParametersAccuracy-0.6, got, 1e-12)

	p.DegreeOpenMindedness = 0
	got, err = BenefitOpenMind(p, Derived)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCompanionFromPtr(t *testing.T) {
	assert.Equal(t, Derived, CompanionFromPtr(nil))
	v := 0.3
	assert.Equal(t, Injected(0.3), CompanionFromPtr(&v))
}

func TestBinomial(t *testing.T) {
	assert.InDelta(t, 0.375, pmf(2, 4, 0.5), 1e-12)
	assert.InDelta(t, 0.3125, sf(2, 4, 0.5), 1e-12)
	assert.Equal(t, 0.0, pmf(5, 4, 0.5))
	assert.Equal(t, 0.0, pmf(-1, 4, 0.5))
	assert.Equal(t, 1.0, sf(-1, 4, 0.5))
	assert.Equal(t, 0.0, sf(4, 4, 0.5))

	for _, p := range []float64{0, 0.13, 0.5, 0.87, 1} {
		total := 0.0
		for k := 0; k <= 9; k++ {
			total += pmf(k, 9, p)
		}
		assert.InDelta(t, 1, total, 1e-12, "p=%v", p)
		assert.InDelta(t, pmf(9, 9, p), sf(8, 9, p), 1e-12, "p=%v", p)
	}
}
