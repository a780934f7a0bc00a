package matching

import (
	"math"
	"testing"

	"flatly/internal/models"

	"github.com/stretchr/testify/assert"
)

func fullVector(val float64) models.Vector {
	v := make(models.Vector, ExpectedVectorLength)
	for i := range v {
		v[i] = val
	}
	return v
}

func TestScoreAllVectorsEmpty(t *testing.T) {
	a := &models.User{}
	b := &models.User{}
	assert.Equal(t, EmptyProfileScore, Score(a, b))
}

func TestScoreNilUsers(t *testing.T) {
	assert.Equal(t, ScoreFloor, Score(nil, nil))
	assert.Equal(t, ScoreFloor, Score(&models.User{}, nil))
}

func TestScoreFullAlignment(t *testing.T) {
	a := &models.User{SelfVector: fullVector(1), DesiredVector: fullVector(1)}
	b := &models.User{SelfVector: fullVector(1), DesiredVector: fullVector(1)}

	// All three similarities are 1, so the product branch yields 1.
	assert.InDelta(t, 1.0, Score(a, b), 1e-9)
}

func TestScorePartialDesiredBranch(t *testing.T) {
	// Only b has a desired vector: selfSim > 0, desiredBtoA > 0,
	// desiredAtoB == 0, so the partial branch applies.
	a := &models.User{SelfVector: fullVector(1)}
	b := &models.User{SelfVector: fullVector(1), DesiredVector: fullVector(1)}

	got := Score(a, b)
	assert.InDelta(t, 1.0*1.0*PartialDesiredFactor, got, 1e-9)
}

func TestScoreSelfOnlyBranch(t *testing.T) {
	a := &models.User{SelfVector: fullVector(1)}
	b := &models.User{SelfVector: fullVector(1)}

	got := Score(a, b)
	assert.InDelta(t, 1.0*SelfOnlyFactor, got, 1e-9)
}

func TestScoreFloorWhenNoSelfSignal(t *testing.T) {
	// Desired vectors alone cannot establish self similarity; the ladder
	// bottoms out at the empty-profile constant.
	a := &models.User{DesiredVector: fullVector(1)}
	b := &models.User{DesiredVector: fullVector(1)}

	assert.Equal(t, EmptyProfileScore, Score(a, b))
}

func TestScoreAlwaysBounded(t *testing.T) {
	vectors := []models.Vector{
		nil,
		{},
		fullVector(0),
		fullVector(1),
		fullVector(0.5),
		{math.NaN(), math.Inf(1), -5, 7},
		{0.1},
		{0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1, 0, 0.5, 0.5},
	}

	for _, sa := range vectors {
		for _, da := range vectors {
			for _, sb := range vectors {
				for _, db := range vectors {
					a := &models.User{SelfVector: sa, DesiredVector: da}
					b := &models.User{SelfVector: sb, DesiredVector: db}
					got := Score(a, b)
					assert.GreaterOrEqual(t, got, ScoreFloor)
					assert.LessOrEqual(t, got, 1.0)
				}
			}
		}
	}
}

func TestScoreWeakLegPunished(t *testing.T) {
	// A weak desired leg drags the product branch well below the
	// self-similarity alone.
	weakDesired := fullVector(0.5)
	weakDesired[0] = 0.1

	a := &models.User{SelfVector: fullVector(1), DesiredVector: weakDesired}
	b := &models.User{SelfVector: fullVector(1), DesiredVector: fullVector(1)}

	full := Score(&models.User{SelfVector: fullVector(1), DesiredVector: fullVector(1)},
		&models.User{SelfVector: fullVector(1), DesiredVector: fullVector(1)})
	assert.Less(t, Score(a, b), full)
}
