package matching

import (
	"flatly/internal/models"
)

// Score combines three similarity measurements into one bounded
// compatibility score for the ordered pair (a, b):
//
//	selfSim:     a's habits against b's habits
//	desiredAtoB: what a wants against what b is
//	desiredBtoA: what b wants against what a is
//
// The orientation is fixed by convention: a is always the requesting user
// (or first liker) and b the candidate. Both sides of a stored match carry
// the score computed from that single orientation.
//
// The result is always in [ScoreFloor, 1]; missing questionnaire data
// degrades the score instead of failing.
func Score(a, b *models.User) float64 {
	if a == nil || b == nil {
		return ScoreFloor
	}

	aSelf := []float64(a.SelfVector)
	aDesired := []float64(a.DesiredVector)
	bSelf := []float64(b.SelfVector)
	bDesired := []float64(b.DesiredVector)

	if len(aSelf) == 0 && len(aDesired) == 0 && len(bSelf) == 0 && len(bDesired) == 0 {
		return EmptyProfileScore
	}

	selfSim := CosineSimilarity(aSelf, bSelf)
	desiredAtoB := CosineSimilarity(aDesired, bSelf)
	desiredBtoA := CosineSimilarity(bDesired, aSelf)

	var score float64
	switch {
	case selfSim > 0 && desiredAtoB > 0 && desiredBtoA > 0:
		// Full mutual alignment; the product punishes any weak leg.
		score = selfSim * desiredAtoB * desiredBtoA
	case selfSim > 0 && (desiredAtoB > 0 || desiredBtoA > 0):
		score = selfSim * max(desiredAtoB, desiredBtoA) * PartialDesiredFactor
	case selfSim > 0:
		score = selfSim * SelfOnlyFactor
	default:
		score = EmptyProfileScore
	}

	return clampScore(score)
}

func clampScore(s float64) float64 {
	if s < ScoreFloor {
		return ScoreFloor
	}
	if s > 1 {
		return 1
	}
	return s
}
