// Package matching implements the compatibility scoring core: vector
// normalization, cosine similarity, the combined match score, and the
// questionnaire-to-vector mapping tables. Everything in this package is
// pure computation; persistence and candidate retrieval live in the
// service layer.
package matching

import "math"

// Scoring constants. These are a versioned contract: changing any of them
// changes every score computed afterwards, so they are defined once at the
// package boundary rather than scattered through the pipeline.
const (
	// ExpectedVectorLength is the fixed length every questionnaire
	// vector is coerced to before scoring.
	ExpectedVectorLength = 10

	// NeutralValue substitutes missing or malformed vector entries.
	NeutralValue = 0.5

	// ScoreFloor is the lowest score a pair can receive; candidates are
	// never fully excluded by a zero score downstream.
	ScoreFloor = 0.05

	// EmptyProfileScore is returned when all four vectors of a pair are
	// empty: very low, but not zero.
	EmptyProfileScore = 0.1

	// PartialDesiredFactor discounts pairs where only one side's desired
	// vector is available.
	PartialDesiredFactor = 0.8

	// SelfOnlyFactor discounts pairs where neither desired vector
	// contributes.
	SelfOnlyFactor = 0.6

	// PriorityBoost multiplies the score of candidates who own an active
	// prioritized replacement listing, capped at 1.
	PriorityBoost = 1.5

	// NoiseFloor is the threshold below which ranked candidates are
	// dropped as noise.
	NoiseFloor = 0.01
)

// Normalize coerces an arbitrary answer vector into exactly length
// entries in [0,1]. Nil or empty input yields a fully neutral vector,
// short input is right-padded with the neutral value, long input is
// truncated, and NaN/Inf entries become neutral. The input slice is
// never mutated.
func Normalize(vector []float64, length int) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	if len(vector) == 0 {
		for i := range out {
			out[i] = NeutralValue
		}
		return out
	}

	for i := range out {
		if i >= len(vector) {
			out[i] = NeutralValue
			continue
		}
		v := vector[i]
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			out[i] = NeutralValue
		case v < 0:
			out[i] = 0
		case v > 1:
			out[i] = 1
		default:
			out[i] = v
		}
	}
	return out
}

// CosineSimilarity computes the cosine similarity of two vectors after
// normalizing both to ExpectedVectorLength. Callers need not
// pre-normalize. Degenerate inputs (zero magnitude) yield 0 rather than
// an error; with normalized non-empty inputs the result lands in [0,1].
func CosineSimilarity(a, b []float64) float64 {
	// Empty means "questionnaire not submitted": no signal, not a
	// neutral answer set.
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	na := Normalize(a, ExpectedVectorLength)
	nb := Normalize(b, ExpectedVectorLength)

	var dot, magA, magB float64
	for i := range na {
		dot += na[i] * nb[i]
		magA += na[i] * na[i]
		magB += nb[i] * nb[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
