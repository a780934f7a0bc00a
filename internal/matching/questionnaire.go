package matching

import (
	"flatly/internal/models"
)

// Question is one entry of a questionnaire mapping table: a question
// identifier plus the categorical-answer-to-weight mapping for it. The
// position of a question in its table fixes the vector slot it fills.
type Question struct {
	ID      string
	Weights map[string]float64
}

// The mapping tables below are a versioned contract: changing a weight
// changes all future scores, so treat edits as a scoring-model revision.

// selfQuestions encodes a user's own lifestyle habits, one slot per trait.
var selfQuestions = []Question{
	{ID: "cleanliness", Weights: map[string]float64{"very-clean": 1, "clean": 0.7, "moderate": 0.5, "relaxed": 0.3}},
	{ID: "sleepPattern", Weights: map[string]float64{"early-bird": 1, "normal": 0.5, "night-owl": 0}},
	{ID: "workStyle", Weights: map[string]float64{"wfh": 1, "hybrid": 0.7, "office": 0.5}},
	{ID: "foodHabits", Weights: map[string]float64{"cook-often": 1, "sometimes": 0.5, "order-out": 0.3, "rarely": 0}},
	{ID: "partyStyle", Weights: map[string]float64{"party-lover": 1, "occasional": 0.5, "quiet": 0}},
	{ID: "guests", Weights: map[string]float64{"frequently": 1, "sometimes": 0.5, "rarely": 0}},
	{ID: "socialEnergy", Weights: map[string]float64{"very-social": 1, "social": 0.7, "moderate": 0.5, "introvert": 0}},
	{ID: "petTolerance", Weights: map[string]float64{"love-pets": 1, "okay-with-pets": 0.5, "no-pets": 0}},
	{ID: "musicVolume", Weights: map[string]float64{"loud": 1, "moderate": 0.5, "quiet": 0}},
	{ID: "weekendPref", Weights: map[string]float64{"go-out": 1, "home-activities": 0.5, "rest": 0}},
}

// desiredRoommateQuestions encodes what a room provider wants in the
// person moving in.
var desiredRoommateQuestions = []Question{
	{ID: "cleanlinessExpectation", Weights: map[string]float64{"very-important": 1, "important": 0.7, "somewhat": 0.5, "not-important": 0}},
	{ID: "noiseTolerance", Weights: map[string]float64{"very-tolerant": 1, "tolerant": 0.7, "moderate": 0.5, "low-tolerance": 0}},
	{ID: "foodPreference", Weights: map[string]float64{"similar": 1, "complementary": 0.7, "no-preference": 0.5}},
	{ID: "guestsPolicy", Weights: map[string]float64{"frequent-ok": 1, "occasional-ok": 0.5, "prefer-none": 0}},
	{ID: "choreExpectations", Weights: map[string]float64{"shared-equally": 1, "flexible": 0.7, "individual": 0.5}},
	{ID: "sleepSync", Weights: map[string]float64{"similar-schedule": 1, "flexible": 0.5, "no-preference": 0.3}},
	{ID: "redFlags", Weights: map[string]float64{"none": 1, "minor-issues": 0.5, "major-concerns": 0}},
	{ID: "colivingVibe", Weights: map[string]float64{"friends": 1, "friendly": 0.7, "respectful": 0.5, "minimal": 0}},
}

// desiredRoomQuestions encodes what a room seeker wants in the room and
// living arrangement.
var desiredRoomQuestions = []Question{
	{ID: "budgetRange", Weights: map[string]float64{"under-15000": 0, "15000-25000": 0.3, "25000-35000": 0.5, "35000-45000": 0.7, "over-45000": 1}},
	{ID: "roomType", Weights: map[string]float64{"private-room": 1, "studio": 0.7, "flexible": 0.5, "shared-room": 0.3}},
	{ID: "locationPreference", Weights: map[string]float64{"very-important": 1, "important": 0.7, "flexible": 0.5, "not-important": 0}},
	{ID: "moveInTimeline", Weights: map[string]float64{"asap": 1, "month": 0.7, "next-month": 0.5, "flexible": 0.3}},
	{ID: "leaseLength", Weights: map[string]float64{"long-term": 1, "medium-term": 0.5, "short-term": 0.3, "flexible": 0.5}},
	{ID: "amenities", Weights: map[string]float64{"essential": 1, "important": 0.7, "flexible": 0.5, "minimal": 0}},
	{ID: "furnished", Weights: map[string]float64{"furnished": 1, "partially": 0.7, "flexible": 0.5, "unfurnished": 0.3}},
	{ID: "roommatePreference", Weights: map[string]float64{"prefer-roommates": 1, "okay-roommates": 0.7, "prefer-alone": 0.3, "must-alone": 0}},
}

// SelfQuestionnaire returns the self-profile mapping table.
func SelfQuestionnaire() []Question {
	return selfQuestions
}

// DesiredQuestionnaire returns the desired-profile mapping table for the
// given intent. Room seekers answer room-oriented questions; room
// providers answer roommate-lifestyle questions.
func DesiredQuestionnaire(intent models.Intent) []Question {
	if intent == models.IntentSeekingRoom {
		return desiredRoomQuestions
	}
	return desiredRoommateQuestions
}

// MapSelfAnswers converts self-questionnaire answers into a normalized
// vector. Missing or unknown answers fill their slot with the neutral
// value instead of failing.
func MapSelfAnswers(answers map[string]string) models.Vector {
	return mapAnswers(selfQuestions, answers)
}

// MapDesiredAnswers converts desired-questionnaire answers into a
// normalized vector, selecting the mapping table by intent.
func MapDesiredAnswers(intent models.Intent, answers map[string]string) models.Vector {
	return mapAnswers(DesiredQuestionnaire(intent), answers)
}

func mapAnswers(questions []Question, answers map[string]string) models.Vector {
	raw := make([]float64, 0, len(questions))
	for _, q := range questions {
		w, ok := q.Weights[answers[q.ID]]
		if !ok {
			w = NeutralValue
		}
		raw = append(raw, w)
	}
	return models.Vector(Normalize(raw, ExpectedVectorLength))
}
