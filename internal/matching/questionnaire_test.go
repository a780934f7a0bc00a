package matching

import (
	"testing"

	"flatly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSelfAnswers(t *testing.T) {
	answers := map[string]string{
		"cleanliness":  "very-clean",
		"sleepPattern": "night-owl",
		"workStyle":    "hybrid",
		"foodHabits":   "cook-often",
		"partyStyle":   "quiet",
		"guests":       "sometimes",
		"socialEnergy": "introvert",
		"petTolerance": "love-pets",
		"musicVolume":  "moderate",
		"weekendPref":  "rest",
	}

	got := MapSelfAnswers(answers)
	require.Len(t, got, ExpectedVectorLength)
	assert.Equal(t, models.Vector{1, 0, 0.7, 1, 0, 0.5, 0, 1, 0.5, 0}, got)
}

func TestMapSelfAnswersMissingAndUnknown(t *testing.T) {
	got := MapSelfAnswers(map[string]string{
		"cleanliness": "spotless", // unknown answer
		"sleepPattern": "early-bird",
	})
	require.Len(t, got, ExpectedVectorLength)
	assert.Equal(t, NeutralValue, got[0])
	assert.Equal(t, 1.0, got[1])
	for i := 2; i < ExpectedVectorLength; i++ {
		assert.Equal(t, NeutralValue, got[i])
	}
}

func TestMapSelfAnswersNil(t *testing.T) {
	got := MapSelfAnswers(nil)
	require.Len(t, got, ExpectedVectorLength)
	for _, v := range got {
		assert.Equal(t, NeutralValue, v)
	}
}

func TestMapDesiredAnswersByIntent(t *testing.T) {
	roommateAnswers := map[string]string{
		"cleanlinessExpectation": "very-important",
		"noiseTolerance":         "low-tolerance",
	}
	got := MapDesiredAnswers(models.IntentSeekingRoommate, roommateAnswers)
	require.Len(t, got, ExpectedVectorLength)
	assert.Equal(t, 1.0, got[0])
	assert.Equal(t, 0.0, got[1])
	// 8 questions pad out to the expected length with neutral slots.
	assert.Equal(t, NeutralValue, got[8])
	assert.Equal(t, NeutralValue, got[9])

	roomAnswers := map[string]string{
		"budgetRange": "over-45000",
		"roomType":    "shared-room",
	}
	got = MapDesiredAnswers(models.IntentSeekingRoom, roomAnswers)
	require.Len(t, got, ExpectedVectorLength)
	assert.Equal(t, 1.0, got[0])
	assert.Equal(t, 0.3, got[1])
}

func TestDesiredQuestionnaireDispatch(t *testing.T) {
	roomTable := DesiredQuestionnaire(models.IntentSeekingRoom)
	roommateTable := DesiredQuestionnaire(models.IntentSeekingRoommate)

	assert.Equal(t, "budgetRange", roomTable[0].ID)
	assert.Equal(t, "cleanlinessExpectation", roommateTable[0].ID)
	assert.Len(t, roomTable, 8)
	assert.Len(t, roommateTable, 8)
}

func TestMappedVectorsScoreInBounds(t *testing.T) {
	a := &models.User{
		Intent:        models.IntentSeekingRoom,
		SelfVector:    MapSelfAnswers(map[string]string{"cleanliness": "very-clean"}),
		DesiredVector: MapDesiredAnswers(models.IntentSeekingRoom, map[string]string{"budgetRange": "under-15000"}),
	}
	b := &models.User{
		Intent:        models.IntentSeekingRoommate,
		SelfVector:    MapSelfAnswers(map[string]string{"cleanliness": "relaxed"}),
		DesiredVector: MapDesiredAnswers(models.IntentSeekingRoommate, map[string]string{"redFlags": "none"}),
	}

	got := Score(a, b)
	assert.GreaterOrEqual(t, got, ScoreFloor)
	assert.LessOrEqual(t, got, 1.0)
}
