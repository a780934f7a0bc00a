package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"flatly/internal/matching"
	"flatly/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionnaireFlow(t *testing.T) {
	s, db := newTestServer(t)

	user := &models.User{
		Email:    "ana@example.com",
		Password: "hash",
		Name:     "Ana",
		City:     "Berlin",
		Intent:   models.IntentSeekingRoom,
	}
	require.NoError(t, db.Create(user).Error)

	app := fiber.New()
	app.Get("/questionnaire/desired", asUser(user.ID), s.GetDesiredQuestionnaire)
	app.Post("/questionnaire/self", asUser(user.ID), s.SubmitSelfQuestionnaire)
	app.Post("/questionnaire/desired", asUser(user.ID), s.SubmitDesiredQuestionnaire)

	// The desired question set follows the user's intent.
	req := httptest.NewRequest(http.MethodGet, "/questionnaire/desired", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var qBody struct {
		Intent    models.Intent       `json:"intent"`
		Questions []matching.Question `json:"questions"`
	}
	decodeJSON(t, resp, &qBody)
	assert.Equal(t, models.IntentSeekingRoom, qBody.Intent)
	assert.NotEmpty(t, qBody.Questions)

	// Submitting only the self questionnaire leaves the profile incomplete.
	resp = postJSON(t, app, "/questionnaire/self", fiber.Map{
		"answers": map[string]string{"cleanliness": "very-clean"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.User
	decodeJSON(t, resp, &updated)
	assert.Len(t, updated.SelfVector, matching.ExpectedVectorLength)
	assert.False(t, updated.IsProfileComplete)

	// The desired questionnaire completes it.
	resp = postJSON(t, app, "/questionnaire/desired", fiber.Map{
		"answers": map[string]string{"budgetRange": "25000-35000"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &updated)
	assert.True(t, updated.IsProfileComplete)

	// And the flag survived the round trip to the database.
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, stored.IsProfileComplete)
	assert.Len(t, stored.DesiredVector, matching.ExpectedVectorLength)
}

func TestGetUserProfileHidesContactDetails(t *testing.T) {
	s, db := newTestServer(t)

	viewer := createCompleteUser(t, db, "viewer@example.com", models.IntentSeekingRoom)
	other := createCompleteUser(t, db, "other@example.com", models.IntentSeekingRoommate)
	other.PhoneNumber = "+491701234567"
	require.NoError(t, db.Save(other).Error)

	app := fiber.New()
	app.Get("/users/:id", asUser(viewer.ID), s.GetUserProfile)

	req := httptest.NewRequest(http.MethodGet, "/users/2", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.User
	decodeJSON(t, resp, &body)
	assert.Equal(t, other.ID, body.ID)
	assert.Empty(t, body.Email)
	assert.Empty(t, body.PhoneNumber)
}
