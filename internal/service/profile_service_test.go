package service

import (
	"context"
	"testing"

	"flatly/internal/matching"
	"flatly/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-profile-tests"

func TestSignupValidation(t *testing.T) {
	svc := NewProfileService(&userRepoStub{
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
	}, testSecret)

	tests := []struct {
		name string
		in   SignupInput
	}{
		{"missing email", SignupInput{Password: "password123", Name: "Ana"}},
		{"bad email", SignupInput{Email: "not-an-email", Password: "password123", Name: "Ana"}},
		{"short password", SignupInput{Email: "ana@example.com", Password: "short", Name: "Ana"}},
		{"missing name", SignupInput{Email: "ana@example.com", Password: "password123"}},
		{"bad intent", SignupInput{Email: "ana@example.com", Password: "password123", Name: "Ana", Intent: "browsing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, models.IsAppErrorCode(err, "VALIDATION_ERROR"))
		})
	}
}

func TestSignupHashesPasswordAndIssuesToken(t *testing.T) {
	var created *models.User
	svc := NewProfileService(&userRepoStub{
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 7
			created = u
			return nil
		},
	}, testSecret)

	result, err := svc.Signup(context.Background(), SignupInput{
		Email:    "Ana@Example.com",
		Password: "password123",
		Name:     "Ana",
		City:     "Berlin",
		Intent:   models.IntentSeekingRoom,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "ana@example.com", created.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))

	token, err := jwt.Parse(result.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "7", claims["sub"])
	assert.Equal(t, "flatly-api", claims["iss"])
	assert.NotEmpty(t, claims["jti"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := NewProfileService(&userRepoStub{
		getByEmailFn: func(context.Context, string) (*models.User, error) {
			return &models.User{ID: 1, Email: "ana@example.com"}, nil
		},
	}, testSecret)

	_, err := svc.Signup(context.Background(), SignupInput{
		Email: "ana@example.com", Password: "password123", Name: "Ana",
	})
	require.Error(t, err)
	assert.True(t, models.IsAppErrorCode(err, "VALIDATION_ERROR"))
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	stub := &userRepoStub{
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			if email == "ana@example.com" {
				return &models.User{ID: 7, Email: email, Password: string(hashed)}, nil
			}
			return nil, nil
		},
		updateFn: func(context.Context, *models.User) error { return nil },
	}
	svc := NewProfileService(stub, testSecret)

	t.Run("success", func(t *testing.T) {
		result, err := svc.Login(context.Background(), "Ana@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, uint(7), result.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ana@example.com", "wrong")
		require.Error(t, err)
		assert.True(t, models.IsAppErrorCode(err, "UNAUTHORIZED"))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "password123")
		require.Error(t, err)
		assert.True(t, models.IsAppErrorCode(err, "UNAUTHORIZED"))
	})
}

func TestSubmitQuestionnaires(t *testing.T) {
	user := &models.User{ID: 1, Intent: models.IntentSeekingRoom}
	stub := &userRepoStub{
		getByIDFn: func(context.Context, uint) (*models.User, error) { return user, nil },
		updateFn:  func(context.Context, *models.User) error { return nil },
	}
	svc := NewProfileService(stub, testSecret)

	updated, err := svc.SubmitSelfQuestionnaire(context.Background(), 1, map[string]string{
		"cleanliness": "very-clean",
	})
	require.NoError(t, err)
	assert.Len(t, updated.SelfVector, matching.ExpectedVectorLength)
	assert.False(t, updated.IsProfileComplete, "desired vector still missing")

	updated, err = svc.SubmitDesiredQuestionnaire(context.Background(), 1, map[string]string{
		"budgetRange": "25000-35000",
	})
	require.NoError(t, err)
	assert.Len(t, updated.DesiredVector, matching.ExpectedVectorLength)
	assert.True(t, updated.IsProfileComplete)
}

func TestSubmitDesiredQuestionnaireRequiresIntent(t *testing.T) {
	user := &models.User{ID: 1}
	svc := NewProfileService(&userRepoStub{
		getByIDFn: func(context.Context, uint) (*models.User, error) { return user, nil },
	}, testSecret)

	_, err := svc.SubmitDesiredQuestionnaire(context.Background(), 1, nil)
	require.Error(t, err)
	assert.True(t, models.IsAppErrorCode(err, "VALIDATION_ERROR"))
}

func TestUpdateProfileIntentChangeInvalidatesDesiredVector(t *testing.T) {
	user := completeUser(1, models.IntentSeekingRoom)
	svc := NewProfileService(&userRepoStub{
		getByIDFn: func(context.Context, uint) (*models.User, error) { return user, nil },
		updateFn:  func(context.Context, *models.User) error { return nil },
	}, testSecret)

	updated, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1,
		Intent: models.IntentSeekingRoommate,
	})
	require.NoError(t, err)
	assert.Equal(t, models.IntentSeekingRoommate, updated.Intent)
	assert.Empty(t, updated.DesiredVector)
	assert.False(t, updated.IsProfileComplete)
}
