package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"flatly/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedName  string
		expectedError string
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "name", "email", "city"}).
					AddRow(1, "Mira", "mira@example.com", "Berlin")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedName: "Mira",
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError != "" {
				assert.True(t, models.IsAppErrorCode(err, tt.expectedError))
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedName, user.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail_MissIsNotAnError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
		WithArgs("nobody@example.com", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(1, 1).
		WillReturnError(errors.New("connection timeout"))

	user, err := repo.GetByID(context.Background(), 1)
	assert.True(t, models.IsAppErrorCode(err, "INTERNAL_ERROR"))
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindCandidates(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	viewer := &models.User{
		ID:     1,
		City:   "Berlin",
		Intent: models.IntentSeekingRoom,
	}

	rows := sqlmock.NewRows([]string{"id", "name", "city", "intent"}).
		AddRow(2, "Jonas", "Berlin", string(models.IntentSeekingRoommate)).
		AddRow(5, "Lea", "Berlin-Mitte", string(models.IntentSeekingRoommate))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE intent = $1 AND LOWER(city) LIKE LOWER($2) AND is_profile_complete = $3 AND id != $4 AND id NOT IN ($5,$6) AND "users"."deleted_at" IS NULL LIMIT $7`)).
		WithArgs(string(models.IntentSeekingRoommate), "%Berlin%", true, 1, 3, 4, 30).
		WillReturnRows(rows)

	candidates, err := repo.FindCandidates(context.Background(), viewer, []uint{3, 4}, 30)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, uint(2), candidates[0].ID)
	assert.Equal(t, "Berlin-Mitte", candidates[1].City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindCandidates_NoExclusions(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	viewer := &models.User{
		ID:     7,
		City:   "Hamburg",
		Intent: models.IntentSeekingRoommate,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE intent = $1 AND LOWER(city) LIKE LOWER($2) AND is_profile_complete = $3 AND id != $4 AND "users"."deleted_at" IS NULL LIMIT $5`)).
		WithArgs(string(models.IntentSeekingRoom), "%Hamburg%", true, 7, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	candidates, err := repo.FindCandidates(context.Background(), viewer, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.NoError(t, mock.ExpectationsWereMet())
}
