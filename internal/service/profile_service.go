package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"flatly/internal/matching"
	"flatly/internal/models"
	"flatly/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ProfileService handles registration, login, and profile lifecycle.
type ProfileService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

func NewProfileService(userRepo repository.UserRepository, jwtSecret string) *ProfileService {
	return &ProfileService{userRepo: userRepo, jwtSecret: jwtSecret}
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Age      int
	City     string
	Gender   string
	Intent   models.Intent
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup registers a new user and returns a signed token.
func (s *ProfileService) Signup(ctx context.Context, in SignupInput) (*LoginResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, models.NewValidationError("A valid email is required")
	}
	if len(in.Password) < 8 {
		return nil, models.NewValidationError("Password must be at least 8 characters")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if in.Intent != "" && !in.Intent.Valid() {
		return nil, models.NewValidationError("Intent must be seeking-room or seeking-roommate")
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:      in.Email,
		Password:   string(hashed),
		Name:       strings.TrimSpace(in.Name),
		Age:        in.Age,
		City:       strings.TrimSpace(in.City),
		Gender:     in.Gender,
		Intent:     in.Intent,
		LastActive: time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// Login authenticates a user by email and password.
func (s *ProfileService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}

	user.LastActive = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (s *ProfileService) issueToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "flatly-api",
		"aud": "flatly-clients",
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

func (s *ProfileService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

type UpdateProfileInput struct {
	UserID          uint
	Name            string
	Age             int
	City            string
	PhoneNumber     string
	Bio             string
	InstagramHandle string
	Gender          string
	PreferredGender string
	Intent          models.Intent
}

// UpdateProfile applies partial changes to a user's profile. Changing
// intent invalidates the desired vector since the desired questionnaire
// differs per intent.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxNameLen = 60

	if in.Name != "" {
		if len(in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 60 characters)")
		}
		user.Name = in.Name
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Age != 0 {
		if in.Age < 16 || in.Age > 120 {
			return nil, models.NewValidationError("Age out of range")
		}
		user.Age = in.Age
	}
	if in.City != "" {
		user.City = strings.TrimSpace(in.City)
	}
	if in.PhoneNumber != "" {
		user.PhoneNumber = in.PhoneNumber
	}
	if in.InstagramHandle != "" {
		user.InstagramHandle = in.InstagramHandle
	}
	if in.Gender != "" {
		user.Gender = in.Gender
	}
	if in.PreferredGender != "" {
		user.PreferredGender = in.PreferredGender
	}
	if in.Intent != "" {
		if !in.Intent.Valid() {
			return nil, models.NewValidationError("Intent must be seeking-room or seeking-roommate")
		}
		if in.Intent != user.Intent {
			user.Intent = in.Intent
			user.DesiredVector = nil
			user.RecomputeProfileComplete()
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SubmitSelfQuestionnaire maps the answers onto the user's self vector.
// The vector is replaced wholesale on every submission.
func (s *ProfileService) SubmitSelfQuestionnaire(ctx context.Context, userID uint, answers map[string]string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.SelfVector = matching.MapSelfAnswers(answers)
	user.RecomputeProfileComplete()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SubmitDesiredQuestionnaire maps the answers onto the user's desired
// vector using the question set matching the user's intent.
func (s *ProfileService) SubmitDesiredQuestionnaire(ctx context.Context, userID uint, answers map[string]string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Intent.Valid() {
		return nil, models.NewValidationError("Set your intent before submitting the questionnaire")
	}

	user.DesiredVector = matching.MapDesiredAnswers(user.Intent, answers)
	user.RecomputeProfileComplete()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
