// Package seed provides helpers to create demo and test data for the
// application database. Intended for development only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"flatly/internal/matching"
	"flatly/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var seedCities = []string{"Berlin", "Hamburg", "Munich", "Cologne", "Leipzig"}

// Answer pools mirror the questionnaire mapping tables so seeded
// profiles land on varied, meaningful vector slots.
var selfAnswerOptions = map[string][]string{
	"cleanliness":  {"very-clean", "clean", "moderate", "relaxed"},
	"sleepPattern": {"early-bird", "normal", "night-owl"},
	"workStyle":    {"wfh", "hybrid", "office"},
	"foodHabits":   {"cook-often", "sometimes", "order-out", "rarely"},
	"partyStyle":   {"party-lover", "occasional", "quiet"},
	"guests":       {"frequently", "sometimes", "rarely"},
	"socialEnergy": {"very-social", "social", "moderate", "introvert"},
	"petTolerance": {"love-pets", "okay-with-pets", "no-pets"},
	"musicVolume":  {"loud", "moderate", "quiet"},
	"weekendPref":  {"go-out", "home-activities", "rest"},
}

var desiredRoommateAnswerOptions = map[string][]string{
	"cleanlinessExpectation": {"very-important", "important", "somewhat", "not-important"},
	"noiseTolerance":         {"very-tolerant", "tolerant", "moderate", "low-tolerance"},
	"foodPreference":         {"similar", "complementary", "no-preference"},
	"guestsPolicy":           {"frequent-ok", "occasional-ok", "prefer-none"},
	"choreExpectations":      {"shared-equally", "flexible", "individual"},
	"sleepSync":              {"similar-schedule", "flexible", "no-preference"},
	"redFlags":               {"none", "minor-issues", "major-concerns"},
	"colivingVibe":           {"friends", "friendly", "respectful", "minimal"},
}

var desiredRoomAnswerOptions = map[string][]string{
	"budgetRange":        {"under-15000", "15000-25000", "25000-35000", "35000-45000", "over-45000"},
	"roomType":           {"private-room", "studio", "flexible", "shared-room"},
	"locationPreference": {"very-important", "important", "flexible", "not-important"},
	"moveInTimeline":     {"asap", "month", "next-month", "flexible"},
	"leaseLength":        {"long-term", "medium-term", "short-term", "flexible"},
	"amenities":          {"essential", "important", "flexible", "minimal"},
	"furnished":          {"furnished", "partially", "flexible", "unfurnished"},
	"roommatePreference": {"prefer-roommates", "okay-roommates", "prefer-alone", "must-alone"},
}

func (f *Factory) pick(options []string) string {
	return options[f.rng.Intn(len(options))]
}

func (f *Factory) randomAnswers(options map[string][]string) map[string]string {
	answers := make(map[string]string, len(options))
	for id, opts := range options {
		answers[id] = f.pick(opts)
	}
	return answers
}

// CreateUser persists a user with a hashed password, coherent
// questionnaire vectors, and a complete profile.
func (f *Factory) CreateUser(intent models.Intent, city string, overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	selfAnswers := f.randomAnswers(selfAnswerOptions)
	var desiredAnswers map[string]string
	if intent == models.IntentSeekingRoommate {
		desiredAnswers = f.randomAnswers(desiredRoommateAnswerOptions)
	} else {
		desiredAnswers = f.randomAnswers(desiredRoomAnswerOptions)
	}

	genders := []string{models.GenderMale, models.GenderFemale, models.GenderOther}
	user := &models.User{
		Email:           gofakeit.Email(),
		Password:        string(hashed),
		Name:            gofakeit.Name(),
		Age:             f.rng.Intn(20) + 20,
		City:            city,
		PhoneNumber:     gofakeit.Phone(),
		Bio:             gofakeit.Sentence(10),
		InstagramHandle: gofakeit.Username(),
		Gender:          f.pick(genders),
		PreferredGender: models.GenderAny,
		Intent:          intent,
		SelfVector:      matching.MapSelfAnswers(selfAnswers),
		DesiredVector:   matching.MapDesiredAnswers(intent, desiredAnswers),
		LastActive:      gofakeit.DateRange(time.Now().AddDate(0, 0, -30), time.Now()),
	}
	user.RecomputeProfileComplete()

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateListing persists a listing for the given room provider.
func (f *Factory) CreateListing(owner *models.User, overrides ...func(*models.Listing)) (*models.Listing, error) {
	roomTypes := []string{"private", "shared", "studio"}
	listing := &models.Listing{
		OwnerID:     owner.ID,
		Title:       fmt.Sprintf("%s room in %s", gofakeit.AdjectiveDescriptive(), owner.City),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		RoomType:    f.pick(roomTypes),
		Rent:        (f.rng.Intn(12) + 4) * 100,
		City:        owner.City,
		Area:        gofakeit.Street(),
		Amenities:   "wifi,washer,kitchen",
		Status:      models.ListingStatusActive,
	}

	for _, override := range overrides {
		override(listing)
	}

	if err := f.db.Create(listing).Error; err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return listing, nil
}

// CreateReplacementListing persists an active replacement listing whose
// deadline lies the given number of days in the future.
func (f *Factory) CreateReplacementListing(owner *models.User, daysUntilDeadline int) (*models.Listing, error) {
	deadline := time.Now().AddDate(0, 0, daysUntilDeadline)
	return f.CreateListing(owner, func(l *models.Listing) {
		l.IsReplacementListing = true
		l.ReplacementDeadline = &deadline
		l.ReplacementStatus = models.ReplacementActive
	})
}

// CreateSwipe records a decision between two users.
func (f *Factory) CreateSwipe(actor, target *models.User, action models.SwipeAction) error {
	swipe := &models.Swipe{
		ActorID:  actor.ID,
		TargetID: target.ID,
		Action:   action,
	}
	if err := f.db.Create(swipe).Error; err != nil {
		return fmt.Errorf("create swipe: %w", err)
	}
	return nil
}

// CreateMutualMatch records mutual likes between two users and the
// resulting pair of match rows, the same shape the live path writes.
func (f *Factory) CreateMutualMatch(a, b *models.User) error {
	if err := f.CreateSwipe(a, b, models.SwipeLike); err != nil {
		return err
	}
	if err := f.CreateSwipe(b, a, models.SwipeLike); err != nil {
		return err
	}

	score := matching.Score(a, b)
	now := time.Now()
	pair := []models.Match{
		{UserID: a.ID, CounterpartID: b.ID, MatchScore: score, CreatedAt: now},
		{UserID: b.ID, CounterpartID: a.ID, MatchScore: score, CreatedAt: now},
	}
	if err := f.db.Create(&pair).Error; err != nil {
		return fmt.Errorf("create match pair: %w", err)
	}
	return nil
}
