// Package service contains business logic built on top of the repositories.
package service

import (
	"context"
	"sort"
	"time"

	"flatly/internal/matching"
	"flatly/internal/models"
	"flatly/internal/observability"
	"flatly/internal/repository"
)

// OverFetchFactor controls how many candidates are pulled from the store
// per requested result. Gender-preference filtering and the score
// threshold run after the query, so the query has to over-fetch.
const OverFetchFactor = 3

// PotentialMatch is one ranked candidate returned to a browsing user.
type PotentialMatch struct {
	Candidate          models.User `json:"candidate"`
	MatchScore         float64     `json:"match_score"`
	HasPriorityListing bool        `json:"has_priority_listing"`
}

// SwipeResult reports the outcome of a recorded swipe.
type SwipeResult struct {
	Action     models.SwipeAction `json:"action"`
	TargetID   uint               `json:"target_id"`
	IsMatch    bool               `json:"is_match"`
	MatchScore float64            `json:"match_score"`
}

// MatchService implements candidate retrieval, swipe/match coordination,
// and the orphaned-match repair sweep.
type MatchService struct {
	userRepo    repository.UserRepository
	swipeRepo   repository.SwipeRepository
	matchRepo   repository.MatchRepository
	listingRepo repository.ListingRepository
}

// NewMatchService returns a new MatchService.
func NewMatchService(
	userRepo repository.UserRepository,
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	listingRepo repository.ListingRepository,
) *MatchService {
	return &MatchService{
		userRepo:    userRepo,
		swipeRepo:   swipeRepo,
		matchRepo:   matchRepo,
		listingRepo: listingRepo,
	}
}

// GetPotentialMatches returns up to limit candidates for the user, ranked
// with priority-listing owners first and by descending score within each
// group. Per-candidate failures degrade that candidate instead of
// aborting the batch.
func (s *MatchService) GetPotentialMatches(ctx context.Context, userID uint, limit int) ([]PotentialMatch, error) {
	ctx, span := observability.Tracer.Start(ctx, "matching.GetPotentialMatches")
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsProfileComplete {
		return nil, models.NewValidationError("Please complete your profile first")
	}
	if limit <= 0 {
		limit = 10
	}

	excluded, err := s.swipeRepo.ListSwipedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.userRepo.FindCandidates(ctx, user, excluded, limit*OverFetchFactor)
	if err != nil {
		return nil, err
	}

	results := make([]PotentialMatch, 0, len(candidates))
	for i := range candidates {
		candidate := candidates[i]

		// Room providers pick their roommate; room seekers take the room
		// as offered. The preference check is mutual.
		if user.Intent == models.IntentSeekingRoommate {
			if !user.AcceptsGender(candidate.Gender) || !candidate.AcceptsGender(user.Gender) {
				continue
			}
		}

		score := matching.Score(user, &candidate)
		observability.CandidatesScored.Inc()

		hasPriority := false
		if candidate.Intent == models.IntentSeekingRoommate {
			hasPriority, err = s.listingRepo.HasActivePriorityListing(ctx, candidate.ID)
			if err != nil {
				// A failed listing lookup costs the candidate its boost,
				// not its place in the batch.
				observability.GlobalLogger.WarnContext(ctx, "priority listing lookup failed",
					"candidate_id", candidate.ID, "error", err)
				hasPriority = false
				if score < matching.ScoreFloor {
					score = matching.ScoreFloor
				}
			}
		}

		finalScore := score
		if hasPriority {
			finalScore = score * matching.PriorityBoost
			if finalScore > 1 {
				finalScore = 1
			}
		}

		if finalScore <= matching.NoiseFloor {
			continue
		}

		candidate.Password = ""
		results = append(results, PotentialMatch{
			Candidate:          candidate,
			MatchScore:         finalScore,
			HasPriorityListing: hasPriority,
		})
	}

	// Replacement-listing owners rank strictly before everyone else,
	// whatever their score.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].HasPriorityListing != results[j].HasPriorityListing {
			return results[i].HasPriorityListing
		}
		return results[i].MatchScore > results[j].MatchScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// RecordSwipeAndCheckMatch records a like or dislike decision and, for a
// like, checks for a mutual match and creates the bidirectional match
// records. Decisions are final: a second swipe on the same target fails
// with a duplicate-decision error before anything is written.
func (s *MatchService) RecordSwipeAndCheckMatch(ctx context.Context, actorID, targetID uint, action models.SwipeAction) (*SwipeResult, error) {
	if !action.Valid() {
		return nil, models.NewValidationError("Action must be either \"like\" or \"dislike\"")
	}
	if actorID == targetID {
		return nil, models.NewValidationError("Cannot swipe on yourself")
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	existing, err := s.swipeRepo.GetByActorAndTarget(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateDecisionError(targetID)
	}

	if err := s.swipeRepo.Create(ctx, &models.Swipe{
		ActorID:  actorID,
		TargetID: targetID,
		Action:   action,
	}); err != nil {
		return nil, err
	}
	observability.SwipesRecorded.WithLabelValues(string(action)).Inc()

	result := &SwipeResult{Action: action, TargetID: targetID}
	if action != models.SwipeLike {
		return result, nil
	}

	// Re-read the actor's own just-written like instead of trusting the
	// in-memory state; the mutual check must run against the store.
	actorLikes, err := s.swipeRepo.HasLike(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	targetLikes, err := s.swipeRepo.HasLike(ctx, targetID, actorID)
	if err != nil {
		return nil, err
	}
	if !actorLikes || !targetLikes {
		return result, nil
	}

	// Mutual. An existing entry means the match was already created;
	// report it without recomputing or duplicating anything.
	alreadyMatched, err := s.matchRepo.GetByUserAndCounterpart(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if alreadyMatched != nil {
		result.IsMatch = true
		result.MatchScore = alreadyMatched.MatchScore
		return result, nil
	}

	score, err := s.createMatchPair(ctx, actor, target)
	if err != nil {
		// Never fabricate a confirmed match: if both writes cannot be
		// confirmed the caller sees the failure and the repair sweep
		// heals the pair later.
		return nil, err
	}

	result.IsMatch = true
	result.MatchScore = score
	return result, nil
}

// createMatchPair computes the score once, oriented from the actor who
// completed the match, and writes both sides with the same score and
// timestamp.
// The writes are independent; the unique index makes a concurrent
// duplicate creation a no-op rather than a second entry.
func (s *MatchService) createMatchPair(ctx context.Context, first, second *models.User) (float64, error) {
	score := matching.Score(first, second)
	now := time.Now()

	if err := s.matchRepo.CreateIgnoreDuplicate(ctx, &models.Match{
		UserID:        first.ID,
		CounterpartID: second.ID,
		MatchScore:    score,
		CreatedAt:     now,
	}); err != nil {
		return 0, err
	}
	if err := s.matchRepo.CreateIgnoreDuplicate(ctx, &models.Match{
		UserID:        second.ID,
		CounterpartID: first.ID,
		MatchScore:    score,
		CreatedAt:     now,
	}); err != nil {
		return 0, err
	}

	observability.MatchesCreated.Inc()
	return score, nil
}

// GetMatches returns the user's confirmed matches, newest first.
func (s *MatchService) GetMatches(ctx context.Context, userID uint) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].Counterpart.Password = ""
	}
	return matches, nil
}

// ScoreBetween returns the compatibility score between two users. A
// matched pair keeps the score its match was created with, even after a
// questionnaire resubmission changes the vectors; only unmatched pairs
// are scored on demand.
func (s *MatchService) ScoreBetween(ctx context.Context, userID, otherID uint) (float64, error) {
	match, err := s.matchRepo.GetByUserAndCounterpart(ctx, userID, otherID)
	if err != nil {
		return 0, err
	}
	if match != nil {
		return match.MatchScore, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	other, err := s.userRepo.GetByID(ctx, otherID)
	if err != nil {
		return 0, err
	}
	return matching.Score(user, other), nil
}

// Unmatch removes both sides of an existing match.
func (s *MatchService) Unmatch(ctx context.Context, userID, counterpartID uint) error {
	match, err := s.matchRepo.GetByUserAndCounterpart(ctx, userID, counterpartID)
	if err != nil {
		return err
	}
	if match == nil {
		return models.NewNotFoundError("Match", counterpartID)
	}
	return s.matchRepo.DeletePair(ctx, userID, counterpartID)
}

// SwipeHistory groups a user's past decisions by direction.
type SwipeHistory struct {
	Liked    []models.User `json:"liked"`
	Disliked []models.User `json:"disliked"`
}

// GetSwipeHistory returns the users the actor has liked and disliked.
func (s *MatchService) GetSwipeHistory(ctx context.Context, actorID uint) (*SwipeHistory, error) {
	swipes, err := s.swipeRepo.ListByActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	history := &SwipeHistory{Liked: []models.User{}, Disliked: []models.User{}}
	for i := range swipes {
		swipes[i].Target.Password = ""
		if swipes[i].Action == models.SwipeLike {
			history.Liked = append(history.Liked, swipes[i].Target)
		} else {
			history.Disliked = append(history.Disliked, swipes[i].Target)
		}
	}
	return history, nil
}

// RepairOrphanedMatches scans all users with recorded likes and creates
// the missing match entries for mutual-like pairs that lack them. It is
// the compensating control for the non-atomic two-write match creation,
// intended for the repair command and an admin endpoint, not the hot path.
func (s *MatchService) RepairOrphanedMatches(ctx context.Context) (int, error) {
	actors, err := s.swipeRepo.ListActorsWithLikes(ctx)
	if err != nil {
		return 0, err
	}

	type pairKey struct{ lo, hi uint }
	seen := make(map[pairKey]bool)
	fixed := 0

	for _, actorID := range actors {
		likedIDs, err := s.swipeRepo.ListLikedIDs(ctx, actorID)
		if err != nil {
			return fixed, err
		}

		for _, targetID := range likedIDs {
			key := pairKey{lo: actorID, hi: targetID}
			if key.lo > key.hi {
				key.lo, key.hi = key.hi, key.lo
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			mutual, err := s.swipeRepo.HasLike(ctx, targetID, actorID)
			if err != nil {
				return fixed, err
			}
			if !mutual {
				continue
			}

			actorSide, err := s.matchRepo.GetByUserAndCounterpart(ctx, actorID, targetID)
			if err != nil {
				return fixed, err
			}
			targetSide, err := s.matchRepo.GetByUserAndCounterpart(ctx, targetID, actorID)
			if err != nil {
				return fixed, err
			}
			if actorSide != nil && targetSide != nil {
				continue
			}

			actor, err := s.userRepo.GetByID(ctx, actorID)
			if err != nil {
				return fixed, err
			}
			target, err := s.userRepo.GetByID(ctx, targetID)
			if err != nil {
				// A dangling like on a deleted user is not repairable.
				if models.IsAppErrorCode(err, "NOT_FOUND") {
					continue
				}
				return fixed, err
			}

			// Reuse the surviving side's score when one side exists, so
			// both rows stay identical; otherwise compute fresh.
			score := 0.0
			now := time.Now()
			switch {
			case actorSide != nil:
				score = actorSide.MatchScore
			case targetSide != nil:
				score = targetSide.MatchScore
			default:
				score = matching.Score(actor, target)
			}

			if actorSide == nil {
				if err := s.matchRepo.CreateIgnoreDuplicate(ctx, &models.Match{
					UserID: actorID, CounterpartID: targetID, MatchScore: score, CreatedAt: now,
				}); err != nil {
					return fixed, err
				}
			}
			if targetSide == nil {
				if err := s.matchRepo.CreateIgnoreDuplicate(ctx, &models.Match{
					UserID: targetID, CounterpartID: actorID, MatchScore: score, CreatedAt: now,
				}); err != nil {
					return fixed, err
				}
			}

			fixed++
			observability.OrphanedMatchesRepaired.Inc()
		}
	}
	return fixed, nil
}
