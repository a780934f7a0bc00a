package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SwipesRecorded counts swipe decisions by action.
	SwipesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flatly_swipes_recorded_total",
		Help: "Total number of swipe decisions recorded, by action",
	}, []string{"action"})

	// MatchesCreated counts mutual matches created.
	MatchesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flatly_matches_created_total",
		Help: "Total number of mutual matches created",
	})

	// CandidatesScored counts compatibility scores computed during
	// candidate retrieval.
	CandidatesScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flatly_candidates_scored_total",
		Help: "Total number of candidates scored during retrieval",
	})

	// OrphanedMatchesRepaired counts mutual-like pairs healed by the
	// repair sweep.
	OrphanedMatchesRepaired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flatly_orphaned_matches_repaired_total",
		Help: "Total number of orphaned matches repaired",
	})

	// ReplacementListingsExpired counts replacement listings marked
	// expired by the deadline sweep.
	ReplacementListingsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flatly_replacement_listings_expired_total",
		Help: "Total number of replacement listings expired by the sweep",
	})

	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flatly_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})
)
