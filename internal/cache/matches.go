package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// PotentialMatchesTTL bounds staleness of the discovery feed.
	PotentialMatchesTTL = 2 * time.Minute
	// MatchListTTL bounds staleness of the confirmed-match list.
	MatchListTTL = 5 * time.Minute
)

func potentialMatchesKey(userID uint, limit int) string {
	return fmt.Sprintf("flatly:potential:%d:%d", userID, limit)
}

func matchListKey(userID uint) string {
	return fmt.Sprintf("flatly:matches:%d", userID)
}

// GetJSON reads key and unmarshals it into dest. Returns false on miss
// or when Redis is unavailable.
func GetJSON(ctx context.Context, key string, dest any) bool {
	c := GetClient()
	if c == nil {
		return false
	}
	raw, err := c.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Stale or corrupt entry, drop it.
		c.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON marshals value and stores it under key with the given TTL.
// Best effort; failures are ignored.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	c := GetClient()
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.Set(ctx, key, raw, ttl)
}

// GetPotentialMatches returns a cached discovery feed for the user, if any.
func GetPotentialMatches(ctx context.Context, userID uint, limit int, dest any) bool {
	return GetJSON(ctx, potentialMatchesKey(userID, limit), dest)
}

// SetPotentialMatches caches a discovery feed for the user.
func SetPotentialMatches(ctx context.Context, userID uint, limit int, value any) {
	SetJSON(ctx, potentialMatchesKey(userID, limit), value, PotentialMatchesTTL)
}

// GetMatchList returns the cached confirmed-match list for the user, if any.
func GetMatchList(ctx context.Context, userID uint, dest any) bool {
	return GetJSON(ctx, matchListKey(userID), dest)
}

// SetMatchList caches the confirmed-match list for the user.
func SetMatchList(ctx context.Context, userID uint, value any) {
	SetJSON(ctx, matchListKey(userID), value, MatchListTTL)
}

// InvalidateUser drops every cached feed and match list for the user.
// Called after a swipe, a profile update, or an unmatch, since any of
// those can change what the user should see.
func InvalidateUser(ctx context.Context, userID uint) {
	c := GetClient()
	if c == nil {
		return
	}
	iter := c.Scan(ctx, 0, fmt.Sprintf("flatly:potential:%d:*", userID), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	keys = append(keys, matchListKey(userID))
	if err := c.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return
	}
}
