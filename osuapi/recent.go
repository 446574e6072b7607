package osuapi

import (
	"context"
	"sync"
	"time"
)

// recentWindow is how far back get_user_recent reaches
const recentWindow = 24 * time.Hour

// RecentTracker remembers a player's recent plays so that only new ones are reported
type RecentTracker struct {
	client *Client
	user   UserRef
	now    func() time.Time

	mu      sync.Mutex
	recents map[Mode][]RecentScore
}

// TrackRecent starts tracking the recent plays of a player. Nothing is fetched until Poll.
func (c *Client) TrackRecent(user UserRef) *RecentTracker {
	return &RecentTracker{
		client:  c,
		user:    user,
		now:     time.Now,
		recents: make(map[Mode][]RecentScore),
	}
}

// Poll fetches the player's recent plays and returns the ones set since the previous poll.
// The first poll reports everything from the last 24 hours.
func (t *RecentTracker) Poll(ctx context.Context, mode Mode) ([]RecentScore, error) {
	fetched, err := t.client.FetchUserRecent(ctx, t.user, mode, maxScoresLimit)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	kept := t.recents[mode][:0]
	seen := make(map[time.Time]bool)
	for _, s := range t.recents[mode] {
		if s.Timestamp.Before(now.Add(-recentWindow)) || s.Timestamp.After(now) {
			continue
		}
		kept = append(kept, s)
		seen[s.Timestamp] = true
	}

	var fresh []RecentScore
	for _, s := range fetched {
		if seen[s.Timestamp] {
			continue
		}
		seen[s.Timestamp] = true
		fresh = append(fresh, s)
	}

	t.recents[mode] = append(kept, fresh...)
	return fresh, nil
}

// Known returns the plays remembered for a mode
func (t *RecentTracker) Known(mode Mode) []RecentScore {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]RecentScore, len(t.recents[mode]))
	copy(out, t.recents[mode])
	return out
}
