package osuapi

import (
	"context"
	"testing"
	"time"
)

func recentPayload(dates ...string) string {
	s := "["
	for i, d := range dates {
		if i > 0 {
			s += ","
		}
		s += `{"beatmap_id":"9","score":"100","maxcombo":"5","count50":"0","count100":"0","count300":"5",
			"countmiss":"0","countkatu":"0","countgeki":"0","perfect":"1","enabled_mods":"0",
			"user_id":"2","date":"` + d + `","rank":"S"}`
	}
	return s + "]"
}

func TestRecentTrackerReportsOnlyNewPlays(t *testing.T) {
	f, c := newFakeOsu(t)
	f.serve("/api/get_user_recent", recentPayload("2021-01-01 12:00:00", "2021-01-01 11:00:00"))

	tracker := c.TrackRecent(UserID(2))
	now := time.Date(2021, 1, 1, 12, 30, 0, 0, time.UTC)
	tracker.now = func() time.Time { return now }

	fresh, err := tracker.Poll(context.Background(), ModeStandard)
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(fresh) != 2 {
		t.Fatalf("first poll should report everything, got %d", len(fresh))
	}
	if q := f.lastQuery(t, "/api/get_user_recent"); q.Get("limit") != "100" || q.Get("u") != "2" {
		t.Fatalf("unexpected query: %v", q)
	}

	fresh, err = tracker.Poll(context.Background(), ModeStandard)
	if err != nil || len(fresh) != 0 {
		t.Fatalf("second poll: %v %d", err, len(fresh))
	}

	f.serve("/api/get_user_recent", recentPayload("2021-01-01 12:20:00", "2021-01-01 12:00:00", "2021-01-01 11:00:00"))
	fresh, err = tracker.Poll(context.Background(), ModeStandard)
	if err != nil || len(fresh) != 1 {
		t.Fatalf("third poll: %v %d", err, len(fresh))
	}
	if !fresh[0].Timestamp.Equal(time.Date(2021, 1, 1, 12, 20, 0, 0, time.UTC)) {
		t.Fatalf("wrong new play: %v", fresh[0].Timestamp)
	}
	if len(tracker.Known(ModeStandard)) != 3 || len(tracker.Known(ModeTaiko)) != 0 {
		t.Fatalf("known plays not tracked per mode")
	}
}

func TestRecentTrackerForgetsOldPlays(t *testing.T) {
	f, c := newFakeOsu(t)
	f.serve("/api/get_user_recent", recentPayload("2021-01-01 12:00:00"))

	tracker := c.TrackRecent(UserID(2))
	now := time.Date(2021, 1, 1, 12, 30, 0, 0, time.UTC)
	tracker.now = func() time.Time { return now }

	if _, err := tracker.Poll(context.Background(), ModeStandard); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	now = now.Add(25 * time.Hour)
	f.serve("/api/get_user_recent", `[]`)
	if _, err := tracker.Poll(context.Background(), ModeStandard); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if known := tracker.Known(ModeStandard); len(known) != 0 {
		t.Fatalf("plays older than a day kept: %v", known)
	}
}

func TestKnownReturnsCopy(t *testing.T) {
	f, c := newFakeOsu(t)
	f.serve("/api/get_user_recent", recentPayload("2021-01-01 12:00:00"))

	tracker := c.TrackRecent(UserID(2))
	tracker.now = func() time.Time { return time.Date(2021, 1, 1, 13, 0, 0, 0, time.UTC) }
	if _, err := tracker.Poll(context.Background(), ModeStandard); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	known := tracker.Known(ModeStandard)
	known[0].Score = 0
	if tracker.Known(ModeStandard)[0].Score != 100 {
		t.Fatalf("Known exposed internal state")
	}
}
