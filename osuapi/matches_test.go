package osuapi

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFetchMatch(t *testing.T) {
	f, c := newFakeOsu(t)
	f.serve("/api/get_match", matchPayload)

	m, err := c.FetchMatch(context.Background(), 59225434)
	if err != nil {
		t.Fatalf("FetchMatch: %v", err)
	}
	if q := f.lastQuery(t, "/api/get_match"); q.Get("mp") != "59225434" {
		t.Fatalf("unexpected query: %v", q)
	}

	if m.MatchID != 59225434 || m.Name != "OWC: (United Kingdom) vs (Germany)" || m.Ongoing() {
		t.Fatalf("unexpected match: %+v", m)
	}
	if m.EndTime == nil || !m.EndTime.Equal(time.Date(2020, 1, 5, 19, 30, 0, 0, time.UTC)) {
		t.Fatalf("end time = %v", m.EndTime)
	}
	if m.URL() != c.BaseURL()+"/community/matches/59225434" {
		t.Fatalf("url = %s", m.URL())
	}
	if len(m.Games) != 2 {
		t.Fatalf("got %d games", len(m.Games))
	}

	g := m.Games[0]
	if g.GameID != 300000001 || g.MatchID != m.MatchID || g.MapID != 2413216 {
		t.Fatalf("unexpected game: %+v", g)
	}
	if g.ScoreType != WinConditionScoreV2 || g.TeamType != TeamTypeTeamVs || g.Mods != NoFail {
		t.Fatalf("unexpected game settings: %v %v %v", g.ScoreType, g.TeamType, g.Mods)
	}
	if got := g.String(); got != "300000001: scorev2 team vs game with NF on map 2413216" {
		t.Fatalf("String() = %q", got)
	}

	first, second := g.Scores[0], g.Scores[1]
	if first.Mods != NoFail|Hidden || second.Mods != NoFail {
		t.Fatalf("free mods not merged: %v %v", first.Mods, second.Mods)
	}
	if first.Team != TeamBlue || second.Team != TeamRed || !first.Passed || second.Passed {
		t.Fatalf("unexpected teams/pass: %+v %+v", first, second)
	}
	if first.GameID != g.GameID || first.MatchID != m.MatchID || first.MapID != g.MapID || second.Slot != 1 {
		t.Fatalf("score back references wrong: %+v", second)
	}

	if ids := g.Players(); len(ids) != 2 || ids[0] != 11903239 || ids[1] != 2 {
		t.Fatalf("game players = %v", ids)
	}
	if ids := m.Players(); len(ids) != 3 || ids[2] != 3 {
		t.Fatalf("match players = %v", ids)
	}
}

func TestFetchMatchOngoingAndMissing(t *testing.T) {
	f, c := newFakeOsu(t)
	f.serve("/api/get_match", ongoingMatchPayload)

	m, err := c.FetchMatch(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchMatch: %v", err)
	}
	if !m.Ongoing() || len(m.Games) != 0 {
		t.Fatalf("expected open empty lobby: %+v", m)
	}

	f.serve("/api/get_match", missingMatchPayload)
	if _, err := c.FetchMatch(context.Background(), 8); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestMatchFetchPlayers(t *testing.T) {
	f, c := newFakeOsu(t)
	f.serve("/api/get_match", matchPayload)
	f.serve("/api/get_user", userPayload)

	m, err := c.FetchMatch(context.Background(), 59225434)
	if err != nil {
		t.Fatalf("FetchMatch: %v", err)
	}

	users, err := m.FetchPlayers(context.Background(), ModeStandard)
	if err != nil {
		t.Fatalf("FetchPlayers: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("got %d users", len(users))
	}
	if f.calls("/api/get_user") != 3 {
		t.Fatalf("expected one lookup per distinct player, got %d", f.calls("/api/get_user"))
	}

	f.serve("/api/get_user", `[]`)
	if _, err := m.FetchPlayers(context.Background(), ModeStandard); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGameFetchMapUsesPlayMode(t *testing.T) {
	f, c := newFakeOsu(t)
	f.serve("/api/get_match", matchPayload)
	f.serve("/api/get_beatmaps", beatmapsPayload)

	m, err := c.FetchMatch(context.Background(), 59225434)
	if err != nil {
		t.Fatalf("FetchMatch: %v", err)
	}

	g := m.Games[0]
	if _, err := g.FetchMap(context.Background()); err != nil {
		t.Fatalf("FetchMap: %v", err)
	}
	if q := f.lastQuery(t, "/api/get_beatmaps"); q.Get("m") != "0" || q.Has("a") {
		t.Fatalf("standard game query: %v", q)
	}

	g.PlayMode = ModeTaiko
	if _, err := g.FetchMap(context.Background()); err != nil {
		t.Fatalf("FetchMap: %v", err)
	}
	if q := f.lastQuery(t, "/api/get_beatmaps"); q.Get("b") != "2413216" || q.Get("m") != "1" || q.Get("a") != "1" {
		t.Fatalf("taiko game query: %v", q)
	}
}
