package osuapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// playerFetchConcurrency bounds the parallel get_user calls of FetchPlayers
const playerFetchConcurrency = 4

// Match is a past or ongoing multiplayer lobby
type Match struct {
	client *Client

	MatchID   int64      `json:"match_id"`
	Name      string     `json:"name"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"` // nil while the lobby is open
	Games     []Game     `json:"games"`
}

// Game is one round of a multiplayer lobby
type Game struct {
	client *Client

	GameID    int64        `json:"game_id"`
	MatchID   int64        `json:"match_id"`
	StartTime time.Time    `json:"start_time"`
	EndTime   *time.Time   `json:"end_time"`
	PlayMode  Mode         `json:"play_mode"`
	MapID     int64        `json:"beatmap_id"`
	MatchType int          `json:"match_type"`
	ScoreType WinCondition `json:"scoring_type"`
	TeamType  TeamType     `json:"team_type"`
	Mods      Mods         `json:"mods"`
	Scores    []MultiScore `json:"scores"`
}

// MultiScore is one player's result in a multiplayer game
type MultiScore struct {
	BaseScore
	MatchID int64 `json:"match_id"`
	GameID  int64 `json:"game_id"`
	Slot    int   `json:"slot"`
	Team    Team  `json:"team"`
	Rank    int   `json:"rank"`
	Passed  bool  `json:"pass"`
	Mods    Mods  `json:"mods"` // game mods plus the player's own free mods
}

func (s MultiScore) String() string {
	return fmt.Sprintf("%v score on beatmap %d by %d in match %d", s.Mods, s.MapID, s.UserID, s.MatchID)
}

type matchResponse struct {
	Match json.RawMessage `json:"match"`
	Games []gameResponse  `json:"games"`
}

type matchInfoResponse struct {
	MatchID   apiInt  `json:"match_id"`
	Name      string  `json:"name"`
	StartTime apiTime `json:"start_time"`
	EndTime   apiTime `json:"end_time"`
}

type gameResponse struct {
	GameID      apiInt          `json:"game_id"`
	StartTime   apiTime         `json:"start_time"`
	EndTime     apiTime         `json:"end_time"`
	BeatmapID   apiInt          `json:"beatmap_id"`
	PlayMode    Mode            `json:"play_mode,string"`
	MatchType   apiInt          `json:"match_type"`
	ScoringType WinCondition    `json:"scoring_type,string"`
	TeamType    TeamType        `json:"team_type,string"`
	Mods        Mods            `json:"mods"`
	Scores      []scoreResponse `json:"scores"`
}

func newGame(r gameResponse, matchID int64, client *Client) Game {
	g := Game{
		client:    client,
		GameID:    int64(r.GameID),
		MatchID:   matchID,
		StartTime: r.StartTime.Time,
		EndTime:   r.EndTime.ptr(),
		PlayMode:  r.PlayMode,
		MapID:     int64(r.BeatmapID),
		MatchType: int(r.MatchType),
		ScoreType: r.ScoringType,
		TeamType:  r.TeamType,
		Mods:      r.Mods,
		Scores:    make([]MultiScore, 0, len(r.Scores)),
	}

	for _, s := range r.Scores {
		rank, _ := strconv.Atoi(s.Rank)
		g.Scores = append(g.Scores, MultiScore{
			BaseScore: newBaseScore(s, g.MapID, client),
			MatchID:   matchID,
			GameID:    g.GameID,
			Slot:      int(s.Slot),
			Team:      s.Team,
			Rank:      rank,
			Passed:    bool(s.Pass),
			Mods:      g.Mods | s.EnabledMods,
		})
	}
	return g
}

func (g Game) String() string {
	return fmt.Sprintf("%d: %v %v game with %v on map %d", g.GameID, g.ScoreType, g.TeamType, g.Mods, g.MapID)
}

// Players lists the ids of everyone who played the game. Not an api call.
func (g Game) Players() []int64 {
	ids := make([]int64, 0, len(g.Scores))
	for _, s := range g.Scores {
		ids = append(ids, s.UserID)
	}
	return ids
}

// FetchMap makes an api call for the map the game was played on, in the game's mode
func (g Game) FetchMap(ctx context.Context) (*Map, error) {
	return g.client.FetchMapMode(ctx, g.MapID, g.PlayMode)
}

// URL is the lobby's page on the website
func (m Match) URL() string {
	return fmt.Sprintf("%s/community/matches/%d", m.client.BaseURL(), m.MatchID)
}

// Ongoing reports whether the lobby is still open
func (m Match) Ongoing() bool {
	return m.EndTime == nil
}

func (m Match) String() string {
	s := fmt.Sprintf("%d: %s", m.MatchID, m.Name)
	for _, g := range m.Games {
		s += "\n" + g.String()
	}
	return s
}

// Players lists everyone who played at least one game, in order of first appearance
func (m Match) Players() []int64 {
	seen := make(map[int64]bool)
	ids := make([]int64, 0)
	for _, g := range m.Games {
		for _, id := range g.Players() {
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// FetchPlayers fetches the profiles of every player of the match concurrently.
// Results follow the order of Players.
func (m Match) FetchPlayers(ctx context.Context, mode Mode) ([]User, error) {
	ids := m.Players()
	users := make([]User, len(ids))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(playerFetchConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			u, err := m.client.FetchUser(gCtx, UserID(id), mode)
			if err != nil {
				return fmt.Errorf("player %d of match %d: %w", id, m.MatchID, err)
			}
			users[i] = *u
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchMatch fetches a multiplayer lobby and all its games
func (c *Client) FetchMatch(ctx context.Context, matchID int64) (*Match, error) {
	params := url.Values{}
	params.Set("mp", strconv.FormatInt(matchID, 10))

	var resp matchResponse
	if err := c.v1Request(ctx, "get_match", params, &resp); err != nil {
		return nil, fmt.Errorf("error getting match. %w", err)
	}

	// unknown lobbies come back as {"match":0,"games":[]}
	raw := bytes.TrimSpace(resp.Match)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("match %d: %w", matchID, ErrMatchNotFound)
	}

	var info matchInfoResponse
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("error parsing match. %w", err)
	}

	m := &Match{
		client:    c,
		MatchID:   int64(info.MatchID),
		Name:      info.Name,
		StartTime: info.StartTime.Time,
		EndTime:   info.EndTime.ptr(),
		Games:     make([]Game, 0, len(resp.Games)),
	}
	for _, g := range resp.Games {
		m.Games = append(m.Games, newGame(g, m.MatchID, c))
	}
	return m, nil
}
