package osuapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// BaseScore holds what every kind of score shares
type BaseScore struct {
	client *Client

	MapID    int64  `json:"beatmap_id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
	Score    int64  `json:"score"`
	Num300   int    `json:"count300"`
	Num100   int    `json:"count100"`
	Num50    int    `json:"count50"`
	Misses   int    `json:"countmiss"`
	NumKatu  int    `json:"countkatu"`
	NumGeki  int    `json:"countgeki"`
	MaxCombo int    `json:"maxcombo"`
	Perfect  bool   `json:"perfect"`
}

// SuccessfulHits is the number of non-misses
func (s BaseScore) SuccessfulHits() int {
	return s.Num300 + s.Num100 + s.Num50
}

// TotalHits is the number of judged objects
func (s BaseScore) TotalHits() int {
	return s.SuccessfulHits() + s.Misses
}

// Accuracy as a fraction in [0, 1], using the standard mode judgement weights
func (s BaseScore) Accuracy() float64 {
	total := s.TotalHits()
	if total == 0 {
		return 0
	}
	acc := float64(s.Num50*50+s.Num100*100+s.Num300*300) / float64(total*300)
	if acc > 1 {
		return 1
	}
	if acc < 0 {
		return 0
	}
	return acc
}

// FetchUser makes an api call for the player who set the score
func (s BaseScore) FetchUser(ctx context.Context, mode Mode) (*User, error) {
	return s.client.FetchUser(ctx, UserID(s.UserID), mode)
}

// FetchMap makes an api call for the map the score was set on
func (s BaseScore) FetchMap(ctx context.Context) (*Map, error) {
	return s.client.FetchMap(ctx, s.MapID)
}

// Score is a submitted play, as returned by leaderboards and top plays
type Score struct {
	BaseScore
	ScoreID         int64     `json:"score_id"`
	Timestamp       time.Time `json:"date"`
	Mods            Mods      `json:"enabled_mods"`
	Rank            string    `json:"rank"`
	PP              float64   `json:"pp"`
	ReplayAvailable bool      `json:"replay_available"`
}

func (s Score) String() string {
	return fmt.Sprintf("%v score on beatmap %d by %s", s.Mods, s.MapID, s.player())
}

// FetchReplay makes an api call for the score's replay
func (s Score) FetchReplay(ctx context.Context) (*Replay, error) {
	return s.client.FetchReplay(ctx, s.ScoreID)
}

// RecentScore is a play of the last 24 hours, passed or not
type RecentScore struct {
	BaseScore
	Timestamp time.Time `json:"date"`
	Mods      Mods      `json:"enabled_mods"`
	Rank      string    `json:"rank"`
}

func (s RecentScore) String() string {
	return fmt.Sprintf("%v score on beatmap %d by %s", s.Mods, s.MapID, s.player())
}

func (s BaseScore) player() string {
	if s.Username != "" {
		return s.Username
	}
	return strconv.FormatInt(s.UserID, 10)
}

type scoreResponse struct {
	BeatmapID       apiInt   `json:"beatmap_id"`
	ScoreID         apiInt   `json:"score_id"`
	Score           apiInt   `json:"score"`
	Username        string   `json:"username"`
	UserID          apiInt   `json:"user_id"`
	Count300        apiInt   `json:"count300"`
	Count100        apiInt   `json:"count100"`
	Count50         apiInt   `json:"count50"`
	CountMiss       apiInt   `json:"countmiss"`
	CountKatu       apiInt   `json:"countkatu"`
	CountGeki       apiInt   `json:"countgeki"`
	MaxCombo        apiInt   `json:"maxcombo"`
	Perfect         apiBool  `json:"perfect"`
	EnabledMods     Mods     `json:"enabled_mods"`
	Date            apiTime  `json:"date"`
	Rank            string   `json:"rank"`
	PP              apiFloat `json:"pp"`
	ReplayAvailable apiBool  `json:"replay_available"`

	// multiplayer only
	Slot apiInt  `json:"slot"`
	Team Team    `json:"team,string"`
	Pass apiBool `json:"pass"`
}

func newBaseScore(r scoreResponse, mapID int64, client *Client) BaseScore {
	return BaseScore{
		client:   client,
		MapID:    mapID,
		UserID:   int64(r.UserID),
		Username: r.Username,
		Score:    int64(r.Score),
		Num300:   int(r.Count300),
		Num100:   int(r.Count100),
		Num50:    int(r.Count50),
		Misses:   int(r.CountMiss),
		NumKatu:  int(r.CountKatu),
		NumGeki:  int(r.CountGeki),
		MaxCombo: int(r.MaxCombo),
		Perfect:  bool(r.Perfect),
	}
}

func newScore(r scoreResponse, mapID int64, client *Client) Score {
	return Score{
		BaseScore:       newBaseScore(r, mapID, client),
		ScoreID:         int64(r.ScoreID),
		Timestamp:       r.Date.Time,
		Mods:            r.EnabledMods,
		Rank:            r.Rank,
		PP:              float64(r.PP),
		ReplayAvailable: bool(r.ReplayAvailable),
	}
}

func newRecentScore(r scoreResponse, client *Client) RecentScore {
	return RecentScore{
		BaseScore: newBaseScore(r, int64(r.BeatmapID), client),
		Timestamp: r.Date.Time,
		Mods:      r.EnabledMods,
		Rank:      r.Rank,
	}
}

// ScoresOptions filters a map leaderboard request
type ScoresOptions struct {
	User  UserRef
	Mode  Mode
	Mods  *Mods // nil means any combination
	Limit int   // 1 to 100, default 50
}

const (
	defaultScoresLimit = 50
	defaultUserLimit   = 10
	maxScoresLimit     = 100
)

func setLimit(params url.Values, limit, def int) {
	if limit == 0 {
		limit = def
	}
	if limit >= 1 && limit <= maxScoresLimit {
		params.Set("limit", strconv.Itoa(limit))
	}
}

// FetchScores fetches the leaderboard of a map
func (c *Client) FetchScores(ctx context.Context, mapID int64, opts ScoresOptions) ([]Score, error) {
	params := url.Values{}
	params.Set("b", strconv.FormatInt(mapID, 10))
	params.Set("m", strconv.Itoa(int(opts.Mode)))
	opts.User.apply(params)
	if opts.Mods != nil {
		params.Set("mods", strconv.FormatUint(uint64(*opts.Mods), 10))
	}
	setLimit(params, opts.Limit, defaultScoresLimit)

	var resp []scoreResponse
	if err := c.v1Request(ctx, "get_scores", params, &resp); err != nil {
		return nil, fmt.Errorf("error getting scores. %w", err)
	}

	scores := make([]Score, 0, len(resp))
	for _, r := range resp {
		scores = append(scores, newScore(r, mapID, c))
	}
	return scores, nil
}

// FetchUserBest fetches a player's top plays, highest pp first
func (c *Client) FetchUserBest(ctx context.Context, user UserRef, mode Mode, limit int) ([]Score, error) {
	if user.IsZero() {
		return nil, ErrNoUser
	}

	params := url.Values{}
	params.Set("m", strconv.Itoa(int(mode)))
	user.apply(params)
	setLimit(params, limit, defaultUserLimit)

	var resp []scoreResponse
	if err := c.v1Request(ctx, "get_user_best", params, &resp); err != nil {
		return nil, fmt.Errorf("error getting best scores. %w", err)
	}

	scores := make([]Score, 0, len(resp))
	for _, r := range resp {
		scores = append(scores, newScore(r, int64(r.BeatmapID), c))
	}
	return scores, nil
}

// FetchUserRecent fetches a player's plays of the last 24 hours, newest first
func (c *Client) FetchUserRecent(ctx context.Context, user UserRef, mode Mode, limit int) ([]RecentScore, error) {
	if user.IsZero() {
		return nil, ErrNoUser
	}

	params := url.Values{}
	params.Set("m", strconv.Itoa(int(mode)))
	user.apply(params)
	setLimit(params, limit, defaultUserLimit)

	var resp []scoreResponse
	if err := c.v1Request(ctx, "get_user_recent", params, &resp); err != nil {
		return nil, fmt.Errorf("error getting recent scores. %w", err)
	}

	scores := make([]RecentScore, 0, len(resp))
	for _, r := range resp {
		scores = append(scores, newRecentScore(r, c))
	}
	return scores, nil
}
