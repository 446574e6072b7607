package osuapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// UserRef selects a player either by id or by name. The name wins when both are set.
type UserRef struct {
	ID   int64
	Name string
}

// UserID refers to a player by their numeric id
func UserID(id int64) UserRef { return UserRef{ID: id} }

// Username refers to a player by their current name
func Username(name string) UserRef { return UserRef{Name: name} }

// IsZero reports whether the ref selects nobody
func (u UserRef) IsZero() bool {
	return u.ID == 0 && u.Name == ""
}

func (u UserRef) String() string {
	if u.Name != "" {
		return u.Name
	}
	return strconv.FormatInt(u.ID, 10)
}

func (u UserRef) apply(params url.Values) {
	if u.Name != "" {
		params.Set("u", u.Name)
		params.Set("type", "string")
	} else if u.ID != 0 {
		params.Set("u", strconv.FormatInt(u.ID, 10))
		params.Set("type", "id")
	}
}

// User is a player's profile for one gamemode
type User struct {
	client *Client

	ID          int64         `json:"user_id"`
	Username    string        `json:"username"`
	Mode        Mode          `json:"mode"`
	JoinDate    time.Time     `json:"join_date"`
	Country     string        `json:"country"`
	Num300      int64         `json:"count300"`
	Num100      int64         `json:"count100"`
	Num50       int64         `json:"count50"`
	PlayCount   int64         `json:"playcount"`
	RankedScore int64         `json:"ranked_score"`
	TotalScore  int64         `json:"total_score"`
	Rank        int64         `json:"pp_rank"`
	CountryRank int64         `json:"pp_country_rank"`
	Level       float64       `json:"level"`
	PP          float64       `json:"pp_raw"`
	Accuracy    float64       `json:"accuracy"`
	SSCount     int64         `json:"count_rank_ss"`
	SSHCount    int64         `json:"count_rank_ssh"`
	SCount      int64         `json:"count_rank_s"`
	SHCount     int64         `json:"count_rank_sh"`
	ACount      int64         `json:"count_rank_a"`
	Playtime    time.Duration `json:"playtime"`
}

type userResponse struct {
	UserID             apiInt   `json:"user_id"`
	Username           string   `json:"username"`
	JoinDate           apiTime  `json:"join_date"`
	Count300           apiInt   `json:"count300"`
	Count100           apiInt   `json:"count100"`
	Count50            apiInt   `json:"count50"`
	Playcount          apiInt   `json:"playcount"`
	RankedScore        apiInt   `json:"ranked_score"`
	TotalScore         apiInt   `json:"total_score"`
	PPRank             apiInt   `json:"pp_rank"`
	Level              apiFloat `json:"level"`
	PPRaw              apiFloat `json:"pp_raw"`
	Accuracy           apiFloat `json:"accuracy"`
	CountRankSS        apiInt   `json:"count_rank_ss"`
	CountRankSSH       apiInt   `json:"count_rank_ssh"`
	CountRankS         apiInt   `json:"count_rank_s"`
	CountRankSH        apiInt   `json:"count_rank_sh"`
	CountRankA         apiInt   `json:"count_rank_a"`
	Country            string   `json:"country"`
	TotalSecondsPlayed apiInt   `json:"total_seconds_played"`
	PPCountryRank      apiInt   `json:"pp_country_rank"`
}

func newUser(r userResponse, mode Mode, client *Client) User {
	return User{
		client:      client,
		ID:          int64(r.UserID),
		Username:    r.Username,
		Mode:        mode,
		JoinDate:    r.JoinDate.Time,
		Country:     r.Country,
		Num300:      int64(r.Count300),
		Num100:      int64(r.Count100),
		Num50:       int64(r.Count50),
		PlayCount:   int64(r.Playcount),
		RankedScore: int64(r.RankedScore),
		TotalScore:  int64(r.TotalScore),
		Rank:        int64(r.PPRank),
		CountryRank: int64(r.PPCountryRank),
		Level:       float64(r.Level),
		PP:          float64(r.PPRaw),
		Accuracy:    float64(r.Accuracy),
		SSCount:     int64(r.CountRankSS),
		SSHCount:    int64(r.CountRankSSH),
		SCount:      int64(r.CountRankS),
		SHCount:     int64(r.CountRankSH),
		ACount:      int64(r.CountRankA),
		Playtime:    time.Duration(r.TotalSecondsPlayed) * time.Second,
	}
}

func (u User) String() string {
	return u.Username
}

// AvatarURL is the player's profile picture
func (u User) AvatarURL() string {
	return fmt.Sprintf("https://s.ppy.sh/a/%d", u.ID)
}

// FetchBest makes an api call for the player's top plays
func (u User) FetchBest(ctx context.Context, mode Mode, limit int) ([]Score, error) {
	return u.client.FetchUserBest(ctx, UserID(u.ID), mode, limit)
}

// FetchRecent makes an api call for the player's plays of the last 24 hours
func (u User) FetchRecent(ctx context.Context, mode Mode, limit int) ([]RecentScore, error) {
	return u.client.FetchUserRecent(ctx, UserID(u.ID), mode, limit)
}

// FetchUser fetches a player's profile for the given gamemode
func (c *Client) FetchUser(ctx context.Context, user UserRef, mode Mode) (*User, error) {
	if user.IsZero() {
		return nil, ErrNoUser
	}

	params := url.Values{}
	params.Set("m", strconv.Itoa(int(mode)))
	user.apply(params)

	var resp []userResponse
	if err := c.v1Request(ctx, "get_user", params, &resp); err != nil {
		return nil, fmt.Errorf("error getting user. %w", err)
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("user %v: %w", user, ErrUserNotFound)
	}

	u := newUser(resp[0], mode, c)
	return &u, nil
}

// UserCompact has some basic user data from the v2 api
type UserCompact struct {
	AvatarURL     string    `json:"avatar_url"`
	CountryCode   string    `json:"country_code"`
	DefaultGroup  string    `json:"default_group"`
	ID            int64     `json:"id"`
	IsActive      bool      `json:"is_active"`
	IsBot         bool      `json:"is_bot"`
	IsOnline      bool      `json:"is_online"`
	IsSupporter   bool      `json:"is_supporter"`
	LastVisit     time.Time `json:"last_visit"`
	PmFriendsOnly bool      `json:"pm_friends_only"`
	ProfileColour string    `json:"profile_colour"`
	Username      string    `json:"username"`
}

// FetchMe returns info about the user the oauth token belongs to
func (c *Client) FetchMe(ctx context.Context, accessToken string) (*UserCompact, error) {
	var user UserCompact
	if err := c.v2Request(ctx, "me/osu", accessToken, &user); err != nil {
		return nil, fmt.Errorf("error getting current user. %w", err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("current user: %w", ErrUserNotFound)
	}
	return &user, nil
}
