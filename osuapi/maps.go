package osuapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// total_length the api reports for maps it couldn't measure
const unknownLength = 4294967295

// Map is a single difficulty of a beatmapset
type Map struct {
	client *Client

	BeatmapID      int64    `json:"beatmap_id"`
	MapsetID       int64    `json:"beatmapset_id"`
	SongTitle      string   `json:"title"`
	Artist         string   `json:"artist"`
	DifficultyName string   `json:"version"`
	CreatorName    string   `json:"creator"`
	CreatorID      int64    `json:"creator_id"`
	Source         string   `json:"source"`
	Tags           []string `json:"tags"`
	Mode           Mode     `json:"mode"`
	Genre          Genre    `json:"genre"`
	Language       Language `json:"language"`
	Approval       Approval `json:"approval"`
	MD5Hash        string   `json:"file_md5"`

	BPM          float64 `json:"bpm"`
	Length       float64 `json:"total_length"`
	DrainLength  float64 `json:"hit_length"`
	MaxCombo     int     `json:"max_combo"`
	CircleCount  int     `json:"count_normal"`
	SliderCount  int     `json:"count_slider"`
	SpinnerCount int     `json:"count_spinner"`
	TotalObjects int     `json:"total_objects"`

	StarRating        float64 `json:"star_rating"`
	AimDifficulty     float64 `json:"diff_aim"`
	SpeedDifficulty   float64 `json:"diff_speed"`
	CircleSize        float64 `json:"diff_size"`
	OverallDifficulty float64 `json:"diff_overall"`
	ApproachRate      float64 `json:"diff_approach"`
	HPDrain           float64 `json:"diff_drain"`

	Favourites int64   `json:"favourite_count"`
	Rating     float64 `json:"rating"`
	Playcount  int64   `json:"playcount"`
	Passcount  int64   `json:"passcount"`

	Storyboard          bool `json:"storyboard"`
	Video               bool `json:"video"`
	DownloadUnavailable bool `json:"download_unavailable"`
	AudioUnavailable    bool `json:"audio_unavailable"`

	DateSubmitted time.Time  `json:"submit_date"`
	DateApproved  *time.Time `json:"approved_date"`
	LastUpdate    time.Time  `json:"last_update"`
}

type mapResponse struct {
	BeatmapID           apiInt   `json:"beatmap_id"`
	BeatmapsetID        apiInt   `json:"beatmapset_id"`
	Title               string   `json:"title"`
	Artist              string   `json:"artist"`
	Version             string   `json:"version"`
	Creator             string   `json:"creator"`
	CreatorID           apiInt   `json:"creator_id"`
	Source              string   `json:"source"`
	Tags                string   `json:"tags"`
	Mode                Mode     `json:"mode,string"`
	Genre               Genre    `json:"genre_id,string"`
	Language            Language `json:"language_id,string"`
	Approved            Approval `json:"approved,string"`
	FileMD5             string   `json:"file_md5"`
	BPM                 apiFloat `json:"bpm"`
	TotalLength         apiFloat `json:"total_length"`
	HitLength           apiFloat `json:"hit_length"`
	MaxCombo            apiInt   `json:"max_combo"`
	CountNormal         apiInt   `json:"count_normal"`
	CountSlider         apiInt   `json:"count_slider"`
	CountSpinner        apiInt   `json:"count_spinner"`
	DifficultyRating    apiFloat `json:"difficultyrating"`
	DiffAim             apiFloat `json:"diff_aim"`
	DiffSpeed           apiFloat `json:"diff_speed"`
	DiffSize            apiFloat `json:"diff_size"`
	DiffOverall         apiFloat `json:"diff_overall"`
	DiffApproach        apiFloat `json:"diff_approach"`
	DiffDrain           apiFloat `json:"diff_drain"`
	FavouriteCount      apiInt   `json:"favourite_count"`
	Rating              apiFloat `json:"rating"`
	Playcount           apiInt   `json:"playcount"`
	Passcount           apiInt   `json:"passcount"`
	Storyboard          apiBool  `json:"storyboard"`
	Video               apiBool  `json:"video"`
	DownloadUnavailable apiBool  `json:"download_unavailable"`
	AudioUnavailable    apiBool  `json:"audio_unavailable"`
	SubmitDate          apiTime  `json:"submit_date"`
	ApprovedDate        apiTime  `json:"approved_date"`
	LastUpdate          apiTime  `json:"last_update"`
}

func newMap(r mapResponse, client *Client) Map {
	m := Map{
		client:              client,
		BeatmapID:           int64(r.BeatmapID),
		MapsetID:            int64(r.BeatmapsetID),
		SongTitle:           r.Title,
		Artist:              r.Artist,
		DifficultyName:      r.Version,
		CreatorName:         r.Creator,
		CreatorID:           int64(r.CreatorID),
		Source:              r.Source,
		Tags:                strings.Fields(r.Tags),
		Mode:                r.Mode,
		Genre:               r.Genre,
		Language:            r.Language,
		Approval:            r.Approved,
		MD5Hash:             r.FileMD5,
		BPM:                 float64(r.BPM),
		Length:              float64(r.TotalLength),
		DrainLength:         float64(r.HitLength),
		MaxCombo:            int(r.MaxCombo),
		CircleCount:         int(r.CountNormal),
		SliderCount:         int(r.CountSlider),
		SpinnerCount:        int(r.CountSpinner),
		StarRating:          float64(r.DifficultyRating),
		AimDifficulty:       float64(r.DiffAim),
		SpeedDifficulty:     float64(r.DiffSpeed),
		CircleSize:          float64(r.DiffSize),
		OverallDifficulty:   float64(r.DiffOverall),
		ApproachRate:        float64(r.DiffApproach),
		HPDrain:             float64(r.DiffDrain),
		Favourites:          int64(r.FavouriteCount),
		Rating:              float64(r.Rating),
		Playcount:           int64(r.Playcount),
		Passcount:           int64(r.Passcount),
		Storyboard:          bool(r.Storyboard),
		Video:               bool(r.Video),
		DownloadUnavailable: bool(r.DownloadUnavailable),
		AudioUnavailable:    bool(r.AudioUnavailable),
		DateSubmitted:       r.SubmitDate.Time,
		DateApproved:        r.ApprovedDate.ptr(),
		LastUpdate:          r.LastUpdate.Time,
	}
	if m.Length == unknownLength {
		m.Length = 0
	}
	m.TotalObjects = m.CircleCount + m.SliderCount + m.SpinnerCount
	return m
}

func (m Map) String() string {
	return fmt.Sprintf("%s [%s] mapped by %s", m.SongTitle, m.DifficultyName, m.CreatorName)
}

// DownloadURL is where the .osu file of the difficulty can be fetched
func (m Map) DownloadURL() string {
	return fmt.Sprintf("%s/osu/%d", m.client.BaseURL(), m.BeatmapID)
}

func (m Map) CoverImageURL() string {
	return fmt.Sprintf("https://assets.ppy.sh/beatmaps/%d/covers/cover.jpg", m.MapsetID)
}

func (m Map) ThumbnailURL() string {
	return fmt.Sprintf("https://b.ppy.sh/thumb/%dl.jpg", m.MapsetID)
}

// FetchCreator makes an api call to get the mapper's profile
func (m Map) FetchCreator(ctx context.Context, mode Mode) (*User, error) {
	return m.client.FetchUser(ctx, UserID(m.CreatorID), mode)
}

// FetchMapset makes an api call to get every difficulty in the map's set
func (m Map) FetchMapset(ctx context.Context) ([]Map, error) {
	return m.client.FetchMaps(ctx, MapsOptions{SetID: m.MapsetID, Mode: m.Mode})
}

// FetchScores makes an api call to get the leaderboard of this map
func (m Map) FetchScores(ctx context.Context, opts ScoresOptions) ([]Score, error) {
	return m.client.FetchScores(ctx, m.BeatmapID, opts)
}

// MapsOptions filters a beatmap search. Zero values are left out of the request.
type MapsOptions struct {
	SetID    int64
	MapID    int64
	Creator  UserRef
	Hash     string
	Mode     Mode
	Converts bool
	Limit    int // max and default 500
	Mods     Mods
	Since    time.Time
}

const defaultMapsLimit = 500

func (o MapsOptions) params() url.Values {
	params := url.Values{}
	params.Set("m", strconv.Itoa(int(o.Mode)))
	params.Set("mods", strconv.FormatUint(uint64(o.Mods), 10))
	o.Creator.apply(params)

	if o.SetID != 0 {
		params.Set("s", strconv.FormatInt(o.SetID, 10))
	}
	if o.MapID != 0 {
		params.Set("b", strconv.FormatInt(o.MapID, 10))
	}
	if o.Hash != "" {
		params.Set("h", o.Hash)
	}
	if o.Converts {
		params.Set("a", "1")
	}

	limit := o.Limit
	if limit == 0 {
		limit = defaultMapsLimit
	}
	if limit >= 1 && limit <= defaultMapsLimit {
		params.Set("limit", strconv.Itoa(limit))
	}

	if !o.Since.IsZero() {
		params.Set("since", o.Since.UTC().Format(TimeLayout))
	}
	return params
}

// FetchMaps searches osu!'s beatmap pool
func (c *Client) FetchMaps(ctx context.Context, opts MapsOptions) ([]Map, error) {
	var resp []mapResponse
	if err := c.v1Request(ctx, "get_beatmaps", opts.params(), &resp); err != nil {
		return nil, fmt.Errorf("error getting maps. %w", err)
	}

	maps := make([]Map, 0, len(resp))
	for _, r := range resp {
		maps = append(maps, newMap(r, c))
	}
	return maps, nil
}

// FetchMap fetches a single standard difficulty by its id. Use FetchMapMode for other modes.
func (c *Client) FetchMap(ctx context.Context, mapID int64) (*Map, error) {
	return c.FetchMapMode(ctx, mapID, ModeStandard)
}

// FetchMapMode fetches a single difficulty in the given mode. Standard maps are
// returned as converts for the other modes.
func (c *Client) FetchMapMode(ctx context.Context, mapID int64, mode Mode) (*Map, error) {
	maps, err := c.FetchMaps(ctx, MapsOptions{MapID: mapID, Mode: mode, Converts: mode != ModeStandard})
	if err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return nil, fmt.Errorf("map %d: %w", mapID, ErrMapNotFound)
	}
	return &maps[0], nil
}
