package osuapi

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// Replay is the raw replay data of a score. Content is the base64 encoded LZMA stream of
// the play's frames, not a full .osr file.
type Replay struct {
	ScoreID  int64  `json:"score_id"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// Data decodes Content into the LZMA stream
func (r Replay) Data() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(r.Content)
	if err != nil {
		return nil, fmt.Errorf("error decoding replay of score %d. %w", r.ScoreID, err)
	}
	return data, nil
}

// FetchReplay fetches the replay of a score. The api allows about 10 of these a minute.
func (c *Client) FetchReplay(ctx context.Context, scoreID int64) (*Replay, error) {
	params := url.Values{}
	params.Set("s", strconv.FormatInt(scoreID, 10))

	var replay Replay
	if err := c.v1Request(ctx, "get_replay", params, &replay); err != nil {
		// a missing replay comes back as {"error":"Replay not available."} with status 200
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 200 && apiErr.StatusCode <= 299 {
			return nil, fmt.Errorf("score %d: %w (%v)", scoreID, ErrReplayNotFound, apiErr.Message)
		}
		return nil, fmt.Errorf("error getting replay. %w", err)
	}
	if replay.Content == "" {
		return nil, fmt.Errorf("score %d: %w", scoreID, ErrReplayNotFound)
	}

	replay.ScoreID = scoreID
	return &replay, nil
}
