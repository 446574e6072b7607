package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"osutools/osuapi"
)

var errBadParam = errors.New("bad parameter")

// rmtHandler maps a local endpoint onto an osu! api call
type rmtHandler struct {
	name        string
	lclEndpoint string
	fetch       func(c *gin.Context, client *osuapi.Client) (interface{}, error)
	rmtLimit    *rate.Limit
}

// get_replay is limited to about 10 calls a minute upstream
var replayLimit = rate.Every(6 * time.Second)

var (
	rmtHandlers = []rmtHandler{
		{
			name:        "user",
			lclEndpoint: "/api/v1/users/:user",
			fetch: func(c *gin.Context, client *osuapi.Client) (interface{}, error) {
				user, mode, err := userAndMode(c)
				if err != nil {
					return nil, err
				}
				return client.FetchUser(c.Request.Context(), user, mode)
			},
		},
		{
			name:        "user_best",
			lclEndpoint: "/api/v1/users/:user/best",
			fetch: func(c *gin.Context, client *osuapi.Client) (interface{}, error) {
				user, mode, err := userAndMode(c)
				if err != nil {
					return nil, err
				}
				limit, err := intQuery(c, "limit")
				if err != nil {
					return nil, err
				}
				return client.FetchUserBest(c.Request.Context(), user, mode, int(limit))
			},
		},
		{
			name:        "user_recent",
			lclEndpoint: "/api/v1/users/:user/recent",
			fetch: func(c *gin.Context, client *osuapi.Client) (interface{}, error) {
				user, mode, err := userAndMode(c)
				if err != nil {
					return nil, err
				}
				limit, err := intQuery(c, "limit")
				if err != nil {
					return nil, err
				}
				return client.FetchUserRecent(c.Request.Context(), user, mode, int(limit))
			},
		},
		{
			name:        "beatmap",
			lclEndpoint: "/api/v1/beatmaps/:id",
			fetch: func(c *gin.Context, client *osuapi.Client) (interface{}, error) {
				id, err := intParam(c, "id")
				if err != nil {
					return nil, err
				}
				mode, err := modeQuery(c)
				if err != nil {
					return nil, err
				}
				return client.FetchMapMode(c.Request.Context(), id, mode)
			},
		},
		{
			name:        "beatmaps",
			lclEndpoint: "/api/v1/beatmaps",
			fetch: func(c *gin.Context, client *osuapi.Client) (interface{}, error) {
				opts, err := mapsOptions(c)
				if err != nil {
					return nil, err
				}
				return client.FetchMaps(c.Request.Context(), opts)
			},
		},
		{
			name:        "beatmap_scores",
			lclEndpoint: "/api/v1/beatmaps/:id/scores",
			fetch: func(c *gin.Context, client *osuapi.Client) (interface{}, error) {
				id, err := intParam(c, "id")
				if err != nil {
					return nil, err
				}
				opts, err := scoresOptions(c)
				if err != nil {
					return nil, err
				}
				return client.FetchScores(c.Request.Context(), id, opts)
			},
		},
		{
			name:        "match",
			lclEndpoint: "/api/v1/matches/:id",
			fetch: func(c *gin.Context, client *osuapi.Client) (interface{}, error) {
				id, err := intParam(c, "id")
				if err != nil {
					return nil, err
				}
				return client.FetchMatch(c.Request.Context(), id)
			},
		},
		{
			name:        "replay",
			lclEndpoint: "/api/v1/replays/:score",
			fetch: func(c *gin.Context, client *osuapi.Client) (interface{}, error) {
				id, err := intParam(c, "score")
				if err != nil {
					return nil, err
				}
				return client.FetchReplay(c.Request.Context(), id)
			},
			rmtLimit: &replayLimit,
		},
	}
)

func handlersMap() map[string]rmtHandler {
	m := make(map[string]rmtHandler)

	for _, handler := range rmtHandlers {
		m[handler.name] = handler
	}
	return m
}

func intParam(c *gin.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", errBadParam, name)
	}
	return v, nil
}

// intQuery returns 0 when the query parameter is absent
func intQuery(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", errBadParam, name)
	}
	return v, nil
}

func modeQuery(c *gin.Context) (osuapi.Mode, error) {
	mode, err := osuapi.ParseMode(c.Query("m"))
	if err != nil {
		return mode, fmt.Errorf("%w: %v", errBadParam, err)
	}
	return mode, nil
}

// modsQuery accepts either the bitwise value or acronyms like HDDT. nil when absent.
func modsQuery(c *gin.Context) (*osuapi.Mods, error) {
	raw := c.Query("mods")
	if raw == "" {
		return nil, nil
	}
	if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
		mods := osuapi.Mods(v)
		return &mods, nil
	}
	mods, err := osuapi.ParseMods(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadParam, err)
	}
	return &mods, nil
}

// userRef reads a user given as id or name. type=id or type=string settles numeric usernames.
func userRef(raw, typ string) (osuapi.UserRef, error) {
	switch typ {
	case "string":
		return osuapi.Username(raw), nil
	case "id", "":
		id, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			return osuapi.UserID(id), nil
		}
		if typ == "id" {
			return osuapi.UserRef{}, fmt.Errorf("%w: user id must be a number", errBadParam)
		}
		return osuapi.Username(raw), nil
	}
	return osuapi.UserRef{}, fmt.Errorf("%w: unknown user type %q", errBadParam, typ)
}

func userAndMode(c *gin.Context) (osuapi.UserRef, osuapi.Mode, error) {
	user, err := userRef(c.Param("user"), c.Query("type"))
	if err != nil {
		return user, 0, err
	}
	mode, err := modeQuery(c)
	return user, mode, err
}

func mapsOptions(c *gin.Context) (osuapi.MapsOptions, error) {
	var opts osuapi.MapsOptions
	var err error

	if opts.SetID, err = intQuery(c, "s"); err != nil {
		return opts, err
	}
	if opts.MapID, err = intQuery(c, "b"); err != nil {
		return opts, err
	}
	if u := c.Query("u"); u != "" {
		if opts.Creator, err = userRef(u, c.Query("type")); err != nil {
			return opts, err
		}
	}
	opts.Hash = c.Query("h")
	if opts.Mode, err = modeQuery(c); err != nil {
		return opts, err
	}
	opts.Converts = c.Query("a") == "1"

	limit, err := intQuery(c, "limit")
	if err != nil {
		return opts, err
	}
	opts.Limit = int(limit)

	mods, err := modsQuery(c)
	if err != nil {
		return opts, err
	}
	if mods != nil {
		opts.Mods = *mods
	}

	if since := c.Query("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			t, err = time.ParseInLocation(osuapi.TimeLayout, since, time.UTC)
		}
		if err != nil {
			return opts, fmt.Errorf("%w: since must be a timestamp", errBadParam)
		}
		opts.Since = t
	}

	return opts, nil
}

func scoresOptions(c *gin.Context) (osuapi.ScoresOptions, error) {
	var opts osuapi.ScoresOptions
	var err error

	if u := c.Query("u"); u != "" {
		if opts.User, err = userRef(u, c.Query("type")); err != nil {
			return opts, err
		}
	}
	if opts.Mode, err = modeQuery(c); err != nil {
		return opts, err
	}
	if opts.Mods, err = modsQuery(c); err != nil {
		return opts, err
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		return opts, err
	}
	opts.Limit = int(limit)
	return opts, nil
}
