package osuapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

type tokenPost struct {
	ClientID     int    `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
	GrantType    string `json:"grant_type"`
	RedirectURI  string `json:"redirect_uri"`
}

// Token contains user authentication stuff
type Token struct {
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiryTime   time.Time `json:"-"`
}

// AuthURL returns the url users should be redirected to to init authentication
func (c *Client) AuthURL() (string, error) {
	base, err := url.Parse(c.BaseURL() + "/oauth/authorize")
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Add("client_id", strconv.Itoa(c.config.ClientID))
	params.Add("redirect_uri", c.config.RedirectURI)
	params.Add("response_type", "code")
	params.Add("scope", "public")

	base.RawQuery = params.Encode()

	return base.String(), nil
}

// ExchangeCode converts an authorization code handed to the redirect uri into a token
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	if len(code) <= 5 {
		return nil, fmt.Errorf("code too short: %q", code)
	}

	post := &tokenPost{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		Code:         code,
		GrantType:    "authorization_code",
		RedirectURI:  c.config.RedirectURI,
	}

	var token Token
	if err := c.postJSON(ctx, "/oauth/token", post, &token); err != nil {
		return nil, fmt.Errorf("error with auth request. %w", err)
	}

	if len(token.AccessToken) < 5 {
		return nil, fmt.Errorf("broken token %q", token.AccessToken)
	}

	token.ExpiryTime = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return &token, nil
}
