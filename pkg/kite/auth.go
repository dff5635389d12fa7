package kite

import (
	"context"
	"encoding/hex"
	"net/url"
)

// UserSession is returned by GenerateSession after a successful token
// exchange.
type UserSession struct {
	UserID        string   `json:"user_id"`
	UserName      string   `json:"user_name"`
	UserShortname string   `json:"user_shortname"`
	Email         string   `json:"email"`
	UserType      string   `json:"user_type"`
	Broker        string   `json:"broker"`
	Exchanges     []string `json:"exchanges"`
	Products      []string `json:"products"`
	OrderTypes    []string `json:"order_types"`
	APIKey        string   `json:"api_key"`
	AccessToken   string   `json:"access_token"`
	PublicToken   string   `json:"public_token"`
	RefreshToken  string   `json:"refresh_token"`
	LoginTime     string   `json:"login_time"`
	AvatarURL     string   `json:"avatar_url"`
}

// TokenSet is returned by RenewAccessToken.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginURL returns the URL a user must visit to authorize this API key.
// The redirect back carries the request_token consumed by GenerateSession.
// No network call is made.
func (c *Client) LoginURL() string {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("v", kiteVersion)
	return loginBaseURL + "?" + q.Encode()
}

// sessionChecksum is the hex digest the token exchange endpoints require:
// sha256(api_key + token + api_secret) with the default signer.
func sessionChecksum(s Signer, apiKey, token, apiSecret string) string {
	return hex.EncodeToString(s.Sum([]byte(apiKey + token + apiSecret)))
}

// GenerateSession exchanges a request token from the login redirect for an
// access token. On success the token is installed on the client, so
// subsequent calls are authenticated without further setup.
func (c *Client) GenerateSession(ctx context.Context, requestToken, apiSecret string) (*UserSession, error) {
	form := url.Values{}
	form.Set("api_key", c.apiKey)
	form.Set("request_token", requestToken)
	form.Set("checksum", sessionChecksum(c.signer, c.apiKey, requestToken, apiSecret))

	payload, err := c.dispatch(ctx, OpGenerateSession, params{form: form})
	if err != nil {
		return nil, err
	}

	var session UserSession
	if err := decodeData(payload, &session); err != nil {
		return nil, err
	}
	c.SetAccessToken(session.AccessToken)
	return &session, nil
}

// InvalidateSession logs out the current session and clears the installed
// access token.
func (c *Client) InvalidateSession(ctx context.Context) error {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("access_token", c.currentToken())

	if _, err := c.dispatch(ctx, OpInvalidateSession, params{query: q}); err != nil {
		return err
	}
	c.SetAccessToken("")
	return nil
}

// RenewAccessToken exchanges a refresh token for a fresh access token and
// installs it on the client.
func (c *Client) RenewAccessToken(ctx context.Context, refreshToken, apiSecret string) (*TokenSet, error) {
	form := url.Values{}
	form.Set("api_key", c.apiKey)
	form.Set("refresh_token", refreshToken)
	form.Set("checksum", sessionChecksum(c.signer, c.apiKey, refreshToken, apiSecret))

	payload, err := c.dispatch(ctx, OpRenewAccessToken, params{form: form})
	if err != nil {
		return nil, err
	}

	var tokens TokenSet
	if err := decodeData(payload, &tokens); err != nil {
		return nil, err
	}
	c.SetAccessToken(tokens.AccessToken)
	return &tokens, nil
}

// InvalidateRefreshToken revokes a refresh token.
func (c *Client) InvalidateRefreshToken(ctx context.Context, refreshToken string) error {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("refresh_token", refreshToken)

	_, err := c.dispatch(ctx, OpInvalidateRefreshToken, params{query: q})
	return err
}
