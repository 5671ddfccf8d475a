package remote

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/atempo/attendance-tracker/internal/model"
)

// Session holds the tokens issued by the auth service.
type Session struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int        `json:"expires_in"`
	User         model.User `json:"user"`
}

// ExpiresAt returns the wall-clock expiry of the access token, assuming
// the session was issued now.
func (s Session) ExpiresAt(now time.Time) time.Time {
	return now.Add(time.Duration(s.ExpiresIn) * time.Second)
}

// SignIn exchanges email and password for a session. On success the
// access token is installed on the client.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	q := url.Values{}
	q.Set("grant_type", "password")

	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token", q, body, &session, nil); err != nil {
		return nil, err
	}

	c.SetSession(session.AccessToken)
	return &session, nil
}

// RefreshSession exchanges a refresh token for a new session. On success
// the new access token is installed on the client.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	q := url.Values{}
	q.Set("grant_type", "refresh_token")

	body := map[string]string{
		"refresh_token": refreshToken,
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token", q, body, &session, nil); err != nil {
		return nil, err
	}

	c.SetSession(session.AccessToken)
	return &session, nil
}
