// Package session owns the persisted login state of the console: the bearer
// token pair and the cached profile of the signed-in operator. Everything
// else reads sessions through a Store and never mutates the fields directly.
package session

import (
	"bytes"
	"context"
	"encoding/json"

	"backoffice/pkg/domain"
)

// Session is the unit of persisted login state. It is created on a
// successful login, read on startup and before every guarded command, and
// destroyed on logout or on any 401 from the BFF.
type Session struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	User         *domain.User `json:"user,omitempty"`

	// UserErr records a cached profile that failed to decode. A corrupt
	// profile must not invalidate the token pair, so decoding tolerates it
	// and leaves User nil.
	UserErr error `json:"-"`
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var raw struct {
		AccessToken  string          `json:"access_token"`
		RefreshToken string          `json:"refresh_token"`
		User         json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.AccessToken = raw.AccessToken
	s.RefreshToken = raw.RefreshToken
	s.User = nil
	s.UserErr = nil
	if len(raw.User) > 0 && !bytes.Equal(raw.User, []byte("null")) {
		var u domain.User
		if err := json.Unmarshal(raw.User, &u); err != nil {
			s.UserErr = err
		} else {
			s.User = &u
		}
	}
	return nil
}

// Store persists at most one session. Get returns (nil, nil) when no session
// is stored. Clear removes the token pair and the cached user as one
// observable step: a concurrent reader sees either the full session or none
// of it, never a partially-removed one.
type Store interface {
	Get(ctx context.Context) (*Session, error)
	Set(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}
