package session

import (
	"fmt"

	"github.com/Shaoyanting/HT-financial-system/internal/storage"
	"github.com/Shaoyanting/HT-financial-system/internal/types"
)

// Storage keys. The names are kept stable so existing persisted state from
// earlier releases keeps working.
const (
	tokenKey      = "financial_system_token"
	userKey       = "financial_system_user"
	profileKeyFmt = "financial_system_profile_%d"
)

// Session persists the server-issued identity: bearer token, user info and
// per-user profile overrides. All access goes through an injected Store.
type Session struct {
	store storage.Store
}

func New(store storage.Store) *Session {
	return &Session{store: store}
}

// SetAuth stores the token and user returned by a successful login.
func (s *Session) SetAuth(token string, user types.User) error {
	if err := storage.SetJSON(s.store, tokenKey, token); err != nil {
		return err
	}
	return storage.SetJSON(s.store, userKey, user)
}

// Token returns the stored bearer token, if any. Accessors treat an absent
// token as a definite failure and skip the network entirely.
func (s *Session) Token() (string, bool) {
	var token string
	ok, err := storage.GetJSON(s.store, tokenKey, &token)
	if err != nil || !ok || token == "" {
		return "", false
	}
	return token, true
}

// IsAuthenticated reports whether a token is present. Token validity is the
// server's call; a stale token surfaces as an auth failure on first use.
func (s *Session) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// CurrentUser returns the persisted user identity.
func (s *Session) CurrentUser() (*types.User, bool) {
	var u types.User
	ok, err := storage.GetJSON(s.store, userKey, &u)
	if err != nil || !ok {
		return nil, false
	}
	return &u, true
}

// Clear removes token and user info on logout.
func (s *Session) Clear() error {
	if err := s.store.Remove(tokenKey); err != nil {
		return err
	}
	return s.store.Remove(userKey)
}

// ProfileOverride holds user-edited profile fields layered over the
// server-issued identity.
type ProfileOverride struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// SaveProfileOverride persists profile edits for a user.
func (s *Session) SaveProfileOverride(userID int, p ProfileOverride) error {
	return storage.SetJSON(s.store, fmt.Sprintf(profileKeyFmt, userID), p)
}

// ProfileOverride returns the stored profile edits for a user, if any.
func (s *Session) ProfileOverride(userID int) (*ProfileOverride, bool) {
	var p ProfileOverride
	ok, err := storage.GetJSON(s.store, fmt.Sprintf(profileKeyFmt, userID), &p)
	if err != nil || !ok {
		return nil, false
	}
	return &p, true
}
