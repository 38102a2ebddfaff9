// Package session persists the authenticated user between runs.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/trezcool/edulearn/core/user"
)

// viper keys are case-insensitive and written lower-cased
const (
	tokenKey  = "authtoken"
	userIDKey = "userid"
	userKey   = "user"
)

var nowFunc = time.Now // mockable

// Store is a JSON session file holding the auth token, the user id and the user.
type Store struct {
	path string

	mu   sync.RWMutex
	conf *viper.Viper
}

// Open loads the session file at `path`. A missing file is an empty session.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	conf, err := load(path)
	if err != nil {
		return nil, err
	}
	s.conf = conf
	return s, nil
}

func load(path string) (*viper.Viper, error) {
	conf := viper.New()
	conf.SetConfigFile(path)
	conf.SetConfigType("json")
	if err := conf.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return conf, nil
		}
		return nil, errors.Wrapf(err, "reading session %s", path)
	}
	return conf, nil
}

// Token returns the stored auth token, or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conf.GetString(tokenKey)
}

// UserID returns the stored user id, falling back to the stored user
// and then to the token subject.
func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id := s.conf.GetString(userIDKey); id != "" {
		return id
	}
	for _, key := range []string{userKey + ".id", userKey + "._id"} {
		if id := s.conf.GetString(key); id != "" {
			return id
		}
	}
	if claims, ok := parseClaims(s.conf.GetString(tokenKey)); ok {
		if sub, ok := claims["sub"].(string); ok {
			return sub
		}
	}
	return ""
}

// User returns the stored user, if any.
func (s *Store) User() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var usr user.User
	raw := s.conf.GetStringMap(userKey)
	if len(raw) == 0 {
		return usr, false
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return usr, false
	}
	if err := json.Unmarshal(data, &usr); err != nil {
		return usr, false
	}
	if usr.ID == "" {
		if id, ok := raw["id"].(string); ok {
			usr.ID = id
		}
	}
	return usr, true
}

// Authenticated reports whether a token is stored and, when it carries an expiry, is not expired.
func (s *Store) Authenticated() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	claims, ok := parseClaims(token)
	if !ok {
		return true // opaque token: the backend decides
	}
	return claims.VerifyExpiresAt(nowFunc().Unix(), false)
}

// Save persists the token and user after a login or signup.
func (s *Store) Save(token string, usr user.User) error {
	if token == "" {
		return errors.New("empty auth token")
	}
	data, err := json.Marshal(usr)
	if err != nil {
		return errors.Wrap(err, "encoding user")
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "encoding user")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.conf.Set(tokenKey, token)
	s.conf.Set(userIDKey, usr.ID)
	s.conf.Set(userKey, raw)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}
	if err := s.conf.WriteConfigAs(s.path); err != nil {
		return errors.Wrapf(err, "writing session %s", s.path)
	}
	return os.Chmod(s.path, 0o600)
}

// Clear removes the session, logging the user out.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing session %s", s.path)
	}
	conf := viper.New()
	conf.SetConfigFile(s.path)
	conf.SetConfigType("json")
	s.conf = conf
	return nil
}

// parseClaims decodes the token claims without verifying its signature.
// The signing key belongs to the backend.
func parseClaims(token string) (jwt.MapClaims, bool) {
	if token == "" {
		return nil, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}
