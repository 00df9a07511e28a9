package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"myfuture/pkg/types"

	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

const tokenStoreName = "session"

// Session holds the tokens issued at login. The bearer token is what
// authenticated requests attach; the refresh token rides along for the
// login flow to use later.
type Session struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// TokenStore persists the session tokens in a single file, standing in
// for the browser's local storage. When encryption keys are configured
// the value is sealed with securecookie; otherwise it is written as
// plain JSON with 0600 permissions.
type TokenStore struct {
	path  string
	codec *securecookie.SecureCookie
}

func NewTokenStore(config *types.Config) (*TokenStore, error) {
	path := config.TokenPath
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "myfuture", tokenStoreName)
	}

	s := &TokenStore{path: path}

	if config.TokenHashKey != "" {
		hashKey, err := base64.StdEncoding.DecodeString(config.TokenHashKey)
		if err != nil {
			return nil, fmt.Errorf("decode token hash key: %w", err)
		}
		blockKey, err := base64.StdEncoding.DecodeString(config.TokenBlockKey)
		if err != nil {
			return nil, fmt.Errorf("decode token block key: %w", err)
		}
		s.codec = securecookie.New(hashKey, blockKey)
	}

	return s, nil
}

func (s *TokenStore) Save(session Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	var data []byte
	if s.codec != nil {
		sealed, err := s.codec.Encode(tokenStoreName, session)
		if err != nil {
			return fmt.Errorf("seal session tokens: %w", err)
		}
		data = []byte(sealed)
	} else {
		var err error
		data, err = json.Marshal(session)
		if err != nil {
			return fmt.Errorf("marshal session tokens: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}

	return nil
}

// Load returns the stored session, or types.ErrUnauthenticated when no
// token has been saved.
func (s *TokenStore) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, types.ErrUnauthenticated
		}
		return Session{}, fmt.Errorf("read token file: %w", err)
	}

	var session Session
	if s.codec != nil {
		if err := s.codec.Decode(tokenStoreName, string(data), &session); err != nil {
			return Session{}, fmt.Errorf("unseal session tokens: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &session); err != nil {
			return Session{}, fmt.Errorf("unmarshal session tokens: %w", err)
		}
	}

	if session.Token == "" {
		return Session{}, types.ErrUnauthenticated
	}

	return session, nil
}

func (s *TokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// TokenExpired inspects the bearer token's exp claim without verifying
// the signature, so the caller can fail fast on a dead session instead
// of burning a round trip. Opaque (non-JWT) tokens report false.
func TokenExpired(raw string) bool {
	token, err := jwt.ParseInsecure([]byte(raw))
	if err != nil {
		return false
	}

	exp, ok := token.Expiration()
	if !ok {
		return false
	}

	return time.Now().After(exp)
}
