package mockapi

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

const (
	issuerName = "myfuture-mockapi"
	bearerTTL  = 24 * time.Hour
	refreshTTL = 30 * 24 * time.Hour
)

// tokenIssuer mints and verifies the RS256 session tokens the mock
// backend hands out. The keypair lives for the process only; the public
// half is also served at /.well-known/jwks.json.
type tokenIssuer struct {
	private jwk.Key
	keySet  jwk.Set
}

func newTokenIssuer() (*tokenIssuer, error) {
	raw, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}

	private, err := jwk.Import(raw)
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	if err := private.Set(jwk.KeyIDKey, "mockapi-1"); err != nil {
		return nil, err
	}
	if err := private.Set(jwk.AlgorithmKey, jwa.RS256()); err != nil {
		return nil, err
	}

	public, err := jwk.PublicKeyOf(private)
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}

	set := jwk.NewSet()
	if err := set.AddKey(public); err != nil {
		return nil, fmt.Errorf("build key set: %w", err)
	}

	return &tokenIssuer{private: private, keySet: set}, nil
}

func (i *tokenIssuer) Mint(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		Issuer(issuerName).
		Subject(userID).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Claim("email", email).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256(), i.private))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// Verify parses and validates a bearer token, returning the subject
// user ID.
func (i *tokenIssuer) Verify(raw string) (string, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKeySet(i.keySet),
		jwt.WithValidate(true),
	)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	userID, ok := token.Subject()
	if !ok || userID == "" {
		return "", fmt.Errorf("token has no subject claim")
	}

	return userID, nil
}
