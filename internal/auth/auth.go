package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	srvErrors "github.com/tagpoll/tagpoll/pkg/errors"
)

const bearerPrefix = "Bearer "

// Authenticator signs and verifies HS256 tokens whose subject is a profile id.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthenticator(secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Sign returns a token identifying profileID.
func (a *Authenticator) Sign(profileID int64) (string, error) {
	issued := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(profileID, 10),
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(a.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify returns the profile id carried by a valid token.
func (a *Authenticator) Verify(token string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return 0, srvErrors.NewInvalidAuthorizationError()
	}

	profileID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || profileID < 0 {
		return 0, srvErrors.NewInvalidAuthorizationError()
	}
	return profileID, nil
}

// ProfileFromHeader extracts and verifies the bearer token of an
// Authorization header value.
func (a *Authenticator) ProfileFromHeader(header string) (int64, error) {
	if header == "" {
		return 0, srvErrors.NewMissingAuthenticationError()
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return 0, srvErrors.NewInvalidAuthorizationError()
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return 0, srvErrors.NewInvalidAuthorizationError()
	}
	return a.Verify(token)
}
