package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken is returned when a bearer token is present but does not verify.
var ErrInvalidToken = errors.New("invalid session token")

// Session is an authenticated account as reported by the auth provider.
type Session struct {
	UserID string
	Email  string
}

// PrincipalID prefers the verified email over the subject id.
func (s Session) PrincipalID() string {
	if s.Email != "" {
		return s.Email
	}
	return s.UserID
}

// SessionLookup asks the auth provider for the caller's session.
// It returns (nil, nil) when the caller is not signed in.
type SessionLookup interface {
	Lookup(ctx context.Context) (*Session, error)
}

// StubLookup always reports the configured session (nil means signed out).
type StubLookup struct {
	Session *Session
}

func (s StubLookup) Lookup(context.Context) (*Session, error) {
	return s.Session, nil
}

// sessionClaims is the payload issued by the auth provider.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTLookup verifies an HMAC-signed bearer token carried in the context.
type JWTLookup struct {
	secret []byte
}

// NewJWTLookup creates a lookup for tokens signed with secret.
func NewJWTLookup(secret string) *JWTLookup {
	return &JWTLookup{secret: []byte(secret)}
}

func (l *JWTLookup) Lookup(ctx context.Context) (*Session, error) {
	tokenString := TokenFromContext(ctx)
	if tokenString == "" {
		return nil, nil
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return l.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || (claims.Email == "" && claims.Subject == "") {
		return nil, fmt.Errorf("%w: missing email and subject claims", ErrInvalidToken)
	}

	return &Session{UserID: claims.Subject, Email: claims.Email}, nil
}
