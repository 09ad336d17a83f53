// Package session holds the caller identity passed explicitly to every
// component that talks to the backoffice API.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
	StateExpired       State = "expired"
)

var (
	ErrAnonymous    = errors.New("session: not authenticated")
	ErrExpired      = errors.New("session: expired")
	ErrInvalidToken = errors.New("session: invalid token")
)

type Session struct {
	token     string
	userID    uint
	role      string
	expiresAt time.Time
}

func Anonymous() *Session {
	return &Session{}
}

// FromToken reads identity claims from a bearer token. The signature is
// not checked here; the backend verifies it on every request.
func FromToken(token string) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	s := &Session{
		token:  token,
		userID: uint(sub),
		role:   role,
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, ErrInvalidToken
	}
	if exp != nil {
		s.expiresAt = exp.Time
	}
	return s, nil
}

func (s *Session) State(now time.Time) State {
	if s == nil || s.token == "" {
		return StateAnonymous
	}
	if !s.expiresAt.IsZero() && !now.Before(s.expiresAt) {
		return StateExpired
	}
	return StateAuthenticated
}

// Bearer returns the token to send, or why there is none.
func (s *Session) Bearer(now time.Time) (string, error) {
	switch s.State(now) {
	case StateAnonymous:
		return "", ErrAnonymous
	case StateExpired:
		return "", ErrExpired
	}
	return s.token, nil
}

func (s *Session) UserID() uint {
	if s == nil {
		return 0
	}
	return s.userID
}

func (s *Session) Role() string {
	if s == nil {
		return ""
	}
	return s.role
}

func (s *Session) ExpiresAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.expiresAt
}
