package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

const SessionTTL = 24 * time.Hour

// ErrNoSession is returned when a session id is unknown or expired.
var ErrNoSession = errors.New("no active session")

// Profile is what the identity provider asserts about a signed-in user.
type Profile struct {
	GoogleID    string
	DisplayName string
	Email       string
	Picture     string
}

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

func NewSessionID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// EnsureUser finds the user for a provider subject id, creating it on first
// sign-in.
func (s *Service) EnsureUser(ctx context.Context, p Profile) (*User, error) {
	u, err := s.repo.GetUserByGoogleID(ctx, p.GoogleID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u = &User{
		GoogleID:    p.GoogleID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Picture:     p.Picture,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) CreateSession(ctx context.Context, userID uint64) (*Session, error) {
	sid, err := NewSessionID()
	if err != nil {
		return nil, err
	}
	sess := &Session{
		ID:        sid,
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SessionUser resolves a session id to its user, treating unknown and
// expired sessions the same way.
func (s *Service) SessionUser(ctx context.Context, sessionID string) (*User, error) {
	sess, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.repo.DeleteSession(ctx, sessionID)
		return nil, ErrNoSession
	}

	u, err := s.repo.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	return s.repo.DeleteSession(ctx, sessionID)
}
