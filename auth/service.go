package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"be04/models"

	"go.uber.org/zap"
)

// AccountDirectory is the persistence boundary the service drives. Find
// methods return (nil, nil) when no row matches.
type AccountDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, email, name, passwordHash string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// SetRefreshToken stores token (nil clears it) unconditionally.
	SetRefreshToken(ctx context.Context, id uint, token *string) error
	// SwapRefreshToken replaces the stored refresh token with next only
	// if the stored value still equals current, in a single atomic
	// write. It reports whether the swap happened. Two concurrent
	// rotations of the same token therefore produce exactly one winner.
	SwapRefreshToken(ctx context.Context, id uint, current string, next *string) (bool, error)
}

// Profile is the public view of an account. No hash, no tokens.
type Profile struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session is a successful sign-in or refresh. The refresh token is
// excluded from JSON: it travels in the cookie, never the body.
type Session struct {
	Profile
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"-"`
}

// Service owns the session state machine. All session state lives in
// the directory's refresh-token column, so the service itself is
// stateless and safe to share across requests.
type Service struct {
	dir    AccountDirectory
	hasher CredentialHasher
	codec  *TokenCodec
	log    *zap.Logger
}

func NewService(dir AccountDirectory, hasher CredentialHasher, codec *TokenCodec, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{dir: dir, hasher: hasher, codec: codec, log: log}
}

func profileOf(u *models.User) Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

// SignUp registers a new account with no active session.
func (s *Service) SignUp(ctx context.Context, email, name, password string) (*Profile, error) {
	exists, err := s.dir.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	// the directory maps a unique-violation race to ErrEmailExists
	user, err := s.dir.Create(ctx, email, name, hashed)
	if err != nil {
		return nil, err
	}
	s.log.Debug("account registered", zap.Uint("id", user.ID), zap.String("email", user.Email))
	p := profileOf(user)
	return &p, nil
}

// SignIn verifies credentials and opens a session, replacing any prior
// refresh token so at most one session is active per account. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	session, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}
	if err := s.dir.SetRefreshToken(ctx, user.ID, &session.RefreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	s.log.Debug("signed in", zap.Uint("id", user.ID), zap.String("email", user.Email))
	return session, nil
}

// Refresh exchanges a still-valid refresh token for a new token pair.
// The presented token must match the stored one byte for byte; the swap
// to the new token is atomic, so a token is good for exactly one
// successful refresh and a replayed or raced token gets
// ErrSessionInvalidated.
func (s *Service) Refresh(ctx context.Context, presented string) (*Session, error) {
	claims, err := s.codec.Verify(presented, RefreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.dir.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if user == nil {
		return nil, ErrAccountMissing
	}
	session, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}
	swapped, err := s.dir.SwapRefreshToken(ctx, user.ID, presented, &session.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	if !swapped {
		return nil, ErrSessionInvalidated
	}
	s.log.Debug("session rotated", zap.Uint("id", user.ID))
	return session, nil
}

// SignOut revokes the session the presented token belongs to. It is
// idempotent and best-effort: a missing, expired, unverifiable or
// already-rotated token all degrade to a successful no-op. Only storage
// failures are reported.
func (s *Service) SignOut(ctx context.Context, presented string) error {
	if presented == "" {
		return nil
	}
	claims, err := s.codec.Verify(presented, RefreshToken)
	if err != nil && !errors.Is(err, ErrTokenExpired) {
		return nil
	}
	if claims == nil || claims.Subject == 0 {
		return nil
	}
	// clears only when the stored token still equals the presented one;
	// a mismatch means the session already moved on
	if _, err := s.dir.SwapRefreshToken(ctx, claims.Subject, presented, nil); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	s.log.Debug("signed out", zap.Uint("id", claims.Subject))
	return nil
}

func (s *Service) issueSession(user *models.User) (*Session, error) {
	access, err := s.codec.Issue(user.ID, user.Email, user.Name, AccessToken)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.codec.Issue(user.ID, user.Email, user.Name, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &Session{Profile: profileOf(user), AccessToken: access, RefreshToken: refresh}, nil
}
