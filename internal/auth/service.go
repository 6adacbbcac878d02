// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"sync"

	"github.com/taibuivan/todolist/internal/audit"
	"github.com/taibuivan/todolist/internal/platform/apperr"
	"github.com/taibuivan/todolist/internal/platform/ctxutil"
	"github.com/taibuivan/todolist/internal/platform/metrics"
	"github.com/taibuivan/todolist/internal/platform/sec"
)

// # Contracts & Types

// PasswordHasher hashes and verifies passwords. Implemented by [sec.PasswordHasher].
type PasswordHasher interface {
	Hash(ctx context.Context, plainTextPassword string) (string, error)
	Verify(ctx context.Context, plainTextPassword, existingHash string) (bool, error)
}

// TokenIssuer signs session tokens. Implemented by [sec.TokenService].
type TokenIssuer interface {
	Issue(claims sec.SessionClaims) (string, error)
}

// AuditRecorder persists security events. Implemented by [audit.Recorder].
type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// Service implements the registration and login workflows.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	hasher         PasswordHasher
	tokenIssuer    TokenIssuer
	auditRecorder  AuditRecorder

	decoyMu   sync.Mutex
	decoyHash string
}

// NewService constructs a new [Service] with its dependencies.
func NewService(userRepo UserRepository, hasher PasswordHasher, tokens TokenIssuer, recorder AuditRecorder) *Service {
	return &Service{
		userRepository: userRepo,
		hasher:         hasher,
		tokenIssuer:    tokens,
		auditRecorder:  recorder,
	}
}

// # Registration Flow

/*
Register validates, hashes, and persists a brand new user account, then issues
its first session token.

Parameters:
  - context: context.Context
  - input: Credentials

Returns:
  - *Session: Token and created user
  - error: ValidationError (400), Conflict (409) or Internal (500)
*/
func (service *Service) Register(context context.Context, input Credentials) (*Session, error) {
	credentials, err := ValidateRegistration(input)
	if err != nil {
		countAuthEvent(audit.EventRegister, metrics.OutcomeRejected)
		return nil, err
	}

	exists, err := service.userRepository.Exists(context, credentials.Username)
	if err != nil {
		return nil, service.internal(context, audit.EventRegister, err)
	}
	if exists {
		countAuthEvent(audit.EventRegister, metrics.OutcomeRejected)
		return nil, apperr.Conflict(MsgUsernameTaken)
	}

	hashedPassword, err := service.hasher.Hash(context, credentials.Password)
	if err != nil {
		return nil, service.internal(context, audit.EventRegister, err)
	}

	// The unique constraint is the final arbiter when two registrations race
	// past the existence check.
	user, err := service.userRepository.Create(context, credentials.Username, hashedPassword)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			countAuthEvent(audit.EventRegister, metrics.OutcomeRejected)
			return nil, apperr.Conflict(MsgUsernameTaken)
		}
		return nil, service.internal(context, audit.EventRegister, err)
	}

	token, err := service.tokenIssuer.Issue(sec.SessionClaims{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, service.internal(context, audit.EventRegister, err)
	}

	countAuthEvent(audit.EventRegister, metrics.OutcomeSuccess)
	service.auditRecorder.Record(context, audit.Entry{
		Level:   audit.LevelInfo,
		Message: audit.EventRegister,
		Context: map[string]any{"username": user.Username},
		UserID:  &user.ID,
	})

	return &Session{Token: token, User: user}, nil
}

// # Authentication Flow

/*
Login verifies credentials and issues a session token.

An unknown username and a wrong password produce the same 401 so that
clients cannot probe which usernames exist.

Parameters:
  - context: context.Context
  - input: Credentials

Returns:
  - *Session: Token and authenticated user
  - error: ValidationError (400), Unauthorized (401) or Internal (500)
*/
func (service *Service) Login(context context.Context, input Credentials) (*Session, error) {
	credentials, err := ValidateLogin(input)
	if err != nil {
		countAuthEvent(audit.EventLogin, metrics.OutcomeRejected)
		return nil, err
	}

	user, err := service.userRepository.FindByUsername(context, credentials.Username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, service.internal(context, audit.EventLogin, err)
	}

	// Unknown users still pay for one bcrypt comparison.
	var storedHash string
	if user != nil {
		storedHash = user.PasswordHash
	} else if storedHash, err = service.decoy(context); err != nil {
		return nil, service.internal(context, audit.EventLogin, err)
	}

	matches, err := service.hasher.Verify(context, credentials.Password, storedHash)
	if err != nil {
		return nil, service.internal(context, audit.EventLogin, err)
	}
	if user == nil || !matches {
		return nil, service.rejectLogin(context, credentials.Username, user)
	}

	token, err := service.tokenIssuer.Issue(sec.SessionClaims{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, service.internal(context, audit.EventLogin, err)
	}

	countAuthEvent(audit.EventLogin, metrics.OutcomeSuccess)
	service.auditRecorder.Record(context, audit.Entry{
		Level:   audit.LevelInfo,
		Message: audit.EventLogin,
		Context: map[string]any{"username": user.Username},
		UserID:  &user.ID,
	})

	return &Session{Token: token, User: user}, nil
}

// # Helpers

func (service *Service) rejectLogin(context context.Context, username string, user *User) error {
	countAuthEvent(audit.EventLogin, metrics.OutcomeRejected)

	entry := audit.Entry{
		Level:   audit.LevelWarn,
		Message: audit.EventAuthFailed,
		Context: map[string]any{"username": username},
	}
	if user != nil {
		entry.UserID = &user.ID
	}
	service.auditRecorder.Record(context, entry)

	return apperr.Unauthorized(MsgInvalidCredentials)
}

// internal logs an unexpected collaborator failure and converts it to a 500.
func (service *Service) internal(context context.Context, event string, err error) error {
	countAuthEvent(event, metrics.OutcomeError)
	ctxutil.GetLogger(context).ErrorContext(context, "auth_workflow_failed",
		slog.String("event", event),
		slog.Any("error", err),
	)
	return apperr.Internal(err)
}

// decoy returns a real bcrypt hash of random bytes. A successful hash is
// reused; a failed one is retried on the next call.
func (service *Service) decoy(ctx context.Context) (string, error) {
	service.decoyMu.Lock()
	defer service.decoyMu.Unlock()

	if service.decoyHash != "" {
		return service.decoyHash, nil
	}

	hash, err := service.hasher.Hash(context.WithoutCancel(ctx), rand.Text())
	if err != nil {
		return "", err
	}
	service.decoyHash = hash
	return hash, nil
}

func countAuthEvent(event, outcome string) {
	metrics.AuthEventsTotal.WithLabelValues(event, outcome).Inc()
}
