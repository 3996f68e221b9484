// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/shopfront/internal/navigation/landing"
	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/audit"
	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/sec"
)

// Messages stored in [Session.Error] when a collaborator gives no usable reason.
const (
	msgUnreachable        = "Unable to reach the server. Please try again."
	msgSessionEnded       = "You were signed out before the request completed."
	msgSessionRejected    = "Your session could not be established. Please sign in again."
	msgSignInFirst        = "Please sign in first."
	msgProfileUnavailable = "We could not load your profile. Please sign in again."
)

// # Provider

// Provider is the only writer of browser sessions.
//
// Each operation runs its collaborator call outside the store lock and applies
// the result only if the session has not been signed out in the meantime
// (tracked by [Session.Epoch]).
type Provider struct {
	store         Store
	authenticator Authenticator
	profiles      ProfileFetcher
	decoder       TokenDecoder
	audit         audit.Publisher
	logger        *slog.Logger

	now                func() time.Time
	profileTimeout     time.Duration
	maxProfileAttempts int

	background sync.WaitGroup
}

// Option customises a [Provider].
type Option func(*Provider)

// WithClock replaces the wall clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(provider *Provider) { provider.now = now }
}

// WithProfilePolicy sets the per-fetch timeout and how many consecutive failed
// fetches are tolerated before the session is signed out.
func WithProfilePolicy(timeout time.Duration, maxAttempts int) Option {
	return func(provider *Provider) {
		provider.profileTimeout = timeout
		provider.maxProfileAttempts = maxAttempts
	}
}

// NewProvider constructs a [Provider] with its collaborators.
func NewProvider(
	store Store,
	authenticator Authenticator,
	profiles ProfileFetcher,
	decoder TokenDecoder,
	publisher audit.Publisher,
	logger *slog.Logger,
	options ...Option,
) *Provider {
	provider := &Provider{
		store:              store,
		authenticator:      authenticator,
		profiles:           profiles,
		decoder:            decoder,
		audit:              publisher,
		logger:             logger,
		now:                time.Now,
		profileTimeout:     5 * time.Second,
		maxProfileAttempts: 3,
	}

	for _, option := range options {
		option(provider)
	}

	return provider
}

// Wait blocks until every background profile fetch has been applied.
func (provider *Provider) Wait() {
	provider.background.Wait()
}

// # Sign In

// LoginResult tells the caller where to send the browser after sign-in.
type LoginResult struct {
	NeedsOTP   bool        `json:"needs_otp"`
	Role       sec.RoleSet `json:"role"`
	RedirectTo string      `json:"redirect_to"`
}

/*
Login authenticates the browser session with the backend.

Description: The password is hashed before it leaves the gateway. On success
the returned token goes through the token transition (decode, expiry check,
profile fetch). On failure the message is kept in [Session.Error] and the
token and user are left as they were.

Parameters:
  - ctx: context.Context
  - sessionID: string
  - identifier: string (mobile or email)
  - password: string (plain text)

Returns:
  - *LoginResult: OTP requirement, roles and the post-login destination
  - error: [*apperr.AppError] safe to show to the user
*/
func (provider *Provider) Login(ctx context.Context, sessionID, identifier, password string) (*LoginResult, error) {
	epoch, err := provider.begin(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	response, err := provider.authenticator.Login(ctx, identifier, sec.HashCredential(password))
	if err != nil {
		return nil, provider.fail(ctx, sessionID, epoch, audit.EventLoginFailed, err)
	}

	verdict, err := provider.completeWithToken(ctx, sessionID, epoch, response.Token, response.NeedsOTP)
	if err != nil {
		return nil, err
	}

	provider.publish(ctx, audit.EventLoginSucceeded, sessionID, verdict.identity, "")

	result := &LoginResult{NeedsOTP: response.NeedsOTP, Role: response.Role, RedirectTo: landing.HomePath(response.Role)}
	if response.NeedsOTP {
		result.RedirectTo = constants.PathOTPVerify
	}

	return result, nil
}

// RegisterInput holds the account-creation form after validation.
type RegisterInput struct {
	Name          string
	Mobile        string
	Password      string
	Role          sec.Role
	TermsAccepted bool
}

// RegisterResult tells the caller where to send the browser after sign-up.
type RegisterResult struct {
	NeedsOTP   bool   `json:"needs_otp"`
	RedirectTo string `json:"redirect_to"`
}

/*
Register creates an account and signs the session in when the backend returns a token.

Parameters:
  - ctx: context.Context
  - sessionID: string
  - input: RegisterInput

Returns:
  - *RegisterResult: OTP requirement and next destination
  - error: [*apperr.AppError] safe to show to the user
*/
func (provider *Provider) Register(ctx context.Context, sessionID string, input RegisterInput) (*RegisterResult, error) {
	epoch, err := provider.begin(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	response, err := provider.authenticator.Register(ctx, RegisterPayload{
		Name:          input.Name,
		Mobile:        input.Mobile,
		PasswordHash:  sec.HashCredential(input.Password),
		Role:          input.Role.String(),
		TermsAccepted: input.TermsAccepted,
	})
	if err != nil {
		return nil, provider.fail(ctx, sessionID, epoch, audit.EventRegisterFailed, err)
	}

	result := &RegisterResult{NeedsOTP: response.NeedsOTP, RedirectTo: constants.PathHome}

	// Without a token the user signs in on the public entry.
	if response.Token == "" {
		if _, err := provider.settle(ctx, sessionID, epoch, func(session *Session) {
			session.Loading = false
			session.Error = ""
		}); err != nil {
			return nil, err
		}
		provider.publish(ctx, audit.EventRegistered, sessionID, "", "")
		return result, nil
	}

	verdict, err := provider.completeWithToken(ctx, sessionID, epoch, response.Token, response.NeedsOTP)
	if err != nil {
		return nil, err
	}

	provider.publish(ctx, audit.EventRegistered, sessionID, verdict.identity, "")

	result.RedirectTo = landing.HomePath(sec.NewRoleSet(input.Role))
	if response.NeedsOTP {
		result.RedirectTo = constants.PathOTPVerify
	}

	return result, nil
}

/*
ConfirmOTP verifies the mobile number of the signed-in account.

Description: On success the quick login flag clears and the user is marked
confirmed. When no profile has been merged yet, a refetch is started instead.

Parameters:
  - ctx: context.Context
  - sessionID: string
  - code: string

Returns:
  - error: [*apperr.AppError] safe to show to the user
*/
func (provider *Provider) ConfirmOTP(ctx context.Context, sessionID, code string) error {
	var token string
	var epoch uint64

	_, err := provider.store.Update(ctx, sessionID, func(session *Session) error {
		if session.Token == "" {
			return apperr.Unauthorized(msgSignInFirst)
		}
		token = session.Token
		epoch = session.Epoch
		session.Loading = true
		session.Error = ""
		return nil
	})
	if err != nil {
		return provider.storeError(err)
	}

	if err := provider.authenticator.ConfirmOTP(ctx, token, code); err != nil {
		return provider.fail(ctx, sessionID, epoch, audit.EventOTPFailed, err)
	}

	var refetch bool

	updated, err := provider.settle(ctx, sessionID, epoch, func(session *Session) {
		refetch = false
		session.Loading = false
		session.Error = ""
		session.QuickLogin = false
		session.OTPConfirmed = true

		if session.User != nil {
			session.User.MobileConfirmed = true
			return
		}

		if !session.ProfilePending {
			provider.markProfilePending(session)
			refetch = true
		}
	})
	if err != nil {
		return err
	}

	if refetch {
		provider.fetchProfile(ctx, sessionID, updated.Epoch, updated.Token, false)
	}

	provider.publish(ctx, audit.EventOTPConfirmed, sessionID, userID(updated), "")
	return nil
}

/*
Logout clears the token and user of the session.

Description: Synchronous and idempotent. Signing out an already empty session
writes nothing and emits no event. In-flight operations started before the
logout are discarded when they complete.

Parameters:
  - ctx: context.Context
  - sessionID: string

Returns:
  - error: Storage failures only
*/
func (provider *Provider) Logout(ctx context.Context, sessionID string) error {
	var cleared bool
	var previousUser string

	_, err := provider.store.Update(ctx, sessionID, func(session *Session) error {
		previousUser = userID(session)
		cleared = session.clear()
		if !cleared {
			return ErrSkipWrite
		}
		return nil
	})
	if err != nil {
		return provider.storeError(err)
	}

	if cleared {
		provider.publish(ctx, audit.EventLogout, sessionID, previousUser, "")
	}

	return nil
}

// # Operation Helpers

// begin marks an auth operation as in flight and returns the epoch it started under.
func (provider *Provider) begin(ctx context.Context, sessionID string) (uint64, error) {
	var epoch uint64

	_, err := provider.store.Update(ctx, sessionID, func(session *Session) error {
		epoch = session.Epoch
		session.Loading = true
		session.Error = ""
		return nil
	})
	if err != nil {
		return 0, provider.storeError(err)
	}

	return epoch, nil
}

// settle applies apply only if the session is still in epoch. A signed-out
// session yields [msgSessionEnded].
//
// The write runs on a context detached from the request: once the collaborator
// has answered, a disconnected client must not leave the session loading.
func (provider *Provider) settle(ctx context.Context, sessionID string, epoch uint64, apply func(*Session)) (*Session, error) {
	ctx = context.WithoutCancel(ctx)

	var stale bool

	updated, err := provider.store.Update(ctx, sessionID, func(session *Session) error {
		stale = session.Epoch != epoch
		if stale {
			return ErrSkipWrite
		}
		apply(session)
		return nil
	})
	if err != nil {
		return nil, provider.storeError(err)
	}

	if stale {
		provider.publish(ctx, audit.EventStaleResultDiscarded, sessionID, "", "signed out while in flight")
		return nil, apperr.Conflict(msgSessionEnded)
	}

	return updated, nil
}

// fail records a collaborator rejection in the session and converts it for the caller.
func (provider *Provider) fail(ctx context.Context, sessionID string, epoch uint64, event audit.EventType, cause error) error {
	ctx = context.WithoutCancel(ctx)
	userErr := userFacing(cause)

	if _, err := provider.settle(ctx, sessionID, epoch, func(session *Session) {
		session.Loading = false
		session.Error = userErr.Message
	}); err != nil {
		return err
	}

	provider.publish(ctx, event, sessionID, "", userErr.Message)
	return userErr
}

// completeWithToken stores a freshly issued token and starts the profile fetch.
func (provider *Provider) completeWithToken(ctx context.Context, sessionID string, epoch uint64, token string, needsOTP bool) (tokenVerdict, error) {
	ctx = context.WithoutCancel(ctx)

	var verdict tokenVerdict

	updated, err := provider.settle(ctx, sessionID, epoch, func(session *Session) {
		session.Loading = false
		session.Error = ""
		session.QuickLogin = needsOTP
		verdict = provider.setToken(session, token)
	})
	if err != nil {
		return verdict, err
	}

	if !verdict.accepted() {
		provider.publish(ctx, verdict.event(), sessionID, verdict.identity, verdict.reason)
		return verdict, apperr.Unauthorized(msgSessionRejected)
	}

	provider.fetchProfile(ctx, sessionID, updated.Epoch, token, false)
	return verdict, nil
}

func (provider *Provider) publish(ctx context.Context, eventType audit.EventType, sessionID, userID, reason string) {
	provider.audit.Publish(ctx, audit.Event{
		Type:      eventType,
		SessionID: sessionID,
		UserID:    userID,
		Reason:    reason,
		At:        provider.now(),
	})
}

// storeError keeps client-safe callback errors and hides storage failures.
func (provider *Provider) storeError(err error) error {
	if appErr := apperr.As(err); appErr != nil {
		return appErr
	}
	return apperr.Internal(err)
}

// userFacing converts a collaborator error into a message the user can read.
func userFacing(err error) *apperr.AppError {
	if appErr := apperr.As(err); appErr != nil {
		return appErr
	}
	return apperr.ServiceUnavailable(msgUnreachable, err)
}

func userID(session *Session) string {
	if session == nil || session.User == nil {
		return ""
	}
	return session.User.ID
}
