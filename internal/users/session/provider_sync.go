// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/audit"
)

// errEmptyProfile is recorded when the profile collaborator answers without an account id.
var errEmptyProfile = errors.New("session: profile without id")

// # Token Transition

type tokenStatus uint8

const (
	tokenUnchecked tokenStatus = iota
	tokenAccepted
	tokenMalformed
	tokenExpired
)

// tokenVerdict is the outcome of decoding a bearer token.
type tokenVerdict struct {
	status   tokenStatus
	identity string
	reason   string
}

func (verdict tokenVerdict) accepted() bool { return verdict.status == tokenAccepted }

func (verdict tokenVerdict) event() audit.EventType {
	if verdict.status == tokenExpired {
		return audit.EventSessionExpired
	}
	return audit.EventTokenRejected
}

// inspect decodes token and checks its expiry against the provider clock.
func (provider *Provider) inspect(token string) tokenVerdict {
	claims, err := provider.decoder.Decode(token)
	if err != nil {
		return tokenVerdict{status: tokenMalformed, reason: err.Error()}
	}
	if claims == nil {
		return tokenVerdict{status: tokenMalformed, reason: "no claims"}
	}

	identity := claims.Identity()
	if claims.Expired(provider.now()) {
		return tokenVerdict{status: tokenExpired, identity: identity, reason: "token expired"}
	}

	return tokenVerdict{status: tokenAccepted, identity: identity}
}

/*
setToken is the "on token set" transition.

It runs two steps in a fixed order:
 1. decode the token and check its expiry. A malformed or expired token clears
    the session (fail-closed) and nothing else happens.
 2. mark a profile fetch as pending. The caller starts the fetch once the
    session is stored.

A user merged under a different identity is dropped so it can never be read
together with the new token.
*/
func (provider *Provider) setToken(session *Session, token string) tokenVerdict {
	verdict := provider.inspect(token)
	if !verdict.accepted() {
		session.clear()
		return verdict
	}

	if session.User != nil && (verdict.identity == "" || session.User.ID != verdict.identity) {
		session.User = nil
	}

	session.Token = token
	session.OTPConfirmed = false
	session.ProfileAttempts = 0
	provider.markProfilePending(session)

	return verdict
}

func (provider *Provider) markProfilePending(session *Session) {
	session.ProfilePending = true
	session.ProfileRequestedAt = provider.now()
}

// profileOverdue reports a pending fetch that can no longer be running, for
// example after a restart with a shared store.
func (provider *Provider) profileOverdue(session *Session) bool {
	return provider.now().Sub(session.ProfileRequestedAt) > 2*provider.profileTimeout
}

// # Guard View

/*
Snapshot returns the session view route guards evaluate.

Description: Before the view is built the token expiry is checked against the
wall clock, so an expired session is always cleared first. A session whose
profile fetch failed is retried here, and signed out once the failures reach
the configured maximum.

Parameters:
  - ctx: context.Context
  - sessionID: string

Returns:
  - Snapshot: Read-only view
  - error: Storage failures
*/
func (provider *Provider) Snapshot(ctx context.Context, sessionID string) (Snapshot, error) {
	current, err := provider.store.Get(ctx, sessionID)
	if err != nil {
		return Snapshot{SessionID: sessionID}, provider.storeError(err)
	}

	// Signed-out sessions have nothing to check, so they skip the atomic update.
	if current.Token == "" {
		return snapshotOf(current), nil
	}

	var verdict tokenVerdict
	var refetch, exhausted bool

	updated, err := provider.store.Update(ctx, sessionID, func(session *Session) error {
		verdict = tokenVerdict{}
		refetch = false
		exhausted = false

		if session.Token == "" {
			return ErrSkipWrite
		}

		verdict = provider.inspect(session.Token)
		if !verdict.accepted() {
			session.clear()
			return nil
		}

		if session.User != nil {
			return ErrSkipWrite
		}

		if session.ProfilePending {
			if !provider.profileOverdue(session) {
				return ErrSkipWrite
			}
			session.ProfileAttempts++
		}

		if session.ProfileAttempts >= provider.maxProfileAttempts {
			exhausted = true
			session.clear()
			session.Error = msgProfileUnavailable
			return nil
		}

		provider.markProfilePending(session)
		refetch = true
		return nil
	})
	if err != nil {
		return Snapshot{SessionID: sessionID}, provider.storeError(err)
	}

	switch {
	case verdict.status != tokenUnchecked && !verdict.accepted():
		provider.publish(ctx, verdict.event(), sessionID, verdict.identity, verdict.reason)
	case exhausted:
		provider.publish(ctx, audit.EventProfileUnavailable, sessionID, verdict.identity, "attempts exhausted")
	case refetch:
		provider.fetchProfile(ctx, sessionID, updated.Epoch, updated.Token, false)
	}

	return snapshotOf(updated), nil
}

/*
RefreshProfile refetches the profile of the signed-in account.

Description: Unlike the fetch that follows a new token, the result replaces
the merged user even when the account id is unchanged.

Parameters:
  - ctx: context.Context
  - sessionID: string

Returns:
  - Snapshot: View after the refresh was scheduled
  - error: Unauthorized when signed out, or storage failures
*/
func (provider *Provider) RefreshProfile(ctx context.Context, sessionID string) (Snapshot, error) {
	snapshot, err := provider.Snapshot(ctx, sessionID)
	if err != nil {
		return snapshot, err
	}
	if !snapshot.Authenticated {
		return snapshot, apperr.Unauthorized(msgSignInFirst)
	}

	var scheduled bool

	updated, err := provider.store.Update(ctx, sessionID, func(session *Session) error {
		scheduled = false
		if session.Token == "" {
			return apperr.Unauthorized(msgSignInFirst)
		}
		if session.ProfilePending {
			return ErrSkipWrite
		}
		provider.markProfilePending(session)
		scheduled = true
		return nil
	})
	if err != nil {
		return snapshot, provider.storeError(err)
	}

	if scheduled {
		provider.fetchProfile(ctx, sessionID, updated.Epoch, updated.Token, true)
	}

	return snapshotOf(updated), nil
}

// # Profile Fetch

// fetchProfile runs the profile collaborator in the background. The result is
// applied only to the session epoch and token it was started for.
func (provider *Provider) fetchProfile(ctx context.Context, sessionID string, epoch uint64, token string, replace bool) {
	detached := context.WithoutCancel(ctx)

	provider.background.Add(1)
	go func() {
		defer provider.background.Done()

		fetchCtx, cancel := context.WithTimeout(detached, provider.profileTimeout)
		user, err := provider.profiles.FetchProfile(fetchCtx, token)
		cancel()

		if err == nil && (user == nil || user.ID == "") {
			err = errEmptyProfile
		}

		provider.applyProfile(detached, sessionID, epoch, token, user, err, replace)
	}()
}

func (provider *Provider) applyProfile(ctx context.Context, sessionID string, epoch uint64, token string, user *User, fetchErr error, replace bool) {
	var stale, exhausted, merged bool

	_, err := provider.store.Update(ctx, sessionID, func(session *Session) error {
		stale, exhausted, merged = false, false, false

		if session.Epoch != epoch || session.Token != token {
			stale = true
			return ErrSkipWrite
		}

		session.ProfilePending = false
		session.ProfileRequestedAt = time.Time{}

		if fetchErr != nil {
			// A failed refresh keeps the profile already merged.
			if session.User != nil {
				return nil
			}
			session.ProfileAttempts++
			if session.ProfileAttempts >= provider.maxProfileAttempts {
				exhausted = true
				session.clear()
				session.Error = msgProfileUnavailable
			}
			return nil
		}

		session.ProfileAttempts = 0
		if replace || session.User == nil || session.User.ID != user.ID {
			session.User = user.clone()
			merged = true
		}
		if session.OTPConfirmed {
			session.User.MobileConfirmed = true
		}
		return nil
	})

	logger := provider.logger.With(slog.String("session_id", sessionID))

	switch {
	case err != nil:
		logger.Error("profile_apply_failed", slog.Any("error", err))
	case stale:
		provider.publish(ctx, audit.EventStaleResultDiscarded, sessionID, "", "profile for a previous token")
	case exhausted:
		logger.Warn("profile_unavailable", slog.Any("error", fetchErr))
		provider.publish(ctx, audit.EventProfileUnavailable, sessionID, "", fetchErr.Error())
	case fetchErr != nil:
		logger.Warn("profile_fetch_failed", slog.Any("error", fetchErr))
	case merged:
		logger.Debug("profile_merged", slog.String("user_id", user.ID))
	}
}
