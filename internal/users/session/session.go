// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session owns the browser session: who is signed in, with which bearer
token, and whether an auth operation is still in flight.

# Architecture

  - Session / User: the state held for one browser, keyed by an opaque id.
  - Store: persistence of that state (process memory or Redis).
  - Provider: the only writer. It runs login, register, OTP confirmation and
    logout, and keeps the session invariants (expiry, profile merge).
  - Snapshot: the read-only view that route guards evaluate.
*/
package session

import (
	"time"

	"github.com/taibuivan/shopfront/internal/platform/sec"
)

// # Domain Entities

// StoreLink associates a seller account with a storefront it created.
type StoreLink struct {
	StoreID string `json:"store_id"`
	Name    string `json:"name,omitempty"`
	Slug    string `json:"slug,omitempty"`
}

// User is the signed-in account, as merged from the profile-details collaborator.
type User struct {
	ID              string      `json:"id"`
	Name            string      `json:"name,omitempty"`
	Email           string      `json:"email,omitempty"`
	Mobile          string      `json:"mobile"`
	MobileConfirmed bool        `json:"mobile_confirmed"`
	Role            sec.RoleSet `json:"role"`
	StoreLinks      []StoreLink `json:"store_links"`
}

// clone returns a deep copy so snapshots never alias stored state.
func (user *User) clone() *User {
	if user == nil {
		return nil
	}
	copied := *user
	copied.StoreLinks = append([]StoreLink(nil), user.StoreLinks...)
	return &copied
}

// Session is the full state held for one browser.
type Session struct {
	ID    string `json:"id"`
	Token string `json:"token,omitempty"`
	User  *User  `json:"user,omitempty"`

	// Loading is true while login, register or OTP confirmation is in flight.
	Loading bool `json:"loading"`

	// Error is the message of the most recent failed auth operation.
	Error string `json:"error,omitempty"`

	// QuickLogin marks an OTP-only sign-in that still awaits its code.
	QuickLogin bool `json:"quick_login"`

	// OTPConfirmed records a confirmed mobile for the current token, so a
	// profile read before the confirmation cannot undo it when merged.
	OTPConfirmed bool `json:"otp_confirmed,omitempty"`

	// ProfilePending is true while a profile-details fetch is in flight.
	ProfilePending bool `json:"profile_pending"`

	// ProfileAttempts counts consecutive failed profile fetches for the current token.
	ProfileAttempts int `json:"profile_attempts"`

	// ProfileRequestedAt is when the current profile fetch started.
	ProfileRequestedAt time.Time `json:"profile_requested_at,omitempty"`

	// Epoch increases on every logout. Async results started under an older
	// epoch are discarded.
	Epoch uint64 `json:"epoch"`

	UpdatedAt time.Time `json:"updated_at"`
}

// clear empties the session and reports whether anything was cleared.
func (session *Session) clear() bool {
	hadState := session.Token != "" || session.User != nil || session.Loading ||
		session.QuickLogin || session.ProfilePending || session.Error != ""

	session.Token = ""
	session.User = nil
	session.Loading = false
	session.Error = ""
	session.QuickLogin = false
	session.OTPConfirmed = false
	session.ProfilePending = false
	session.ProfileAttempts = 0
	session.ProfileRequestedAt = time.Time{}

	if hadState {
		session.Epoch++
	}

	return hadState
}

// # Read-Only View

// Snapshot is the immutable view of a session that guards evaluate.
type Snapshot struct {
	SessionID string `json:"-"`

	// User is nil whenever no token is held.
	User *User `json:"user"`

	// Authenticated is true when a bearer token is held.
	Authenticated bool `json:"authenticated"`

	// Loading is true while an auth operation or a profile fetch is pending,
	// or while a token is held but its profile has not been merged yet.
	Loading bool `json:"loading"`

	Error      string `json:"error,omitempty"`
	QuickLogin bool   `json:"quick_login"`
}

// Roles returns the role set of the current user, empty when signed out.
func (snapshot Snapshot) Roles() sec.RoleSet {
	if snapshot.User == nil {
		return 0
	}
	return snapshot.User.Role
}

// snapshotOf derives the guard view from a session.
func snapshotOf(session *Session) Snapshot {
	snapshot := Snapshot{
		SessionID:  session.ID,
		Error:      session.Error,
		QuickLogin: session.QuickLogin,
		Loading:    session.Loading || session.ProfilePending,
	}

	if session.Token == "" {
		return snapshot
	}

	snapshot.Authenticated = true
	snapshot.User = session.User.clone()

	if snapshot.User == nil {
		snapshot.Loading = true
	}

	return snapshot
}

// # Field Identifiers

// Field names for validation and JSON payloads of the auth API.
const (
	FieldIdentifier    = "identifier"
	FieldPassword      = "password"
	FieldName          = "name"
	FieldMobile        = "mobile"
	FieldRole          = "role"
	FieldTermsAccepted = "terms_accepted"
	FieldCode          = "code"
)
