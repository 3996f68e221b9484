// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"

	"github.com/taibuivan/shopfront/internal/platform/sec"
)

// # Collaborator Contracts

// LoginResponse is what the backend returns for accepted credentials.
type LoginResponse struct {
	Token    string      `json:"token"`
	NeedsOTP bool        `json:"needs_otp"`
	Role     sec.RoleSet `json:"role"`
}

// RegisterPayload is the account-creation request sent to the backend.
type RegisterPayload struct {
	Name          string `json:"name,omitempty"`
	Mobile        string `json:"mobile"`
	PasswordHash  string `json:"password"`
	Role          string `json:"role"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// RegisterResponse is what the backend returns for a created account.
type RegisterResponse struct {
	Token    string `json:"token,omitempty"`
	NeedsOTP bool   `json:"needs_otp"`
}

// Authenticator is the login, register and OTP-confirm collaborator.
//
// Rejections must be returned as [*apperr.AppError] carrying a message that
// can be shown to the user.
type Authenticator interface {
	Login(ctx context.Context, identifier, credentialHash string) (*LoginResponse, error)
	Register(ctx context.Context, payload RegisterPayload) (*RegisterResponse, error)
	ConfirmOTP(ctx context.Context, token, code string) error
}

// ProfileFetcher is the profile-details collaborator.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, token string) (*User, error)
}

// TokenDecoder is the token-decode collaborator.
type TokenDecoder interface {
	Decode(token string) (*sec.TokenClaims, error)
}
