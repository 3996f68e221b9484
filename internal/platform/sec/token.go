// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the security primitives of the gateway: the role
// enumeration, bearer token decoding and credential hashing.
//
// # Architecture
//
// Tokens are issued by the REST backend, never by this service. The gateway
// only reads them to learn when a session must end and whom it belongs to.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a bearer token cannot be decoded at all.
var ErrMalformedToken = errors.New("sec: malformed token")

// TokenClaims is the subset of the backend access token read by the gateway.
type TokenClaims struct {
	jwt.RegisteredClaims

	// UserID mirrors the backend "id" claim. The backend has emitted both
	// numeric and string identifiers, so the raw JSON value is kept.
	UserID any `json:"id,omitempty"`
}

// Identity returns the account identifier carried by the token.
func (claims *TokenClaims) Identity() string {
	if claims.UserID != nil {
		if id := fmt.Sprint(claims.UserID); id != "" {
			return id
		}
	}
	return claims.Subject
}

// Expired reports whether the embedded expiry is at or before now.
// A token without an "exp" claim never expires.
func (claims *TokenClaims) Expired(now time.Time) bool {
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.Time.After(now)
}

// TokenDecoder reads backend access tokens.
//
// Without a public key it only decodes the payload. With one it also checks the
// RS256 signature. Expiry is never enforced here; callers decide with [TokenClaims.Expired].
type TokenDecoder struct {
	publicKey *rsa.PublicKey
	parser    *jwt.Parser
}

// NewTokenDecoder creates a decoder. An empty publicKeyPath selects unverified decoding.
func NewTokenDecoder(publicKeyPath string) (*TokenDecoder, error) {
	if publicKeyPath == "" {
		return NewUnverifiedDecoder(), nil
	}

	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return NewVerifyingDecoder(publicKey), nil
}

// NewUnverifiedDecoder returns a decoder that trusts the payload as-is.
func NewUnverifiedDecoder() *TokenDecoder {
	return &TokenDecoder{parser: jwt.NewParser(jwt.WithoutClaimsValidation(), jwt.WithJSONNumber())}
}

// NewVerifyingDecoder returns a decoder that requires a valid RS256 signature.
func NewVerifyingDecoder(publicKey *rsa.PublicKey) *TokenDecoder {
	return &TokenDecoder{
		publicKey: publicKey,
		parser: jwt.NewParser(
			jwt.WithoutClaimsValidation(),
			jwt.WithJSONNumber(),
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		),
	}
}

// Decode parses tokenString into [TokenClaims].
func (decoder *TokenDecoder) Decode(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, ErrMalformedToken
	}

	claims := &TokenClaims{}

	if decoder.publicKey == nil {
		if _, _, err := decoder.parser.ParseUnverified(tokenString, claims); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
		}
		return claims, nil
	}

	token, err := decoder.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return decoder.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid signature", ErrMalformedToken)
	}

	return claims, nil
}
