// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire gateway.

It defines default timeouts, rate limits, header names and the literal
navigation paths shared between the session layer and the route guards.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Session: Cookie naming and storage prefixes.
  - Navigation: Landing paths used by redirects.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "shopfront-gateway"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderRefresh       = "Refresh"
)

// # Session

const (
	// SessionCookieName is the cookie carrying the opaque browser session id.
	SessionCookieName = "sid"

	// SessionCookiePath scopes the cookie to the whole site.
	SessionCookiePath = "/"

	// RedisPrefixSession namespaces session records in Redis.
	RedisPrefixSession = "shopfront:session:"

	// SessionSweepInterval is how often the in-memory store drops idle sessions.
	SessionSweepInterval = 5 * time.Minute
)

// # Navigation Paths

const (
	// PathRoot is the site root. Unmatched, it falls to the role home redirect.
	PathRoot = "/"

	// PathHome is the public auth entry (login and register) and the fallback landing.
	PathHome = "/home"

	// PathLogin and PathRegister are the dedicated auth forms.
	PathLogin    = "/login"
	PathRegister = "/register"

	// PathStorefront prefixes public shop pages.
	PathStorefront = "/store"

	// PathOTPVerify is the mobile verification step.
	PathOTPVerify = "/otp-verify"

	// PathCustomer is the customer landing.
	PathCustomer = "/customer"

	// PathSeller is the seller dashboard landing.
	PathSeller = "/seller"

	// PathSellerStoreDetails is the store-creation page for sellers without a store.
	PathSellerStoreDetails = "/seller/store-details"

	// PathAdmin is the admin landing.
	PathAdmin = "/admin"
)

// # JSON Field Identifiers

const (
	FieldError  = "error"
	FieldCode   = "code"
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Database Schemas

const (
	SchemaUsers  = "users"
	SchemaSeller = "seller"
)
