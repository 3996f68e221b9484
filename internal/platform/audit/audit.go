// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package audit records session lifecycle events.

Every transition the session provider performs on behalf of a browser
(sign-in, sign-out, forced expiry, rejected token) is emitted as an [Event].
Publishers never return errors to their callers: an unavailable audit sink
must not block a user from signing in or out.

Sinks:

  - LogPublisher: writes events to the structured logger.
  - KafkaPublisher: produces JSON events to a Kafka topic keyed by session id.
*/
package audit

import (
	"context"
	"log/slog"
	"time"
)

// # Event Types

// EventType names a session lifecycle transition.
type EventType string

const (
	EventLoginSucceeded       EventType = "login_succeeded"
	EventLoginFailed          EventType = "login_failed"
	EventRegistered           EventType = "registered"
	EventRegisterFailed       EventType = "register_failed"
	EventOTPConfirmed         EventType = "otp_confirmed"
	EventOTPFailed            EventType = "otp_failed"
	EventLogout               EventType = "logout"
	EventSessionExpired       EventType = "session_expired"
	EventTokenRejected        EventType = "token_rejected"
	EventProfileUnavailable   EventType = "profile_unavailable"
	EventStaleResultDiscarded EventType = "stale_result_discarded"
)

// Event is a single audit record.
type Event struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher delivers audit events to a sink.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// # Log Sink

// LogPublisher writes audit events through slog.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a [LogPublisher].
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish implements [Publisher].
func (publisher *LogPublisher) Publish(ctx context.Context, event Event) {
	publisher.logger.InfoContext(ctx, "session_audit",
		slog.String("type", string(event.Type)),
		slog.String("session_id", event.SessionID),
		slog.String("user_id", event.UserID),
		slog.String("reason", event.Reason),
		slog.Time("at", event.At),
	)
}

