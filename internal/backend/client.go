// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package backend is the client of the marketplace REST backend.

It implements the collaborator contracts of the session package: login,
register and OTP confirmation ([session.Authenticator]) and profile details
([session.ProfileFetcher]).

Error policy:

  - 4xx answers become [*apperr.AppError] values carrying the backend message,
    so login and register forms can show it as-is.
  - Transport failures and 5xx answers become a generic 503.
*/
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/users/session"
)

// Backend endpoints, relative to the base URL.
const (
	PathLogin      = "/auth/login"
	PathRegister   = "/auth/register"
	PathOTPConfirm = "/auth/otp/confirm"
	PathProfile    = "/users/me"
)

const (
	msgUnreachable = "Unable to reach the server. Please try again."
	msgRejected    = "The request was rejected."

	// maxErrorBody caps how much of an error answer is read.
	maxErrorBody = 16 << 10
)

// Client talks to the REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a [Client] with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a [Client] around an existing [http.Client].
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// # Authenticator

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login implements [session.Authenticator].
func (client *Client) Login(ctx context.Context, identifier, credentialHash string) (*session.LoginResponse, error) {
	response := &session.LoginResponse{}
	if err := client.do(ctx, http.MethodPost, PathLogin, "", loginRequest{Identifier: identifier, Password: credentialHash}, response); err != nil {
		return nil, err
	}
	return response, nil
}

// Register implements [session.Authenticator].
func (client *Client) Register(ctx context.Context, payload session.RegisterPayload) (*session.RegisterResponse, error) {
	response := &session.RegisterResponse{}
	if err := client.do(ctx, http.MethodPost, PathRegister, "", payload, response); err != nil {
		return nil, err
	}
	return response, nil
}

type otpRequest struct {
	Code string `json:"code"`
}

// ConfirmOTP implements [session.Authenticator].
func (client *Client) ConfirmOTP(ctx context.Context, token, code string) error {
	return client.do(ctx, http.MethodPost, PathOTPConfirm, token, otpRequest{Code: code}, nil)
}

// # Profile Fetcher

// FetchProfile implements [session.ProfileFetcher].
func (client *Client) FetchProfile(ctx context.Context, token string) (*session.User, error) {
	user := &session.User{}
	if err := client.do(ctx, http.MethodGet, PathProfile, token, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// # Transport

// do sends one JSON request. A nil target discards the response body.
func (client *Client) do(ctx context.Context, method, path, token string, body, target any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend_encode_failed: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend_request_failed: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.ServiceUnavailable(msgUnreachable, fmt.Errorf("backend %s %s: %w", method, path, err))
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return errorFromResponse(method, path, response)
	}

	if target == nil || response.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return apperr.ServiceUnavailable(msgUnreachable, fmt.Errorf("backend %s %s: decode: %w", method, path, err))
	}

	return nil
}

// errorBody covers the shapes the backend uses for failures.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (body errorBody) text() string {
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

func errorFromResponse(method, path string, response *http.Response) error {
	cause := fmt.Errorf("backend %s %s: status %d", method, path, response.StatusCode)

	if response.StatusCode >= http.StatusInternalServerError {
		return apperr.ServiceUnavailable(msgUnreachable, cause)
	}

	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &body); err != nil || body.text() == "" {
		body.Message = msgRejected
	}
	message := body.text()

	var appErr *apperr.AppError
	switch response.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		appErr = apperr.Unauthorized(message)
	case http.StatusConflict:
		appErr = apperr.Conflict(message)
	case http.StatusTooManyRequests:
		appErr = apperr.RateLimited(retryAfter(response))
	default:
		appErr = apperr.ValidationError(message)
	}

	return appErr.Wrap(cause)
}

// retryAfter reads the Retry-After seconds, defaulting to one minute.
func retryAfter(response *http.Response) int {
	var seconds int
	if _, err := fmt.Sscanf(response.Header.Get("Retry-After"), "%d", &seconds); err != nil || seconds <= 0 {
		return 60
	}
	return seconds
}
