// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/ctxutil"
	"github.com/taibuivan/shopfront/internal/platform/validate"
)

// maxBodyBytes caps auth form payloads.
const maxBodyBytes = 64 << 10

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	body := http.MaxBytesReader(nil, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
RequiredSessionID returns the browser session id attached by the session middleware.

Returns:
  - string: Session id
  - error: apperr.Unauthorized if the request carries no session
*/
func RequiredSessionID(request *http.Request) (string, error) {
	sessionID := ctxutil.GetSessionID(request.Context())
	if sessionID == "" {
		return "", apperr.Unauthorized("Session required")
	}
	return sessionID, nil
}

/*
RecordUser notes the resolved account on the request viewer for the access log.
*/
func RecordUser(request *http.Request, userID string) {
	if viewer := ctxutil.GetViewer(request.Context()); viewer != nil {
		viewer.UserID = userID
	}
}
