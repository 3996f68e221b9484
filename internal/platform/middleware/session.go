// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"time"

	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/ctxutil"
	"github.com/taibuivan/shopfront/pkg/uuid"
)

// SessionCookie makes sure every request carries a browser session id.
//
// # Flow
//  1. Read the 'sid' cookie. Only well-formed UUIDs are accepted.
//  2. Otherwise issue a fresh UUIDv7 and set it as an HttpOnly cookie.
//  3. Attach a [*ctxutil.Viewer] to the context so handlers and the access
//     log can see which session (and later which user) served the request.
//
// The cookie lifetime is refreshed on every request, matching the idle TTL of
// the session store.
func SessionCookie(secure bool, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			sessionID := ""
			if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
				if uuid.Valid(cookie.Value) {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.New()
			}

			http.SetCookie(writer, &http.Cookie{
				Name:     constants.SessionCookieName,
				Value:    sessionID,
				Path:     constants.SessionCookiePath,
				MaxAge:   int(ttl / time.Second),
				Secure:   secure,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := ctxutil.WithViewer(request.Context(), &ctxutil.Viewer{SessionID: sessionID})
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
