// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shopfront/internal/navigation"
	"github.com/taibuivan/shopfront/internal/platform/ctxutil"
	"github.com/taibuivan/shopfront/internal/platform/sec"
	"github.com/taibuivan/shopfront/internal/users/session"
)

type staticSessions struct {
	snapshot session.Snapshot
	err      error
}

func (source staticSessions) Snapshot(ctx context.Context, sessionID string) (session.Snapshot, error) {
	return source.snapshot, source.err
}

func newHandler(source navigation.SnapshotSource) *navigation.Handler {
	return navigation.NewHandler(navigation.DefaultTable(), source, navigation.NewRenderer("Shopfront", "/assets", 2*time.Second))
}

func withViewer(request *http.Request) *http.Request {
	viewer := &ctxutil.Viewer{SessionID: "sid-1"}
	return request.WithContext(ctxutil.WithViewer(request.Context(), viewer))
}

/*
TestHandler_ServePage maps decisions onto HTTP responses.
*/
func TestHandler_ServePage(t *testing.T) {
	t.Run("redirect", func(t *testing.T) {
		handler := newHandler(staticSessions{snapshot: signedOut()})

		recorder := httptest.NewRecorder()
		handler.ServePage(recorder, withViewer(httptest.NewRequest(http.MethodGet, "/admin", nil)))

		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/home", recorder.Header().Get("Location"))
		assert.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))
	})

	t.Run("render", func(t *testing.T) {
		handler := newHandler(staticSessions{snapshot: signedIn(true, 1, sec.RoleSeller)})

		recorder := httptest.NewRecorder()
		handler.ServePage(recorder, withViewer(httptest.NewRequest(http.MethodGet, "/seller/orders/o-1", nil)))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, recorder.Body.String(), `data-page="seller.order-detail"`)
		assert.Contains(t, recorder.Body.String(), "o-1")
	})

	t.Run("loading", func(t *testing.T) {
		handler := newHandler(staticSessions{snapshot: profilePending()})

		recorder := httptest.NewRecorder()
		handler.ServePage(recorder, withViewer(httptest.NewRequest(http.MethodGet, "/customer", nil)))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "2", recorder.Header().Get("Refresh"))
		assert.Contains(t, recorder.Body.String(), `data-outcome="loading"`)
	})

	t.Run("store_failure", func(t *testing.T) {
		handler := newHandler(staticSessions{err: errors.New("redis down")})

		recorder := httptest.NewRecorder()
		handler.ServePage(recorder, withViewer(httptest.NewRequest(http.MethodGet, "/home", nil)))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

/*
TestHandler_Resolve returns decisions as JSON.
*/
func TestHandler_Resolve(t *testing.T) {
	handler := newHandler(staticSessions{snapshot: signedIn(true, 0, sec.RoleCustomer)}).Routes()

	tests := []struct {
		name     string
		query    string
		status   int
		outcome  string
		location string
	}{
		{"unknown_path", "?path=/unknown-path", http.StatusOK, "redirect", "/customer"},
		{"customer_page", "?path=/customer/orders", http.StatusOK, "render", ""},
		{"missing_path", "", http.StatusBadRequest, "", ""},
		{"relative_path", "?path=seller", http.StatusBadRequest, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, withViewer(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)))

			require.Equal(t, tt.status, recorder.Code)
			if tt.status != http.StatusOK {
				return
			}

			var body struct {
				Data struct {
					Outcome  string `json:"outcome"`
					Location string `json:"location"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.outcome, body.Data.Outcome)
			assert.Equal(t, tt.location, body.Data.Location)
		})
	}
}

/*
TestHandler_RecordsViewer fills the user id used by the access log.
*/
func TestHandler_RecordsViewer(t *testing.T) {
	handler := newHandler(staticSessions{snapshot: signedIn(true, 0, sec.RoleCustomer)})

	viewer := &ctxutil.Viewer{SessionID: "sid-1"}
	request := httptest.NewRequest(http.MethodGet, "/customer", nil)
	request = request.WithContext(ctxutil.WithViewer(request.Context(), viewer))

	handler.ServePage(httptest.NewRecorder(), request)
	assert.Equal(t, "u1", viewer.UserID)
}
