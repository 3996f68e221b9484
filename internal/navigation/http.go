// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shopfront/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/shopfront/internal/platform/request"
	"github.com/taibuivan/shopfront/internal/platform/respond"
	"github.com/taibuivan/shopfront/internal/platform/validate"
	"github.com/taibuivan/shopfront/internal/users/session"
)

// FieldPath is the query parameter of the navigation API.
const FieldPath = "path"

// SnapshotSource returns the guard view of a session.
type SnapshotSource interface {
	Snapshot(ctx context.Context, sessionID string) (session.Snapshot, error)
}

// # Definitions & Constructors

// Handler serves browser navigations.
type Handler struct {
	table    *Table
	sessions SnapshotSource
	renderer *Renderer
}

// NewHandler constructs a new [Handler].
func NewHandler(table *Table, sessions SnapshotSource, renderer *Renderer) *Handler {
	return &Handler{table: table, sessions: sessions, renderer: renderer}
}

// Routes returns the JSON navigation API.
//
// # Endpoints
//   - GET / ?path= : Decision for a client-side route change.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.resolve)
	return router
}

/*
ServePage answers a full page load.

GET /*

Response:
  - 200: HTML shell of the page, or the loading placeholder (Refresh header)
  - 302: Redirect decided by the guards (Location header)
*/
func (handler *Handler) ServePage(writer http.ResponseWriter, request *http.Request) {
	decision, err := handler.decide(request, request.URL.Path)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Cache-Control", "no-store")

	switch decision.Outcome {
	case OutcomeRedirect:
		http.Redirect(writer, request, decision.Location, http.StatusFound)
		return
	case OutcomeLoading:
		err = handler.renderer.Loading(writer)
	default:
		err = handler.renderer.Page(writer, decision)
	}

	if err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "page_render_failed", slog.Any("error", err))
	}
}

/*
Resolve returns the decision for a client-side navigation.

GET /api/v1/navigation?path=/seller/orders

Response:
  - 200: Decision
  - 400: Missing or relative path
*/
func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	target := request.URL.Query().Get(FieldPath)

	validator := &validate.Validator{}
	validator.Required(FieldPath, target).
		Custom(FieldPath, target != "" && !strings.HasPrefix(target, "/"), "Must be an absolute path").
		MaxLen(FieldPath, target, 2048)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	decision, err := handler.decide(request, target)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Cache-Control", "no-store")
	respond.OK(writer, decision)
}

func (handler *Handler) decide(request *http.Request, target string) (Decision, error) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		return Decision{}, err
	}

	snapshot, err := handler.sessions.Snapshot(request.Context(), sessionID)
	if err != nil {
		return Decision{}, err
	}

	if snapshot.User != nil {
		requestutil.RecordUser(request, snapshot.User.ID)
	}

	decision := handler.table.Resolve(target, snapshot)

	ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "navigation_decided",
		slog.String("target", target),
		slog.String("decision", decision.String()),
	)

	return decision, nil
}
