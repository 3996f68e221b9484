// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package navigation decides, for every browser navigation, whether the viewer
sees the requested page, is redirected, or waits on a loading placeholder.

# Architecture

  - Table: ordered list of routes, evaluated top-down. The first route whose
    pattern matches runs its guard chain. Unmatched paths fall back to the
    role home redirect.
  - Guard: stateless predicate over the session snapshot (Public, OTP,
    Private, Seller, Admin, CanonicalSlug).
  - Decision: exactly one of render, redirect or loading.
  - Handler: HTTP delivery for page loads (302 replace-navigation) and the
    JSON navigation API used by client-side routing.
*/
package navigation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shopfront/internal/navigation/landing"
	"github.com/taibuivan/shopfront/internal/users/session"
)

// # Route Definitions

// Route maps path patterns to a guard chain and a page.
//
// Patterns use chi syntax: "{name}" captures a segment, a trailing "/*"
// captures the rest of the path.
type Route struct {
	Patterns []string
	Guards   []Guard
	Page     string
}

type compiledRoute struct {
	Route
	matcher *chi.Mux
}

// Table is the ordered route table.
type Table struct {
	routes []compiledRoute
}

// NewTable compiles routes in priority order.
func NewTable(routes ...Route) *Table {
	table := &Table{routes: make([]compiledRoute, 0, len(routes))}

	for _, route := range routes {
		matcher := chi.NewRouter()
		for _, pattern := range route.Patterns {
			matcher.Get(pattern, noop)
		}
		table.routes = append(table.routes, compiledRoute{Route: route, matcher: matcher})
	}

	return table
}

func noop(http.ResponseWriter, *http.Request) {}

/*
Resolve evaluates path against the table for the given session.

Description: The first matching route wins. Its guards run in order until
one returns a terminal decision; if all pass, the route page is rendered.
Unmatched paths redirect to the role home of the viewer.

Parameters:
  - path: string (request path, normalized here)
  - snapshot: session.Snapshot

Returns:
  - Decision: render, redirect or loading
*/
func (table *Table) Resolve(path string, snapshot session.Snapshot) Decision {
	path = NormalizePath(path)

	for _, route := range table.routes {
		routeContext := chi.NewRouteContext()
		if !route.matcher.Match(routeContext, http.MethodGet, path) {
			continue
		}

		request := Request{Path: path, Params: paramsOf(routeContext), Session: snapshot}

		for _, guard := range route.Guards {
			if decision := guard(request); decision.Outcome != OutcomeContinue {
				return decision
			}
		}

		return Render(route.Page, request.Params)
	}

	return roleHome(Request{Path: path, Session: snapshot})
}

// roleHome is the catch-all. A session still merging its profile waits
// rather than landing on the anonymous fallback.
func roleHome(request Request) Decision {
	if request.Session.Authenticated && request.Session.User == nil {
		return Loading()
	}

	decision := Redirect(request, landing.HomePath(request.Session.Roles()))
	if decision.Outcome == OutcomeContinue {
		return Render(PageNotFound, nil)
	}
	return decision
}

func paramsOf(routeContext *chi.Context) map[string]string {
	keys := routeContext.URLParams.Keys
	if len(keys) == 0 {
		return nil
	}

	params := make(map[string]string, len(keys))
	for i, key := range keys {
		params[key] = routeContext.URLParams.Values[i]
	}
	return params
}
