// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation

import (
	"fmt"
	"path"
	"strings"
)

// # Outcomes

// Outcome is what a navigation resolves to.
type Outcome uint8

const (
	// OutcomeContinue lets the next guard in the chain run. It never leaves [Table.Resolve].
	OutcomeContinue Outcome = iota

	// OutcomeRender shows the page of the matched route.
	OutcomeRender

	// OutcomeRedirect replaces the current location with [Decision.Location].
	OutcomeRedirect

	// OutcomeLoading shows the placeholder until the session settles.
	OutcomeLoading
)

var outcomeNames = map[Outcome]string{
	OutcomeContinue: "continue",
	OutcomeRender:   "render",
	OutcomeRedirect: "redirect",
	OutcomeLoading:  "loading",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Decision is the single result of one navigation.
type Decision struct {
	Outcome  Outcome           `json:"outcome"`
	Location string            `json:"location,omitempty"`
	Page     string            `json:"page,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
}

// Pass lets the chain continue.
func Pass() Decision { return Decision{Outcome: OutcomeContinue} }

// Loading renders the placeholder.
func Loading() Decision { return Decision{Outcome: OutcomeLoading} }

// Render shows page.
func Render(page string, params map[string]string) Decision {
	return Decision{Outcome: OutcomeRender, Page: page, Params: params}
}

// Redirect sends the request to location unless it is already there, in which
// case the chain continues. This is the only way guards redirect.
func Redirect(request Request, location string) Decision {
	if samePath(request.Path, location) {
		return Pass()
	}
	return Decision{Outcome: OutcomeRedirect, Location: location}
}

// String is used in logs.
func (d Decision) String() string {
	switch d.Outcome {
	case OutcomeRedirect:
		return "redirect " + d.Location
	case OutcomeRender:
		return "render " + d.Page
	default:
		return d.Outcome.String()
	}
}

// NormalizePath cleans p into the form routes are matched against.
func NormalizePath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func samePath(a, b string) bool {
	return NormalizePath(a) == NormalizePath(b)
}
