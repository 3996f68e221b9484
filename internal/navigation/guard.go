// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation

import (
	"strings"

	"github.com/taibuivan/shopfront/internal/navigation/landing"
	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/sec"
	"github.com/taibuivan/shopfront/internal/users/session"
	"github.com/taibuivan/shopfront/pkg/slug"
)

// # Guard Contract

// Request is what a guard sees: the matched path, its parameters and the session.
type Request struct {
	Path    string
	Params  map[string]string
	Session session.Snapshot
}

// Guard is a stateless predicate over a navigation request.
//
// It returns [Pass] to let the chain continue, or a terminal decision. Guards
// never fail: every branch ends in a decision.
type Guard func(Request) Decision

// # Guards

// Public wraps the sign-in and sign-up forms.
//
// A pending quick login or an unconfirmed mobile goes to OTP verification, a
// confirmed user goes to their landing page.
func Public() Guard {
	return func(request Request) Decision {
		snapshot := request.Session
		user := snapshot.User

		if awaitingOTP(snapshot) {
			return Redirect(request, constants.PathOTPVerify)
		}

		if user != nil {
			return Redirect(request, landing.HomePath(user.Role))
		}

		// Token held but profile not merged yet.
		if snapshot.Authenticated {
			return Loading()
		}

		return Pass()
	}
}

// OTP wraps the mobile verification step.
//
// It admits exactly the sessions [Public] sends here, so the two guards can
// never bounce a visitor between each other.
func OTP() Guard {
	return func(request Request) Decision {
		snapshot := request.Session

		if snapshot.User == nil {
			if snapshot.Authenticated {
				return Loading()
			}
			return Redirect(request, constants.PathHome)
		}

		if awaitingOTP(snapshot) {
			return Pass()
		}

		return Redirect(request, constants.PathSeller)
	}
}

// awaitingOTP reports a signed-in session whose code is still expected: a quick
// login, or a merged user with an unconfirmed mobile.
func awaitingOTP(snapshot session.Snapshot) bool {
	if !snapshot.Authenticated {
		return false
	}
	if snapshot.QuickLogin {
		return true
	}
	return snapshot.User != nil && !snapshot.User.MobileConfirmed
}

// Private admits users holding a usable role from allowed, and sends
// everyone else to redirectTo. A loading session renders the placeholder
// instead of being denied.
func Private(allowed sec.RoleSet, redirectTo string) Guard {
	return func(request Request) Decision {
		snapshot := request.Session

		if snapshot.Loading {
			return Loading()
		}

		roles := snapshot.Roles()
		if snapshot.User == nil || roles.IsEmpty() {
			return Redirect(request, redirectTo)
		}

		if roles.Usable() && roles.HasAny(allowed) {
			return Pass()
		}

		return Redirect(request, redirectTo)
	}
}

// Seller requires the SELLER role and at least one linked store. Sellers
// without a store may only reach the store-creation page.
func Seller() Guard {
	return func(request Request) Decision {
		user := request.Session.User

		if user == nil || !user.Role.Has(sec.RoleSeller) {
			return Redirect(request, constants.PathHome)
		}

		if len(user.StoreLinks) == 0 {
			return Redirect(request, constants.PathSellerStoreDetails)
		}

		return Pass()
	}
}

// Admin requires the ADMIN role.
func Admin() Guard {
	return func(request Request) Decision {
		if !request.Session.Roles().Has(sec.RoleAdmin) {
			return Redirect(request, constants.PathRoot)
		}
		return Pass()
	}
}

// CanonicalSlug redirects storefront paths whose slug parameter is not in
// canonical form (lower case ASCII, hyphenated). It needs no session.
func CanonicalSlug(param string) Guard {
	return func(request Request) Decision {
		raw := request.Params[param]
		canonical := slug.From(raw)

		if canonical == "" {
			return Redirect(request, constants.PathRoot)
		}

		if canonical == raw {
			return Pass()
		}

		return Redirect(request, strings.Replace(request.Path, "/"+raw, "/"+canonical, 1))
	}
}
