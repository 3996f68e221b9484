// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shopfront/internal/navigation"
	"github.com/taibuivan/shopfront/internal/platform/sec"
	"github.com/taibuivan/shopfront/internal/users/session"
)

// # Session Fixtures

func signedOut() session.Snapshot {
	return session.Snapshot{SessionID: "sid-1"}
}

func signedIn(confirmed bool, stores int, roles ...sec.Role) session.Snapshot {
	user := &session.User{ID: "u1", MobileConfirmed: confirmed, Role: sec.NewRoleSet(roles...)}
	for i := 0; i < stores; i++ {
		user.StoreLinks = append(user.StoreLinks, session.StoreLink{StoreID: "s1", Slug: "acme"})
	}
	return session.Snapshot{SessionID: "sid-1", User: user, Authenticated: true}
}

func quickLogin(snapshot session.Snapshot) session.Snapshot {
	snapshot.QuickLogin = true
	return snapshot
}

func profilePending() session.Snapshot {
	return session.Snapshot{SessionID: "sid-1", Authenticated: true, Loading: true}
}

func redirectTo(location string) navigation.Decision {
	return navigation.Decision{Outcome: navigation.OutcomeRedirect, Location: location}
}

func render(page string, params map[string]string) navigation.Decision {
	return navigation.Decision{Outcome: navigation.OutcomeRender, Page: page, Params: params}
}

var loading = navigation.Decision{Outcome: navigation.OutcomeLoading}

/*
TestDefaultTable_Resolve walks the zones of the marketplace.
*/
func TestDefaultTable_Resolve(t *testing.T) {
	table := navigation.DefaultTable()

	tests := []struct {
		name    string
		path    string
		session session.Snapshot
		want    navigation.Decision
	}{
		// Seller zone: store links gate the catalogue.
		{"seller_orders_without_store", "/seller/orders", signedIn(true, 0, sec.RoleSeller), redirectTo("/seller/store-details")},
		{"seller_orders_with_store", "/seller/orders", signedIn(true, 1, sec.RoleSeller), render("seller.orders", nil)},
		{"seller_store_details_without_store", "/seller/store-details", signedIn(true, 0, sec.RoleSeller), render("seller.store-details", nil)},
		{"seller_product_edit_params", "/seller/products/p-9/edit", signedIn(true, 1, sec.RoleSeller), render("seller.product-edit", map[string]string{"productId": "p-9"})},
		{"seller_zone_as_customer", "/seller/orders", signedIn(true, 0, sec.RoleCustomer), redirectTo("/home")},
		{"seller_zone_signed_out", "/seller", signedOut(), redirectTo("/home")},
		{"seller_zone_seller_and_customer", "/seller", signedIn(true, 1, sec.RoleSeller, sec.RoleCustomer), render("seller.dashboard", nil)},

		// Admin zone.
		{"admin_signed_out", "/admin", signedOut(), redirectTo("/home")},
		{"admin_as_admin", "/admin/users", signedIn(true, 0, sec.RoleAdmin), render("admin", map[string]string{"*": "users"})},
		{"admin_as_seller", "/admin", signedIn(true, 1, sec.RoleSeller), redirectTo("/home")},

		// Customer zone.
		{"customer_nested", "/customer/orders/42", signedIn(true, 0, sec.RoleCustomer), render("customer", map[string]string{"*": "orders/42"})},
		{"customer_guest_only", "/customer", signedIn(true, 0, sec.RoleGuest), redirectTo("/home")},
		{"customer_no_roles", "/customer", signedIn(true, 0), redirectTo("/home")},
		{"customer_while_loading", "/customer", profilePending(), loading},

		// Public zone.
		{"home_signed_out", "/home", signedOut(), render("home", nil)},
		{"login_confirmed_seller", "/login", signedIn(true, 1, sec.RoleSeller), redirectTo("/seller")},
		{"login_unconfirmed", "/login", signedIn(false, 0, sec.RoleCustomer), redirectTo("/otp-verify")},
		{"home_profile_pending", "/home", profilePending(), loading},
		{"home_confirmed_without_roles", "/home", signedIn(true, 0), render("home", nil)},

		// OTP zone.
		{"otp_signed_out", "/otp-verify", signedOut(), redirectTo("/home")},
		{"otp_unconfirmed", "/otp-verify", signedIn(false, 0, sec.RoleSeller), render("otp-verify", nil)},
		{"otp_confirmed", "/otp-verify", signedIn(true, 0, sec.RoleSeller), redirectTo("/seller")},
		{"otp_quick_login_confirmed", "/otp-verify", quickLogin(signedIn(true, 0, sec.RoleCustomer)), render("otp-verify", nil)},
		{"otp_quick_login_pending_profile", "/otp-verify", quickLogin(profilePending()), loading},
		{"home_quick_login_confirmed", "/home", quickLogin(signedIn(true, 0, sec.RoleCustomer)), redirectTo("/otp-verify")},
		{"home_quick_login_signed_out", "/home", quickLogin(signedOut()), render("home", nil)},

		// Storefront beats every guarded zone and needs no session.
		{"storefront_signed_out", "/store/acme", signedOut(), render("storefront", map[string]string{"storeSlug": "acme"})},
		{"storefront_nested", "/store/acme/products/1", signedOut(), render("storefront", map[string]string{"storeSlug": "acme", "*": "products/1"})},
		{"storefront_non_canonical", "/store/Café-Shop/products", signedOut(), redirectTo("/store/cafe-shop/products")},

		// Fallback.
		{"unknown_as_customer", "/unknown-path", signedIn(true, 0, sec.RoleCustomer), redirectTo("/customer")},
		{"unknown_as_admin_seller", "/unknown-path", signedIn(true, 1, sec.RoleSeller, sec.RoleAdmin), redirectTo("/admin")},
		{"root_signed_out", "/", signedOut(), redirectTo("/home")},
		{"unknown_profile_pending", "/whatever", profilePending(), loading},
		{"seller_unknown_leaf", "/seller/unknown", signedIn(true, 1, sec.RoleSeller), redirectTo("/seller")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Resolve(tt.path, tt.session))
		})
	}
}

var tablePaths = []string{
	"/", "/home", "/login", "/register", "/otp-verify", "/customer", "/customer/x",
	"/seller", "/seller/orders", "/seller/store-details", "/admin", "/admin/x",
	"/store/acme", "/store/Acme-Shop", "/unknown",
}

func tableSessions() map[string]session.Snapshot {
	return map[string]session.Snapshot{
		"signed_out":                     signedOut(),
		"profile_pending":                profilePending(),
		"unconfirmed_seller":             signedIn(false, 0, sec.RoleSeller),
		"unconfirmed_customer":           signedIn(false, 0, sec.RoleCustomer),
		"seller_without_store":           signedIn(true, 0, sec.RoleSeller),
		"seller_with_store":              signedIn(true, 1, sec.RoleSeller),
		"customer":                       signedIn(true, 0, sec.RoleCustomer),
		"admin":                          signedIn(true, 0, sec.RoleAdmin),
		"guest":                          signedIn(true, 0, sec.RoleGuest),
		"no_roles":                       signedIn(true, 0),
		"quick_login_signed_out":         quickLogin(signedOut()),
		"quick_login_profile_pending":    quickLogin(profilePending()),
		"quick_login_confirmed_customer": quickLogin(signedIn(true, 0, sec.RoleCustomer)),
		"quick_login_unconfirmed_seller": quickLogin(signedIn(false, 1, sec.RoleSeller)),
		"quick_login_confirmed_admin":    quickLogin(signedIn(true, 0, sec.RoleAdmin)),
	}
}

/*
TestDefaultTable_NoSelfRedirect never redirects a path to itself.
*/
func TestDefaultTable_NoSelfRedirect(t *testing.T) {
	table := navigation.DefaultTable()

	for _, path := range tablePaths {
		for _, snapshot := range tableSessions() {
			decision := table.Resolve(path, snapshot)
			if decision.Outcome == navigation.OutcomeRedirect {
				assert.NotEqual(t, path, decision.Location, "path %s", path)
			}
			assert.NotEqual(t, navigation.OutcomeContinue, decision.Outcome)
		}
	}
}

/*
TestDefaultTable_RedirectsSettle follows every redirect chain until it renders
or waits, and fails on any location visited twice.
*/
func TestDefaultTable_RedirectsSettle(t *testing.T) {
	table := navigation.DefaultTable()

	for name, snapshot := range tableSessions() {
		t.Run(name, func(t *testing.T) {
			for _, start := range tablePaths {
				visited := []string{start}
				decision := table.Resolve(start, snapshot)

				for decision.Outcome == navigation.OutcomeRedirect {
					require.NotContains(t, visited, decision.Location, "redirect cycle from %s: %v", start, visited)
					require.Less(t, len(visited), 8, "redirect chain from %s too long: %v", start, visited)

					visited = append(visited, decision.Location)
					decision = table.Resolve(decision.Location, snapshot)
				}

				assert.Contains(t, []navigation.Outcome{navigation.OutcomeRender, navigation.OutcomeLoading}, decision.Outcome, "chain %v", visited)
			}
		})
	}
}

/*
TestTable_FirstMatchWins keeps declaration order as priority.
*/
func TestTable_FirstMatchWins(t *testing.T) {
	table := navigation.NewTable(
		navigation.Route{Patterns: []string{"/a/*"}, Page: "first"},
		navigation.Route{Patterns: []string{"/a/b"}, Page: "second"},
	)

	assert.Equal(t, "first", table.Resolve("/a/b", signedOut()).Page)
	assert.Equal(t, "first", table.Resolve("/a//b/", signedOut()).Page)
}
