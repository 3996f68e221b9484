// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation

import (
	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/sec"
)

// # Page Names

// Page names handed to the browser application.
const (
	PageStorefront = "storefront"
	PageHome       = "home"
	PageLogin      = "login"
	PageRegister   = "register"
	PageOTPVerify  = "otp-verify"
	PageCustomer   = "customer"
	PageAdmin      = "admin"
	PageNotFound   = "not-found"
)

// ParamStoreSlug is the storefront slug parameter.
const ParamStoreSlug = "storeSlug"

// sellerPages lists the seller dashboard leaves relative to /seller.
var sellerPages = []struct {
	pattern string
	page    string
}{
	{"", "seller.dashboard"},
	{"/products", "seller.products"},
	{"/products/new", "seller.product-create"},
	{"/products/{productId}/edit", "seller.product-edit"},
	{"/categories", "seller.categories"},
	{"/orders", "seller.orders"},
	{"/orders/{orderId}", "seller.order-detail"},
	{"/customers", "seller.customers"},
	{"/inventory", "seller.inventory"},
	{"/coupons", "seller.coupons"},
	{"/reviews", "seller.reviews"},
	{"/payments", "seller.payments"},
	{"/shipping", "seller.shipping"},
	{"/appearance", "seller.appearance"},
	{"/appearance/theme", "seller.appearance-theme"},
	{"/appearance/banners", "seller.appearance-banners"},
	{"/store-details", "seller.store-details"},
	{"/settings", "seller.settings"},
	{"/staff", "seller.staff"},
	{"/reports", "seller.reports"},
}

// # Default Table

/*
DefaultTable builds the route table of the marketplace.

Zones, in priority order:
 1. storefront: public shop pages under /store/{storeSlug}, no session needed.
 2. public: /home, /login, /register for signed-out visitors.
 3. otp: /otp-verify.
 4. customer: /customer and everything below it.
 5. seller: dashboard leaves under /seller.
 6. admin: /admin and everything below it.

Anything else falls back to the role home redirect.
*/
func DefaultTable() *Table {
	routes := []Route{
		{
			Patterns: []string{constants.PathStorefront + "/{" + ParamStoreSlug + "}", constants.PathStorefront + "/{" + ParamStoreSlug + "}/*"},
			Guards:   []Guard{CanonicalSlug(ParamStoreSlug)},
			Page:     PageStorefront,
		},
		{Patterns: []string{constants.PathHome}, Guards: []Guard{Public()}, Page: PageHome},
		{Patterns: []string{constants.PathLogin}, Guards: []Guard{Public()}, Page: PageLogin},
		{Patterns: []string{constants.PathRegister}, Guards: []Guard{Public()}, Page: PageRegister},
		{Patterns: []string{constants.PathOTPVerify}, Guards: []Guard{OTP()}, Page: PageOTPVerify},
		{
			Patterns: []string{constants.PathCustomer, constants.PathCustomer + "/*"},
			Guards:   []Guard{Private(sec.NewRoleSet(sec.RoleCustomer), constants.PathHome)},
			Page:     PageCustomer,
		},
	}

	sellerChain := []Guard{Private(sec.NewRoleSet(sec.RoleSeller), constants.PathHome), Seller()}
	for _, leaf := range sellerPages {
		routes = append(routes, Route{
			Patterns: []string{constants.PathSeller + leaf.pattern},
			Guards:   sellerChain,
			Page:     leaf.page,
		})
	}

	routes = append(routes, Route{
		Patterns: []string{constants.PathAdmin, constants.PathAdmin + "/*"},
		Guards:   []Guard{Private(sec.NewRoleSet(sec.RoleAdmin), constants.PathHome), Admin()},
		Page:     PageAdmin,
	})

	return NewTable(routes...)
}
