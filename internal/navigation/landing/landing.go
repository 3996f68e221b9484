// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package landing computes where a viewer lands by default.
package landing

import (
	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/sec"
)

// priority is checked top-down. Set membership decides, never role order.
var priority = []struct {
	role sec.Role
	path string
}{
	{sec.RoleAdmin, constants.PathAdmin},
	{sec.RoleSeller, constants.PathSeller},
	{sec.RoleCustomer, constants.PathCustomer},
}

// HomePath returns the default landing path for a role set.
// An empty or unmatched set lands on [constants.PathHome].
func HomePath(roles sec.RoleSet) string {
	for _, entry := range priority {
		if roles.Has(entry.role) {
			return entry.path
		}
	}
	return constants.PathHome
}
