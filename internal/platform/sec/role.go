// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
)

// # User Roles

// Role is one tag from the closed role enumeration.
//
// Declaration order is the privilege tier order of the marketplace, lowest first.
type Role uint8

const (
	// Anonymous or not-yet-classified visitor
	RoleGuest Role = iota

	// Can read customer and order data to answer tickets
	RoleSupportAgent

	// Default role for shoppers
	RoleCustomer

	// Delivers orders on behalf of a seller
	RoleSellerDeliveryBoy

	// Helps a seller operate a store
	RoleSellerStaffMember

	// Owns one or more storefronts
	RoleSeller

	// Platform operator
	RoleAdmin

	// Unrestricted system access
	RoleSuperAdmin

	roleCount
)

var roleNames = [roleCount]string{
	RoleGuest:             "GUEST",
	RoleSupportAgent:      "SUPPORTAGENT",
	RoleCustomer:          "CUSTOMER",
	RoleSellerDeliveryBoy: "SELLERDELIVERYBOY",
	RoleSellerStaffMember: "SELLERSTAFFMEMBER",
	RoleSeller:            "SELLER",
	RoleAdmin:             "ADMIN",
	RoleSuperAdmin:        "SUPERADMIN",
}

// String returns the wire name of the role (e.g. "SELLER").
func (r Role) String() string {
	if r >= roleCount {
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
	return roleNames[r]
}

// ParseRole maps a wire name to a [Role]. Matching is case-insensitive.
func ParseRole(name string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for role, roleName := range roleNames {
		if roleName == normalized {
			return Role(role), nil
		}
	}
	return 0, fmt.Errorf("sec: unknown role %q", name)
}

// # Role Sets

// RoleSet is the set of roles a user holds at the same time.
//
// "Has role X" is a membership test. The zero value is the empty set.
type RoleSet uint16

// GuestEquivalent holds the roles that do not count as a usable role for
// private areas of the application.
var GuestEquivalent = NewRoleSet(RoleGuest)

// NewRoleSet builds a set from the given roles. Out-of-range values are dropped.
func NewRoleSet(roles ...Role) RoleSet {
	var set RoleSet
	for _, role := range roles {
		if role < roleCount {
			set |= 1 << role
		}
	}
	return set
}

// Has reports whether role is a member of the set.
func (s RoleSet) Has(role Role) bool {
	return role < roleCount && s&(1<<role) != 0
}

// HasAny reports whether the set shares at least one role with allowed.
func (s RoleSet) HasAny(allowed RoleSet) bool {
	return s&allowed != 0
}

// Without returns the set minus every role in other.
func (s RoleSet) Without(other RoleSet) RoleSet {
	return s &^ other
}

// IsEmpty reports whether the set holds no role at all.
func (s RoleSet) IsEmpty() bool {
	return s == 0
}

// Len returns the number of roles in the set.
func (s RoleSet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// Usable reports whether the set holds a role outside [GuestEquivalent].
func (s RoleSet) Usable() bool {
	return !s.Without(GuestEquivalent).IsEmpty()
}

// Roles lists the members in tier order, lowest first.
func (s RoleSet) Roles() []Role {
	roles := make([]Role, 0, s.Len())
	for role := Role(0); role < roleCount; role++ {
		if s.Has(role) {
			roles = append(roles, role)
		}
	}
	return roles
}

// String renders the set as a comma separated list of wire names.
func (s RoleSet) String() string {
	roles := s.Roles()
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.String()
	}
	return strings.Join(names, ",")
}

// MarshalJSON always encodes the set as an array of wire names.
func (s RoleSet) MarshalJSON() ([]byte, error) {
	roles := s.Roles()
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.String()
	}
	return json.Marshal(names)
}

// UnmarshalJSON accepts a single role name, an array of names, or null.
//
// Unknown names are skipped: a role this service does not know grants nothing.
func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var names []string

	switch {
	case string(data) == "null":
		*s = 0
		return nil
	case len(data) > 0 && data[0] == '"':
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return fmt.Errorf("sec: invalid role: %w", err)
		}
		names = []string{single}
	default:
		if err := json.Unmarshal(data, &names); err != nil {
			return fmt.Errorf("sec: invalid role list: %w", err)
		}
	}

	*s = RoleSetFromNames(names)
	return nil
}

// RoleSetFromNames builds a set from wire names, skipping unknown ones.
func RoleSetFromNames(names []string) RoleSet {
	var set RoleSet
	for _, name := range names {
		role, err := ParseRole(name)
		if err != nil {
			continue
		}
		set |= NewRoleSet(role)
	}
	return set
}
