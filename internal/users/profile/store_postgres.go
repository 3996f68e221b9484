// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile (Postgres) reads profile details straight from the shared
marketplace database, as an alternative to the REST profile endpoint.

# Schema Table Mapping
  - users.account: Identity, mobile confirmation and roles.
  - seller.storelink: Storefronts created by a seller account.
*/
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/database/schema"
	"github.com/taibuivan/shopfront/internal/platform/dberr"
	"github.com/taibuivan/shopfront/internal/platform/sec"
	"github.com/taibuivan/shopfront/internal/users/session"
)

// # Repository Implementation

// PostgresRepository implements [session.ProfileFetcher] using pgx.
//
// The bearer token only identifies the account; its claims are read with the
// same decoder the session provider uses.
type PostgresRepository struct {
	pool    *pgxpool.Pool
	decoder session.TokenDecoder
}

// NewPostgresRepository creates a new Postgres profile source.
func NewPostgresRepository(pool *pgxpool.Pool, decoder session.TokenDecoder) *PostgresRepository {
	return &PostgresRepository{pool: pool, decoder: decoder}
}

/*
FetchProfile resolves the account behind token and loads its profile.

Parameters:
  - ctx: context.Context
  - token: string (bearer token)

Returns:
  - *session.User: Profile with store links
  - error: Unauthorized for tokens without identity, NotFound or query failures
*/
func (repository *PostgresRepository) FetchProfile(ctx context.Context, token string) (*session.User, error) {
	claims, err := repository.decoder.Decode(token)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid session token").Wrap(err)
	}

	accountID := claims.Identity()
	if accountID == "" {
		return nil, apperr.Unauthorized("Invalid session token")
	}

	return repository.FindByID(ctx, accountID)
}

/*
FindByID loads one live account and its store links.

Parameters:
  - ctx: context.Context
  - accountID: string

Returns:
  - *session.User: Hydrated profile
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(ctx context.Context, accountID string) (*session.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		strings.Join(schema.UserAccount.ProfileColumns(), ", "),
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	user := &session.User{}
	var roleNames []string

	err := repository.pool.QueryRow(ctx, query, accountID).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Mobile,
		&user.MobileConfirmed,
		&roleNames,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, dberr.Wrap(err, "profile_find_account")
	}

	user.Role = sec.RoleSetFromNames(roleNames)

	links, err := repository.storeLinks(ctx, accountID)
	if err != nil {
		return nil, err
	}
	user.StoreLinks = links

	return user, nil
}

// storeLinks lists live storefronts of an account, oldest first.
func (repository *PostgresRepository) storeLinks(ctx context.Context, accountID string) ([]session.StoreLink, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
		ORDER BY %s`,
		strings.Join(schema.SellerStoreLink.LinkColumns(), ", "),
		schema.SellerStoreLink.Table,
		schema.SellerStoreLink.AccountID, schema.SellerStoreLink.DeletedAt,
		schema.SellerStoreLink.CreatedAt,
	)

	rows, err := repository.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, dberr.Wrap(err, "profile_list_store_links")
	}

	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (session.StoreLink, error) {
		var link session.StoreLink
		err := row.Scan(&link.StoreID, &link.Name, &link.Slug)
		return link, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "profile_scan_store_links")
	}

	return links, nil
}
