// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrfuxi/gae-blog/internal/platform/database/schema"
	"github.com/mrfuxi/gae-blog/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.List(schema.AsText(schema.UserAccount.Columns(), schema.UserAccount.ID)),
		schema.UserAccount.Table, schema.UserAccount.Username,
	)

	user := &User{}
	err := repository.pool.QueryRow(context, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_username")
	}

	return user, nil
}

func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	columns := schema.UserAccount.Columns()
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.UserAccount.Table, schema.List(columns), schema.Placeholders(len(columns)),
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt,
	)
	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresUserRepository) UpdateCredentials(context context.Context, id, passwordHash string, role string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Password, schema.UserAccount.Role,
		schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(context, query, id, passwordHash, role)
	if err != nil {
		return dberr.Wrap(err, "update_user_credentials")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
