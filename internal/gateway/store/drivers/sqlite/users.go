package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/auslane/authgate/internal/gateway/domain"
	"github.com/auslane/authgate/internal/gateway/store"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, username, email, password_hash, first_name, last_name, enabled, created_at, updated_at`

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.DirectoryUser, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM directory_users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.DirectoryUser, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM directory_users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) Create(ctx context.Context, u domain.DirectoryUser) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO directory_users (id, username, email, password_hash, first_name, last_name, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		u.ID, u.Username, mapStringNull(u.Email), u.PasswordHash,
		mapStringNull(u.FirstName), mapStringNull(u.LastName), u.Enabled)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) Search(ctx context.Context, query string) ([]domain.DirectoryUser, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM directory_users
		WHERE LOWER(username) LIKE ?
		   OR LOWER(COALESCE(email, '')) LIKE ?
		   OR LOWER(COALESCE(first_name, '')) LIKE ?
		   OR LOWER(COALESCE(last_name, '')) LIKE ?
		ORDER BY username`,
		pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DirectoryUser
	for rows.Next() {
		u, err := scanUserRows(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM directory_users`).Scan(&count)
	return count, err
}

func (r *usersRepo) SetEnabled(ctx context.Context, username string, enabled bool) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE directory_users
		SET enabled = ?, updated_at = CURRENT_TIMESTAMP
		WHERE username = ?`, enabled, username)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (domain.DirectoryUser, error) {
	var u domain.DirectoryUser
	var email, firstName, lastName sql.NullString
	var createdAt, updatedAt time.Time

	err := row.Scan(&u.ID, &u.Username, &email, &u.PasswordHash,
		&firstName, &lastName, &u.Enabled, &createdAt, &updatedAt)
	if err != nil {
		return domain.DirectoryUser{}, mapNotFound(err)
	}

	u.Email = mapNullString(email)
	u.FirstName = mapNullString(firstName)
	u.LastName = mapNullString(lastName)
	u.CreatedAt = createdAt
	u.UpdatedAt = updatedAt
	return u, nil
}

func scanUserRows(rows *sql.Rows) (domain.DirectoryUser, error) {
	var u domain.DirectoryUser
	var email, firstName, lastName sql.NullString
	var createdAt, updatedAt time.Time

	err := rows.Scan(&u.ID, &u.Username, &email, &u.PasswordHash,
		&firstName, &lastName, &u.Enabled, &createdAt, &updatedAt)
	if err != nil {
		return domain.DirectoryUser{}, err
	}

	u.Email = mapNullString(email)
	u.FirstName = mapNullString(firstName)
	u.LastName = mapNullString(lastName)
	u.CreatedAt = createdAt
	u.UpdatedAt = updatedAt
	return u, nil
}
