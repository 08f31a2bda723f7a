package sqlite

import (
	"context"

	"github.com/auslane/authgate/internal/gateway/domain"
	"github.com/auslane/authgate/internal/gateway/store"
)

type mfaRepo struct {
	q dbtx
}

func (r *mfaRepo) Get(ctx context.Context, username string) (domain.MFARecord, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT username, secret, enabled
		FROM mfa_records
		WHERE username = ?`, username)

	var rec domain.MFARecord
	if err := row.Scan(&rec.Username, &rec.Secret, &rec.Enabled); err != nil {
		return domain.MFARecord{}, mapNotFound(err)
	}
	return rec, nil
}

func (r *mfaRepo) Put(ctx context.Context, rec domain.MFARecord) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO mfa_records (username, secret, enabled, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (username) DO UPDATE SET
			secret = excluded.secret,
			enabled = excluded.enabled,
			updated_at = CURRENT_TIMESTAMP`,
		rec.Username, rec.Secret, rec.Enabled)
	return err
}

func (r *mfaRepo) SetEnabled(ctx context.Context, username string, enabled bool) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE mfa_records
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

func (r *mfaRepo) Delete(ctx context.Context, username string) error {
	// Deleting an absent record is deliberately not an error.
	_, err := r.q.ExecContext(ctx, `DELETE FROM mfa_records WHERE username = ?`, username)
	return err
}
