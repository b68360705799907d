package otps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/dbx"
	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Issue(ctx context.Context, otp *models.OTP) error {
	if otp.ID == "" {
		otp.ID = uuid.NewString()
	}

	query :=
		`WITH superseded AS (
		     UPDATE otps SET used = TRUE, used_at = $5
		     WHERE email = $2 AND used = FALSE
		 )
		 INSERT INTO otps (id, email, code_hash, expires_at, used, created_at)
		 VALUES ($1, $2, $3, $4, FALSE, $5)
		 `

	_, err := r.db.ExecContext(ctx, query, otp.ID, otp.Email, otp.CodeHash, otp.ExpiresAt, otp.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	otp.Used = false
	return nil
}

func (r *PostgresRepository) FindActive(ctx context.Context, email string, now time.Time) (*models.OTP, error) {
	query :=
		`SELECT id, email, code_hash, expires_at, used, created_at FROM otps
		 WHERE email = $1 AND used = FALSE AND expires_at > $2
		 ORDER BY created_at DESC
		 LIMIT 1
		 `

	otp := &models.OTP{}
	err := r.db.QueryRowContext(ctx, query, email, now).Scan(
		&otp.ID, &otp.Email, &otp.CodeHash, &otp.ExpiresAt, &otp.Used, &otp.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return otp, nil
}

func (r *PostgresRepository) MarkUsed(ctx context.Context, id string, now time.Time) (bool, error) {
	query :=
		`UPDATE otps SET used = TRUE, used_at = $2
		 WHERE id = $1 AND used = FALSE AND expires_at > $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, now)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n == 1, nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM otps WHERE expires_at < $1`

	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
