package abouts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/dbx"
	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

const columns = `id, title, content, image_url, sort_order, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAbout(row scanner) (*models.About, error) {
	a := &models.About{}
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.ImageURL, &a.Order, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.About, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM about ORDER BY sort_order ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.About{}
	for rows.Next() {
		a, err := scanAbout(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.About) (*models.About, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO about (id, title, content, image_url, sort_order)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, a.ID, a.Title, a.Content, a.ImageURL, a.Order).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.AboutPatch) (*models.About, error) {
	if !dbx.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE about SET
		     title = COALESCE($2, title),
		     content = COALESCE($3, content),
		     image_url = COALESCE($4, image_url),
		     sort_order = COALESCE($5, sort_order),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	a, err := scanAbout(r.db.QueryRowContext(ctx, query, id, patch.Title, patch.Content, patch.ImageURL, patch.Order))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !dbx.ValidID(id) {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM about WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
