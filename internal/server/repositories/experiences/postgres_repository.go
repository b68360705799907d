package experiences

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

const columns = `id, title, company, location, start_date, end_date, current, description, technologies, sort_order, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExperience(row scanner) (*models.Experience, error) {
	e := &models.Experience{}
	err := row.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.StartDate, &e.EndDate, &e.Current,
		&e.Description, (*dbx.JSONList)(&e.Technologies), &e.Order, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Experience, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM experiences ORDER BY sort_order ASC, start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Experience) (*models.Experience, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Technologies == nil {
		e.Technologies = []string{}
	}

	query :=
		`INSERT INTO experiences (id, title, company, location, start_date, end_date, current, description, technologies, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		e.ID, e.Title, e.Company, e.Location, e.StartDate, e.EndDate, e.Current, e.Description,
		dbx.JSONList(e.Technologies), e.Order).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.ExperiencePatch) (*models.Experience, error) {
	if !dbx.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	var technologies any
	if patch.Technologies != nil {
		technologies = dbx.JSONList(*patch.Technologies)
	}

	query :=
		`UPDATE experiences SET
		     title = COALESCE($2, title),
		     company = COALESCE($3, company),
		     location = COALESCE($4, location),
		     start_date = COALESCE($5, start_date),
		     end_date = CASE WHEN $7::boolean THEN NULL ELSE COALESCE($6, end_date) END,
		     current = COALESCE($7, current),
		     description = COALESCE($8, description),
		     technologies = COALESCE($9::jsonb, technologies),
		     sort_order = COALESCE($10, sort_order),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	e, err := scanExperience(r.db.QueryRowContext(ctx, query, id,
		patch.Title, patch.Company, patch.Location, patch.StartDate, patch.EndDate, patch.Current,
		patch.Description, technologies, patch.Order))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !dbx.ValidID(id) {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM experiences WHERE id = $1`, id)
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
