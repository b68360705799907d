package projects

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

const columns = `id, title, description, image_url, github_url, live_url, technologies, featured, sort_order, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.GithubURL, &p.LiveURL,
		(*dbx.JSONList)(&p.Technologies), &p.Featured, &p.Order, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Project, error) {
	query := `SELECT ` + columns + ` FROM projects ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	if !dbx.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	query := `SELECT ` + columns + ` FROM projects WHERE id = $1`

	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}

	query :=
		`INSERT INTO projects (id, title, description, image_url, github_url, live_url, technologies, featured, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Description, p.ImageURL, p.GithubURL, p.LiveURL,
		dbx.JSONList(p.Technologies), p.Featured, p.Order).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	if !dbx.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	var technologies any
	if patch.Technologies != nil {
		technologies = dbx.JSONList(*patch.Technologies)
	}

	query :=
		`UPDATE projects SET
		     title = COALESCE($2, title),
		     description = COALESCE($3, description),
		     image_url = COALESCE($4, image_url),
		     github_url = COALESCE($5, github_url),
		     live_url = COALESCE($6, live_url),
		     technologies = COALESCE($7::jsonb, technologies),
		     featured = COALESCE($8, featured),
		     sort_order = COALESCE($9, sort_order),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	p, err := scanProject(r.db.QueryRowContext(ctx, query, id,
		patch.Title, patch.Description, patch.ImageURL, patch.GithubURL, patch.LiveURL,
		technologies, patch.Featured, patch.Order))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !dbx.ValidID(id) {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
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
