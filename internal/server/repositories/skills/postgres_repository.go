package skills

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

const columns = `id, name, category, level, icon, sort_order, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSkill(row scanner) (*models.Skill, error) {
	s := &models.Skill{}
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Level, &s.Icon, &s.Order, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Skill, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM skills ORDER BY sort_order ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Skill{}
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Skill) (*models.Skill, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Level == 0 {
		s.Level = 1
	}

	query :=
		`INSERT INTO skills (id, name, category, level, icon, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, s.ID, s.Name, s.Category, s.Level, s.Icon, s.Order).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.SkillPatch) (*models.Skill, error) {
	if !dbx.ValidID(id) {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE skills SET
		     name = COALESCE($2, name),
		     category = COALESCE($3, category),
		     level = COALESCE($4, level),
		     icon = COALESCE($5, icon),
		     sort_order = COALESCE($6, sort_order),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	s, err := scanSkill(r.db.QueryRowContext(ctx, query, id,
		patch.Name, patch.Category, patch.Level, patch.Icon, patch.Order))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrorNotFound
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !dbx.ValidID(id) {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id)
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
