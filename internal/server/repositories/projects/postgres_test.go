package projects

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

const testID = "33333333-3333-3333-3333-333333333333"

var cols = []string{"id", "title", "description", "image_url", "github_url", "live_url", "technologies", "featured", "sort_order", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+projects\s+ORDER\s+BY\s+sort_order\s+ASC,\s*created_at\s+ASC$`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(testID, "Portfolio", "This site", nil, "https://github.com/me/site", nil, []byte(`["go","react"]`), true, 0, now, now).
			AddRow("44444444-4444-4444-4444-444444444444", "CLI", "A tool", nil, nil, nil, []byte(`[]`), false, 1, now, now))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Portfolio", got[0].Title)
	assert.Nil(t, got[0].ImageURL)
	require.NotNil(t, got[0].GithubURL)
	assert.Equal(t, "https://github.com/me/site", *got[0].GithubURL)
	assert.Equal(t, []string{"go", "react"}, got[0].Technologies)
	assert.Equal(t, []string{}, got[1].Technologies)
}

func TestList_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM\s+projects`).WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+projects\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(testID).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(testID, "P", "D", nil, nil, nil, []byte(`["go"]`), false, 2, now, now))

	got, err := repo.Get(context.Background(), testID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Order)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM\s+projects\s+WHERE`).WithArgs(testID).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), testID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Get(context.Background(), "bogus")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()
	live := "https://example.com"

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+projects\s*\(id,\s*title,.*\)\s*VALUES\s*\(\$1,.*\$9\)\s*RETURNING\s+created_at,\s*updated_at$`).
		WithArgs(sqlmock.AnyArg(), "P", "D", nil, nil, live, `["go"]`, true, 3).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	got, err := repo.Create(context.Background(), &models.Project{
		Title: "P", Description: "D", LiveURL: &live, Technologies: []string{"go"}, Featured: true, Order: 3,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, now, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_Partial(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()
	title := "New title"

	mock.ExpectQuery(`(?s)^UPDATE\s+projects\s+SET\s+title\s*=\s*COALESCE\(\$2,\s*title\).*technologies\s*=\s*COALESCE\(\$7::jsonb,\s*technologies\).*WHERE\s+id\s*=\s*\$1\s+RETURNING`).
		WithArgs(testID, title, nil, nil, nil, nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(testID, title, "D", nil, nil, nil, []byte(`[]`), false, 0, now, now))

	got, err := repo.Update(context.Background(), testID, models.ProjectPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`UPDATE\s+projects`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), testID, models.ProjectPatch{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+projects\s+WHERE\s+id\s*=\s*\$1$`).WithArgs(testID).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), testID))

	mock.ExpectExec(`^DELETE\s+FROM\s+projects`).WithArgs(testID).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), testID), common.ErrorNotFound)

	mock.ExpectExec(`^DELETE\s+FROM\s+projects`).WithArgs(testID).WillReturnError(errors.New("boom"))
	err := repo.Delete(context.Background(), testID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
