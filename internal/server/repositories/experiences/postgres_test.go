package experiences

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

const testID = "66666666-6666-6666-6666-666666666666"

var cols = []string{"id", "title", "company", "location", "start_date", "end_date", "current", "description", "technologies", "sort_order", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+experiences\s+ORDER\s+BY\s+sort_order\s+ASC`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(testID, "Backend Engineer", "Acme", "Remote", start, end, false, "APIs", []byte(`["go"]`), 0, now, now).
			AddRow("77777777-7777-7777-7777-777777777777", "Lead", "Initech", nil, end, nil, true, "Team", []byte(`[]`), 1, now, now))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].EndDate)
	assert.Equal(t, end, *got[0].EndDate)
	assert.Equal(t, []string{"go"}, got[0].Technologies)
	assert.Nil(t, got[1].EndDate)
	assert.Nil(t, got[1].Location)
	assert.True(t, got[1].Current)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+experiences.*VALUES\s*\(\$1,.*\$10\)`).
		WithArgs(sqlmock.AnyArg(), "Engineer", "Acme", nil, start, nil, true, "Desc", `[]`, 0).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	got, err := repo.Create(context.Background(), &models.Experience{
		Title: "Engineer", Company: "Acme", StartDate: start, Current: true, Description: "Desc",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, []string{}, got.Technologies)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	techs := []string{"go", "k8s"}

	mock.ExpectQuery(`(?s)^UPDATE\s+experiences\s+SET.*technologies\s*=\s*COALESCE\(\$9::jsonb,\s*technologies\)`).
		WithArgs(testID, nil, nil, nil, nil, nil, nil, nil, `["go","k8s"]`, nil).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(testID, "E", "A", nil, start, nil, true, "D", []byte(`["go","k8s"]`), 0, now, now))

	got, err := repo.Update(context.Background(), testID, models.ExperiencePatch{Technologies: &techs})
	require.NoError(t, err)
	assert.Equal(t, techs, got.Technologies)

	mock.ExpectQuery(`UPDATE\s+experiences`).WillReturnError(sql.ErrNoRows)
	_, err = repo.Update(context.Background(), testID, models.ExperiencePatch{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_CurrentClearsEndDate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	current := true

	mock.ExpectQuery(`(?s)end_date\s*=\s*CASE WHEN \$7::boolean THEN NULL ELSE COALESCE\(\$6,\s*end_date\) END`).
		WithArgs(testID, nil, nil, nil, nil, nil, true, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(testID, "E", "A", nil, start, nil, true, "D", []byte(`[]`), 0, now, now))

	got, err := repo.Update(context.Background(), testID, models.ExperiencePatch{Current: &current})
	require.NoError(t, err)
	assert.True(t, got.Current)
	assert.Nil(t, got.EndDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+experiences`).WithArgs(testID).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), testID), common.ErrorNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "x"), common.ErrorNotFound)
}
