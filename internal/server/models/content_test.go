package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestProjectPatch_Apply(t *testing.T) {
	p := Project{Title: "old", Description: "desc", Technologies: []string{"go"}, Order: 3}

	ProjectPatch{
		Title:        ptr("new"),
		GithubURL:    ptr("https://github.com/x/y"),
		Technologies: &[]string{"go", "postgres"},
	}.Apply(&p)

	assert.Equal(t, "new", p.Title)
	assert.Equal(t, "desc", p.Description, "nil fields are untouched")
	assert.Equal(t, 3, p.Order)
	assert.Equal(t, "https://github.com/x/y", *p.GithubURL)
	assert.Equal(t, []string{"go", "postgres"}, p.Technologies)
}

func TestExperiencePatch_Apply(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	e := Experience{Title: "Engineer", StartDate: start, Current: true}

	ExperiencePatch{EndDate: &end, Current: ptr(false)}.Apply(&e)

	assert.Equal(t, "Engineer", e.Title)
	assert.Equal(t, start, e.StartDate)
	assert.Equal(t, end, *e.EndDate)
	assert.False(t, e.Current)
}

func TestExperiencePatch_CurrentClearsEndDate(t *testing.T) {
	end := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	e := Experience{Title: "Engineer", EndDate: &end}

	ExperiencePatch{Current: ptr(true)}.Apply(&e)
	assert.True(t, e.Current)
	assert.Nil(t, e.EndDate)

	e.EndDate = &end
	ExperiencePatch{Title: ptr("Lead")}.Apply(&e)
	assert.Equal(t, end, *e.EndDate, "a patch without current keeps the end date")
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole("ADMIN"))
	assert.Equal(t, RoleAdmin, NormalizeRole(" admin "))
	assert.Equal(t, RoleStandard, NormalizeRole("user"))
	assert.Equal(t, RoleStandard, NormalizeRole(""))
}

func TestOTP_ActiveAt(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	o := OTP{ExpiresAt: now.Add(10 * time.Minute)}

	assert.True(t, o.ActiveAt(now.Add(9*time.Minute+59*time.Second)))
	assert.False(t, o.ActiveAt(now.Add(10*time.Minute)))
	assert.False(t, o.ActiveAt(now.Add(10*time.Minute+time.Second)))

	o.Used = true
	assert.False(t, o.ActiveAt(now))
}
