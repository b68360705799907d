package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

func TestProjects_AdminLifecycle(t *testing.T) {
	e := newTestEnv(t, Options{})
	token := e.adminToken(t)

	rec := e.do(t, http.MethodPost, "/api/projects", token, map[string]any{
		"title": "Portfolio", "description": "This site", "technologies": []string{"go", "postgres"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeData[models.Project](t, rec)
	require.NotEmpty(t, created.ID)

	rec = e.do(t, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)
	require.NotNil(t, list.Count)
	assert.Equal(t, 1, *list.Count)

	rec = e.do(t, http.MethodPut, "/api/projects/"+created.ID, token, map[string]any{"featured": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[models.Project](t, rec)
	assert.True(t, updated.Featured)
	assert.Equal(t, "Portfolio", updated.Title)

	rec = e.do(t, http.MethodGet, "/api/projects/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/projects/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{}}`, rec.Body.String())

	rec = e.do(t, http.MethodGet, "/api/projects/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Project not found", decode(t, rec).Error)
}

func TestProjects_EmptyListHasCountZero(t *testing.T) {
	e := newTestEnv(t, Options{})

	rec := e.do(t, http.MethodGet, "/api/projects", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"count":0,"data":[]}`, rec.Body.String())
}

func TestWrites_RequireAdmin(t *testing.T) {
	e := newTestEnv(t, Options{})
	standard := e.userToken(t, "visitor@example.com")

	cases := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/projects"},
		{http.MethodPut, "/api/skills/1"},
		{http.MethodDelete, "/api/experiences/1"},
		{http.MethodPost, "/api/about"},
		{http.MethodGet, "/api/contacts"},
		{http.MethodDelete, "/api/upload/image-1.png"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := e.do(t, tc.method, tc.path, "", map[string]string{})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = e.do(t, tc.method, tc.path, standard, map[string]string{})
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"Admin access required"}`, rec.Body.String())
		})
	}
}

func TestSkills_Validation(t *testing.T) {
	e := newTestEnv(t, Options{})
	token := e.adminToken(t)

	rec := e.do(t, http.MethodPost, "/api/skills", token, map[string]any{"name": "Go", "category": "backend", "level": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "level must be at most 5", decode(t, rec).Error)

	rec = e.do(t, http.MethodPost, "/api/skills", token, map[string]any{"name": "Go", "category": "backend", "level": 4})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	s := decodeData[models.Skill](t, rec)

	rec = e.do(t, http.MethodPut, "/api/skills/"+s.ID, token, map[string]any{"level": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decodeData[models.Skill](t, rec).Level)

	rec = e.do(t, http.MethodDelete, "/api/skills/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Skill not found", decode(t, rec).Error)
}

func TestExperiences_AcceptBareDates(t *testing.T) {
	e := newTestEnv(t, Options{})
	token := e.adminToken(t)

	rec := e.do(t, http.MethodPost, "/api/experiences", token, map[string]any{
		"title": "Engineer", "company": "Acme", "startDate": "2021-04-01",
		"current": true, "description": "Built things",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	exp := decodeData[models.Experience](t, rec)
	assert.Equal(t, time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC), exp.StartDate.UTC())
	assert.Nil(t, exp.EndDate)

	rec = e.do(t, http.MethodPut, "/api/experiences/"+exp.ID, token, map[string]any{
		"current": false, "endDate": "2024-01-31T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	exp = decodeData[models.Experience](t, rec)
	require.NotNil(t, exp.EndDate)
	assert.Equal(t, 2024, exp.EndDate.Year())

	rec = e.do(t, http.MethodPost, "/api/experiences", token, map[string]any{
		"title": "Engineer", "company": "Acme", "startDate": "April 2021", "description": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decode(t, rec).Error)
}

func TestExperiences_CurrentClearsEndDate(t *testing.T) {
	e := newTestEnv(t, Options{})
	token := e.adminToken(t)

	rec := e.do(t, http.MethodPost, "/api/experiences", token, map[string]any{
		"title": "Engineer", "company": "Acme", "startDate": "2021-04-01",
		"endDate": "2023-01-01", "description": "Built things",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	exp := decodeData[models.Experience](t, rec)
	require.NotNil(t, exp.EndDate)

	rec = e.do(t, http.MethodPut, "/api/experiences/"+exp.ID, token, map[string]any{"current": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	exp = decodeData[models.Experience](t, rec)
	assert.True(t, exp.Current)
	assert.Nil(t, exp.EndDate)
}

func TestPatches_RejectBlankRequiredFields(t *testing.T) {
	e := newTestEnv(t, Options{})
	token := e.adminToken(t)

	rec := e.do(t, http.MethodPost, "/api/experiences", token, map[string]any{
		"title": "Engineer", "company": "Acme", "startDate": "2021-04-01", "description": "Built things",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	exp := decodeData[models.Experience](t, rec)

	rec = e.do(t, http.MethodPost, "/api/about", token, map[string]any{"title": "Hi", "content": "About me"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	about := decodeData[models.About](t, rec)

	cases := []struct {
		path string
		body map[string]any
		want string
	}{
		{"/api/experiences/" + exp.ID, map[string]any{"title": ""}, "title must not be empty"},
		{"/api/experiences/" + exp.ID, map[string]any{"company": ""}, "company must not be empty"},
		{"/api/experiences/" + exp.ID, map[string]any{"description": ""}, "description must not be empty"},
		{"/api/about/" + about.ID, map[string]any{"title": ""}, "title must not be empty"},
		{"/api/about/" + about.ID, map[string]any{"content": ""}, "content must not be empty"},
	}
	for _, tc := range cases {
		rec := e.do(t, http.MethodPut, tc.path, token, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tc.path)
		assert.Equal(t, tc.want, decode(t, rec).Error, tc.path)
	}

	rec = e.do(t, http.MethodGet, "/api/experiences", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeData[[]models.Experience](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Engineer", list[0].Title)
}

func TestAbout_Lifecycle(t *testing.T) {
	e := newTestEnv(t, Options{})
	token := e.adminToken(t)

	rec := e.do(t, http.MethodPost, "/api/about", token, map[string]any{"title": "Hi", "content": "About me"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	a := decodeData[models.About](t, rec)

	rec = e.do(t, http.MethodPut, "/api/about/"+a.ID, token, map[string]any{"content": "Updated"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Updated", decodeData[models.About](t, rec).Content)

	rec = e.do(t, http.MethodGet, "/api/about", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *decode(t, rec).Count)
}

func TestContacts_PublicSubmitAdminRead(t *testing.T) {
	e := newTestEnv(t, Options{})
	token := e.adminToken(t)

	rec := e.do(t, http.MethodPost, "/api/contacts", "", map[string]any{
		"name": "Bob", "email": "bob@example.com", "subject": "Hello", "message": "Hire you?", "read": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decodeData[models.Contact](t, rec)
	assert.False(t, c.Read)

	rec = e.do(t, http.MethodPost, "/api/contacts", "", map[string]any{
		"name": "Bob", "email": "not-an-email", "subject": "Hello", "message": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email must be a valid email", decode(t, rec).Error)

	rec = e.do(t, http.MethodPut, "/api/contacts/"+c.ID+"/read", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeData[models.Contact](t, rec).Read)

	rec = e.do(t, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *decode(t, rec).Count)

	rec = e.do(t, http.MethodDelete, "/api/contacts/"+c.ID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
