package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

func (a *API) listProjects(w http.ResponseWriter, r *http.Request) {
	items, err := a.content.ListProjects(r.Context())
	if err != nil {
		a.failErr(w, r, err, "Project")
		return
	}
	okList(w, items)
}

func (a *API) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := a.content.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.failErr(w, r, err, "Project")
		return
	}
	ok(w, http.StatusOK, p)
}

func (a *API) createProject(w http.ResponseWriter, r *http.Request) {
	var in models.Project
	if err := decodeJSON(w, r, &in); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := a.content.CreateProject(r.Context(), &in)
	if err != nil {
		a.failErr(w, r, err, "Project")
		return
	}
	ok(w, http.StatusCreated, p)
}

func (a *API) updateProject(w http.ResponseWriter, r *http.Request) {
	var patch models.ProjectPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := a.content.UpdateProject(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		a.failErr(w, r, err, "Project")
		return
	}
	ok(w, http.StatusOK, p)
}

func (a *API) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := a.content.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.failErr(w, r, err, "Project")
		return
	}
	deleted(w)
}

func (a *API) listSkills(w http.ResponseWriter, r *http.Request) {
	items, err := a.content.ListSkills(r.Context())
	if err != nil {
		a.failErr(w, r, err, "Skill")
		return
	}
	okList(w, items)
}

func (a *API) createSkill(w http.ResponseWriter, r *http.Request) {
	var in models.Skill
	if err := decodeJSON(w, r, &in); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s, err := a.content.CreateSkill(r.Context(), &in)
	if err != nil {
		a.failErr(w, r, err, "Skill")
		return
	}
	ok(w, http.StatusCreated, s)
}

func (a *API) updateSkill(w http.ResponseWriter, r *http.Request) {
	var patch models.SkillPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s, err := a.content.UpdateSkill(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		a.failErr(w, r, err, "Skill")
		return
	}
	ok(w, http.StatusOK, s)
}

func (a *API) deleteSkill(w http.ResponseWriter, r *http.Request) {
	if err := a.content.DeleteSkill(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.failErr(w, r, err, "Skill")
		return
	}
	deleted(w)
}

func (a *API) listExperiences(w http.ResponseWriter, r *http.Request) {
	items, err := a.content.ListExperiences(r.Context())
	if err != nil {
		a.failErr(w, r, err, "Experience")
		return
	}
	okList(w, items)
}

func (a *API) createExperience(w http.ResponseWriter, r *http.Request) {
	var in experienceRequest
	if err := decodeJSON(w, r, &in); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	e, err := a.content.CreateExperience(r.Context(), in.model())
	if err != nil {
		a.failErr(w, r, err, "Experience")
		return
	}
	ok(w, http.StatusCreated, e)
}

func (a *API) updateExperience(w http.ResponseWriter, r *http.Request) {
	var in experiencePatchRequest
	if err := decodeJSON(w, r, &in); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	e, err := a.content.UpdateExperience(r.Context(), chi.URLParam(r, "id"), in.patch())
	if err != nil {
		a.failErr(w, r, err, "Experience")
		return
	}
	ok(w, http.StatusOK, e)
}

func (a *API) deleteExperience(w http.ResponseWriter, r *http.Request) {
	if err := a.content.DeleteExperience(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.failErr(w, r, err, "Experience")
		return
	}
	deleted(w)
}

func (a *API) listAbout(w http.ResponseWriter, r *http.Request) {
	items, err := a.content.ListAbout(r.Context())
	if err != nil {
		a.failErr(w, r, err, "About")
		return
	}
	okList(w, items)
}

func (a *API) createAbout(w http.ResponseWriter, r *http.Request) {
	var in models.About
	if err := decodeJSON(w, r, &in); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	out, err := a.content.CreateAbout(r.Context(), &in)
	if err != nil {
		a.failErr(w, r, err, "About")
		return
	}
	ok(w, http.StatusCreated, out)
}

func (a *API) updateAbout(w http.ResponseWriter, r *http.Request) {
	var patch models.AboutPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	out, err := a.content.UpdateAbout(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		a.failErr(w, r, err, "About")
		return
	}
	ok(w, http.StatusOK, out)
}

func (a *API) deleteAbout(w http.ResponseWriter, r *http.Request) {
	if err := a.content.DeleteAbout(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.failErr(w, r, err, "About")
		return
	}
	deleted(w)
}

func (a *API) submitContact(w http.ResponseWriter, r *http.Request) {
	var in models.Contact
	if err := decodeJSON(w, r, &in); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c, err := a.content.SubmitContact(r.Context(), &in)
	if err != nil {
		a.failErr(w, r, err, "Contact")
		return
	}
	ok(w, http.StatusCreated, c)
}

func (a *API) listContacts(w http.ResponseWriter, r *http.Request) {
	items, err := a.content.ListContacts(r.Context())
	if err != nil {
		a.failErr(w, r, err, "Contact")
		return
	}
	okList(w, items)
}

func (a *API) markContactRead(w http.ResponseWriter, r *http.Request) {
	c, err := a.content.MarkContactRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.failErr(w, r, err, "Contact")
		return
	}
	ok(w, http.StatusOK, c)
}

func (a *API) deleteContact(w http.ResponseWriter, r *http.Request) {
	if err := a.content.DeleteContact(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.failErr(w, r, err, "Contact")
		return
	}
	deleted(w)
}
