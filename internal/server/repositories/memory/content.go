package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

func stamp(id *string, created, updated *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := time.Now().UTC()
	*created, *updated = now, now
}

func sortedValues[T any](m map[string]T, less func(a, b T) bool) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

type projectRepo struct{ s *store }

func (r *projectRepo) List(context.Context) ([]models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.projects, func(a, b models.Project) bool {
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}), nil
}

func (r *projectRepo) Get(_ context.Context, id string) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *projectRepo) Create(_ context.Context, p *models.Project) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	r.s.projects[p.ID] = *p
	out := *p
	return &out, nil
}

func (r *projectRepo) Update(_ context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	patch.Apply(&p)
	p.UpdatedAt = time.Now().UTC()
	r.s.projects[id] = p
	return &p, nil
}

func (r *projectRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.projects, id)
	return nil
}

type skillRepo struct{ s *store }

func (r *skillRepo) List(context.Context) ([]models.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.skills, func(a, b models.Skill) bool {
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Name < b.Name
	}), nil
}

func (r *skillRepo) nameTaken(name, exceptID string) bool {
	for id, s := range r.s.skills {
		if s.Name == name && id != exceptID {
			return true
		}
	}
	return false
}

func (r *skillRepo) Create(_ context.Context, s *models.Skill) (*models.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(s.Name, "") {
		return nil, common.ErrorAlreadyExists
	}
	stamp(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if s.Level == 0 {
		s.Level = 1
	}
	r.s.skills[s.ID] = *s
	out := *s
	return &out, nil
}

func (r *skillRepo) Update(_ context.Context, id string, patch models.SkillPatch) (*models.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.skills[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.Name != nil && r.nameTaken(*patch.Name, id) {
		return nil, common.ErrorAlreadyExists
	}
	patch.Apply(&s)
	s.UpdatedAt = time.Now().UTC()
	r.s.skills[id] = s
	return &s, nil
}

func (r *skillRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.skills[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.skills, id)
	return nil
}

type experienceRepo struct{ s *store }

func (r *experienceRepo) List(context.Context) ([]models.Experience, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.experiences, func(a, b models.Experience) bool {
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.StartDate.After(b.StartDate)
	}), nil
}

func (r *experienceRepo) Create(_ context.Context, e *models.Experience) (*models.Experience, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if e.Technologies == nil {
		e.Technologies = []string{}
	}
	r.s.experiences[e.ID] = *e
	out := *e
	return &out, nil
}

func (r *experienceRepo) Update(_ context.Context, id string, patch models.ExperiencePatch) (*models.Experience, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.experiences[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	patch.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	r.s.experiences[id] = e
	return &e, nil
}

func (r *experienceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.experiences[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.experiences, id)
	return nil
}

type aboutRepo struct{ s *store }

func (r *aboutRepo) List(context.Context) ([]models.About, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.abouts, func(a, b models.About) bool {
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}), nil
}

func (r *aboutRepo) Create(_ context.Context, a *models.About) (*models.About, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	r.s.abouts[a.ID] = *a
	out := *a
	return &out, nil
}

func (r *aboutRepo) Update(_ context.Context, id string, patch models.AboutPatch) (*models.About, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.abouts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	patch.Apply(&a)
	a.UpdatedAt = time.Now().UTC()
	r.s.abouts[id] = a
	return &a, nil
}

func (r *aboutRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.abouts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.abouts, id)
	return nil
}

type contactRepo struct{ s *store }

func (r *contactRepo) Create(_ context.Context, c *models.Contact) (*models.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	c.Read = false
	r.s.contacts[c.ID] = *c
	out := *c
	return &out, nil
}

func (r *contactRepo) List(context.Context) ([]models.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.contacts, func(a, b models.Contact) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}), nil
}

func (r *contactRepo) MarkRead(_ context.Context, id string) (*models.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.contacts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.Read = true
	c.UpdatedAt = time.Now().UTC()
	r.s.contacts[id] = c
	return &c, nil
}

func (r *contactRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contacts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.contacts, id)
	return nil
}
