package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

type userRepo struct{ s *store }

func (r *userRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Role = models.NormalizeRole(u.Role)
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u

	out := *u
	return &out, nil
}

func (r *userRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *userRepo) UpdateCredentials(_ context.Context, id, passwordHash, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = passwordHash
	u.Role = models.NormalizeRole(role)
	u.UpdatedAt = time.Now().UTC()
	r.s.users[id] = u
	return nil
}

// DeleteUser removes a user. Only tests need it; the HTTP API never deletes accounts.
func (m *InMemoryRepositoryManager) DeleteUser(id string) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.users, id)
}

type otpRepo struct{ s *store }

func (r *otpRepo) Issue(_ context.Context, o *models.OTP) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.otps {
		if r.s.otps[i].Email == o.Email && !r.s.otps[i].Used {
			used := o.CreatedAt
			r.s.otps[i].Used = true
			r.s.otps[i].UsedAt = &used
		}
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.Used = false
	r.s.otps = append(r.s.otps, *o)
	return nil
}

func (r *otpRepo) FindActive(_ context.Context, email string, now time.Time) (*models.OTP, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var active []models.OTP
	for _, o := range r.s.otps {
		if o.Email == email && o.ActiveAt(now) {
			active = append(active, o)
		}
	}
	if len(active) == 0 {
		return nil, common.ErrorNotFound
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].CreatedAt.After(active[j].CreatedAt) })
	return &active[0], nil
}

func (r *otpRepo) MarkUsed(_ context.Context, id string, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.otps {
		if r.s.otps[i].ID == id && r.s.otps[i].ActiveAt(now) {
			r.s.otps[i].Used = true
			r.s.otps[i].UsedAt = &now
			return true, nil
		}
	}
	return false, nil
}

func (r *otpRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.otps[:0]
	var n int64
	for _, o := range r.s.otps {
		if o.ExpiresAt.Before(before) {
			n++
			continue
		}
		kept = append(kept, o)
	}
	r.s.otps = kept
	return n, nil
}
