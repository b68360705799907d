// Package services contains server-side business logic. This file implements
// UserService: registration, password login, the email OTP login flow and
// resolving bearer tokens to the current user.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/logging"
	"github.com/dmitrijs2005/portfolio/internal/server/auth"
	"github.com/dmitrijs2005/portfolio/internal/server/config"
	"github.com/dmitrijs2005/portfolio/internal/server/models"
	"github.com/dmitrijs2005/portfolio/internal/server/notify"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/repomanager"
)

// AuthResult is what a successful register, login or OTP verification returns.
type AuthResult struct {
	User  *models.User
	Token string
}

type registerInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type credentialsInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type otpInput struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.Issuer
	notifier    *notify.Notifier
	log         logging.Logger

	bcryptCost int
	otpTTL     time.Duration
	adminEmail string
	now        func() time.Time

	// dummyHash is compared against when the email is unknown so that both
	// failure paths pay for one bcrypt comparison.
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	issuer *auth.Issuer, notifier *notify.Notifier, log logging.Logger) *UserService {

	dummy, _ := auth.HashPassword("not-a-real-password", cfg.BcryptCost)

	return &UserService{
		db:          db,
		repomanager: m,
		issuer:      issuer,
		notifier:    notifier,
		log:         log,
		bcryptCost:  cfg.BcryptCost,
		otpTTL:      cfg.OTPTTL,
		adminEmail:  cfg.AdminEmail,
		now:         time.Now,
		dummyHash:   dummy,
	}
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	in := registerInput{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email), Password: password}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := repo.Create(ctx, &models.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         models.RoleStandard,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issue(user)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// RequestOTP checks the password, stores a fresh code and mails it. Delivery
// failures are logged by the notifier and do not fail the call. When the
// requester is not the operator, the operator gets a login alert.
func (s *UserService) RequestOTP(ctx context.Context, email, password, ip string) error {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return err
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		return err
	}
	hash, err := auth.HashOTP(code, s.bcryptCost)
	if err != nil {
		return err
	}

	now := s.now()
	otp := &models.OTP{
		Email:     user.Email,
		CodeHash:  hash,
		ExpiresAt: now.Add(s.otpTTL),
		CreatedAt: now,
	}
	if err := s.repomanager.OTPs(s.db).Issue(ctx, otp); err != nil {
		return fmt.Errorf("error storing otp: %w", err)
	}
	s.log.Info(ctx, "otp issued", "email", user.Email, "expires_at", otp.ExpiresAt)

	s.notifier.SendOTP(ctx, user.Email, code)

	if s.adminEmail != "" && user.Email != s.adminEmail {
		s.notifier.SendLoginAlert(ctx, s.adminEmail, user.Email, ip)
	}

	return nil
}

// VerifyOTP consumes the newest active code for email. Every rejection,
// whatever its cause, is reported as common.ErrorInvalidOTP.
func (s *UserService) VerifyOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	in := otpInput{Email: strings.TrimSpace(email), OTP: strings.TrimSpace(code)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	now := s.now()
	repo := s.repomanager.OTPs(s.db)

	otp, err := repo.FindActive(ctx, in.Email, now)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidOTP
		}
		return nil, fmt.Errorf("error looking up otp: %w", err)
	}

	if !auth.CheckOTP(otp.CodeHash, in.OTP) {
		return nil, common.ErrorInvalidOTP
	}

	ok, err := repo.MarkUsed(ctx, otp.ID, now)
	if err != nil {
		return nil, fmt.Errorf("error consuming otp: %w", err)
	}
	if !ok {
		return nil, common.ErrorInvalidOTP
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	return s.issue(user)
}

// Me returns the current state of the user behind a token.
func (s *UserService) Me(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	return user, nil
}

// Authenticate verifies a bearer token and loads the user it names. The
// returned identity carries the stored role, not the one in the token.
//
// Errors: common.ErrInvalidToken for a bad token, common.ErrorNotFound when
// the user no longer exists.
func (s *UserService) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return auth.Identity{}, err
	}

	user, err := s.Me(ctx, claims.UserID)
	if err != nil {
		return auth.Identity{}, err
	}

	return auth.IdentityOf(user), nil
}

// EnsureAdmin creates the operator account or, when the email is taken,
// resets its password and promotes it. It reports whether a user was created.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (*models.User, bool, error) {
	in := registerInput{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email), Password: password}
	if err := validateStruct(in); err != nil {
		return nil, false, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, false, err
	}

	repo := s.repomanager.Users(s.db)

	existing, err := repo.GetUserByEmail(ctx, in.Email)
	if err == nil {
		if err := repo.UpdateCredentials(ctx, existing.ID, hash, models.RoleAdmin); err != nil {
			return nil, false, fmt.Errorf("error updating admin: %w", err)
		}
		existing.PasswordHash = hash
		existing.Role = models.RoleAdmin
		return existing, false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, false, fmt.Errorf("error looking up user: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return nil, false, fmt.Errorf("error creating admin: %w", err)
	}
	return user, true, nil
}

// PruneOTPs deletes codes that expired more than retention ago.
func (s *UserService) PruneOTPs(ctx context.Context, retention time.Duration) (int64, error) {
	n, err := s.repomanager.OTPs(s.db).DeleteExpired(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("error pruning otps: %w", err)
	}
	return n, nil
}

// authenticate resolves email and password to a user. Unknown email and
// wrong password both yield common.ErrorInvalidCredentials.
func (s *UserService) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	in := credentialsInput{Email: strings.TrimSpace(email), Password: password}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(s.dummyHash, in.Password)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		return nil, common.ErrorInvalidCredentials
	}

	return user, nil
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
