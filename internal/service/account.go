// Package service contains the business logic for the TravelXplore site.
// Services enforce ownership and authorization rules and orchestrate repo
// calls. No SQL lives here; services depend on repo interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/media"
	"github.com/travelxplore/site/internal/repo"
	"github.com/travelxplore/site/internal/telemetry"
)

// MediaStore persists uploaded files. *media.Store satisfies it.
type MediaStore interface {
	Save(ctx context.Context, dir string, data []byte) (string, error)
	Remove(rel string) error
}

// NewAccount is the input for creating an account.
type NewAccount struct {
	Username    string
	Email       string
	Phone       string
	Password    string
	IsStaff     bool
	IsSuperuser bool
}

// AccountService implements registration, authentication and profile editing.
type AccountService struct {
	users    repo.UserRepo
	profiles repo.ProfileRepo
	tx       repo.Transactor
	media    MediaStore
	cost     int
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// AccountOption customises an AccountService.
type AccountOption func(*AccountService)

// WithPasswordCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithPasswordCost(cost int) AccountOption {
	return func(s *AccountService) { s.cost = cost }
}

// WithClock replaces time.Now for last-login stamps.
func WithClock(now func() time.Time) AccountOption {
	return func(s *AccountService) { s.now = now }
}

// NewAccountService constructs an AccountService.
func NewAccountService(users repo.UserRepo, profiles repo.ProfileRepo, tx repo.Transactor, m MediaStore, opts ...AccountOption) *AccountService {
	s := &AccountService{
		users:    users,
		profiles: profiles,
		tx:       tx,
		media:    m,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Register creates the user and its profile in one transaction.
// Returns domain.ErrDuplicateUsername or domain.ErrDuplicateEmail when the
// database rejects the account, even if the form check passed.
func (s *AccountService) Register(ctx context.Context, acct NewAccount) (domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "account.register")
	defer span.End()

	if strings.TrimSpace(acct.Username) == "" || acct.Password == "" {
		return domain.User{}, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(acct.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return domain.User{}, fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrValidation)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.Register: hash: %w", err)
	}

	var user domain.User
	err = s.tx.WithinTx(ctx, func(a repo.Accounts) error {
		u, err := a.Users.Create(ctx, domain.User{
			Username:     acct.Username,
			Email:        acct.Email,
			PasswordHash: string(hash),
			IsStaff:      acct.IsStaff,
			IsSuperuser:  acct.IsSuperuser,
			IsActive:     true,
		})
		if err != nil {
			return err
		}
		if _, err := a.Profiles.Create(ctx, domain.Profile{UserID: u.ID, Phone: acct.Phone}); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		telemetry.RecordError(ctx, err)
		return domain.User{}, fmt.Errorf("service.AccountService.Register: %w", err)
	}

	span.SetAttributes(attribute.Int64("user.id", user.ID))
	return user, nil
}

// CreateSuperuser creates a staff superuser for the manage CLI.
func (s *AccountService) CreateSuperuser(ctx context.Context, username, email, password string) (domain.User, error) {
	return s.Register(ctx, NewAccount{
		Username:    username,
		Email:       email,
		Password:    password,
		IsStaff:     true,
		IsSuperuser: true,
	})
}

// Authenticate checks a username and password. Every failure, including an
// unknown username or an inactive account, returns domain.ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "account.authenticate")
	defer span.End()

	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		// Spend the same bcrypt time as a real check.
		_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(password))
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		telemetry.RecordError(ctx, err)
		return domain.User{}, fmt.Errorf("service.AccountService.Authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil || !u.IsActive {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, u.ID, now); err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.Authenticate: %w", err)
	}
	u.LastLogin = &now
	return u, nil
}

func (s *AccountService) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), s.cost)
	})
	return s.dummyHash
}

// GetUser returns the user with the given id.
func (s *AccountService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.GetUser: %w", err)
	}
	return u, nil
}

// UsernameExists reports whether the username is taken.
func (s *AccountService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.users.UsernameExists(ctx, username)
}

// EmailExists reports whether the email is registered to any account.
func (s *AccountService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.users.EmailExists(ctx, email)
}

// Profile returns the user's profile, creating an empty one on first access.
func (s *AccountService) Profile(ctx context.Context, userID int64) (domain.Profile, error) {
	p, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.AccountService.Profile: %w", err)
	}
	return p, nil
}

// FindProfile returns the user's profile without creating one. It returns
// domain.ErrNotFound when the user has never opened their profile page.
func (s *AccountService) FindProfile(ctx context.Context, userID int64) (domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.AccountService.FindProfile: %w", err)
	}
	return p, nil
}

// UpdateProfile saves the account fields of u and the profile fields of p in
// one transaction. A non-nil picture replaces the stored profile picture; the
// previous file is removed only after the transaction commits.
func (s *AccountService) UpdateProfile(ctx context.Context, u domain.User, p domain.Profile, picture []byte) (domain.User, domain.Profile, error) {
	ctx, span := telemetry.StartSpan(ctx, "account.update_profile", attribute.Int64("user.id", u.ID))
	defer span.End()

	cur, err := s.profiles.GetOrCreate(ctx, u.ID)
	if err != nil {
		return domain.User{}, domain.Profile{}, fmt.Errorf("service.AccountService.UpdateProfile: %w", err)
	}
	p.ID = cur.ID
	p.UserID = u.ID

	var stored string
	if picture != nil {
		stored, err = s.media.Save(ctx, media.ProfileDir, picture)
		if err != nil {
			return domain.User{}, domain.Profile{}, fmt.Errorf("service.AccountService.UpdateProfile: %w", err)
		}
		p.Picture = stored
	}

	var (
		savedUser    domain.User
		savedProfile domain.Profile
	)
	err = s.tx.WithinTx(ctx, func(a repo.Accounts) error {
		var err error
		if savedUser, err = a.Users.UpdateContact(ctx, u); err != nil {
			return err
		}
		savedProfile, err = a.Profiles.Update(ctx, p)
		return err
	})
	if err != nil {
		if stored != "" {
			_ = s.media.Remove(stored)
		}
		telemetry.RecordError(ctx, err)
		return domain.User{}, domain.Profile{}, fmt.Errorf("service.AccountService.UpdateProfile: %w", err)
	}

	if cur.Picture != "" && cur.Picture != savedProfile.Picture {
		_ = s.media.Remove(cur.Picture)
	}
	return savedUser, savedProfile, nil
}
