package service_test

import (
	"context"
	"time"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/repo"
	"github.com/travelxplore/site/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs.

type mockUserRepo struct {
	create         func(ctx context.Context, u domain.User) (domain.User, error)
	getByID        func(ctx context.Context, id int64) (domain.User, error)
	getByUsername  func(ctx context.Context, username string) (domain.User, error)
	usernameExists func(ctx context.Context, username string) (bool, error)
	emailExists    func(ctx context.Context, email string) (bool, error)
	updateContact  func(ctx context.Context, u domain.User) (domain.User, error)
	touchLastLogin func(ctx context.Context, id int64, at time.Time) error
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.getByUsername(ctx, username)
}
func (m *mockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return m.usernameExists(ctx, username)
}
func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExists(ctx, email)
}
func (m *mockUserRepo) UpdateContact(ctx context.Context, u domain.User) (domain.User, error) {
	return m.updateContact(ctx, u)
}
func (m *mockUserRepo) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	return m.touchLastLogin(ctx, id, at)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockProfileRepo struct {
	create      func(ctx context.Context, p domain.Profile) (domain.Profile, error)
	getOrCreate func(ctx context.Context, userID int64) (domain.Profile, error)
	getByUserID func(ctx context.Context, userID int64) (domain.Profile, error)
	update      func(ctx context.Context, p domain.Profile) (domain.Profile, error)
}

func (m *mockProfileRepo) Create(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	return m.create(ctx, p)
}
func (m *mockProfileRepo) GetOrCreate(ctx context.Context, userID int64) (domain.Profile, error) {
	return m.getOrCreate(ctx, userID)
}
func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID int64) (domain.Profile, error) {
	return m.getByUserID(ctx, userID)
}
func (m *mockProfileRepo) Update(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	return m.update(ctx, p)
}

var _ repo.ProfileRepo = (*mockProfileRepo)(nil)

// mockTransactor runs fn directly against the given repos and records whether
// the unit of work failed, standing in for a rollback.
type mockTransactor struct {
	accounts   repo.Accounts
	rolledBack bool
}

func (m *mockTransactor) WithinTx(_ context.Context, fn func(repo.Accounts) error) error {
	err := fn(m.accounts)
	m.rolledBack = err != nil
	return err
}

var _ repo.Transactor = (*mockTransactor)(nil)

type mockTravelerRepo struct {
	create      func(ctx context.Context, t domain.Traveler) (domain.Traveler, error)
	getByID     func(ctx context.Context, ownerID, id int64) (domain.Traveler, error)
	listByOwner func(ctx context.Context, ownerID int64) ([]domain.Traveler, error)
	update      func(ctx context.Context, t domain.Traveler) (domain.Traveler, error)
	delete      func(ctx context.Context, ownerID, id int64) error
}

func (m *mockTravelerRepo) Create(ctx context.Context, t domain.Traveler) (domain.Traveler, error) {
	return m.create(ctx, t)
}
func (m *mockTravelerRepo) GetByID(ctx context.Context, ownerID, id int64) (domain.Traveler, error) {
	return m.getByID(ctx, ownerID, id)
}
func (m *mockTravelerRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Traveler, error) {
	return m.listByOwner(ctx, ownerID)
}
func (m *mockTravelerRepo) Update(ctx context.Context, t domain.Traveler) (domain.Traveler, error) {
	return m.update(ctx, t)
}
func (m *mockTravelerRepo) Delete(ctx context.Context, ownerID, id int64) error {
	return m.delete(ctx, ownerID, id)
}

var _ repo.TravelerRepo = (*mockTravelerRepo)(nil)

type mockMessageRepo struct {
	create   func(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error)
	list     func(ctx context.Context, scope repo.MessageScope) ([]domain.ContactMessage, error)
	getByID  func(ctx context.Context, scope repo.MessageScope, id int64) (domain.ContactMessage, error)
	markRead func(ctx context.Context, scope repo.MessageScope, id int64) (domain.ContactMessage, error)
	delete   func(ctx context.Context, scope repo.MessageScope, id int64) error
}

func (m *mockMessageRepo) Create(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	return m.create(ctx, msg)
}
func (m *mockMessageRepo) List(ctx context.Context, scope repo.MessageScope) ([]domain.ContactMessage, error) {
	return m.list(ctx, scope)
}
func (m *mockMessageRepo) GetByID(ctx context.Context, scope repo.MessageScope, id int64) (domain.ContactMessage, error) {
	return m.getByID(ctx, scope, id)
}
func (m *mockMessageRepo) MarkRead(ctx context.Context, scope repo.MessageScope, id int64) (domain.ContactMessage, error) {
	return m.markRead(ctx, scope, id)
}
func (m *mockMessageRepo) Delete(ctx context.Context, scope repo.MessageScope, id int64) error {
	return m.delete(ctx, scope, id)
}

var _ repo.MessageRepo = (*mockMessageRepo)(nil)

type mockDestinationRepo struct {
	create       func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getByID      func(ctx context.Context, id int64) (domain.Destination, error)
	list         func(ctx context.Context) ([]domain.Destination, error)
	listFeatured func(ctx context.Context, limit int) ([]domain.Destination, error)
	update       func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	delete       func(ctx context.Context, id int64) error
}

func (m *mockDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, id int64) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	return m.list(ctx)
}
func (m *mockDestinationRepo) ListFeatured(ctx context.Context, limit int) ([]domain.Destination, error) {
	return m.listFeatured(ctx, limit)
}
func (m *mockDestinationRepo) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.update(ctx, d)
}
func (m *mockDestinationRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ repo.DestinationRepo = (*mockDestinationRepo)(nil)

// fakeMedia records saved and removed paths in memory.
type fakeMedia struct {
	saved   []string
	removed []string
	err     error
}

func (f *fakeMedia) Save(_ context.Context, dir string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	rel := dir + "/new.png"
	f.saved = append(f.saved, rel)
	return rel, nil
}

func (f *fakeMedia) Remove(rel string) error {
	f.removed = append(f.removed, rel)
	return nil
}

var _ service.MediaStore = (*fakeMedia)(nil)
