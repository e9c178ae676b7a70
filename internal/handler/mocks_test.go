package handler_test

import (
	"context"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/handler"
	"github.com/travelxplore/site/internal/service"
)

// Hand-written test doubles for the handler's consumer-side interfaces.
// Set only the method fields a test needs; calling an unset one panics,
// which doubles as a "must not be called" assertion.

type mockAccounts struct {
	register       func(ctx context.Context, acct service.NewAccount) (domain.User, error)
	authenticate   func(ctx context.Context, username, password string) (domain.User, error)
	getUser        func(ctx context.Context, id int64) (domain.User, error)
	usernameExists func(ctx context.Context, username string) (bool, error)
	emailExists    func(ctx context.Context, email string) (bool, error)
	profile        func(ctx context.Context, userID int64) (domain.Profile, error)
	findProfile    func(ctx context.Context, userID int64) (domain.Profile, error)
	updateProfile  func(ctx context.Context, u domain.User, p domain.Profile, picture []byte) (domain.User, domain.Profile, error)
}

func (m *mockAccounts) Register(ctx context.Context, acct service.NewAccount) (domain.User, error) {
	return m.register(ctx, acct)
}
func (m *mockAccounts) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	return m.authenticate(ctx, username, password)
}
func (m *mockAccounts) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return m.getUser(ctx, id)
}
func (m *mockAccounts) UsernameExists(ctx context.Context, username string) (bool, error) {
	return m.usernameExists(ctx, username)
}
func (m *mockAccounts) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExists(ctx, email)
}
func (m *mockAccounts) Profile(ctx context.Context, userID int64) (domain.Profile, error) {
	return m.profile(ctx, userID)
}
func (m *mockAccounts) FindProfile(ctx context.Context, userID int64) (domain.Profile, error) {
	return m.findProfile(ctx, userID)
}
func (m *mockAccounts) UpdateProfile(ctx context.Context, u domain.User, p domain.Profile, picture []byte) (domain.User, domain.Profile, error) {
	return m.updateProfile(ctx, u, p, picture)
}

// compile-time check: mockAccounts must satisfy handler.AccountServicer.
var _ handler.AccountServicer = (*mockAccounts)(nil)

type mockTravelers struct {
	create func(ctx context.Context, ownerID int64, t domain.Traveler) (domain.Traveler, error)
	get    func(ctx context.Context, ownerID, id int64) (domain.Traveler, error)
	list   func(ctx context.Context, ownerID int64) ([]domain.Traveler, error)
	update func(ctx context.Context, ownerID int64, t domain.Traveler) (domain.Traveler, error)
	delete func(ctx context.Context, ownerID, id int64) error
	export func(ctx context.Context, ownerID int64) ([]domain.TravelerExportRow, error)
}

func (m *mockTravelers) Create(ctx context.Context, ownerID int64, t domain.Traveler) (domain.Traveler, error) {
	return m.create(ctx, ownerID, t)
}
func (m *mockTravelers) Get(ctx context.Context, ownerID, id int64) (domain.Traveler, error) {
	return m.get(ctx, ownerID, id)
}
func (m *mockTravelers) List(ctx context.Context, ownerID int64) ([]domain.Traveler, error) {
	return m.list(ctx, ownerID)
}
func (m *mockTravelers) Update(ctx context.Context, ownerID int64, t domain.Traveler) (domain.Traveler, error) {
	return m.update(ctx, ownerID, t)
}
func (m *mockTravelers) Delete(ctx context.Context, ownerID, id int64) error {
	return m.delete(ctx, ownerID, id)
}
func (m *mockTravelers) Export(ctx context.Context, ownerID int64) ([]domain.TravelerExportRow, error) {
	return m.export(ctx, ownerID)
}

var _ handler.TravelerServicer = (*mockTravelers)(nil)

type mockMessages struct {
	submit func(ctx context.Context, sender domain.User, m domain.ContactMessage) (domain.ContactMessage, error)
	list   func(ctx context.Context, viewer domain.User) ([]domain.ContactMessage, error)
	get    func(ctx context.Context, viewer domain.User, id int64) (domain.ContactMessage, error)
	view   func(ctx context.Context, viewer domain.User, id int64) (domain.ContactMessage, error)
	delete func(ctx context.Context, viewer domain.User, id int64) error
}

func (m *mockMessages) Submit(ctx context.Context, sender domain.User, msg domain.ContactMessage) (domain.ContactMessage, error) {
	return m.submit(ctx, sender, msg)
}
func (m *mockMessages) List(ctx context.Context, viewer domain.User) ([]domain.ContactMessage, error) {
	return m.list(ctx, viewer)
}
func (m *mockMessages) Get(ctx context.Context, viewer domain.User, id int64) (domain.ContactMessage, error) {
	return m.get(ctx, viewer, id)
}
func (m *mockMessages) View(ctx context.Context, viewer domain.User, id int64) (domain.ContactMessage, error) {
	return m.view(ctx, viewer, id)
}
func (m *mockMessages) Delete(ctx context.Context, viewer domain.User, id int64) error {
	return m.delete(ctx, viewer, id)
}

var _ handler.MessageServicer = (*mockMessages)(nil)

type mockDestinations struct {
	create   func(ctx context.Context, actor domain.User, d domain.Destination) (domain.Destination, error)
	get      func(ctx context.Context, id int64) (domain.Destination, error)
	list     func(ctx context.Context) ([]domain.Destination, error)
	featured func(ctx context.Context) ([]domain.Destination, error)
	update   func(ctx context.Context, actor domain.User, d domain.Destination) (domain.Destination, error)
	delete   func(ctx context.Context, actor domain.User, id int64) error
}

func (m *mockDestinations) Create(ctx context.Context, actor domain.User, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, actor, d)
}
func (m *mockDestinations) Get(ctx context.Context, id int64) (domain.Destination, error) {
	return m.get(ctx, id)
}
func (m *mockDestinations) List(ctx context.Context) ([]domain.Destination, error) {
	return m.list(ctx)
}
func (m *mockDestinations) Featured(ctx context.Context) ([]domain.Destination, error) {
	return m.featured(ctx)
}
func (m *mockDestinations) Update(ctx context.Context, actor domain.User, d domain.Destination) (domain.Destination, error) {
	return m.update(ctx, actor, d)
}
func (m *mockDestinations) Delete(ctx context.Context, actor domain.User, id int64) error {
	return m.delete(ctx, actor, id)
}

var _ handler.DestinationServicer = (*mockDestinations)(nil)

type mockPinger struct {
	err error
}

func (m mockPinger) Ping(context.Context) error { return m.err }
