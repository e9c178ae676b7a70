// Package handler implements the HTML pages of the TravelXplore site.
// All handlers are methods on Server. They are split into domain-specific
// files (account.go, traveler.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"go.uber.org/zap"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/service"
)

// AccountServicer defines the account operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type AccountServicer interface {
	Register(ctx context.Context, acct service.NewAccount) (domain.User, error)
	Authenticate(ctx context.Context, username, password string) (domain.User, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Profile(ctx context.Context, userID int64) (domain.Profile, error)
	FindProfile(ctx context.Context, userID int64) (domain.Profile, error)
	UpdateProfile(ctx context.Context, u domain.User, p domain.Profile, picture []byte) (domain.User, domain.Profile, error)
}

// TravelerServicer defines the owner-scoped traveler operations.
type TravelerServicer interface {
	Create(ctx context.Context, ownerID int64, t domain.Traveler) (domain.Traveler, error)
	Get(ctx context.Context, ownerID, id int64) (domain.Traveler, error)
	List(ctx context.Context, ownerID int64) ([]domain.Traveler, error)
	Update(ctx context.Context, ownerID int64, t domain.Traveler) (domain.Traveler, error)
	Delete(ctx context.Context, ownerID, id int64) error
	Export(ctx context.Context, ownerID int64) ([]domain.TravelerExportRow, error)
}

// MessageServicer defines the contact inbox operations.
type MessageServicer interface {
	Submit(ctx context.Context, sender domain.User, m domain.ContactMessage) (domain.ContactMessage, error)
	List(ctx context.Context, viewer domain.User) ([]domain.ContactMessage, error)
	Get(ctx context.Context, viewer domain.User, id int64) (domain.ContactMessage, error)
	View(ctx context.Context, viewer domain.User, id int64) (domain.ContactMessage, error)
	Delete(ctx context.Context, viewer domain.User, id int64) error
}

// DestinationServicer defines the destination catalog operations.
type DestinationServicer interface {
	Create(ctx context.Context, actor domain.User, d domain.Destination) (domain.Destination, error)
	Get(ctx context.Context, id int64) (domain.Destination, error)
	List(ctx context.Context) ([]domain.Destination, error)
	Featured(ctx context.Context) ([]domain.Destination, error)
	Update(ctx context.Context, actor domain.User, d domain.Destination) (domain.Destination, error)
	Delete(ctx context.Context, actor domain.User, id int64) error
}

// MediaURLs maps a stored upload path to its public URL. *media.Store satisfies it.
type MediaURLs interface {
	URLFor(rel string) string
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators a Server needs. Every field is required except
// DB, which is only used by /healthz.
type Deps struct {
	Accounts     AccountServicer
	Travelers    TravelerServicer
	Messages     MessageServicer
	Destinations DestinationServicer
	Sessions     *scs.SessionManager
	Logger       *zap.Logger
	DB           Pinger
	Media        MediaURLs

	// LoginLimiter throttles POST /login/ and /register/. Nil disables it.
	LoginLimiter func(http.Handler) http.Handler
	// MaxUploadBytes bounds the in-memory part of a multipart form.
	MaxUploadBytes int64
}

// Server holds the dependencies shared by every page handler.
// Wire it in main.go via Server.Routes().
type Server struct {
	accounts     AccountServicer
	travelers    TravelerServicer
	messages     MessageServicer
	destinations DestinationServicer
	sessions     *scs.SessionManager
	log          *zap.Logger
	db           Pinger

	pages     *renderer
	maxUpload int64
	limiter   func(http.Handler) http.Handler
}

// NewServer constructs the Server and parses every page template.
func NewServer(d Deps) (*Server, error) {
	pages, err := newRenderer(d.Media)
	if err != nil {
		return nil, err
	}
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxUpload := d.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 5 << 20
	}
	limiter := d.LoginLimiter
	if limiter == nil {
		limiter = func(next http.Handler) http.Handler { return next }
	}
	return &Server{
		accounts:     d.Accounts,
		travelers:    d.Travelers,
		messages:     d.Messages,
		destinations: d.Destinations,
		sessions:     d.Sessions,
		log:          log,
		db:           d.DB,
		pages:        pages,
		maxUpload:    maxUpload,
		limiter:      limiter,
	}, nil
}
