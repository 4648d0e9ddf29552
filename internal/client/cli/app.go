package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/tinylink/tinylink-cli/internal/client/api"
	"github.com/tinylink/tinylink-cli/internal/client/config"
	"github.com/tinylink/tinylink-cli/internal/client/guard"
	"github.com/tinylink/tinylink-cli/internal/client/models"
	"github.com/tinylink/tinylink-cli/internal/client/services"
	"github.com/tinylink/tinylink-cli/internal/client/session"
	"github.com/tinylink/tinylink-cli/internal/client/storage"
	"github.com/tinylink/tinylink-cli/internal/logging"
)

// Route requirements for the two classes of protected commands.
var (
	approvedRoute = guard.Requirement{RequireApproval: true}
	adminRoute    = guard.Requirement{Role: models.RoleAdmin}
)

// App wires the session store and the application services behind the
// REPL. It caches the last reconciled collections so mutating commands
// can fall back to a local patch when the authoritative refetch fails.
type App struct {
	config    *config.Config
	session   *session.Store
	links     services.LinkService
	admin     services.AdminService
	analytics services.AnalyticsService
	profile   services.ProfileService
	log       logging.Logger
	reader    *bufio.Reader
	db        *sql.DB

	linkItems    []models.ShortLink
	pendingUsers []models.PendingUser
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	// The adapter reads the credential through a closure so it can be
	// constructed before the store that feeds it.
	var store *session.Store
	apiClient := api.New(c.BaseURL, c.RequestTimeout, api.CredentialFunc(func() string {
		return store.Credential()
	}), log)
	store = session.NewStore(apiClient, db, log)

	return &App{
		config:    c,
		session:   store,
		links:     services.NewLinkService(apiClient, log),
		admin:     services.NewAdminService(apiClient, log),
		analytics: services.NewAnalyticsService(apiClient, log),
		profile:   services.NewProfileService(apiClient, log),
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		db:        db,
	}, nil
}

// Run restores the persisted session and enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Restore(ctx)

	snap := a.session.Snapshot()
	if snap.Identity != nil {
		printlnFn(fmt.Sprintf("Welcome back, %s!", snap.Identity.Username))
	}

	printlnFn("TinyLink CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	snap := a.session.Snapshot()
	return snap.Identity != nil && snap.Credential != ""
}

func (a *App) isAdmin() bool {
	snap := a.session.Snapshot()
	return snap.Identity != nil && snap.Identity.Role == models.RoleAdmin
}

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if snap.Loading {
		return "(loading)"
	}
	if snap.Identity == nil {
		return ""
	}
	s := snap.Identity.Username
	if snap.Identity.Role == models.RoleAdmin {
		s += " admin"
	} else if !snap.Identity.Approved {
		s += " unapproved"
	}
	return "(" + s + ")"
}

// authorize runs the access guard for one command and reports the
// decision to the user. It returns true only when the command may
// proceed.
func (a *App) authorize(req guard.Requirement) bool {
	switch guard.Decide(a.session.Snapshot(), req) {
	case guard.Loading:
		printlnFn("Still loading, try again in a moment.")
	case guard.RedirectLogin:
		printlnFn("Please log in first (type 'login').")
	case guard.RedirectHome:
		printlnFn("Administrator access required.")
	case guard.PendingApproval:
		printlnFn("Your account is pending admin approval. You'll get access once approved.")
	case guard.Grant:
		return true
	}
	return false
}
