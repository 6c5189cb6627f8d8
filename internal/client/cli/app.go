package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/propkeeper/internal/client/api"
	"github.com/dmitrijs2005/propkeeper/internal/client/config"
	"github.com/dmitrijs2005/propkeeper/internal/client/policy"
	"github.com/dmitrijs2005/propkeeper/internal/client/repositories/localstate"
	"github.com/dmitrijs2005/propkeeper/internal/client/session"
	"github.com/dmitrijs2005/propkeeper/internal/client/storage"
	"github.com/dmitrijs2005/propkeeper/internal/common"
	"github.com/dmitrijs2005/propkeeper/internal/logging"
	"github.com/go-playground/validator/v10"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	api      api.Client
	session  *session.Manager
	validate *validator.Validate
	reader   *bufio.Reader
	log      logging.Logger
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewLocalTokenStore(localstate.NewSQLiteRepository(db))

	return &App{
		config:   c,
		api:      api.NewHTTPClient(c.ServerAddr, c.RequestTimeout, store, logger),
		session:  session.NewManager(store, logger),
		validate: validator.New(),
		reader:   bufio.NewReader(os.Stdin),
		log:      logger,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	fmt.Println("Welcome to propkeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// getStatus renders the prompt suffix from the current session state.
func (a *App) getStatus() string {
	state := a.session.Evaluate(context.Background())
	if state.Status != session.StatusActive {
		return "(guest)"
	}
	c := state.Claims
	if c.Username != "" {
		return fmt.Sprintf("(%s %s)", c.Username, c.Role)
	}
	return fmt.Sprintf("(#%d %s)", c.UserID, c.Role)
}

func (a *App) isLoggedIn() bool {
	return a.session.Evaluate(context.Background()).Status == session.StatusActive
}

// currentClaims is the per-command route guard: it re-evaluates the session
// and returns the claims only for an active one.
func (a *App) currentClaims(ctx context.Context) (*session.Claims, bool) {
	state := a.session.Evaluate(ctx)
	if state.Status != session.StatusActive {
		fmt.Println("Please log in first.")
		return nil, false
	}
	return state.Claims, true
}

// reportErr prints a command failure. An unrenewable session gets the
// one-shot expiry notice; after it the prompt falls back to guest on its
// own, since the token is already gone.
func (a *App) reportErr(ctx context.Context, err error) {
	switch {
	case errors.Is(err, common.ErrRefreshFailed):
		fmt.Println("Your session has expired. Please log in again.")
	case errors.Is(err, common.ErrUnauthorized):
		fmt.Println("Not authorized. Please log in again.")
	case errors.Is(err, common.ErrForbidden):
		fmt.Println("You are not allowed to do that.")
	case errors.Is(err, common.ErrUnavailable):
		fmt.Println("Server unavailable, try again later.")
	default:
		fmt.Printf("Error: %v\n", err)
	}
	a.log.Debug(ctx, "command failed", "error", err)
}

// role returns the caller's role for policy checks, RoleBuyer-equivalent
// least privilege when there is no active session.
func roleOf(claims *session.Claims) policy.Role {
	if claims == nil {
		return policy.Role("")
	}
	return claims.Role
}
