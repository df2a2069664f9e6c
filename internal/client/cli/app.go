package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/personadesk/internal/client/client"
	"github.com/dmitrijs2005/personadesk/internal/client/config"
	"github.com/dmitrijs2005/personadesk/internal/client/reels"
	"github.com/dmitrijs2005/personadesk/internal/client/repositories/documents"
	"github.com/dmitrijs2005/personadesk/internal/client/services"
	"github.com/dmitrijs2005/personadesk/internal/client/storage"
	"github.com/dmitrijs2005/personadesk/internal/logging"
)

// ReelDir is where generated reels are written, relative to the working
// directory.
const ReelDir = "reels"

type App struct {
	config *config.Config
	db     *sql.DB
	log    logging.Logger

	kv          *storage.KVStore
	docs        *storage.DocumentStore
	sessions    *services.SessionManager
	influencers *services.Influencers
	notices     *services.Notices
	reels       *reels.Client

	userName  string
	workspace *services.Workspace

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the database named in c and wires the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	return newApp(c, db, log, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, db *sql.DB, log logging.Logger, in io.Reader, out io.Writer) *App {
	notices := services.NewNotices()

	kv := storage.NewKVStore(db, storage.NewGuard(c.KVBudget, log), log)
	kv.OnAlert(notices.StorageAlert)
	docs := storage.NewDocumentStore(documents.NewSQLiteRepository(db), log)

	influencers := services.NewInfluencers(kv, docs, log)
	sessions := services.NewSessionManager(kv, log)
	sessions.OnAccountDeleted(influencers.PurgeAfterAccountDeletion)

	return &App{
		config:      c,
		db:          db,
		log:         log,
		kv:          kv,
		docs:        docs,
		sessions:    sessions,
		influencers: influencers,
		notices:     notices,
		reels:       reels.NewClient(c.ProxyEndpoint, c.ReelTimeout, log),
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

// Run sweeps stale storage, resumes a saved session and blocks in the REPL
// until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	if n := a.kv.Cleanup(ctx); n > 0 {
		a.log.Info(ctx, "storage cleanup", "removed", n)
	}
	if user, ok := a.sessions.Restore(ctx); ok {
		a.userName = user
		a.println("Welcome back,", user)
	}

	a.println("Persona planner (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) hasWorkspace() bool {
	return a.workspace != nil
}

func (a *App) getStatus() string {
	s := a.userName
	if a.workspace != nil {
		s += "/" + a.workspace.Influencer().Name
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) drainNotices() []string {
	return a.notices.Drain()
}
