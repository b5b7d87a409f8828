package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/petcheck/internal/client/client"
	"github.com/dmitrijs2005/petcheck/internal/client/config"
	"github.com/dmitrijs2005/petcheck/internal/client/services"
	"github.com/dmitrijs2005/petcheck/internal/logging"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config  *config.Config
	log     logging.Logger
	session services.SessionService
	lookup  client.Client
	storage *client.Storage
	reader  *bufio.Reader
	out     io.Writer

	// interactive is true when stdin is a terminal; prompts are only
	// printed then.
	interactive bool
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	storage, err := client.OpenStorage(ctx, c, log)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	lookup, err := client.NewLookupClient(c)
	if err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("lookup client init error: %w", err)
	}

	app := &App{
		config:      c,
		log:         log.With("module", "cli"),
		lookup:      lookup,
		storage:     storage,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(int(os.Stdin.Fd())),
	}

	app.session = services.NewSessionService(ctx, storage.Repo, lookup,
		services.WithDefaultProfileName(c.DefaultProfileName),
		services.WithLogger(log),
		services.WithOnChange(app.onChange),
	)

	return app, nil
}

// onChange reports lookups as they start; results are printed by the
// command that submitted them.
func (a *App) onChange(st services.State) {
	if a.interactive && st.Outcome.IsPending() {
		printlnFn("Checking...")
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

func (a *App) Close(ctx context.Context) {
	if a.lookup != nil {
		if err := a.lookup.Close(); err != nil {
			a.log.Warn(ctx, "failed to close lookup client", "error", err)
		}
	}
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			a.log.Warn(ctx, "failed to close storage", "error", err)
		}
	}
}

// Root runs the REPL on stdin until exit or EOF.
func (a *App) Root(ctx context.Context) {
	if a.interactive {
		printlnFn("Welcome to PetCheck (type 'help' for commands)")
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

// getStatus renders the prompt context: profile name and active pet.
func (a *App) getStatus() string {
	if !a.interactive {
		return ""
	}
	st := a.session.Snapshot()
	s := st.ProfileName
	if st.Selected != nil {
		s += " · " + st.Selected.Species.Emoji() + " " + st.Selected.Name
	}
	return s
}

// promptOut is where input prompts go: a.out on a terminal, nowhere otherwise.
func (a *App) promptOut() io.Writer {
	if !a.interactive {
		return io.Discard
	}
	return a.out
}
