package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/doccatalog/internal/client/client"
	"github.com/dmitrijs2005/doccatalog/internal/client/config"
	"github.com/dmitrijs2005/doccatalog/internal/client/form"
	"github.com/dmitrijs2005/doccatalog/internal/client/store"
	"github.com/dmitrijs2005/doccatalog/internal/client/view"
	"github.com/dmitrijs2005/doccatalog/internal/logging"
)

// isTerminal is a test seam for term.IsTerminal on stdin.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

type App struct {
	config *config.Config
	client client.Client
	store  *store.Store
	form   *form.Controller
	logger logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires an App around c. Prompts are read from in and all output
// goes to out.
func NewApp(cfg *config.Config, c client.Client, logger logging.Logger, in io.Reader, out io.Writer) *App {
	st := store.New(c, logger)
	return &App{
		config: cfg,
		client: c,
		store:  st,
		form:   form.NewController(st),
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run loads the catalog once and then serves the REPL until exit.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Document catalog client (type 'help' for commands)")

	unsubscribe := a.store.Subscribe(a.onChange)
	defer unsubscribe()

	_ = a.List(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

// onChange prints progress while a command is running. Final results are
// printed by the command handlers themselves.
func (a *App) onChange(s store.Snapshot) {
	if s.Status.Kind == store.Loading {
		_ = view.RenderStatus(a.out, s.Status)
	}
}

func (a *App) getStatus() string {
	s := a.store.Snapshot()
	return fmt.Sprintf("(%d docs, %s)", len(s.Documents), s.Status.Kind)
}

// run executes cmd through the store as one unit of work and waits for it.
func (a *App) run(ctx context.Context, cmd store.Command) error {
	return <-a.store.Go(ctx, cmd)
}
