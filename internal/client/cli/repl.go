package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Upload(ctx context.Context) error
	Discard(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Migrate(ctx context.Context, id string) error
	Quotes(ctx context.Context, id string) error
	Status(ctx context.Context) error
	Ping(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist           refresh and list documents
  show <id>        show one document
  upload           fill in and submit the upload form
  discard          drop the pending upload draft
  delete <id>      delete a document (asks for confirmation)
  migrate <id>     mark a document as migrated
  quotes <id>      list the quotations of a document
  status           show the workflow status
  ping             check the catalog service
  exit | quit      leave the program`

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, on context cancellation or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own outcome.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("catalog %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		withID := func(fn func(context.Context, string) error) {
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				return
			}
			_ = fn(ctx, args[0])
		}

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			withID(a.Show)

		case "upload":
			_ = a.Upload(ctx)

		case "discard":
			_ = a.Discard(ctx)

		case "delete":
			withID(a.Delete)

		case "migrate":
			withID(a.Migrate)

		case "quotes":
			withID(a.Quotes)

		case "status":
			_ = a.Status(ctx)

		case "ping":
			_ = a.Ping(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
