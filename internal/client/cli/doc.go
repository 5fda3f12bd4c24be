// Package cli provides the interactive catalog command-line client.
//
// It wires the catalog store, the upload form and the text view into a
// read-eval-print loop:
//   - list / show documents
//   - upload a file with its category, companies and optional text
//   - delete (after confirmation) and mark documents migrated
//   - inspect quotations, the workflow status and service reachability
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See runREPL for the command table.
package cli
