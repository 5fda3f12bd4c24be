package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/doccatalog/internal/client/client"
	"github.com/dmitrijs2005/doccatalog/internal/client/store"
	"github.com/dmitrijs2005/doccatalog/internal/client/view"
)

// List re-fetches the catalog and prints it.
func (a *App) List(ctx context.Context) error {
	err := a.run(ctx, a.store.Refresh)
	if err != nil {
		a.report(err)
		return err
	}
	return view.RenderTable(a.out, a.store.Documents())
}

// Show prints one document. The local list is consulted first; unknown ids
// are fetched from the service.
func (a *App) Show(ctx context.Context, id string) error {
	for _, d := range a.store.Documents() {
		if d.ID == id {
			return view.RenderDocument(a.out, d)
		}
	}

	d, err := a.client.Get(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", client.Message(err))
		return err
	}
	return view.RenderDocument(a.out, *d)
}

// Upload edits the pending draft interactively and submits it. Pressing
// Enter keeps the current value of a field, so a rejected draft can be
// corrected without retyping everything.
func (a *App) Upload(ctx context.Context) error {
	if err := a.editDraft(); err != nil {
		a.logger.Error(ctx, "reading upload form failed", "error", err)
		return err
	}

	err := a.run(ctx, a.form.Submit)
	a.report(err)
	if err != nil {
		if !errors.Is(err, store.ErrBusy) {
			fmt.Fprintln(a.out, "Draft kept; run 'upload' again to fix it or 'discard' to drop it.")
		}
		return err
	}
	return view.RenderTable(a.out, a.store.Documents())
}

// Delete removes a document after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	confirmed := false
	var confirmErr error
	gate := a.confirmer()
	tracked := store.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		ok, err := gate.Confirm(ctx, prompt)
		confirmed, confirmErr = ok, err
		return ok, err
	})

	err := a.run(ctx, func(ctx context.Context) error {
		return a.store.DeleteDocument(ctx, id, tracked)
	})
	if err == nil && !confirmed {
		fmt.Fprintln(a.out, "Delete cancelled")
		return nil
	}
	// The store status is untouched when the prompt itself fails.
	if confirmErr != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}

	a.report(err)
	if err != nil {
		return err
	}
	return view.RenderTable(a.out, a.store.Documents())
}

// Migrate marks a document as migrated.
func (a *App) Migrate(ctx context.Context, id string) error {
	err := a.run(ctx, func(ctx context.Context) error {
		return a.store.MarkMigrated(ctx, id)
	})
	a.report(err)
	if err != nil {
		return err
	}
	return view.RenderTable(a.out, a.store.Documents())
}

// Quotes prints the quotations of a document.
func (a *App) Quotes(ctx context.Context, id string) error {
	qs, err := a.store.Quotations(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", client.Message(err))
		return err
	}
	return view.RenderQuotations(a.out, qs)
}

// Status prints the workflow status and the pending draft, if any.
func (a *App) Status(ctx context.Context) error {
	st := a.store.Status()
	if st.Kind == store.Idle {
		fmt.Fprintln(a.out, "Idle")
	} else if err := view.RenderStatus(a.out, st); err != nil {
		return err
	}

	d := a.form.Draft()
	if !d.IsEmpty() {
		name := "<none>"
		if d.File != nil {
			name = fmt.Sprintf("%s (%d bytes)", d.File.Name, d.File.Size())
		}
		fmt.Fprintf(a.out, "Pending draft: file=%s category=%q\n", name, d.Category)
	}
	return nil
}

// Ping checks that the catalog service answers.
func (a *App) Ping(ctx context.Context) error {
	if err := a.client.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", client.Message(err))
		return err
	}
	fmt.Fprintf(a.out, "Catalog service at %s is reachable\n", a.config.BaseURL)
	return nil
}

// Discard drops the pending upload draft.
func (a *App) Discard(ctx context.Context) error {
	a.form.Cancel()
	fmt.Fprintln(a.out, "Draft discarded")
	return nil
}

// report prints the outcome of a store command. ErrBusy never reaches the
// status, so it is printed directly.
func (a *App) report(err error) {
	if errors.Is(err, store.ErrBusy) {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return
	}
	_ = view.RenderStatus(a.out, a.store.Status())
}
