// Package form holds the upload form controller: the draft being edited and
// the rules for handing it to the catalog store.
package form

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/doccatalog/internal/client/models"
)

// Submitter is the part of the catalog store the form needs.
type Submitter interface {
	SubmitUpload(ctx context.Context, draft models.UploadDraft) error
}

// Controller owns one UploadDraft. It is safe for concurrent use.
type Controller struct {
	submitter Submitter

	mu    sync.Mutex
	draft models.UploadDraft
}

func NewController(s Submitter) *Controller {
	return &Controller{submitter: s}
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() models.UploadDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) SetCategory(v string) {
	c.set(func(d *models.UploadDraft) { d.Category = strings.TrimSpace(v) })
}

func (c *Controller) SetCompanyFrom(v string) {
	c.set(func(d *models.UploadDraft) { d.CompanyFrom = strings.TrimSpace(v) })
}

func (c *Controller) SetCompanyTo(v string) {
	c.set(func(d *models.UploadDraft) { d.CompanyTo = strings.TrimSpace(v) })
}

func (c *Controller) SetCustomFileName(v string) {
	c.set(func(d *models.UploadDraft) { d.CustomFileName = v })
}

func (c *Controller) SetInlineText(v string) {
	c.set(func(d *models.UploadDraft) { d.InlineText = v })
}

// SelectFile replaces the selected file. A nil ref clears the selection.
func (c *Controller) SelectFile(f *models.FileRef) {
	c.set(func(d *models.UploadDraft) { d.File = f })
}

// SelectPath reads the file at path and selects it. The base name of path
// becomes the custom file name unless the user typed a different one.
func (c *Controller) SelectPath(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("select file: %w", err)
	}

	name := filepath.Base(path)
	c.set(func(d *models.UploadDraft) {
		if d.CustomFileName == "" || (d.File != nil && d.CustomFileName == d.File.Name) {
			d.CustomFileName = name
		}
		d.File = &models.FileRef{Name: name, Data: data}
	})
	return nil
}

// Cancel discards the draft.
func (c *Controller) Cancel() {
	c.set(func(d *models.UploadDraft) { *d = models.UploadDraft{} })
}

// Submit hands the current draft to the store. Every field, the file
// selection included, is cleared only when the store reports success; on
// failure the draft is kept so it can be corrected and resubmitted.
func (c *Controller) Submit(ctx context.Context) error {
	draft := c.Draft()

	if err := c.submitter.SubmitUpload(ctx, draft); err != nil {
		return err
	}

	c.Cancel()
	return nil
}

func (c *Controller) set(fn func(d *models.UploadDraft)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.draft)
}
