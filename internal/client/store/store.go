// Package store holds the authoritative client-side list of catalog
// documents and the workflow status, and runs the catalog commands
// (refresh, upload, delete, mark migrated) against a client.Client.
//
// Every mutating command ends by re-fetching the full list; the remote
// service is the only source of truth. At most one command is in flight at
// a time: a command issued while another is running fails with ErrBusy and
// leaves the state untouched. Network calls are made without holding the
// state lock and their results are applied atomically.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/doccatalog/internal/client/client"
	"github.com/dmitrijs2005/doccatalog/internal/client/models"
	"github.com/dmitrijs2005/doccatalog/internal/logging"
)

var ErrBusy = errors.New("another command is in progress")

const (
	MsgFileRequired     = "file required"
	MsgCategoryRequired = "category required"
)

// Confirmer is the explicit yes/no gate in front of destructive commands.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Command is a unit of work run by Go.
type Command func(ctx context.Context) error

type Store struct {
	client client.Client
	logger logging.Logger

	mu        sync.Mutex
	busy      bool
	status    WorkflowStatus
	documents []models.DocumentRecord

	subsMu  sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

func New(c client.Client, logger logging.Logger) *Store {
	return &Store{
		client:    c,
		logger:    logger.With("component", "catalog-store"),
		status:    idle(),
		documents: []models.DocumentRecord{},
		subs:      make(map[int]func(Snapshot)),
	}
}

// Go runs cmd on its own goroutine. The returned channel yields the
// command's result exactly once and is then closed.
func (s *Store) Go(ctx context.Context, cmd Command) <-chan error {
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		ch <- cmd(ctx)
	}()
	return ch
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Status returns the current workflow status.
func (s *Store) Status() WorkflowStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Documents returns a copy of the current document list.
func (s *Store) Documents() []models.DocumentRecord {
	return s.Snapshot().Documents
}

// Subscribe registers fn to be called with a snapshot after every state
// change. fn may be called from any goroutine. The returned func removes it.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// Refresh replaces the document list with the server's. On failure the
// previous list stays available and the status becomes Failed.
func (s *Store) Refresh(ctx context.Context) error {
	log, err := s.begin(ctx, "refresh")
	if err != nil {
		return err
	}

	docs, err := s.client.List(ctx)
	if err != nil {
		log.Warn(ctx, "refresh failed", "error", err)
		s.finish(func() { s.status = failed(client.Message(err)) })
		return err
	}

	s.finish(func() {
		s.documents = docs
		s.status = idle()
	})
	log.Debug(ctx, "refresh done", "documents", len(docs))
	return nil
}

// SubmitUpload validates the draft locally and uploads it. A draft without
// file or category fails without any network call. The draft itself is
// never modified; clearing it on success is the caller's job.
func (s *Store) SubmitUpload(ctx context.Context, draft models.UploadDraft) error {
	if msg := validateDraft(draft); msg != "" {
		return s.reject(ctx, "submit upload", msg)
	}

	return s.mutate(ctx, "submit upload", MsgUploaded, func(ctx context.Context) error {
		doc, err := s.client.Upload(ctx, draft)
		if err == nil && doc != nil {
			s.logger.Info(ctx, "document uploaded", "id", doc.ID, "file_name", doc.FileName)
		}
		return err
	})
}

// DeleteDocument removes a document after confirm agrees. A declined (or
// failed) confirmation changes nothing and issues no request.
func (s *Store) DeleteDocument(ctx context.Context, id string, confirm Confirmer) error {
	if confirm == nil {
		return errors.New("delete document: confirmation is required")
	}

	ok, err := confirm.Confirm(ctx, fmt.Sprintf("Delete document %s?", id))
	if err != nil {
		return fmt.Errorf("delete document: confirm: %w", err)
	}
	if !ok {
		s.logger.Info(ctx, "delete declined", "id", id)
		return nil
	}

	return s.mutate(ctx, "delete document", MsgDeleted, func(ctx context.Context) error {
		return s.client.Remove(ctx, id)
	})
}

// MarkMigrated flags a document as propagated to the downstream index.
// Flagging an already migrated document succeeds.
func (s *Store) MarkMigrated(ctx context.Context, id string) error {
	return s.mutate(ctx, "mark migrated", MsgMigrated, func(ctx context.Context) error {
		return s.client.MarkMigrated(ctx, id)
	})
}

// Quotations fetches the quotation group of a document. It does not touch
// the workflow status.
func (s *Store) Quotations(ctx context.Context, id string) ([]models.Quotation, error) {
	qs, err := s.client.ListQuotations(ctx, id)
	if err != nil {
		s.logger.Warn(ctx, "list quotations failed", "id", id, "error", err)
		return nil, err
	}
	return qs, nil
}

// mutate runs call as one command. On success the status becomes
// Succeeded(successMsg) and the list is re-fetched once; a failing
// re-fetch turns the status into Failed but the command itself still
// reports success.
func (s *Store) mutate(ctx context.Context, name, successMsg string, call func(ctx context.Context) error) error {
	log, err := s.begin(ctx, name)
	if err != nil {
		return err
	}

	if err := call(ctx); err != nil {
		log.Warn(ctx, "command failed", "error", err)
		s.finish(func() { s.status = failed(client.Message(err)) })
		return err
	}

	s.update(func() { s.status = succeeded(successMsg) })

	docs, err := s.client.List(ctx)
	if err != nil {
		log.Warn(ctx, "refresh after command failed", "error", err)
		s.finish(func() { s.status = failed(client.Message(err)) })
		return nil
	}

	s.finish(func() { s.documents = docs })
	log.Info(ctx, "command done", "documents", len(docs))
	return nil
}

// begin claims the single command slot and enters Loading.
func (s *Store) begin(ctx context.Context, name string) (logging.Logger, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		s.logger.Warn(ctx, "command rejected", "command", name, "error", ErrBusy)
		return nil, fmt.Errorf("%s: %w", name, ErrBusy)
	}
	s.busy = true
	s.status = loading()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)

	log := s.logger.With("command", name, "command_id", uuid.NewString())
	log.Debug(ctx, "command started")
	return log, nil
}

// update applies fn while the command slot is still held.
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// finish applies fn and releases the command slot.
func (s *Store) finish(fn func()) {
	s.mu.Lock()
	fn()
	s.busy = false
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// reject records a local validation failure without contacting the server.
func (s *Store) reject(ctx context.Context, name, msg string) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", name, ErrBusy)
	}
	s.status = failed(msg)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	s.logger.Info(ctx, "command rejected locally", "command", name, "reason", msg)
	return &client.APIError{Kind: client.ErrValidation, Op: name, Message: msg}
}

func (s *Store) snapshotLocked() Snapshot {
	docs := make([]models.DocumentRecord, len(s.documents))
	copy(docs, s.documents)
	return Snapshot{Status: s.status, Documents: docs}
}

func (s *Store) notify(snap Snapshot) {
	s.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func validateDraft(d models.UploadDraft) string {
	if d.File == nil {
		return MsgFileRequired
	}
	if !d.HasCategory() {
		return MsgCategoryRequired
	}
	return ""
}
