// Package vaultview holds the decrypted working set for the current
// session and the UI selection state derived from it: the single expanded
// entry, the search highlights and the target of an in-flight dialog.
// Selection is keyed by DocumentID, not list position, so a reload that
// reorders or shrinks the list can never point selection at the wrong
// record.
package vaultview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"credvault/internal/domain/credential"
)

var (
	// ErrMutationPending rejects a second mutation while one is still in
	// flight; racing two reload-after-write cycles would leave the list
	// in indeterminate order.
	ErrMutationPending = errors.New("another change is still pending")

	// ErrNoSuchRecord is returned when a dialog targets a DocumentID that
	// is not in the current list.
	ErrNoSuchRecord = errors.New("no such record")

	// ErrDialogOpen rejects opening a dialog while another is active.
	ErrDialogOpen = errors.New("a dialog is already open")
)

// Repository is the slice of the credential repository the view needs.
type Repository interface {
	Load(ctx context.Context, userID string) ([]credential.Record, int, error)
	Add(ctx context.Context, userID string, rec credential.Record) (string, error)
	Update(ctx context.Context, userID string, rec credential.Record) error
	Delete(ctx context.Context, userID, documentID string) error
}

// View is the vault's in-memory reconciliation state. The record list is
// owned exclusively by the view and replaced wholesale on every reload,
// never patched optimistically.
type View struct {
	repo   Repository
	log    *slog.Logger
	userID string
	now    func() time.Time

	mu           sync.Mutex
	records      []credential.Record
	dropped      int
	expandedID   string
	highlighted  map[string]struct{}
	dialogTarget string
	inFlight     bool
}

func New(repo Repository, userID string, log *slog.Logger) *View {
	return &View{
		repo:        repo,
		log:         log.With("component", "vaultview"),
		userID:      userID,
		now:         time.Now,
		highlighted: map[string]struct{}{},
	}
}

// Reload replaces the whole list with what the repository returns and
// prunes any selection state whose DocumentID is gone.
func (v *View) Reload(ctx context.Context) error {
	records, dropped, err := v.repo.Load(ctx, v.userID)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.records = records
	v.dropped = dropped
	if dropped > 0 {
		v.log.Warn("records dropped during load", "count", dropped)
	}
	v.pruneLocked()
	return nil
}

// Records returns the current decrypted list in store order.
func (v *View) Records() []credential.Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]credential.Record, len(v.records))
	copy(out, v.records)
	return out
}

// Dropped reports how many records the last reload excluded because
// their secret failed to decrypt. Diagnostic only, never a user error.
func (v *View) Dropped() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dropped
}

// Get returns the record with the given DocumentID.
func (v *View) Get(documentID string) (credential.Record, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.getLocked(documentID)
}

// ToggleExpand expands the entry, collapsing any previously expanded one;
// at most one entry is expanded at a time. Expanding a highlighted entry
// clears the whole highlight set. Toggling the expanded entry collapses it.
func (v *View) ToggleExpand(documentID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.getLocked(documentID); !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchRecord, documentID)
	}

	if _, ok := v.highlighted[documentID]; ok {
		v.highlighted = map[string]struct{}{}
	}

	if v.expandedID == documentID {
		v.expandedID = ""
	} else {
		v.expandedID = documentID
	}
	return nil
}

// ExpandedID returns the DocumentID of the expanded entry, or empty.
func (v *View) ExpandedID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.expandedID
}

// Search recomputes the highlight set from scratch: a case-insensitive
// substring match over every label in the current list.
func (v *View) Search(query string) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	needle := strings.ToLower(query)
	v.highlighted = map[string]struct{}{}
	for _, rec := range v.records {
		if strings.Contains(strings.ToLower(rec.Label), needle) {
			v.highlighted[rec.DocumentID] = struct{}{}
		}
	}
	return len(v.highlighted)
}

// Highlighted reports whether the entry is in the current search result.
func (v *View) Highlighted(documentID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.highlighted[documentID]
	return ok
}

// ClearHighlights drops the search result.
func (v *View) ClearHighlights() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.highlighted = map[string]struct{}{}
}

// Add persists a new record and reloads on success.
func (v *View) Add(ctx context.Context, rec credential.Record) error {
	if err := v.begin(); err != nil {
		return err
	}
	defer v.end()

	if _, err := v.repo.Add(ctx, v.userID, rec); err != nil {
		return err
	}
	return v.Reload(ctx)
}

// BeginDialog marks the entry as the target of an edit, delete or
// refresh dialog and returns its current contents.
func (v *View) BeginDialog(documentID string) (credential.Record, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.dialogTarget != "" {
		return credential.Record{}, ErrDialogOpen
	}
	rec, ok := v.getLocked(documentID)
	if !ok {
		return credential.Record{}, fmt.Errorf("%w: %s", ErrNoSuchRecord, documentID)
	}
	v.dialogTarget = documentID
	return rec, nil
}

// DismissDialog abandons the open dialog. A result that arrives for a
// dismissed dialog is dropped, not applied.
func (v *View) DismissDialog() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dialogTarget = ""
}

// ConfirmEdit overwrites the dialog's target record and reloads. The
// result is applied only when the dialog is still current once the write
// resolves.
func (v *View) ConfirmEdit(ctx context.Context, rec credential.Record) error {
	if err := v.beginFor(rec.DocumentID); err != nil {
		return err
	}
	defer v.end()

	if err := v.repo.Update(ctx, v.userID, rec); err != nil {
		return err
	}
	return v.settle(ctx, rec.DocumentID)
}

// ConfirmRefresh replaces the target's secret with a newly generated one
// and stamps the refresh time, then reloads.
func (v *View) ConfirmRefresh(ctx context.Context, documentID, newSecret string) error {
	if err := v.beginFor(documentID); err != nil {
		return err
	}
	defer v.end()

	v.mu.Lock()
	rec, ok := v.getLocked(documentID)
	v.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchRecord, documentID)
	}

	rec.Secret = newSecret
	rec.CreatedAt = v.now().UnixMilli()
	if err := v.repo.Update(ctx, v.userID, rec); err != nil {
		return err
	}
	return v.settle(ctx, documentID)
}

// ConfirmDelete removes the dialog's target record and reloads.
func (v *View) ConfirmDelete(ctx context.Context, documentID string) error {
	if err := v.beginFor(documentID); err != nil {
		return err
	}
	defer v.end()

	if err := v.repo.Delete(ctx, v.userID, documentID); err != nil {
		return err
	}
	return v.settle(ctx, documentID)
}

// begin takes the single mutation slot.
func (v *View) begin() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.inFlight {
		return ErrMutationPending
	}
	v.inFlight = true
	return nil
}

// beginFor additionally checks the mutation targets the open dialog.
func (v *View) beginFor(documentID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.inFlight {
		return ErrMutationPending
	}
	if v.dialogTarget != documentID {
		return fmt.Errorf("%w: %s", ErrNoSuchRecord, documentID)
	}
	v.inFlight = true
	return nil
}

func (v *View) end() {
	v.mu.Lock()
	v.inFlight = false
	v.mu.Unlock()
}

// settle applies a resolved mutation: when the dialog was dismissed while
// the call was in flight the late result is ignored and the list is left
// alone; otherwise the dialog closes and the list reloads.
func (v *View) settle(ctx context.Context, documentID string) error {
	v.mu.Lock()
	if v.dialogTarget != documentID {
		v.mu.Unlock()
		v.log.Debug("ignoring late result for dismissed dialog", "document_id", documentID)
		return nil
	}
	v.dialogTarget = ""
	v.mu.Unlock()

	return v.Reload(ctx)
}

func (v *View) getLocked(documentID string) (credential.Record, bool) {
	for _, rec := range v.records {
		if rec.DocumentID == documentID {
			return rec, true
		}
	}
	return credential.Record{}, false
}

// pruneLocked drops selection state that points at records no longer in
// the list.
func (v *View) pruneLocked() {
	present := make(map[string]struct{}, len(v.records))
	for _, rec := range v.records {
		present[rec.DocumentID] = struct{}{}
	}

	if v.expandedID != "" {
		if _, ok := present[v.expandedID]; !ok {
			v.expandedID = ""
		}
	}
	for id := range v.highlighted {
		if _, ok := present[id]; !ok {
			delete(v.highlighted, id)
		}
	}
	if v.dialogTarget != "" {
		if _, ok := present[v.dialogTarget]; !ok {
			v.dialogTarget = ""
		}
	}
}
