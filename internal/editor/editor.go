package editor

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/goliatone/go-lessons/internal/logging"
	"github.com/goliatone/go-lessons/pkg/interfaces"
	"golang.org/x/sync/errgroup"
)

const defaultUpdateConcurrency = 4

// Option configures an Editor.
type Option func(*Editor)

func WithLogger(logger interfaces.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStrictFields makes UpdateField on an unlocked item an error.
func WithStrictFields(strict bool) Option {
	return func(e *Editor) {
		e.reducer.Strict = strict
	}
}

// WithRenderer enables the ImportMarkdown action.
func WithRenderer(renderer Renderer) Option {
	return func(e *Editor) {
		e.reducer.Markdown = renderer
	}
}

// WithUpdateConcurrency bounds the parallel updates issued by Synchronize.
func WithUpdateConcurrency(limit int) Option {
	return func(e *Editor) {
		if limit > 0 {
			e.concurrency = limit
		}
	}
}

// WithMaxBatchSize splits creates into several CreateBatch calls.
func WithMaxBatchSize(limit int) Option {
	return func(e *Editor) {
		if limit > 0 {
			e.maxBatch = limit
		}
	}
}

// Editor is a session over one lesson. It serialises transitions and runs
// their effects against the Store outside the lock.
type Editor struct {
	mu          sync.Mutex
	state       State
	reducer     Reducer
	store       Store
	logger      interfaces.Logger
	concurrency int
	maxBatch    int
	running     bool
	retry       []string
	failures    map[string]*RemoteSyncError
}

func New(lessonID string, store Store, opts ...Option) (*Editor, error) {
	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return nil, ErrLessonRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	e := &Editor{
		state:       NewState(lessonID),
		store:       store,
		logger:      logging.NoOp(),
		concurrency: defaultUpdateConcurrency,
		failures:    map[string]*RemoteSyncError{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.WithFields(e.logger, map[string]any{"lesson_id": lessonID})
	return e, nil
}

// State returns a snapshot of the current editor state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Load replaces local items with the lesson's stored content.
func (e *Editor) Load(ctx context.Context) error {
	e.mu.Lock()
	if err := e.idleLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	lessonID := e.state.LessonID
	e.mu.Unlock()

	stored, err := e.store.ListByLesson(ctx, lessonID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.idleLocked(); err != nil {
		return err
	}
	e.state = Hydrate(e.state, stored)
	e.logger.Debug("editor.load", "items", len(e.state.Items))
	return nil
}

func (e *Editor) idleLocked() error {
	switch {
	case e.running:
		return ErrSyncInFlight
	case e.state.EditingID != "":
		return ErrLockHeld
	case e.state.Dirty():
		return ErrUnsavedChanges
	}
	return nil
}

// Dispatch applies action and runs the resulting effects. A failed remote
// delete is returned as a *RemoteSyncError; the local removal stands.
func (e *Editor) Dispatch(ctx context.Context, action Action) (State, error) {
	e.mu.Lock()
	next, effects, err := e.reducer.Apply(e.state, action)
	if err != nil {
		e.mu.Unlock()
		if errors.Is(err, ErrLockConflict) {
			e.logger.Debug("editor.lock_conflict", "action", action.Type(), "error", err)
		}
		return next.Clone(), err
	}
	e.state = next
	snapshot := next.Clone()
	e.mu.Unlock()

	var errs []error
	for _, effect := range effects {
		if err := e.runEffect(ctx, effect); err != nil {
			errs = append(errs, err)
		}
	}
	return snapshot, errors.Join(errs...)
}

func (e *Editor) runEffect(ctx context.Context, effect Effect) error {
	switch fx := effect.(type) {
	case DeleteContent:
		return e.deleteRemote(ctx, fx.ID)
	default:
		return nil
	}
}

func (e *Editor) deleteRemote(ctx context.Context, id string) error {
	err := e.store.DeleteContent(ctx, id)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		syncErr := remoteError(id, OpDelete, err)
		e.failures[id] = syncErr
		e.enqueueRetryLocked(id)
		e.logger.Warn("editor.delete.failed", "item_id", id, "reason", syncErr.Reason, "error", err)
		return syncErr
	}
	delete(e.failures, id)
	e.dropRetryLocked(id)
	return nil
}

// RetryDeletes re-issues remote deletes that failed earlier and returns the
// ones that still fail.
func (e *Editor) RetryDeletes(ctx context.Context) []*RemoteSyncError {
	e.mu.Lock()
	pending := append([]string(nil), e.retry...)
	e.mu.Unlock()

	var failed []*RemoteSyncError
	for _, id := range pending {
		if err := e.deleteRemote(ctx, id); err != nil {
			var syncErr *RemoteSyncError
			if errors.As(err, &syncErr) {
				failed = append(failed, syncErr)
			}
		}
	}
	return failed
}

// PendingDeletes lists durable ids whose remote delete has not succeeded.
func (e *Editor) PendingDeletes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.retry...)
}

// Failures returns the latest unresolved remote failure per item.
func (e *Editor) Failures() map[string]*RemoteSyncError {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]*RemoteSyncError, len(e.failures))
	for id, err := range e.failures {
		out[id] = err
	}
	return out
}

func (e *Editor) enqueueRetryLocked(id string) {
	for _, existing := range e.retry {
		if existing == id {
			return
		}
	}
	e.retry = append(e.retry, id)
}

func (e *Editor) dropRetryLocked(id string) {
	for idx, existing := range e.retry {
		if existing == id {
			e.retry = append(e.retry[:idx], e.retry[idx+1:]...)
			return
		}
	}
}

// Synchronize pushes local changes to the store: provisional items are
// created in one batch (or several when a batch limit is set), then
// persisted items with changes are updated in parallel. Locked items are
// skipped. Partial success is normal and nothing is rolled back.
func (e *Editor) Synchronize(ctx context.Context) (SyncReport, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return SyncReport{}, ErrSyncInFlight
	}
	e.running = true
	lessonID := e.state.LessonID
	creates, skipped := planCreates(e.state)
	if len(creates) > 0 {
		e.state.Syncing = true
	}
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.state.Syncing = false
		e.mu.Unlock()
	}()

	report := SyncReport{
		LessonID: lessonID,
		Created:  map[string]string{},
		Skipped:  skipped,
	}

	for _, batch := range chunk(creates, e.maxBatch) {
		if len(batch) == 0 {
			continue
		}
		e.createBatch(ctx, lessonID, batch, &report)
	}

	e.mu.Lock()
	e.state.Syncing = false
	updates, lockedPersisted := planUpdates(e.state)
	e.mu.Unlock()
	report.Skipped = append(report.Skipped, lockedPersisted...)

	e.runUpdates(ctx, updates, &report)

	e.mu.Lock()
	for _, failure := range report.Failures {
		e.failures[failure.ItemID] = failure
	}
	e.mu.Unlock()

	if report.OK() {
		e.logger.Info("editor.sync.complete", "summary", report.String())
	} else {
		e.logger.Warn("editor.sync.partial", "summary", report.String())
	}
	return report, ctx.Err()
}

func (e *Editor) createBatch(ctx context.Context, lessonID string, batch []pendingCreate, report *SyncReport) {
	items := make([]NewContent, len(batch))
	for idx, pending := range batch {
		items[idx] = pending.Content
	}

	result, err := e.store.CreateBatch(ctx, lessonID, items)
	if err != nil {
		for _, pending := range batch {
			failure := remoteError(pending.ProvisionalID, OpCreate, err)
			report.Failures = append(report.Failures, failure)
			e.logger.Warn("editor.create.failed", "item_id", pending.ProvisionalID, "reason", failure.Reason, "error", err)
		}
		return
	}

	e.mu.Lock()
	next, orphans := applyCreated(e.state, batch, result, report)
	e.state = next
	for provisional := range report.Created {
		delete(e.failures, provisional)
	}
	e.mu.Unlock()

	for _, orphan := range orphans {
		if err := e.deleteRemote(ctx, orphan); err != nil {
			var syncErr *RemoteSyncError
			if errors.As(err, &syncErr) {
				report.Failures = append(report.Failures, syncErr)
			}
			continue
		}
		report.Orphans = append(report.Orphans, orphan)
	}
}

func (e *Editor) runUpdates(ctx context.Context, updates []pendingUpdate, report *SyncReport) {
	if len(updates) == 0 {
		return
	}

	var (
		mu       sync.Mutex
		acked    = make(map[string]ContentUpdate, len(updates))
		failures []*RemoteSyncError
	)
	group := errgroup.Group{}
	group.SetLimit(e.concurrency)
	for _, pending := range updates {
		group.Go(func() error {
			err := e.store.UpdateContent(ctx, pending.ID, pending.Update)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failure := remoteError(pending.ID, OpUpdate, err)
				failures = append(failures, failure)
				e.logger.Warn("editor.update.failed", "item_id", pending.ID, "reason", failure.Reason, "error", err)
				return nil
			}
			acked[pending.ID] = pending.Update
			return nil
		})
	}
	_ = group.Wait()

	e.mu.Lock()
	e.state = markSynced(e.state, acked)
	for id := range acked {
		delete(e.failures, id)
	}
	e.mu.Unlock()

	for _, pending := range updates {
		if _, ok := acked[pending.ID]; ok {
			report.Updated = append(report.Updated, pending.ID)
		}
	}
	report.Failures = append(report.Failures, failures...)
}
