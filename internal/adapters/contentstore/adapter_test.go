package contentstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-lessons/internal/adapters/contentstore"
	"github.com/goliatone/go-lessons/internal/contents"
	"github.com/goliatone/go-lessons/internal/editor"
	"github.com/goliatone/go-lessons/internal/identity"
	"github.com/jackc/pgx/v5/pgconn"
)

func newAdapter() (*contentstore.Adapter, contents.Service) {
	svc := contents.NewService(contents.NewMemoryContentRepository())
	return contentstore.New(svc), svc
}

func TestCreateBatchMapsResults(t *testing.T) {
	adapter, _ := newAdapter()
	lesson := identity.LessonUUID("algebra").String()

	result, err := adapter.CreateBatch(context.Background(), lesson, []editor.NewContent{
		{Kind: contents.KindReading, Payload: "<p>a</p>", Position: 1},
		{Kind: contents.KindVideo, Payload: "nope", Position: 2},
	})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if len(result.Created) != 1 || result.Created[0].Index != 0 {
		t.Fatalf("unexpected created %+v", result.Created)
	}
	if len(result.Failed) != 1 || result.Failed[0].Index != 1 {
		t.Fatalf("unexpected failed %+v", result.Failed)
	}
	var rejected *editor.RejectedError
	if !errors.As(result.Failed[0].Err, &rejected) {
		t.Fatalf("expected rejected classification, got %v", result.Failed[0].Err)
	}
}

func TestInvalidIDsAreRejected(t *testing.T) {
	adapter, _ := newAdapter()
	var rejected *editor.RejectedError

	if _, err := adapter.CreateBatch(context.Background(), "not-a-uuid", nil); !errors.As(err, &rejected) {
		t.Fatalf("expected rejected lesson id, got %v", err)
	}
	if err := adapter.UpdateContent(context.Background(), "tmp-1", editor.ContentUpdate{}); !errors.As(err, &rejected) {
		t.Fatalf("expected rejected content id, got %v", err)
	}
}

func TestDeleteMissingRecordSucceeds(t *testing.T) {
	adapter, _ := newAdapter()
	if err := adapter.DeleteContent(context.Background(), "5f0c2c1e-8a3e-4b8e-9a61-3f1f3d6b9a10"); err != nil {
		t.Fatalf("expected idempotent delete, got %v", err)
	}
}

func TestEditorRoundTripThroughService(t *testing.T) {
	ctx := context.Background()
	adapter, svc := newAdapter()
	lesson := identity.LessonUUID("geometry")

	session, err := editor.New(lesson.String(), adapter)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}

	add := func(kind editor.Kind, payload, caption string) {
		t.Helper()
		state, err := session.Dispatch(ctx, editor.AddItem{Kind: kind})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		id := state.EditingID
		for _, action := range []editor.Action{
			editor.UpdateField{ID: id, Field: editor.FieldPayload, Value: payload},
			editor.UpdateField{ID: id, Field: editor.FieldCaption, Value: caption},
			editor.CommitEdit{ID: id},
		} {
			if _, err := session.Dispatch(ctx, action); err != nil {
				t.Fatalf("%s: %v", action.Type(), err)
			}
		}
	}
	add(contents.KindReading, "<p>Angles</p>", "")
	add(contents.KindImage, "/img/triangle.png", "Triangle")
	add(contents.KindVideo, "https://v.example/proof.mp4", "Proof")

	report, err := session.Synchronize(ctx)
	if err != nil || !report.OK() {
		t.Fatalf("synchronize: %v %+v", err, report)
	}

	if _, err := session.Dispatch(ctx, editor.Reorder{From: 2, To: 0}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	first := session.State().Items[1].ID
	if _, err := session.Dispatch(ctx, editor.DeleteItem{ID: first}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if report, err = session.Synchronize(ctx); err != nil || !report.OK() {
		t.Fatalf("synchronize: %v %+v", err, report)
	}

	stored, err := svc.ListByLesson(ctx, lesson)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	local := session.State().Items
	if len(stored) != len(local) {
		t.Fatalf("expected %d stored items, got %d", len(local), len(stored))
	}
	for idx, record := range stored {
		if record.ID.String() != local[idx].ID || record.Position != idx+1 {
			t.Fatalf("store out of step at %d: %s@%d vs %s", idx, record.ID, record.Position, local[idx].ID)
		}
	}
	if stored[0].Kind != contents.KindVideo || stored[0].Anchor != "proof" {
		t.Fatalf("expected video first with anchor, got %+v", stored[0])
	}

	reloaded, err := editor.New(lesson.String(), adapter)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if reloaded.State().Dirty() {
		t.Fatalf("expected hydrated state to be clean")
	}
}

type failingService struct {
	contents.Service
	err error
}

func (f failingService) Update(context.Context, contents.UpdateContentInput) (*contents.Content, error) {
	return nil, f.err
}

func TestUpdateClassifiesStoreErrors(t *testing.T) {
	id := "5f0c2c1e-8a3e-4b8e-9a61-3f1f3d6b9a10"
	var rejected *editor.RejectedError

	constraint := contentstore.New(failingService{err: &pgconn.PgError{Code: "23505", Message: "duplicate key"}})
	if err := constraint.UpdateContent(context.Background(), id, editor.ContentUpdate{}); !errors.As(err, &rejected) {
		t.Fatalf("expected constraint violation to be rejected, got %v", err)
	}

	outage := errors.New("connection refused")
	network := contentstore.New(failingService{err: outage})
	err := network.UpdateContent(context.Background(), id, editor.ContentUpdate{})
	if errors.As(err, &rejected) || !errors.Is(err, outage) {
		t.Fatalf("expected transport error passed through, got %v", err)
	}
}
