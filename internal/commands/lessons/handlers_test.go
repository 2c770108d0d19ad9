package lessoncmd_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-lessons/internal/adapters/contentstore"
	lessoncmd "github.com/goliatone/go-lessons/internal/commands/lessons"
	"github.com/goliatone/go-lessons/internal/contents"
	"github.com/goliatone/go-lessons/internal/editor"
	"github.com/goliatone/go-lessons/internal/identity"
	"github.com/goliatone/go-lessons/internal/logging"
	"github.com/goliatone/go-lessons/internal/markdown"
	"github.com/google/uuid"
)

type fixture struct {
	service  contents.Service
	registry *editor.Registry
}

func newFixture() fixture {
	svc := contents.NewService(contents.NewMemoryContentRepository())
	registry := editor.NewRegistry(contentstore.New(svc), editor.WithRenderer(markdown.NewRenderer(markdown.Options{})))
	return fixture{service: svc, registry: registry}
}

func TestImportLessonCreatesBlocks(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	lesson := identity.LessonUUID("intro")

	doc, err := markdown.ParseDocument("intro.md", []byte(`---
title: Welcome
media:
  - kind: video
    url: https://cdn.example.com/welcome.mp4
    caption: Welcome video
---
Hello **students**.
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	handler := lessoncmd.NewImportLessonHandler(fx.registry, logging.NoOp())
	if err := handler.Execute(ctx, lessoncmd.ImportLessonCommand{LessonID: lesson, Documents: []*markdown.Document{doc}}); err != nil {
		t.Fatalf("import: %v", err)
	}

	stored, err := fx.service.ListByLesson(ctx, lesson)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(stored))
	}
	if stored[0].Kind != contents.KindReading || stored[0].Payload != "<p>Hello <strong>students</strong>.</p>" {
		t.Fatalf("unexpected reading block %+v", stored[0])
	}
	if stored[0].Caption == nil || *stored[0].Caption != "Welcome" || stored[0].Anchor != "welcome" {
		t.Fatalf("unexpected caption %+v", stored[0])
	}
	if stored[1].Kind != contents.KindVideo || stored[1].Position != 2 {
		t.Fatalf("unexpected video block %+v", stored[1])
	}
}

func TestImportLessonRejectsInvalidMedia(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	lesson := identity.LessonUUID("broken")

	doc := &markdown.Document{
		Path:  "broken.md",
		Media: []markdown.MediaRef{{Kind: "image", URL: "not a url"}},
	}
	handler := lessoncmd.NewImportLessonHandler(fx.registry, nil)
	err := handler.Execute(ctx, lessoncmd.ImportLessonCommand{LessonID: lesson, Documents: []*markdown.Document{doc}})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}

	session, err := fx.registry.Session(ctx, lesson.String())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if state := session.State(); state.EditingID != "" || len(state.Items) != 0 {
		t.Fatalf("expected failed block cancelled, got %+v", state)
	}
}

func TestSaveLessonValidatesMessage(t *testing.T) {
	handler := lessoncmd.NewSaveLessonHandler(newFixture().registry, nil)
	err := handler.Execute(context.Background(), lessoncmd.SaveLessonCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestSaveLessonSynchronizesSession(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	lesson := uuid.New()

	session, err := fx.registry.Session(ctx, lesson.String())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	state, err := session.Dispatch(ctx, editor.AddItem{Kind: contents.KindImage})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	id := state.EditingID
	for _, action := range []editor.Action{
		editor.UpdateField{ID: id, Field: editor.FieldPayload, Value: "/diagram.png"},
		editor.CommitEdit{ID: id},
	} {
		if _, err := session.Dispatch(ctx, action); err != nil {
			t.Fatalf("%s: %v", action.Type(), err)
		}
	}

	handler := lessoncmd.NewSaveLessonHandler(fx.registry, nil)
	if err := handler.Execute(ctx, lessoncmd.SaveLessonCommand{LessonID: lesson}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if session.State().Dirty() {
		t.Fatalf("expected session clean after save")
	}
	stored, _ := fx.service.ListByLesson(ctx, lesson)
	if len(stored) != 1 || stored[0].Payload != "/diagram.png" {
		t.Fatalf("unexpected stored blocks %+v", stored)
	}
}

func TestReorderAndDeleteRespectOpenEdits(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	lesson := uuid.New()

	created, err := fx.service.CreateBatch(ctx, contents.CreateBatchInput{
		LessonID: lesson,
		Items: []contents.CreateContentInput{
			{Kind: contents.KindReading, Payload: "<p>a</p>"},
			{Kind: contents.KindReading, Payload: "<p>b</p>"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	a, b := created.Created[0].Content.ID, created.Created[1].Content.ID

	session, err := fx.registry.Session(ctx, lesson.String())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if _, err := session.Dispatch(ctx, editor.EditItem{ID: a.String()}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	reorder := lessoncmd.NewReorderLessonHandler(fx.service, fx.registry, nil)
	err = reorder.Execute(ctx, lessoncmd.ReorderLessonCommand{LessonID: lesson, Order: []uuid.UUID{b, a}})
	if !errors.Is(err, editor.ErrLockConflict) {
		t.Fatalf("expected lock conflict, got %v", err)
	}

	if _, err := session.Dispatch(ctx, editor.CancelEdit{}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := reorder.Execute(ctx, lessoncmd.ReorderLessonCommand{LessonID: lesson, Order: []uuid.UUID{b, a}}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	del := lessoncmd.NewDeleteContentHandler(fx.service, fx.registry, nil)
	if err := del.Execute(ctx, lessoncmd.DeleteContentCommand{ContentID: b}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	stored, _ := fx.service.ListByLesson(ctx, lesson)
	if len(stored) != 1 || stored[0].ID != a || stored[0].Position != 1 {
		t.Fatalf("unexpected stored blocks %+v", stored)
	}

	fresh, err := fx.registry.Session(ctx, lesson.String())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if fresh == session || len(fresh.State().Items) != 1 {
		t.Fatalf("expected a reloaded session after store-level changes")
	}
}
