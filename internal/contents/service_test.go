package contents_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-lessons/internal/contents"
	"github.com/google/uuid"
)

var lessonID = uuid.MustParse("00000000-0000-0000-0000-00000000a001")

func newContentService(opts ...contents.ServiceOption) contents.Service {
	counter := 0
	defaults := []contents.ServiceOption{
		contents.WithIDGenerator(func() uuid.UUID {
			counter++
			return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", counter))
		}),
		contents.WithClock(func() time.Time {
			return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		}),
	}
	return contents.NewService(contents.NewMemoryContentRepository(), append(defaults, opts...)...)
}

func strPtr(value string) *string { return &value }

func intPtr(value int) *int { return &value }

func TestServiceCreateBatchPreservesSubmissionOrder(t *testing.T) {
	svc := newContentService()
	ctx := context.Background()

	result, err := svc.CreateBatch(ctx, contents.CreateBatchInput{
		LessonID: lessonID,
		Items: []contents.CreateContentInput{
			{Kind: contents.KindReading, Payload: "<p>Intro</p>", Position: 1},
			{Kind: contents.KindVideo, Payload: "https://cdn.example.com/intro.mp4", Caption: strPtr("Intro Video"), Position: 2},
			{Kind: contents.KindImage, Payload: "/uploads/diagram.png", Position: 3},
		},
	})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if len(result.Failed) != 0 {
		t.Fatalf("expected no failures, got %+v", result.Failed)
	}
	if len(result.Created) != 3 {
		t.Fatalf("expected 3 created, got %d", len(result.Created))
	}
	for idx, created := range result.Created {
		if created.Index != idx {
			t.Fatalf("expected ack %d to correlate to index %d, got %d", idx, idx, created.Index)
		}
	}
	if anchor := result.Created[1].Content.Anchor; anchor != "intro-video" {
		t.Fatalf("expected caption anchor intro-video, got %q", anchor)
	}

	listed, err := svc.ListByLesson(ctx, lessonID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 || listed[0].Kind != contents.KindReading || listed[2].Kind != contents.KindImage {
		t.Fatalf("unexpected listing %+v", listed)
	}
}

func TestServiceCreateBatchReportsPartialFailure(t *testing.T) {
	svc := newContentService()

	result, err := svc.CreateBatch(context.Background(), contents.CreateBatchInput{
		LessonID: lessonID,
		Items: []contents.CreateContentInput{
			{Kind: contents.KindReading, Payload: "<p>ok</p>"},
			{Kind: contents.KindVideo, Payload: "not a url"},
			{Kind: contents.KindImage, Payload: "/ok.png"},
		},
	})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if len(result.Created) != 2 || result.Created[0].Index != 0 || result.Created[1].Index != 2 {
		t.Fatalf("expected indexes 0 and 2 created, got %+v", result.Created)
	}
	if len(result.Failed) != 1 || result.Failed[0].Index != 1 {
		t.Fatalf("expected index 1 to fail, got %+v", result.Failed)
	}
	if !errors.Is(result.Failed[0].Err, contents.ErrContentInvalid) {
		t.Fatalf("expected ErrContentInvalid, got %v", result.Failed[0].Err)
	}
	if pos := result.Created[1].Content.Position; pos != 2 {
		t.Fatalf("expected appended position 2, got %d", pos)
	}
}

func TestServiceCreateBatchEnforcesLimits(t *testing.T) {
	svc := newContentService(contents.WithMaxBatchSize(1))

	if _, err := svc.CreateBatch(context.Background(), contents.CreateBatchInput{}); !errors.Is(err, contents.ErrLessonIDRequired) {
		t.Fatalf("expected ErrLessonIDRequired, got %v", err)
	}

	_, err := svc.CreateBatch(context.Background(), contents.CreateBatchInput{
		LessonID: lessonID,
		Items: []contents.CreateContentInput{
			{Kind: contents.KindReading, Payload: "<p>a</p>"},
			{Kind: contents.KindReading, Payload: "<p>b</p>"},
		},
	})
	if !errors.Is(err, contents.ErrBatchTooLarge) {
		t.Fatalf("expected ErrBatchTooLarge, got %v", err)
	}
}

func TestServiceUpdatePatchesFields(t *testing.T) {
	svc := newContentService()
	ctx := context.Background()

	result, err := svc.CreateBatch(ctx, contents.CreateBatchInput{
		LessonID: lessonID,
		Items:    []contents.CreateContentInput{{Kind: contents.KindVideo, Payload: "https://a.example/v.mp4"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := result.Created[0].Content.ID

	updated, err := svc.Update(ctx, contents.UpdateContentInput{
		ID:       id,
		Caption:  strPtr("  Lab Walkthrough "),
		Position: intPtr(4),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Payload != "https://a.example/v.mp4" {
		t.Fatalf("expected payload unchanged, got %q", updated.Payload)
	}
	if updated.Caption == nil || *updated.Caption != "Lab Walkthrough" || updated.Anchor != "lab-walkthrough" {
		t.Fatalf("unexpected caption/anchor %v %q", updated.Caption, updated.Anchor)
	}
	if updated.Position != 4 {
		t.Fatalf("expected position 4, got %d", updated.Position)
	}

	if _, err := svc.Update(ctx, contents.UpdateContentInput{ID: id, Payload: strPtr("ftp://nope")}); !errors.Is(err, contents.ErrContentInvalid) {
		t.Fatalf("expected ErrContentInvalid, got %v", err)
	}

	var notFound *contents.NotFoundError
	if _, err := svc.Update(ctx, contents.UpdateContentInput{ID: uuid.New(), Payload: strPtr("<p>x</p>")}); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestServiceDeleteCompactsPositions(t *testing.T) {
	svc := newContentService()
	ctx := context.Background()

	result, err := svc.CreateBatch(ctx, contents.CreateBatchInput{
		LessonID: lessonID,
		Items: []contents.CreateContentInput{
			{Kind: contents.KindReading, Payload: "<p>1</p>"},
			{Kind: contents.KindReading, Payload: "<p>2</p>"},
			{Kind: contents.KindReading, Payload: "<p>3</p>"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, result.Created[0].Content.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	listed, err := svc.ListByLesson(ctx, lessonID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(listed))
	}
	for idx, record := range listed {
		if record.Position != idx+1 {
			t.Fatalf("expected contiguous positions, got %d at %d", record.Position, idx)
		}
	}
	if listed[0].Payload != "<p>2</p>" {
		t.Fatalf("expected second block to move first, got %q", listed[0].Payload)
	}
}

func TestServiceReorder(t *testing.T) {
	svc := newContentService()
	ctx := context.Background()

	result, err := svc.CreateBatch(ctx, contents.CreateBatchInput{
		LessonID: lessonID,
		Items: []contents.CreateContentInput{
			{Kind: contents.KindReading, Payload: "<p>a</p>"},
			{Kind: contents.KindImage, Payload: "/b.png"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	first, second := result.Created[0].Content.ID, result.Created[1].Content.ID

	ordered, err := svc.Reorder(ctx, contents.ReorderInput{LessonID: lessonID, Order: []uuid.UUID{second, first}})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if ordered[0].ID != second || ordered[0].Position != 1 || ordered[1].Position != 2 {
		t.Fatalf("unexpected order %+v", ordered)
	}

	if _, err := svc.Reorder(ctx, contents.ReorderInput{LessonID: lessonID, Order: []uuid.UUID{first, first}}); !errors.Is(err, contents.ErrReorderMismatch) {
		t.Fatalf("expected ErrReorderMismatch for duplicates, got %v", err)
	}
	if _, err := svc.Reorder(ctx, contents.ReorderInput{LessonID: lessonID, Order: []uuid.UUID{first}}); !errors.Is(err, contents.ErrReorderMismatch) {
		t.Fatalf("expected ErrReorderMismatch for short order, got %v", err)
	}
}

func TestServiceRemoveLeavesSiblingPositions(t *testing.T) {
	svc := newContentService()
	ctx := context.Background()

	result, err := svc.CreateBatch(ctx, contents.CreateBatchInput{
		LessonID: lessonID,
		Items: []contents.CreateContentInput{
			{Kind: contents.KindReading, Payload: "<p>1</p>"},
			{Kind: contents.KindReading, Payload: "<p>2</p>"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Remove(ctx, result.Created[0].Content.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	listed, err := svc.ListByLesson(ctx, lessonID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Position != 2 {
		t.Fatalf("expected remaining block to keep position 2, got %+v", listed)
	}
}
