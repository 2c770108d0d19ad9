package lessoncmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-lessons/internal/markdown"
	"github.com/google/uuid"
)

const (
	saveLessonMessageType    = "lessons.lesson.save"
	importLessonMessageType  = "lessons.lesson.import"
	reorderLessonMessageType = "lessons.lesson.reorder"
	deleteContentMessageType = "lessons.content.delete"
)

// SaveLessonCommand synchronizes the editor session of a lesson with the store.
type SaveLessonCommand struct {
	LessonID uuid.UUID `json:"lesson_id"`
}

// Type implements command.Message.
func (SaveLessonCommand) Type() string { return saveLessonMessageType }

func (m SaveLessonCommand) LogFields() map[string]any {
	return map[string]any{"lesson_id": m.LessonID.String()}
}

func (m SaveLessonCommand) Validate() error {
	errs := validation.Errors{}
	if m.LessonID == uuid.Nil {
		errs["lesson_id"] = validation.NewError("lessons.lesson.save.lesson_id_required", "lesson_id is required")
	}
	return errs.Filter()
}

// ImportLessonCommand appends blocks built from Markdown documents and saves
// the lesson.
type ImportLessonCommand struct {
	LessonID  uuid.UUID            `json:"lesson_id"`
	Documents []*markdown.Document `json:"documents"`
}

// Type implements command.Message.
func (ImportLessonCommand) Type() string { return importLessonMessageType }

func (m ImportLessonCommand) LogFields() map[string]any {
	return map[string]any{"lesson_id": m.LessonID.String(), "documents": len(m.Documents)}
}

func (m ImportLessonCommand) Validate() error {
	errs := validation.Errors{}
	if m.LessonID == uuid.Nil {
		errs["lesson_id"] = validation.NewError("lessons.lesson.import.lesson_id_required", "lesson_id is required")
	}
	if len(m.Documents) == 0 {
		errs["documents"] = validation.NewError("lessons.lesson.import.documents_required", "at least one document is required")
	}
	return errs.Filter()
}

// ReorderLessonCommand rewrites the stored order of a lesson's blocks.
type ReorderLessonCommand struct {
	LessonID uuid.UUID   `json:"lesson_id"`
	Order    []uuid.UUID `json:"order"`
}

// Type implements command.Message.
func (ReorderLessonCommand) Type() string { return reorderLessonMessageType }

func (m ReorderLessonCommand) LogFields() map[string]any {
	return map[string]any{"lesson_id": m.LessonID.String()}
}

func (m ReorderLessonCommand) Validate() error {
	errs := validation.Errors{}
	if m.LessonID == uuid.Nil {
		errs["lesson_id"] = validation.NewError("lessons.lesson.reorder.lesson_id_required", "lesson_id is required")
	}
	if len(m.Order) == 0 {
		errs["order"] = validation.NewError("lessons.lesson.reorder.order_required", "order is required")
	}
	return errs.Filter()
}

// DeleteContentCommand removes a stored block and compacts its siblings.
type DeleteContentCommand struct {
	ContentID uuid.UUID `json:"content_id"`
}

// Type implements command.Message.
func (DeleteContentCommand) Type() string { return deleteContentMessageType }

func (m DeleteContentCommand) LogFields() map[string]any {
	return map[string]any{"content_id": m.ContentID.String()}
}

func (m DeleteContentCommand) Validate() error {
	errs := validation.Errors{}
	if m.ContentID == uuid.Nil {
		errs["content_id"] = validation.NewError("lessons.content.delete.content_id_required", "content_id is required")
	}
	return errs.Filter()
}
