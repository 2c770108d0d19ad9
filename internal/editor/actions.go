package editor

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
)

const (
	addItemType        = "lessons.editor.add_item"
	editItemType       = "lessons.editor.edit_item"
	updateFieldType    = "lessons.editor.update_field"
	importMarkdownType = "lessons.editor.import_markdown"
	cancelEditType     = "lessons.editor.cancel_edit"
	commitEditType     = "lessons.editor.commit_edit"
	deleteItemType     = "lessons.editor.delete_item"
	reorderType        = "lessons.editor.reorder"
)

// Action is a message accepted by Apply.
type Action interface {
	command.Message
	Validate() error
}

// AddItem appends a new provisional item and locks it.
type AddItem struct {
	Kind Kind `json:"kind"`
}

func (AddItem) Type() string { return addItemType }

func (m AddItem) Validate() error {
	errs := validation.Errors{}
	if !m.Kind.Valid() {
		errs["kind"] = validation.NewError("lessons.editor.kind_invalid", "kind must be reading, video or image")
	}
	return errs.Filter()
}

// EditItem locks an item, committing any other locked item first.
type EditItem struct {
	ID string `json:"id"`
}

func (EditItem) Type() string { return editItemType }

func (m EditItem) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required.ErrorObject(validation.NewError("lessons.editor.id_required", "id is required"))),
	)
}

// UpdateField changes payload or caption of the locked item.
type UpdateField struct {
	ID    string `json:"id"`
	Field Field  `json:"field"`
	Value string `json:"value"`
}

func (UpdateField) Type() string { return updateFieldType }

func (m UpdateField) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required),
		validation.Field(&m.Field, validation.Required, validation.In(FieldPayload, FieldCaption)),
	)
}

// ImportMarkdown renders Markdown into the payload of the locked Reading item.
type ImportMarkdown struct {
	ID     string `json:"id"`
	Source string `json:"source"`
}

func (ImportMarkdown) Type() string { return importMarkdownType }

func (m ImportMarkdown) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required),
	)
}

// CancelEdit abandons the current edit. A provisional item is removed. A
// persisted item gets back the payload and caption it had when EditItem
// locked it: the last synchronized values, or the values of a local commit
// made after the last synchronize. Cancelling with no lock is a no-op.
type CancelEdit struct{}

func (CancelEdit) Type() string { return cancelEditType }

func (CancelEdit) Validate() error { return nil }

// CommitEdit validates the locked item and releases the lock.
type CommitEdit struct {
	ID string `json:"id"`
}

func (CommitEdit) Type() string { return commitEditType }

func (m CommitEdit) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required),
	)
}

// DeleteItem removes an item locally and, when persisted, remotely.
type DeleteItem struct {
	ID string `json:"id"`
}

func (DeleteItem) Type() string { return deleteItemType }

func (m DeleteItem) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required),
	)
}

// Reorder moves the item at From to To. Both are 0-based.
type Reorder struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (Reorder) Type() string { return reorderType }

func (m Reorder) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.From, validation.Min(0)),
		validation.Field(&m.To, validation.Min(0)),
	)
}
