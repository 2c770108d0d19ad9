package editor

import "context"

// Store is the remote content store the editor reconciles against.
//
// CreateBatch must report each outcome with the Index of the submitted item
// it belongs to. Acknowledgements may arrive in any order.
type Store interface {
	CreateBatch(ctx context.Context, lessonID string, items []NewContent) (BatchResult, error)
	UpdateContent(ctx context.Context, id string, update ContentUpdate) error
	DeleteContent(ctx context.Context, id string) error
	ListByLesson(ctx context.Context, lessonID string) ([]StoredContent, error)
}

type NewContent struct {
	Kind     Kind
	Payload  string
	Caption  string
	Position int
}

type ContentUpdate struct {
	Payload  string
	Caption  string
	Position int
}

type StoredContent struct {
	ID       string
	Kind     Kind
	Payload  string
	Caption  string
	Position int
}

type BatchResult struct {
	Created []CreatedContent
	Failed  []FailedContent
}

// CreatedContent acknowledges the submitted item at Index with its durable id.
type CreatedContent struct {
	Index int
	ID    string
}

type FailedContent struct {
	Index int
	Err   error
}
