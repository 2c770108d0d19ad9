package editor

import (
	"github.com/goliatone/go-lessons/contents"
	"github.com/goliatone/go-lessons/internal/identity"
)

type Kind = contents.Kind

// Field names an editable attribute of an item.
type Field string

const (
	FieldPayload Field = "payload"
	FieldCaption Field = "caption"
)

// Snapshot captures the editable values of an item at a point in time.
type Snapshot struct {
	Payload  string
	Caption  string
	Position int
}

// Item is a content block as seen by the editor.
type Item struct {
	ID       string
	Kind     Kind
	Payload  string
	Caption  string
	Position int
	// Synced holds the values last acknowledged by the store. Nil until the
	// item has been created remotely.
	Synced *Snapshot

	checkpoint *Snapshot
}

// Persisted reports whether the item carries a store-issued id.
func (i Item) Persisted() bool {
	return i.ID != "" && !identity.IsProvisional(i.ID)
}

// Pending reports whether the item holds changes the store has not seen.
func (i Item) Pending() bool {
	if !i.Persisted() || i.Synced == nil {
		return true
	}
	return i.Synced.Payload != i.Payload ||
		i.Synced.Caption != i.Caption ||
		i.Synced.Position != i.Position
}

func (i Item) snapshot() Snapshot {
	return Snapshot{Payload: i.Payload, Caption: i.Caption, Position: i.Position}
}

// State is the full editor value for one lesson. Transitions never mutate a
// State in place; Apply returns a new one.
type State struct {
	LessonID  string
	Items     []Item
	EditingID string
	// Syncing is set while a batched create is awaiting the store.
	Syncing bool

	seq uint64
}

// NewState returns an empty state for lessonID.
func NewState(lessonID string) State {
	return State{LessonID: lessonID}
}

// Clone returns a copy that shares nothing mutable with s.
func (s State) Clone() State {
	out := s
	out.Items = append([]Item(nil), s.Items...)
	return out
}

// Index returns the position in Items of the item with id.
func (s State) Index(id string) (int, bool) {
	for idx, item := range s.Items {
		if item.ID == id {
			return idx, true
		}
	}
	return -1, false
}

// Item looks up an item by id.
func (s State) Item(id string) (Item, bool) {
	idx, ok := s.Index(id)
	if !ok {
		return Item{}, false
	}
	return s.Items[idx], true
}

// Editing returns the locked item, if any.
func (s State) Editing() (Item, bool) {
	if s.EditingID == "" {
		return Item{}, false
	}
	return s.Item(s.EditingID)
}

// Dirty reports whether any item has changes the store has not seen.
func (s State) Dirty() bool {
	for _, item := range s.Items {
		if item.Pending() {
			return true
		}
	}
	return false
}

func (s *State) nextProvisionalID() string {
	s.seq++
	return identity.ProvisionalID(s.LessonID, s.seq)
}

func renumber(items []Item) {
	for idx := range items {
		items[idx].Position = idx + 1
	}
}
