package editor

import (
	"fmt"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-lessons/contents"
)

// Renderer turns Markdown into Reading markup.
type Renderer interface {
	Render(source string) (string, error)
}

// Reducer holds the settings that shape transitions. Its Apply method is a
// pure function of the state and the action.
type Reducer struct {
	// Strict makes UpdateField on an unlocked item fail with ErrNotLocked
	// instead of being ignored.
	Strict   bool
	Markdown Renderer
}

// Apply computes the state that follows action. On error the returned state
// is the input state unchanged.
func (r Reducer) Apply(state State, action Action) (State, []Effect, error) {
	if action == nil {
		return state, nil, ErrUnknownAction
	}
	if err := command.ValidateMessage(action); err != nil {
		return state, nil, err
	}

	next := state.Clone()
	var (
		effects []Effect
		err     error
	)
	switch msg := action.(type) {
	case AddItem:
		err = addItem(&next, msg)
	case EditItem:
		err = editItem(&next, msg)
	case UpdateField:
		err = r.updateField(&next, msg)
	case ImportMarkdown:
		err = r.importMarkdown(&next, msg)
	case CancelEdit:
		cancelEdit(&next)
	case CommitEdit:
		err = commitEdit(&next, msg)
	case DeleteItem:
		effects, err = deleteItem(&next, msg)
	case Reorder:
		err = reorder(&next, msg)
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
	if err != nil {
		return state, nil, err
	}
	return next, effects, nil
}

func addItem(s *State, msg AddItem) error {
	if s.EditingID != "" {
		return ErrLockHeld
	}
	item := Item{
		ID:   s.nextProvisionalID(),
		Kind: msg.Kind,
	}
	s.Items = append(s.Items, item)
	renumber(s.Items)
	s.EditingID = item.ID
	return nil
}

func editItem(s *State, msg EditItem) error {
	idx, ok := s.Index(msg.ID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, msg.ID)
	}
	if s.EditingID == msg.ID {
		return nil
	}
	if s.EditingID != "" {
		if err := commitLocked(s); err != nil {
			return err
		}
	}
	checkpoint := s.Items[idx].snapshot()
	s.Items[idx].checkpoint = &checkpoint
	s.EditingID = msg.ID
	return nil
}

func (r Reducer) updateField(s *State, msg UpdateField) error {
	idx, err := r.lockedIndex(s, msg.ID)
	if err != nil || idx < 0 {
		return err
	}
	switch msg.Field {
	case FieldPayload:
		s.Items[idx].Payload = msg.Value
	case FieldCaption:
		s.Items[idx].Caption = msg.Value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, msg.Field)
	}
	return nil
}

func (r Reducer) importMarkdown(s *State, msg ImportMarkdown) error {
	idx, err := r.lockedIndex(s, msg.ID)
	if err != nil || idx < 0 {
		return err
	}
	if s.Items[idx].Kind != contents.KindReading {
		return fmt.Errorf("%w: import markdown into %s", ErrKindMismatch, s.Items[idx].Kind)
	}
	if r.Markdown == nil {
		return ErrNoRenderer
	}
	rendered, err := r.Markdown.Render(msg.Source)
	if err != nil {
		return err
	}
	s.Items[idx].Payload = rendered
	return nil
}

// lockedIndex resolves id when it is the locked item. It returns -1 with a
// nil error when the change should be silently ignored.
func (r Reducer) lockedIndex(s *State, id string) (int, error) {
	if s.EditingID == "" || s.EditingID != id {
		if r.Strict {
			return -1, ErrNotLocked
		}
		return -1, nil
	}
	idx, ok := s.Index(id)
	if !ok {
		return -1, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return idx, nil
}

// cancelEdit drops a provisional item or restores the checkpoint EditItem took,
// which is newer than Synced when a local commit happened since the last sync.
func cancelEdit(s *State) {
	if s.EditingID == "" {
		return
	}
	idx, ok := s.Index(s.EditingID)
	s.EditingID = ""
	if !ok {
		return
	}
	item := &s.Items[idx]
	if !item.Persisted() {
		s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
		renumber(s.Items)
		return
	}
	if item.checkpoint != nil {
		item.Payload = item.checkpoint.Payload
		item.Caption = item.checkpoint.Caption
	}
	item.checkpoint = nil
}

func commitEdit(s *State, msg CommitEdit) error {
	if s.EditingID != msg.ID {
		return ErrNotLocked
	}
	return commitLocked(s)
}

func commitLocked(s *State) error {
	idx, ok := s.Index(s.EditingID)
	if !ok {
		s.EditingID = ""
		return nil
	}
	if err := ValidateItem(s.Items[idx]); err != nil {
		return err
	}
	s.Items[idx].checkpoint = nil
	s.EditingID = ""
	return nil
}

func deleteItem(s *State, msg DeleteItem) ([]Effect, error) {
	idx, ok := s.Index(msg.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, msg.ID)
	}
	if s.EditingID == msg.ID {
		s.EditingID = ""
	}
	removed := s.Items[idx]
	s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
	renumber(s.Items)
	if removed.Persisted() {
		return []Effect{DeleteContent{ID: removed.ID}}, nil
	}
	return nil, nil
}

func reorder(s *State, msg Reorder) error {
	if s.EditingID != "" {
		return ErrLockHeld
	}
	if s.Syncing {
		return ErrSyncInFlight
	}
	if msg.From >= len(s.Items) || msg.To >= len(s.Items) {
		return fmt.Errorf("%w: move %d to %d with %d items", ErrInvalidIndex, msg.From, msg.To, len(s.Items))
	}
	if msg.From == msg.To {
		return nil
	}
	moved := s.Items[msg.From]
	s.Items = append(s.Items[:msg.From], s.Items[msg.From+1:]...)
	s.Items = append(s.Items[:msg.To], append([]Item{moved}, s.Items[msg.To:]...)...)
	renumber(s.Items)
	return nil
}
