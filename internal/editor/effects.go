package editor

// Effect is a remote call requested by a transition. Apply never performs
// effects; the Editor session runs them after the state is committed.
type Effect interface {
	effect()
}

// DeleteContent asks the store to delete a persisted item.
type DeleteContent struct {
	ID string
}

func (DeleteContent) effect() {}
