package editor

import (
	"errors"
	"fmt"
)

type State int

const (
	Loading State = iota
	Viewing
	Editing
	Saving
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Event int

const (
	EventLoaded Event = iota
	EventEdit
	EventCancel
	EventCommit
	EventSaveSucceeded
	EventSaveFailed
)

func (e Event) String() string {
	switch e {
	case EventLoaded:
		return "loaded"
	case EventEdit:
		return "edit"
	case EventCancel:
		return "cancel"
	case EventCommit:
		return "commit"
	case EventSaveSucceeded:
		return "save_succeeded"
	case EventSaveFailed:
		return "save_failed"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

var ErrInvalidTransition = errors.New("invalid editor transition")

// Transition is the only place editor states change.
func Transition(s State, e Event) (State, error) {
	switch {
	case s == Loading && e == EventLoaded:
		return Viewing, nil
	case s == Viewing && e == EventEdit:
		return Editing, nil
	case s == Editing && e == EventCancel:
		return Viewing, nil
	case s == Editing && e == EventCommit:
		return Saving, nil
	case s == Saving && (e == EventSaveSucceeded || e == EventSaveFailed):
		return Viewing, nil
	}

	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, s)
}
