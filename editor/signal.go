package editor

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownSignal = errors.New("unknown editor signal")

// Signal is a keyboard shortcut or button press routed to the editor.
type Signal int

const (
	SignalNone Signal = iota
	SignalSave
	SignalEscape
)

func (s Signal) String() string {
	switch s {
	case SignalSave:
		return "save"
	case SignalEscape:
		return "cancel"
	}
	return "none"
}

// ParseSignal maps form and shortcut values to a Signal. A submission without an
// action is a save.
func ParseSignal(v string) Signal {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "save", "ctrl+s", "cmd+s":
		return SignalSave
	case "cancel", "escape", "esc":
		return SignalEscape
	}
	return SignalNone
}

// Signal applies sig and reports whether the session closed as a result.
func (s *Session) Signal(ctx context.Context, sig Signal, saver Saver) (bool, error) {
	switch sig {
	case SignalEscape:
		s.Cancel()
		return true, nil
	case SignalSave:
		if !s.CanSave() {
			return false, nil
		}
		return s.Commit(ctx, saver)
	}
	return false, errors.Wrapf(ErrUnknownSignal, "signal %d", int(sig))
}
