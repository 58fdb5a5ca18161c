// Package history implements the undo/redo stack for layout operations.
//
// Every layout run that moves at least one device is recorded as a
// [Command]. Commands are value-complete: they carry both the before and
// after position maps, so undoing and redoing never recomputes a layout and
// always restores the exact pixel positions the user saw.
//
// # Usage
//
// Record a layout run:
//
//	snap := layout.NewPositionSnapshot(before, after)
//	if !snap.Empty() {
//	    stack.Push(history.NewLayoutCommand("force_directed layout", diagram, snap))
//	}
//
// Walk the stack:
//
//	cmd, err := stack.Undo()
//	if err == history.ErrNothingToUndo {
//	    // stack exhausted
//	}
package history

import (
	"errors"

	"github.com/jmichalek/netlayout/pkg/layout"
	"github.com/jmichalek/netlayout/pkg/topo"
)

// Sentinel errors for stack navigation.
var (
	// ErrNothingToUndo is returned when the undo side of the stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned when the redo side of the stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultLimit caps how many commands a stack retains. Older commands are
// dropped from the bottom when the limit is exceeded.
const DefaultLimit = 100

// Command is one reversible diagram mutation.
type Command interface {
	// Name is a short human-readable label ("grid layout", "radial layout").
	Name() string

	// Execute applies the mutation. Push calls it once; Redo calls it again
	// after an Undo. Execute must be idempotent.
	Execute()

	// Undo restores the state from before Execute.
	Undo()
}

// LayoutCommand replays a recorded position snapshot against a live diagram.
// Execute and Undo each trigger exactly one refresh when the provider
// supports it.
type LayoutCommand struct {
	name     string
	provider topo.Provider
	snapshot *layout.PositionSnapshot
}

// NewLayoutCommand wraps a snapshot and its target diagram as a command.
func NewLayoutCommand(name string, p topo.Provider, s *layout.PositionSnapshot) *LayoutCommand {
	return &LayoutCommand{name: name, provider: p, snapshot: s}
}

// Name returns the command label.
func (c *LayoutCommand) Name() string { return c.name }

// Execute writes the after positions back to the diagram.
func (c *LayoutCommand) Execute() {
	c.snapshot.Apply(c.provider)
	c.refresh()
}

// Undo writes the before positions back to the diagram.
func (c *LayoutCommand) Undo() {
	c.snapshot.Revert(c.provider)
	c.refresh()
}

// Snapshot exposes the recorded positions, for persistence and inspection.
func (c *LayoutCommand) Snapshot() *layout.PositionSnapshot { return c.snapshot }

func (c *LayoutCommand) refresh() {
	if r, ok := c.provider.(topo.Refresher); ok {
		r.Refresh()
	}
}

// Stack is a bounded linear undo/redo history. Pushing a new command
// discards any redoable tail, matching editor conventions.
//
// Stack is not safe for concurrent use; layout runs over one diagram are
// serialized by the caller anyway.
type Stack struct {
	commands []Command
	cursor   int // number of executed commands; commands[cursor:] are redoable
	limit    int
}

// NewStack creates a stack retaining at most limit commands. A limit of zero
// or less means DefaultLimit.
func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

// Push executes the command and records it. Any commands undone but not yet
// redone are discarded.
func (s *Stack) Push(c Command) {
	c.Execute()

	s.commands = append(s.commands[:s.cursor], c)
	s.cursor++

	if len(s.commands) > s.limit {
		overflow := len(s.commands) - s.limit
		s.commands = append([]Command(nil), s.commands[overflow:]...)
		s.cursor -= overflow
	}
}

// Undo reverts the most recent executed command and returns it.
func (s *Stack) Undo() (Command, error) {
	if s.cursor == 0 {
		return nil, ErrNothingToUndo
	}
	s.cursor--
	c := s.commands[s.cursor]
	c.Undo()
	return c, nil
}

// Redo re-executes the most recently undone command and returns it.
func (s *Stack) Redo() (Command, error) {
	if s.cursor == len(s.commands) {
		return nil, ErrNothingToRedo
	}
	c := s.commands[s.cursor]
	s.cursor++
	c.Execute()
	return c, nil
}

// CanUndo reports whether Undo would succeed.
func (s *Stack) CanUndo() bool { return s.cursor > 0 }

// CanRedo reports whether Redo would succeed.
func (s *Stack) CanRedo() bool { return s.cursor < len(s.commands) }

// UndoName returns the label of the command Undo would revert, or "".
func (s *Stack) UndoName() string {
	if !s.CanUndo() {
		return ""
	}
	return s.commands[s.cursor-1].Name()
}

// RedoName returns the label of the command Redo would replay, or "".
func (s *Stack) RedoName() string {
	if !s.CanRedo() {
		return ""
	}
	return s.commands[s.cursor].Name()
}

// Len returns the number of recorded commands, executed or not.
func (s *Stack) Len() int { return len(s.commands) }

// Clear drops the entire history.
func (s *Stack) Clear() {
	s.commands = nil
	s.cursor = 0
}
