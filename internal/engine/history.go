package engine

// Command is an undoable edit command.
type Command interface {
	Execute(buf *Buffer) error
	Undo(buf *Buffer) error
	Description() string
}

// appliedEditCommand represents an edit already applied to the buffer,
// storing what is needed to undo/redo it.
type appliedEditCommand struct {
	offset  int
	oldText string
	newText string
}

func (c *appliedEditCommand) Execute(buf *Buffer) error {
	if c.oldText != "" {
		if err := buf.Delete(c.offset, len([]rune(c.oldText))); err != nil {
			return err
		}
	}
	return buf.Insert(c.offset, c.newText)
}

func (c *appliedEditCommand) Undo(buf *Buffer) error {
	if c.newText != "" {
		if err := buf.Delete(c.offset, len([]rune(c.newText))); err != nil {
			return err
		}
	}
	return buf.Insert(c.offset, c.oldText)
}

func (c *appliedEditCommand) Description() string {
	switch {
	case c.oldText == "":
		return "Insert"
	case c.newText == "":
		return "Delete"
	default:
		return "Replace"
	}
}

// compoundCommand groups commands for atomic undo/redo.
type compoundCommand struct {
	name string
	cmds []Command
}

func (c *compoundCommand) Execute(buf *Buffer) error {
	for _, cmd := range c.cmds {
		if err := cmd.Execute(buf); err != nil {
			return err
		}
	}
	return nil
}

func (c *compoundCommand) Undo(buf *Buffer) error {
	for i := len(c.cmds) - 1; i >= 0; i-- {
		if err := c.cmds[i].Undo(buf); err != nil {
			return err
		}
	}
	return nil
}

func (c *compoundCommand) Description() string {
	return c.name
}

// History tracks applied commands for undo/redo. A new edit clears the redo
// stack. Entries beyond the maximum are discarded oldest-first.
type History struct {
	undo       []Command
	redo       []Command
	maxEntries int

	group *compoundCommand
}

// NewHistory creates a history with the given capacity.
func NewHistory(maxEntries int) *History {
	if maxEntries < 1 {
		maxEntries = DefaultMaxUndoEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records an already-applied command.
func (h *History) Push(cmd Command) {
	if h.group != nil {
		h.group.cmds = append(h.group.cmds, cmd)
		return
	}
	h.undo = append(h.undo, cmd)
	if len(h.undo) > h.maxEntries {
		h.undo = h.undo[len(h.undo)-h.maxEntries:]
	}
	h.redo = h.redo[:0]
}

// BeginGroup starts collecting commands into a single undo unit.
func (h *History) BeginGroup(name string) {
	if h.group == nil {
		h.group = &compoundCommand{name: name}
	}
}

// EndGroup closes the current group and records it.
func (h *History) EndGroup() {
	if h.group == nil {
		return
	}
	group := h.group
	h.group = nil
	if len(group.cmds) > 0 {
		h.Push(group)
	}
}

// CancelGroup discards the current group without recording it.
func (h *History) CancelGroup() {
	h.group = nil
}

// Undo reverses the most recent command.
func (h *History) Undo(buf *Buffer) error {
	if len(h.undo) == 0 {
		return ErrNothingToUndo
	}
	cmd := h.undo[len(h.undo)-1]
	if err := cmd.Undo(buf); err != nil {
		return err
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	return nil
}

// Redo re-applies the most recently undone command.
func (h *History) Redo(buf *Buffer) error {
	if len(h.redo) == 0 {
		return ErrNothingToRedo
	}
	cmd := h.redo[len(h.redo)-1]
	if err := cmd.Execute(buf); err != nil {
		return err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoCount returns the number of available undo operations.
func (h *History) UndoCount() int { return len(h.undo) }

// RedoCount returns the number of available redo operations.
func (h *History) RedoCount() int { return len(h.redo) }

// Clear removes all history.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.group = nil
}
