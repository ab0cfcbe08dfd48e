// Package history implements an explicit undo/redo history as a plain
// snapshot array with a cursor. It is deliberately decoupled from any UI or
// reactive state mechanism: callers push whole-value snapshots, move the
// cursor with [Stack.Undo] and [Stack.Redo], and group consecutive edits
// into one undo step with [Stack.Checkpoint].
package history

// Stack is a value-snapshot history with an undo/redo cursor.
//
// Pushing while an edit group is open replaces the current snapshot instead
// of appending, so several small edits between two [Stack.Checkpoint] calls
// revert as a single undo step. Pushing after an undo discards the redo
// tail, exactly like a text editor's history.
//
// Stack is not safe for concurrent use; the owning editor surface
// serializes access.
type Stack[T any] struct {
	snaps []T
	idx   int
	open  bool
}

// New returns a [Stack] seeded with the initial state. The seed is the
// floor of the history: it can be returned to via undo but never removed.
func New[T any](initial T) *Stack[T] {
	return &Stack[T]{snaps: []T{initial}}
}

// Current returns the snapshot at the cursor.
func (s *Stack[T]) Current() T {
	return s.snaps[s.idx]
}

// Push records a new snapshot. While an edit group is open it replaces the
// group's snapshot in place; otherwise it opens a new group. Any redo tail
// is discarded.
func (s *Stack[T]) Push(snap T) {
	if s.open {
		s.snaps[s.idx] = snap
		return
	}
	s.snaps = append(s.snaps[:s.idx+1], snap)
	s.idx++
	s.open = true
}

// Checkpoint closes the open edit group. The next [Stack.Push] starts a new
// undo step.
func (s *Stack[T]) Checkpoint() {
	s.open = false
}

// Undo moves the cursor one step back and returns the snapshot there.
// The second return is false when there is nothing to undo.
func (s *Stack[T]) Undo() (T, bool) {
	if s.idx == 0 {
		var zero T
		return zero, false
	}
	s.idx--
	s.open = false
	return s.snaps[s.idx], true
}

// Redo moves the cursor one step forward and returns the snapshot there.
// The second return is false when there is nothing to redo.
func (s *Stack[T]) Redo() (T, bool) {
	if s.idx >= len(s.snaps)-1 {
		var zero T
		return zero, false
	}
	s.idx++
	s.open = false
	return s.snaps[s.idx], true
}

// CanUndo reports whether a step back is possible.
func (s *Stack[T]) CanUndo() bool { return s.idx > 0 }

// CanRedo reports whether a step forward is possible.
func (s *Stack[T]) CanRedo() bool { return s.idx < len(s.snaps)-1 }

// Len returns the number of snapshots currently held, including the seed.
func (s *Stack[T]) Len() int { return len(s.snaps) }
