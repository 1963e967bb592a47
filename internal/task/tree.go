package task

// Tree is the full two-level collection of tasks shown on the chart.
// It is a value type: methods that mutate return or operate on a clone so
// the committed tree can be swapped atomically.
type Tree struct {
	Tasks []*Task
}

// Clone returns a deep copy of the tree.
func (tr Tree) Clone() Tree {
	if tr.Tasks == nil {
		return Tree{}
	}
	tasks := make([]*Task, len(tr.Tasks))
	for i, t := range tr.Tasks {
		tasks[i] = t.Clone()
	}
	return Tree{Tasks: tasks}
}

// Empty reports whether the tree has no tasks.
func (tr Tree) Empty() bool {
	return len(tr.Tasks) == 0
}

// FindByID returns the task or subtask with the given id, or nil.
func (tr Tree) FindByID(id string) *Task {
	for _, t := range tr.Tasks {
		if t.ID == id {
			return t
		}
		for _, s := range t.Subtasks {
			if s.ID == id {
				return s
			}
		}
	}
	return nil
}

// ParentOf returns the top-level parent of the subtask with the given id,
// or nil when id names a top-level task or nothing at all.
func (tr Tree) ParentOf(id string) *Task {
	for _, t := range tr.Tasks {
		for _, s := range t.Subtasks {
			if s.ID == id {
				return t
			}
		}
	}
	return nil
}

// FindByName returns the first task or subtask with the given name, or nil.
// Kept for ingesting legacy payloads that reference parents by name; new
// code resolves by id.
func (tr Tree) FindByName(name string) *Task {
	for _, t := range tr.Tasks {
		if t.Name == name {
			return t
		}
		for _, s := range t.Subtasks {
			if s.Name == name {
				return s
			}
		}
	}
	return nil
}

// Replace swaps the task with updated.ID for updated, wherever it sits in
// the tree. Returns ErrTaskNotFound when no task has that id.
func (tr Tree) Replace(updated *Task) error {
	for i, t := range tr.Tasks {
		if t.ID == updated.ID {
			tr.Tasks[i] = updated
			return nil
		}
		for j, s := range t.Subtasks {
			if s.ID == updated.ID {
				t.Subtasks[j] = updated
				return nil
			}
		}
	}
	return ErrTaskNotFound
}

// Remove deletes the task or subtask with the given id.
// Returns ErrTaskNotFound when no task has that id.
func (tr *Tree) Remove(id string) error {
	for i, t := range tr.Tasks {
		if t.ID == id {
			tr.Tasks = append(tr.Tasks[:i], tr.Tasks[i+1:]...)
			return nil
		}
		for j, s := range t.Subtasks {
			if s.ID == id {
				t.Subtasks = append(t.Subtasks[:j], t.Subtasks[j+1:]...)
				return nil
			}
		}
	}
	return ErrTaskNotFound
}

// Walk visits every task depth-first: each top-level task, then its
// subtasks in order. Returning false stops the walk.
func (tr Tree) Walk(fn func(t *Task, parent *Task) bool) {
	for _, t := range tr.Tasks {
		if !fn(t, nil) {
			return
		}
		for _, s := range t.Subtasks {
			if !fn(s, t) {
				return
			}
		}
	}
}

// Count returns the total number of tasks and subtasks.
func (tr Tree) Count() int {
	n := 0
	tr.Walk(func(*Task, *Task) bool {
		n++
		return true
	})
	return n
}
