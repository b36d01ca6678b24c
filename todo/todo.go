package todo

// Todo represents a single task.
type Todo struct {
	// ID is assigned by the store counter and never reused.
	ID int `json:"id"`

	// Title is the user-editable text. It may become empty through edits.
	Title string `json:"title"`

	// Completed marks the task as done.
	Completed bool `json:"completed"`

	// Deleted marks the task as in the trash.
	Deleted bool `json:"deleted"`
}

// IsDeleted reports whether the todo is in the trash.
func IsDeleted(t Todo) bool {
	return t.Deleted
}

// View returns the todos visible under f, in collection order.
func View(todos []Todo, f Filter) []Todo {
	visible := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Keep(t) {
			visible = append(visible, t)
		}
	}
	return visible
}

func maxID(todos []Todo) int {
	max := 0
	for _, t := range todos {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}
