package todo

// Mutation replaces a single field of the todo with the matching ID.
// The concrete variants are SetTitle, SetCompleted and SetDeleted.
type Mutation interface {
	todoID() int
	apply(t Todo) Todo
}

// SetTitle replaces a todo title.
type SetTitle struct {
	ID    int
	Title string
}

func (m SetTitle) todoID() int { return m.ID }

func (m SetTitle) apply(t Todo) Todo {
	t.Title = m.Title
	return t
}

// SetCompleted sets the completion flag.
type SetCompleted struct {
	ID        int
	Completed bool
}

func (m SetCompleted) todoID() int { return m.ID }

func (m SetCompleted) apply(t Todo) Todo {
	t.Completed = m.Completed
	return t
}

// SetDeleted moves a todo into or out of the trash.
type SetDeleted struct {
	ID      int
	Deleted bool
}

func (m SetDeleted) todoID() int { return m.ID }

func (m SetDeleted) apply(t Todo) Todo {
	t.Deleted = m.Deleted
	return t
}

// Create prepends a new todo with the next ID.
// An empty title is ignored and reported as false.
func (s *Store) Create(title string) (Todo, bool) {
	if title == "" {
		return Todo{}, false
	}

	s.mu.Lock()
	created := Todo{ID: s.nextID, Title: title}
	s.nextID++
	todos := make([]Todo, 0, len(s.todos)+1)
	todos = append(todos, created)
	todos = append(todos, s.todos...)
	s.todos = todos
	s.changedLocked()
	s.mu.Unlock()

	return created, true
}

// Apply replaces the todo addressed by m. It returns false, leaving the
// collection untouched, when no todo has that ID.
func (s *Store) Apply(m Mutation) bool {
	if m == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(m.todoID())
	if idx < 0 {
		return false
	}

	todos := make([]Todo, len(s.todos))
	copy(todos, s.todos)
	todos[idx] = m.apply(todos[idx])
	s.todos = todos
	s.changedLocked()
	return true
}

// UpdateField assigns value to field on the todo with the given ID.
// Boolean fields accept anything strconv.ParseBool accepts.
func (s *Store) UpdateField(id int, field Field, value string) (bool, error) {
	m, err := mutationFor(id, field, value)
	if err != nil {
		return false, err
	}
	return s.Apply(m), nil
}

// RemovePermanently drops every todo matching match and returns how many
// were removed. A nil match removes deleted todos. IDs of removed todos are
// never reissued.
func (s *Store) RemovePermanently(match func(Todo) bool) int {
	if match == nil {
		match = IsDeleted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := make([]Todo, 0, len(s.todos))
	for _, t := range s.todos {
		if !match(t) {
			remaining = append(remaining, t)
		}
	}

	removed := len(s.todos) - len(remaining)
	s.todos = remaining
	s.changedLocked()
	return removed
}

// Purge empties the trash.
func (s *Store) Purge() int {
	return s.RemovePermanently(IsDeleted)
}
