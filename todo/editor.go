package todo

// Editor applies user gestures to a Store. It owns the transient state of a
// single user interface: the new-todo input text and the active filter.
//
// Editor is not safe for concurrent use; surfaces serving several requests
// must serialize access.
type Editor struct {
	store   *Store
	version Version
	input   string
	filter  Filter
}

// Row is a visible todo together with the controls enabled for it.
type Row struct {
	Todo               Todo
	CanEdit            bool
	CanToggleCompleted bool
	CanToggleDeleted   bool
	DeleteLabel        string
}

// NewEditor returns an editor over store. An invalid version falls back to
// DefaultVersion.
func NewEditor(store *Store, version Version) *Editor {
	if !version.IsValid() {
		version = DefaultVersion
	}
	return &Editor{
		store:   store,
		version: version,
		filter:  FilterAll,
	}
}

// Store returns the underlying store.
func (e *Editor) Store() *Store {
	return e.store
}

// Version returns the editor's capability level.
func (e *Editor) Version() Version {
	return e.version
}

// Input returns the pending new-todo text.
func (e *Editor) Input() string {
	return e.input
}

// SetInput replaces the pending new-todo text.
func (e *Editor) SetInput(text string) {
	e.input = text
}

// Filter returns the active filter.
func (e *Editor) Filter() Filter {
	return e.filter
}

// SelectFilter changes the active filter. It never touches the collection.
// Version1 has no filters and stays on FilterAll.
func (e *Editor) SelectFilter(f Filter) {
	if !e.version.HasFlags() || !f.IsValid() {
		return
	}
	e.filter = f
}

// FormVisible reports whether the new-todo form is shown.
func (e *Editor) FormVisible() bool {
	if !e.version.HasFlags() {
		return true
	}
	return e.filter != FilterCompleted && e.filter != FilterDeleted
}

// TrashVisible reports whether the empty-trash action is shown.
func (e *Editor) TrashVisible() bool {
	return e.version.HasFlags() && e.filter == FilterDeleted
}

// Submit creates a todo from the input text and clears the input.
// Nothing is created when the form is hidden or the input is empty.
func (e *Editor) Submit() (Todo, bool) {
	text := e.input
	e.input = ""
	if !e.FormVisible() {
		return Todo{}, false
	}
	return e.store.Create(text)
}

// Edit replaces a todo title. Completed and deleted todos are read-only
// from Version2 on.
func (e *Editor) Edit(id int, title string) bool {
	t, ok := e.store.Get(id)
	if !ok || !e.canEdit(t) {
		return false
	}
	return e.store.Apply(SetTitle{ID: id, Title: title})
}

// ToggleCompleted flips the completion flag of a todo that is not deleted.
func (e *Editor) ToggleCompleted(id int) bool {
	t, ok := e.store.Get(id)
	if !ok || !e.canToggleCompleted(t) {
		return false
	}
	return e.store.Apply(SetCompleted{ID: id, Completed: !t.Completed})
}

// ToggleDeleted moves a todo into the trash or restores it.
func (e *Editor) ToggleDeleted(id int) bool {
	t, ok := e.store.Get(id)
	if !ok || !e.version.HasFlags() {
		return false
	}
	return e.store.Apply(SetDeleted{ID: id, Deleted: !t.Deleted})
}

// UpdateField assigns value to field under the same rules as the single
// gestures: titles follow Edit, completion follows ToggleCompleted and the
// deleted flag needs Version2. It returns false when the todo is missing
// or the field is disabled for it.
func (e *Editor) UpdateField(id int, field Field, value string) (bool, error) {
	m, err := mutationFor(id, field, value)
	if err != nil {
		return false, err
	}
	t, ok := e.store.Get(id)
	if !ok || !e.fieldEnabled(t, field) {
		return false, nil
	}
	return e.store.Apply(m), nil
}

// EmptyTrash permanently removes deleted todos. It only acts while the
// trash is being viewed.
func (e *Editor) EmptyTrash() int {
	if !e.TrashVisible() {
		return 0
	}
	return e.store.Purge()
}

// Visible returns the todos shown under the active filter.
func (e *Editor) Visible() []Todo {
	return e.store.View(e.filter)
}

// Rows returns the visible todos with their enabled controls.
func (e *Editor) Rows() []Row {
	visible := e.Visible()
	rows := make([]Row, 0, len(visible))
	for _, t := range visible {
		rows = append(rows, Row{
			Todo:               t,
			CanEdit:            e.canEdit(t),
			CanToggleCompleted: e.canToggleCompleted(t),
			CanToggleDeleted:   e.version.HasFlags(),
			DeleteLabel:        DeleteLabel(t),
		})
	}
	return rows
}

// DeleteLabel names the delete/restore action for a todo.
func DeleteLabel(t Todo) string {
	if t.Deleted {
		return "restore"
	}
	return "delete"
}

func (e *Editor) canEdit(t Todo) bool {
	if !e.version.HasFlags() {
		return true
	}
	return !t.Completed && !t.Deleted
}

func (e *Editor) canToggleCompleted(t Todo) bool {
	return e.version.HasFlags() && !t.Deleted
}

func (e *Editor) fieldEnabled(t Todo, field Field) bool {
	switch field {
	case FieldTitle:
		return e.canEdit(t)
	case FieldCompleted:
		return e.canToggleCompleted(t)
	case FieldDeleted:
		return e.version.HasFlags()
	}
	return false
}
