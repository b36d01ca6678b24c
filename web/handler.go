// Package web serves the browser interface for a todo list.
package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/amonks/tasklist/todo"
	"github.com/sirupsen/logrus"
)

// Options configures the web handler.
type Options struct {
	// Editor holds the list and the page state shared by every request.
	Editor *todo.Editor

	// Logger receives request logs. If nil, the logrus standard logger is used.
	Logger logrus.FieldLogger
}

// Handler serves the todo web client. A single editor backs every request,
// so all visitors share one filter and one new-todo input.
type Handler struct {
	mux       *http.ServeMux
	templates *templateWrapper
	log       logrus.FieldLogger

	mu     sync.Mutex
	editor *todo.Editor
}

// NewHandler creates a new web handler.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	handler := &Handler{
		templates: newTemplateWrapper(),
		log:       logger.WithField("component", "web"),
		editor:    opts.Editor,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", handler.handleIndex)
	mux.HandleFunc("/filter", handler.handleFilter)
	mux.HandleFunc("/todos/create", handler.handleCreate)
	mux.HandleFunc("/todos/edit", handler.handleEdit)
	mux.HandleFunc("/todos/toggle-completed", handler.handleToggleCompleted)
	mux.HandleFunc("/todos/toggle-deleted", handler.handleToggleDeleted)
	mux.HandleFunc("/trash/empty", handler.handleEmptyTrash)
	mux.HandleFunc("/todos.json", handler.handleJSON)
	handler.mux = mux
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writer := &responseTracker{ResponseWriter: w}
	defer func() {
		if recovered := recover(); recovered != nil {
			h.log.WithFields(logrus.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			}).Errorf("panic handling request: %v\n%s", recovered, debug.Stack())
			if !writer.wroteHeader {
				http.Error(writer, "internal server error", http.StatusInternalServerError)
			}
		}
	}()
	h.mux.ServeHTTP(writer, r)
	h.log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": writer.statusCode(),
	}).Debug("request")
}

type templateWrapper struct {
	tmpl *template.Template
}

func newTemplateWrapper() *templateWrapper {
	return &templateWrapper{tmpl: newTemplates()}
}

func (tw *templateWrapper) Render(w http.ResponseWriter, data pageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tw.tmpl.ExecuteTemplate(w, "page", data)
}

type selectOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	Filter        todo.Filter
	FilterOptions []selectOption
	HasFlags      bool
	FormVisible   bool
	TrashVisible  bool
	Input         string
	Rows          []todo.Row
}

func (h *Handler) pageData() pageData {
	h.mu.Lock()
	defer h.mu.Unlock()

	filter := h.editor.Filter()
	options := make([]selectOption, 0, len(todo.ValidFilters()))
	for _, f := range todo.ValidFilters() {
		options = append(options, selectOption{
			Value:    string(f),
			Label:    f.Label(),
			Selected: f == filter,
		})
	}
	return pageData{
		Filter:        filter,
		FilterOptions: options,
		HasFlags:      h.editor.Version().HasFlags(),
		FormVisible:   h.editor.FormVisible(),
		TrashVisible:  h.editor.TrashVisible(),
		Input:         h.editor.Input(),
		Rows:          h.editor.Rows(),
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if err := h.templates.Render(w, h.pageData()); err != nil {
		h.log.WithError(err).Warn("render page")
	}
}

func (h *Handler) handleFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	filter, err := todo.ParseFilter(r.FormValue("filter"))
	if err != nil {
		h.log.WithError(err).Debug("ignore filter")
		redirectHome(w, r)
		return
	}
	h.mu.Lock()
	h.editor.SelectFilter(filter)
	h.mu.Unlock()
	redirectHome(w, r)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	h.mu.Lock()
	h.editor.SetInput(r.FormValue("title"))
	h.editor.Submit()
	h.mu.Unlock()
	redirectHome(w, r)
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if id, ok := h.formID(r); ok {
		h.mu.Lock()
		h.editor.Edit(id, r.FormValue("title"))
		h.mu.Unlock()
	}
	if isScriptRequest(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	redirectHome(w, r)
}

func (h *Handler) handleToggleCompleted(w http.ResponseWriter, r *http.Request) {
	h.handleRowAction(w, r, (*todo.Editor).ToggleCompleted)
}

func (h *Handler) handleToggleDeleted(w http.ResponseWriter, r *http.Request) {
	h.handleRowAction(w, r, (*todo.Editor).ToggleDeleted)
}

func (h *Handler) handleRowAction(w http.ResponseWriter, r *http.Request, action func(*todo.Editor, int) bool) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if id, ok := h.formID(r); ok {
		h.mu.Lock()
		action(h.editor, id)
		h.mu.Unlock()
	}
	redirectHome(w, r)
}

func (h *Handler) handleEmptyTrash(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	h.mu.Lock()
	removed := h.editor.EmptyTrash()
	h.mu.Unlock()
	h.log.WithField("count", removed).Debug("emptied trash")
	redirectHome(w, r)
}

type todosResponse struct {
	Filter todo.Filter `json:"filter"`
	Todos  []todo.Todo `json:"todos"`
}

func (h *Handler) handleJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	h.mu.Lock()
	response := todosResponse{Filter: h.editor.Filter(), Todos: h.editor.Visible()}
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, response)
}

// formID reads the id form value. Malformed ids are logged and ignored.
func (h *Handler) formID(r *http.Request) (int, bool) {
	id, err := todo.ParseID(strings.TrimSpace(r.FormValue("id")))
	if err != nil {
		h.log.WithError(err).Debug("ignore request")
		return 0, false
	}
	return id, true
}

// isScriptRequest reports whether the page script sent r, in which case no
// redirect is needed.
func isScriptRequest(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "fetch"
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMethodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

type responseTracker struct {
	http.ResponseWriter
	wroteHeader bool
	status      int
}

func (w *responseTracker) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseTracker) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(data)
}

func (w *responseTracker) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
