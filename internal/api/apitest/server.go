// Package apitest runs an in-memory todo service for tests.
//
// It speaks the same REST contract as the real service and adds two
// test-only knobs: per-route failure toggles and hold gates that park a
// request until the test releases it, so in-flight client state can be
// observed.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/idilsaglam/todoview/internal/model"
)

// Server is an in-memory todo service bound to an httptest listener.
type Server struct {
	mu     sync.Mutex
	todos  []model.Todo
	nextID int64

	failList   bool
	failCreate bool
	failUpdate bool

	listCalls int

	listGate   chan struct{}
	updateGate chan struct{}

	http *httptest.Server
}

// New starts a server seeded with the given todos.
// Call Close (or register it with t.Cleanup) when done.
func New(seed ...model.Todo) *Server {
	s := &Server{
		todos:  append([]model.Todo(nil), seed...),
		nextID: 1,
	}
	for _, td := range seed {
		if td.ID >= s.nextID {
			s.nextID = td.ID + 1
		}
	}

	r := chi.NewRouter()
	r.Route("/api/todos", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Patch("/{id}", s.handleUpdate)
	})
	s.http = httptest.NewServer(r)
	return s
}

// URL returns the base URL clients should target.
func (s *Server) URL() string { return s.http.URL }

// Close shuts the listener down and releases any parked requests.
func (s *Server) Close() {
	s.mu.Lock()
	if s.listGate != nil {
		close(s.listGate)
		s.listGate = nil
	}
	if s.updateGate != nil {
		close(s.updateGate)
		s.updateGate = nil
	}
	s.mu.Unlock()
	s.http.Close()
}

// Todos returns a copy of the server-side collection.
func (s *Server) Todos() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Todo(nil), s.todos...)
}

// ListCalls returns how many list requests reached the handler.
func (s *Server) ListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

// FailList makes GET /api/todos answer 500 while enabled.
func (s *Server) FailList(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failList = fail
}

// FailCreate makes POST /api/todos answer 500 while enabled.
func (s *Server) FailCreate(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCreate = fail
}

// FailUpdate makes PATCH /api/todos/{id} answer 500 while enabled.
func (s *Server) FailUpdate(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUpdate = fail
}

// HoldLists parks incoming list requests until the returned release
// function is called.
func (s *Server) HoldLists() (release func()) {
	return s.hold(&s.listGate)
}

// HoldUpdates parks incoming update requests until the returned release
// function is called.
func (s *Server) HoldUpdates() (release func()) {
	return s.hold(&s.updateGate)
}

func (s *Server) hold(gate *chan struct{}) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{})
	*gate = ch
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			still := *gate == ch
			if still {
				*gate = nil
			}
			s.mu.Unlock()
			// Close only while registered: Close() already drained
			// deregistered gates.
			if still {
				close(ch)
			}
		})
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	// Snapshot before parking so a held request answers with the state
	// it saw on arrival, the way a slow in-flight response would.
	s.mu.Lock()
	s.listCalls++
	gate := s.listGate
	fail := s.failList
	todos := append([]model.Todo(nil), s.todos...)
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if fail {
		http.Error(w, "list unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(todos)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate {
		http.Error(w, "create unavailable", http.StatusInternalServerError)
		return
	}
	todo := model.Todo{
		ID:        s.nextID,
		Title:     req.Title,
		Status:    model.StatusCreated,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.nextID++
	s.todos = append(s.todos, todo)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(todo)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	gate := s.updateGate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	var req struct {
		Status model.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Status.Valid() {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdate {
		http.Error(w, "update unavailable", http.StatusInternalServerError)
		return
	}
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i].Status = req.Status
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(s.todos[i])
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}
