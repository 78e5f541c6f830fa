// Package apitest provides an in-memory task API for tests. It mirrors the
// deployed API's routes, status codes and error bodies closely enough to
// stand in for it in client, command and TUI tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"taskdeck/internal/tasks"
)

// Server is a fake task API backed by in-memory state.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	users       map[string]user // keyed by email
	tokens      map[string]string
	tasks       map[string]tasks.Task
	order       []string // task ids in insertion order
	categories  []tasks.Category
	deleteCalls map[string]int
}

type user struct {
	Name     string
	Password string
}

// New starts a fake API server. Callers own Close.
func New() *Server {
	s := &Server{
		users:       make(map[string]user),
		tokens:      make(map[string]string),
		tasks:       make(map[string]tasks.Task),
		deleteCalls: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Post("/api/auth/login", s.handleLogin)
	r.Post("/api/auth/register", s.handleRegister)
	r.Get("/api/categories", s.handleListCategories)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/api/user/logout", s.handleLogout)
		r.Get("/api/tasks", s.handleListTasks)
		r.Post("/api/tasks", s.handleCreateTask)
		r.Put("/api/tasks/{id}", s.handleUpdateTask)
		r.Delete("/api/tasks/{id}", s.handleDeleteTask)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// SeedUser registers an account directly.
func (s *Server) SeedUser(name, email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = user{Name: name, Password: password}
}

// SeedCategories replaces the category list.
func (s *Server) SeedCategories(cs ...tasks.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = cs
}

// SeedTask inserts a task, assigning an id when absent, and returns it.
func (s *Server) SeedTask(t tasks.Task) tasks.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	return t
}

// IssueToken mints a valid token for an email without going through login.
func (s *Server) IssueToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := "tok_" + uuid.New().String()
	s.tokens[token] = email
	return token
}

// DeleteCalls returns how many DELETE requests were received for a task id.
func (s *Server) DeleteCalls(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteCalls[id]
}

// TaskCount returns the number of stored tasks.
func (s *Server) TaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		_, ok := s.tokens[token]
		s.mu.Unlock()
		if token == "" || !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[body.Email]
	if !ok || u.Password != body.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token := "tok_" + uuid.New().String()
	s.tokens[token] = body.Email
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" || body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[body.Email]; exists {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	s.users[body.Email] = user{Name: body.Name, Password: body.Password}

	token := "tok_" + uuid.New().String()
	s.tokens[token] = body.Email
	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs := s.categories
	if cs == nil {
		cs = []tasks.Category{}
	}
	writeJSON(w, http.StatusOK, cs)
}

func (s *Server) handleListTasks(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tasks.Task, 0, len(s.order))
	for _, id := range s.order {
		if t, ok := s.tasks[id]; ok {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var t tasks.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(t.Title) == "" || t.Category == "" {
		writeError(w, http.StatusBadRequest, "title and category are required")
		return
	}
	if t.Status == "" {
		t.Status = tasks.StatusPending
	}
	if t.Priority == "" {
		t.Priority = tasks.PriorityLow
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.New().String()
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var t tasks.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(t.Title) == "" || t.Category == "" {
		writeError(w, http.StatusBadRequest, "title and category are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	t.ID = id
	s.tasks[id] = t
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls[id]++
	if _, ok := s.tasks[id]; !ok {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	delete(s.tasks, id)
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
