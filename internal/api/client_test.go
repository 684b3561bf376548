package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/idilsaglam/todoview/internal/api/apitest"
	"github.com/idilsaglam/todoview/internal/model"
)

func newTestClient(url string) *Client {
	return New(url, 5*time.Second)
}

func TestList(t *testing.T) {
	srv := apitest.New(
		model.Todo{ID: 1, Title: "buy milk", Status: model.StatusCreated, CreatedAt: "2024-01-01T00:00:00Z"},
		model.Todo{ID: 2, Title: "write spec", Status: model.StatusCompleted, CreatedAt: "2024-01-02T00:00:00Z"},
	)
	defer srv.Close()

	todos, err := newTestClient(srv.URL()).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("got %d todos, want 2", len(todos))
	}
	if todos[0].ID != 1 || todos[0].Title != "buy milk" || todos[0].Status != model.StatusCreated {
		t.Errorf("todos[0] = %+v, want id 1 / buy milk / created", todos[0])
	}
	if todos[1].ID != 2 {
		t.Errorf("todos[1].ID = %d, want 2 (server order preserved)", todos[1].ID)
	}
}

func TestList_ServerError(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.FailList(true)

	_, err := newTestClient(srv.URL()).List(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("List error = %v, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", fe.StatusCode)
	}
}

func TestList_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).List(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("List error = %v, want *FetchError", err)
	}
	if fe.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", fe.StatusCode)
	}
}

func TestCreate(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	todo, err := newTestClient(srv.URL()).Create(context.Background(), "write spec")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if todo.ID == 0 {
		t.Error("Create returned zero id, want server-assigned")
	}
	if todo.Title != "write spec" {
		t.Errorf("Title = %q, want %q", todo.Title, "write spec")
	}
	if todo.Status != model.StatusCreated {
		t.Errorf("Status = %q, want %q", todo.Status, model.StatusCreated)
	}
	if todo.CreatedAt == "" {
		t.Error("CreatedAt empty, want server timestamp")
	}
}

func TestCreate_ServerError(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.FailCreate(true)

	_, err := newTestClient(srv.URL()).Create(context.Background(), "nope")
	var me *MutationError
	if !errors.As(err, &me) {
		t.Fatalf("Create error = %v, want *MutationError", err)
	}
	if me.Op != "create" {
		t.Errorf("Op = %q, want create", me.Op)
	}
}

func TestUpdateStatus(t *testing.T) {
	srv := apitest.New(
		model.Todo{ID: 7, Title: "buy milk", Status: model.StatusCreated, CreatedAt: "2024-01-01T00:00:00Z"},
	)
	defer srv.Close()

	todo, err := newTestClient(srv.URL()).UpdateStatus(context.Background(), 7, model.StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if todo.Status != model.StatusCompleted {
		t.Errorf("Status = %q, want completed", todo.Status)
	}
	if got := srv.Todos()[0].Status; got != model.StatusCompleted {
		t.Errorf("server status = %q, want completed", got)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	_, err := newTestClient(srv.URL()).UpdateStatus(context.Background(), 99, model.StatusCompleted)
	var me *MutationError
	if !errors.As(err, &me) {
		t.Fatalf("UpdateStatus error = %v, want *MutationError", err)
	}
	if me.Op != "update" {
		t.Errorf("Op = %q, want update", me.Op)
	}
	if me.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", me.StatusCode)
	}
}
