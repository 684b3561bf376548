package cli

import (
	"strings"
	"testing"

	"github.com/idilsaglam/todoview/internal/api/apitest"
	"github.com/idilsaglam/todoview/internal/model"
)

func runCmd(t *testing.T, srv *apitest.Server, args ...string) error {
	t.Helper()
	root := NewRootCmd("test")
	root.SetArgs(append([]string{"--base-url", srv.URL()}, args...))
	return root.Execute()
}

func TestAddThenSet(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	if err := runCmd(t, srv, "add", "write", "spec"); err != nil {
		t.Fatalf("add: %v", err)
	}
	todos := srv.Todos()
	if len(todos) != 1 || todos[0].Title != "write spec" {
		t.Fatalf("server todos = %+v, want one %q", todos, "write spec")
	}

	if err := runCmd(t, srv, "set", "1", "completed"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := srv.Todos()[0].Status; got != model.StatusCompleted {
		t.Errorf("server status = %q, want completed", got)
	}
}

func TestSet_UnknownStatus(t *testing.T) {
	srv := apitest.New(model.Todo{ID: 1, Title: "buy milk", Status: model.StatusCreated})
	defer srv.Close()

	err := runCmd(t, srv, "set", "1", "done")
	if err == nil || !strings.Contains(err.Error(), "unknown status") {
		t.Errorf("set with bad status: err = %v, want unknown status message", err)
	}
}

func TestSet_ServerFailureSurfaces(t *testing.T) {
	srv := apitest.New(model.Todo{ID: 1, Title: "buy milk", Status: model.StatusCreated})
	defer srv.Close()
	srv.FailUpdate(true)

	if err := runCmd(t, srv, "set", "1", "completed"); err == nil {
		t.Fatal("set against failing server: want error")
	}
	if got := srv.Todos()[0].Status; got != model.StatusCreated {
		t.Errorf("server status = %q, want untouched created", got)
	}
}

func TestLs_StatusFilterValidation(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	err := runCmd(t, srv, "ls", "--status", "bogus")
	if err == nil || !strings.Contains(err.Error(), "unknown status") {
		t.Errorf("ls with bad status: err = %v, want unknown status message", err)
	}
}

func TestLs_EmptyCollection(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	if err := runCmd(t, srv, "ls"); err != nil {
		t.Errorf("ls: %v", err)
	}
}
