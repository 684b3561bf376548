// Package cache holds the client-side copy of the todo collection.
//
// All reads and writes of the collection go through Collection; the view
// never talks to the service directly. The service stays authoritative:
// the cache is a transient copy that is re-fetched after every settled
// status mutation.
package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/idilsaglam/todoview/internal/model"
)

// collectionKey is the one logical cache key. The client caches a single
// collection, but singleflight wants a key and keeping it explicit makes
// the dedup boundary visible.
const collectionKey = "todos"

// Service is the remote side the cache synchronizes against.
// *api.Client satisfies it.
type Service interface {
	List(ctx context.Context) ([]model.Todo, error)
	Create(ctx context.Context, title string) (model.Todo, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) (model.Todo, error)
}

// preImage is the saved state of the collection before an optimistic
// write. token ties it to the mutation that took it; a later mutation
// supersedes the slot and the stale pre-image must not be restored.
type preImage struct {
	token uint64
	todos []model.Todo
}

// Collection is the synchronized todo collection cache.
type Collection struct {
	svc Service

	group singleflight.Group

	mu       sync.Mutex
	todos    []model.Todo
	loaded   bool
	stale    bool
	gen      uint64
	rollback *preImage
}

// New creates an empty cache backed by svc.
func New(svc Service) *Collection {
	return &Collection{svc: svc}
}

// Todos returns a copy of the cached collection in server order.
func (c *Collection) Todos() []model.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Todo(nil), c.todos...)
}

// Loaded reports whether the cache has ever been populated.
func (c *Collection) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Stale reports whether a settled mutation invalidated the cached copy.
// A fresh Load clears it.
func (c *Collection) Stale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale
}

// Load fetches the full collection from the service and replaces the
// cached copy. Concurrent loads are deduplicated: at most one request is
// in flight for the collection. A load superseded by a mutation that
// started after it leaves the cache untouched, so stale data can never
// overwrite an optimistic write.
//
// On failure the previous cached data stays as-is; the caller decides
// whether to show it as stale or render an error state.
func (c *Collection) Load(ctx context.Context) error {
	_, err, _ := c.group.Do(collectionKey, func() (any, error) {
		c.mu.Lock()
		startGen := c.gen
		c.mu.Unlock()

		todos, err := c.svc.List(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen != startGen {
			// A mutation landed while we were in flight; its optimistic
			// state wins and the mutation marked us stale already.
			return nil, nil
		}
		c.todos = todos
		c.loaded = true
		c.stale = false
		return nil, nil
	})
	return err
}

// Add creates a todo on the service and, on success, appends the record
// the service returned. There is no optimistic insert: on failure the
// cache is unchanged.
func (c *Collection) Add(ctx context.Context, title string) (model.Todo, error) {
	todo, err := c.svc.Create(ctx, title)
	if err != nil {
		return model.Todo{}, err
	}
	c.mu.Lock()
	c.todos = append(c.todos, todo)
	c.mu.Unlock()
	return todo, nil
}

// UpdateStatus optimistically moves the todo with the given id to status.
//
// The new status is visible to readers before the request settles. On
// failure the pre-image is restored, unless a later UpdateStatus
// superseded it. Either way the cache is marked stale when the request
// settles; the caller reconciles with a fresh Load.
//
// There is a single rollback slot, not one per id: overlapping updates
// to different ids are not isolated from each other.
func (c *Collection) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	c.mu.Lock()
	c.gen++
	token := c.gen
	pre := append([]model.Todo(nil), c.todos...)
	c.rollback = &preImage{token: token, todos: pre}

	next := append([]model.Todo(nil), c.todos...)
	for i := range next {
		if next[i].ID == id {
			next[i].Status = status
			break
		}
	}
	c.todos = next
	c.mu.Unlock()

	_, err := c.svc.UpdateStatus(ctx, id, status)

	c.mu.Lock()
	if c.rollback != nil && c.rollback.token == token {
		if err != nil {
			c.todos = c.rollback.todos
		}
		c.rollback = nil
	}
	c.stale = true
	c.mu.Unlock()
	return err
}
