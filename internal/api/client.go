// Package api talks to the remote todo service over its REST contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/idilsaglam/todoview/internal/model"
)

const basePath = "/api/todos"

// Client communicates with a todo service instance over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client targeting the given service base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// List returns the full todo collection in server order.
func (c *Client) List(ctx context.Context) ([]model.Todo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+basePath, nil)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("creating request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	var todos []model.Todo
	if err := json.NewDecoder(resp.Body).Decode(&todos); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("decoding response: %w", err)}
	}
	return todos, nil
}

// createRequest is the JSON body for POST /api/todos.
type createRequest struct {
	Title string `json:"title"`
}

// Create asks the service to add a todo with the given title.
// The service assigns id, status and created_at.
func (c *Client) Create(ctx context.Context, title string) (model.Todo, error) {
	body, err := json.Marshal(createRequest{Title: title})
	if err != nil {
		return model.Todo{}, &MutationError{Op: "create", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+basePath, bytes.NewReader(body))
	if err != nil {
		return model.Todo{}, &MutationError{Op: "create", Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Todo{}, &MutationError{Op: "create", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return model.Todo{}, &MutationError{Op: "create", StatusCode: resp.StatusCode}
	}

	var todo model.Todo
	if err := json.NewDecoder(resp.Body).Decode(&todo); err != nil {
		return model.Todo{}, &MutationError{Op: "create", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return todo, nil
}

// updateRequest is the JSON body for PATCH /api/todos/{id}.
type updateRequest struct {
	Status model.Status `json:"status"`
}

// UpdateStatus asks the service to move the todo with the given id to status.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status model.Status) (model.Todo, error) {
	body, err := json.Marshal(updateRequest{Status: status})
	if err != nil {
		return model.Todo{}, &MutationError{Op: "update", Err: err}
	}

	url := fmt.Sprintf("%s%s/%d", c.baseURL, basePath, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return model.Todo{}, &MutationError{Op: "update", Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Todo{}, &MutationError{Op: "update", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Todo{}, &MutationError{Op: "update", StatusCode: resp.StatusCode}
	}

	var todo model.Todo
	if err := json.NewDecoder(resp.Body).Decode(&todo); err != nil {
		return model.Todo{}, &MutationError{Op: "update", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return todo, nil
}
