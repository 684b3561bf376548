package model

import "time"

// Todo is the domain model for a todo entry as the service returns it.
// The service owns every field; the client never invents ids or timestamps.
type Todo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Status      Status `json:"status"`
	ProblemDesc string `json:"problem_desc,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Status is the closed set of todo states known to the service.
type Status string

const (
	StatusCreated   Status = "created"
	StatusOnGoing   Status = "on_going"
	StatusCompleted Status = "completed"
	StatusProblem   Status = "problem"
)

// AllStatuses returns the statuses in picker order.
func AllStatuses() []Status {
	return []Status{StatusCreated, StatusOnGoing, StatusCompleted, StatusProblem}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusCreated, StatusOnGoing, StatusCompleted, StatusProblem:
		return true
	}
	return false
}

// Label returns the human-readable form shown in badges and pickers.
// Unknown values fall through to the raw string so a newer server
// doesn't blank out rows.
func (s Status) Label() string {
	switch s {
	case StatusOnGoing:
		return "on going"
	}
	return string(s)
}

// ParseStatus maps user input to a Status, accepting the wire form only.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.Valid()
}

// FormatCreatedAt renders the service timestamp for humans.
// The service sends RFC 3339; anything else is shown as-is.
func FormatCreatedAt(raw string) string {
	if raw == "" {
		return "—"
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Local().Format("Mon, 02 Jan 2006 15:04")
}
