package model

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"created", StatusCreated, true},
		{"on_going", StatusOnGoing, true},
		{"completed", StatusCompleted, true},
		{"problem", StatusProblem, true},
		{"done", "", false},
		{"", "", false},
		{"Created", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseStatus(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseStatus(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if ok && got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusValid_CoversAll(t *testing.T) {
	for _, s := range AllStatuses() {
		if !s.Valid() {
			t.Errorf("AllStatuses contains invalid status %q", s)
		}
	}
	if Status("archived").Valid() {
		t.Error("Valid(archived) = true, want false")
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusOnGoing.Label(); got != "on going" {
		t.Errorf("Label(on_going) = %q, want %q", got, "on going")
	}
	if got := StatusCompleted.Label(); got != "completed" {
		t.Errorf("Label(completed) = %q, want %q", got, "completed")
	}
	// Unknown values keep their raw form instead of disappearing.
	if got := Status("archived").Label(); got != "archived" {
		t.Errorf("Label(archived) = %q, want %q", got, "archived")
	}
}

func TestFormatCreatedAt(t *testing.T) {
	got := FormatCreatedAt("2024-01-01T00:00:00Z")
	if got == "" || got == "2024-01-01T00:00:00Z" {
		t.Errorf("FormatCreatedAt(rfc3339) = %q, want a reformatted timestamp", got)
	}

	// Unparsable input passes through untouched.
	if got := FormatCreatedAt("yesterday-ish"); got != "yesterday-ish" {
		t.Errorf("FormatCreatedAt(garbage) = %q, want it unchanged", got)
	}

	if got := FormatCreatedAt(""); got != "—" {
		t.Errorf("FormatCreatedAt(empty) = %q, want placeholder", got)
	}
}
