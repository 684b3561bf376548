// Package ui holds terminal output helpers shared by the CLI commands
// and the interactive view.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todoview/internal/model"
)

var (
	Title  = lipgloss.NewStyle().Bold(true)
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	Muted  = lipgloss.NewStyle().Faint(true)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	createdStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	onGoingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	problemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Symbol returns the colored status symbol used in counts and badges.
// The switch is exhaustive over the known statuses; anything else
// renders dim so an unknown value from a newer server stays visible.
func Symbol(s model.Status) string {
	switch s {
	case model.StatusCreated:
		return createdStyle.Render("●")
	case model.StatusOnGoing:
		return onGoingStyle.Render("◐")
	case model.StatusCompleted:
		return completedStyle.Render("✔")
	case model.StatusProblem:
		return problemStyle.Render("✖")
	}
	return Muted.Render("?")
}

// Badge renders the colored symbol-plus-label form of a status.
func Badge(s model.Status) string {
	switch s {
	case model.StatusCreated:
		return createdStyle.Render("● " + s.Label())
	case model.StatusOnGoing:
		return onGoingStyle.Render("◐ " + s.Label())
	case model.StatusCompleted:
		return completedStyle.Render("✔ " + s.Label())
	case model.StatusProblem:
		return problemStyle.Render("✖ " + s.Label())
	}
	return Muted.Render("? " + s.Label())
}

// OK prints a success line to stdout.
func OK(msg string) {
	fmt.Println(successStyle.Render("✔ " + msg))
}

// Fail prints an error line to stderr.
func Fail(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✖ "+msg))
}
