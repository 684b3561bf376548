// Package tui is the interactive view over the todo collection cache.
//
// The view never talks to the service directly: every network operation
// goes through cache.Collection inside a tea.Cmd, and the screen is
// re-rendered from the cache on every state transition.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todoview/internal/api"
	"github.com/idilsaglam/todoview/internal/cache"
	"github.com/idilsaglam/todoview/internal/model"
	"github.com/idilsaglam/todoview/internal/ui"
)

// rowItem adapts a Todo to bubbles/list.Item.
type rowItem struct {
	Todo model.Todo
}

func (i rowItem) rowText() string {
	return fmt.Sprintf("%s  %s", ui.Badge(i.Todo.Status), i.Todo.Title)
}

// Implement list.Item interface
func (i rowItem) Title() string       { return i.rowText() }
func (i rowItem) Description() string { return "" }
func (i rowItem) FilterValue() string { return i.Todo.Title }

// Custom delegate to control how rows render (single line)
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(rowItem)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+it.rowText())
}

// Messages produced by cache commands.
type todosLoadedMsg struct{}

type loadFailedMsg struct{ err error }

type addSettledMsg struct{ err error }

type updateSettledMsg struct{ err error }

// Model is the Bubble Tea model for the todo browser.
type Model struct {
	coll *cache.Collection
	list list.Model

	width  int
	height int

	// First-load lifecycle.
	loading bool
	loadErr string

	// Shared text input (used for add & filter)
	ti        textinput.Model
	adding    bool   // true when the inline add input is active
	addErr    string // last add failure, kept until the next attempt
	filtering bool   // true when the filter input is focused
	filter    string // applied filter text

	// Status picker
	picking bool

	// Detail overlay
	showDetail bool
	detail     model.Todo

	// In-flight flags. One global update flag, not per row.
	addPending    bool
	updatePending bool

	// rows currently shown, aligned with list indexes
	visible []model.Todo
}

// New builds the model over an already-constructed cache.
func New(coll *cache.Collection) Model {
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.Title = titleStyle.Render("Todos")
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	// Filtering is ours: plain case-insensitive substring on the title,
	// not the fuzzy matching the list ships with.
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("todo", "todos")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	statusBind := key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status"))
	filterBind := key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter"))
	detailBind := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail"))
	reloadBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
	extra := func() []key.Binding {
		return []key.Binding{addBind, statusBind, filterBind, detailBind, reloadBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return Model{
		coll:    coll,
		list:    l,
		loading: true,
		ti:      ti,
		width:   80,
		height:  24,
	}
}

// Run starts the program and blocks until the user quits.
func Run(coll *cache.Collection) error {
	p := tea.NewProgram(New(coll), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ---- commands ----

func (m Model) loadCmd() tea.Cmd {
	coll := m.coll
	return func() tea.Msg {
		if err := coll.Load(context.Background()); err != nil {
			return loadFailedMsg{err: err}
		}
		return todosLoadedMsg{}
	}
}

func (m Model) addCmd(title string) tea.Cmd {
	coll := m.coll
	return func() tea.Msg {
		_, err := coll.Add(context.Background(), title)
		return addSettledMsg{err: err}
	}
}

func (m Model) updateCmd(id int64, status model.Status) tea.Cmd {
	coll := m.coll
	return func() tea.Msg {
		return updateSettledMsg{err: coll.UpdateStatus(context.Background(), id, status)}
	}
}

// ---- update ----

func (m Model) Init() tea.Cmd { return m.loadCmd() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case todosLoadedMsg:
		m.loading = false
		m.loadErr = ""
		m.refresh()
		return m, nil

	case loadFailedMsg:
		m.loading = false
		if !m.coll.Loaded() {
			// Nothing to fall back on: distinct error state.
			m.loadErr = msg.err.Error()
		}
		// With data present the stale rows stay on screen.
		return m, nil

	case addSettledMsg:
		m.addPending = false
		if msg.err != nil {
			m.addErr = mutationMessage(msg.err)
		} else {
			m.addErr = ""
			m.refresh()
		}
		return m, nil

	case updateSettledMsg:
		m.updatePending = false
		m.refresh()
		// Reconcile with the service regardless of outcome.
		return m, m.loadCmd()
	}

	if m.showDetail {
		return m.updateDetail(msg)
	}
	if m.picking {
		return m.updatePicker(msg)
	}
	if m.adding {
		return m.updateAdd(msg)
	}
	if m.filtering {
		return m.updateFilter(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "esc", "enter", "q":
			m.showDetail = false
		}
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	x, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch x.String() {
	case "esc", "q":
		m.picking = false
		return m, nil
	case "1", "2", "3", "4":
		idx := int(x.String()[0] - '1')
		statuses := model.AllStatuses()
		todo, ok := m.selectedTodo()
		m.picking = false
		if !ok {
			return m, nil
		}
		m.updatePending = true
		m.applyOptimistic(todo.ID, statuses[idx])
		return m, m.updateCmd(todo.ID, statuses[idx])
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.addErr = "Title cannot be empty"
				return m, nil
			}
			// Input clears on submission, not on confirmed success.
			m.ti.SetValue("")
			m.ti.Blur()
			m.adding = false
			m.addPending = true
			return m, m.addCmd(title)
		case "esc":
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			return m, nil
		}
	}
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			m.filtering = false
			m.ti.Blur()
			return m, nil
		case "esc":
			m.filtering = false
			m.filter = ""
			m.ti.SetValue("")
			m.ti.Blur()
			m.refresh()
			return m, nil
		}
	}
	m.ti, cmd = m.ti.Update(msg)
	m.filter = m.ti.Value()
	m.refresh()
	return m, cmd
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.loadCmd()
		case "a":
			if m.addPending {
				return m, nil
			}
			m.adding = true
			m.ti.SetValue("")
			m.ti.Placeholder = "New todo title..."
			m.ti.Focus()
			return m, nil
		case "/":
			m.filtering = true
			m.ti.SetValue(m.filter)
			m.ti.Placeholder = "Filter by title..."
			m.ti.Focus()
			return m, nil
		case "s":
			if m.updatePending {
				return m, nil
			}
			if _, ok := m.selectedTodo(); ok {
				m.picking = true
			}
			return m, nil
		case "enter":
			if todo, ok := m.selectedTodo(); ok {
				m.detail = todo
				m.showDetail = true
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// selectedTodo resolves the highlighted row to its Todo.
func (m Model) selectedTodo() (model.Todo, bool) {
	i := m.list.Index()
	if i < 0 || i >= len(m.visible) {
		return model.Todo{}, false
	}
	return m.visible[i], true
}

// applyOptimistic mirrors the cache's optimistic write into the visible
// rows so the badge flips before the settled message arrives.
func (m *Model) applyOptimistic(id int64, status model.Status) {
	for i := range m.visible {
		if m.visible[i].ID == id {
			m.visible[i].Status = status
			m.list.SetItem(i, rowItem{Todo: m.visible[i]})
		}
	}
}

// refresh recomputes the visible rows from the cache and the filter.
func (m *Model) refresh() {
	todos := m.coll.Todos()
	m.visible = filterTodos(todos, m.filter)

	items := make([]list.Item, 0, len(m.visible))
	for _, td := range m.visible {
		items = append(items, rowItem{Todo: td})
	}
	m.list.SetItems(items)
	m.list.Title = headerLine(todos)
}

// filterTodos keeps the todos whose title contains q, case-insensitively.
// An empty q keeps everything.
func filterTodos(todos []model.Todo, q string) []model.Todo {
	if q == "" {
		return append([]model.Todo(nil), todos...)
	}
	needle := strings.ToLower(q)
	out := make([]model.Todo, 0, len(todos))
	for _, td := range todos {
		if strings.Contains(strings.ToLower(td.Title), needle) {
			out = append(out, td)
		}
	}
	return out
}

// headerLine renders the list title with live per-status counts.
func headerLine(todos []model.Todo) string {
	counts := map[model.Status]int{}
	for _, td := range todos {
		counts[td.Status]++
	}
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		ui.Symbol(model.StatusCreated), counts[model.StatusCreated],
		ui.Symbol(model.StatusOnGoing), counts[model.StatusOnGoing],
		ui.Symbol(model.StatusCompleted), counts[model.StatusCompleted],
		ui.Symbol(model.StatusProblem), counts[model.StatusProblem],
		accentStyle.Render("Total"), len(todos),
	)
}

// mutationMessage turns an api error into the inline text shown near
// the add input.
func mutationMessage(err error) string {
	var me *api.MutationError
	if errors.As(err, &me) {
		return me.Error()
	}
	return err.Error()
}

// ---- view ----

func (m Model) View() string {
	if m.loading && !m.coll.Loaded() {
		return panelString(mutedStyle.Render("Loading todos..."))
	}
	if m.loadErr != "" && !m.coll.Loaded() {
		body := errorStyle.Render("Could not load todos") + "\n" +
			mutedStyle.Render(m.loadErr) + "\n\n" +
			helpStyle.Render("r retry  •  q quit")
		return panelString(body)
	}
	if m.showDetail {
		return panelString(m.detailView())
	}

	listHeight := m.height - 4
	if m.adding || m.filtering || m.picking {
		listHeight = m.height - 6
	}
	m.list.SetSize(m.width-2, listHeight)
	content := m.list.View()

	switch {
	case m.adding:
		title := "Add new todo"
		if m.addErr != "" {
			title += " — " + errorStyle.Render(m.addErr)
		}
		content += "\n" + panelString(title+"\n"+m.ti.View())
	case m.addPending:
		content += "\n" + mutedStyle.Render("Adding...")
	case m.addErr != "":
		content += "\n" + errorStyle.Render(m.addErr)
	case m.filtering:
		content += "\n" + panelString("Filter todos\n"+m.ti.View())
	case m.picking:
		content += "\n" + panelString(m.pickerView())
	}
	return panelString(content)
}

func (m Model) pickerView() string {
	lines := []string{titleStyle.Render("Set status")}
	for i, s := range model.AllStatuses() {
		lines = append(lines, fmt.Sprintf("%d  %s", i+1, ui.Badge(s)))
	}
	lines = append(lines, helpStyle.Render("esc cancel"))
	return strings.Join(lines, "\n")
}

func (m Model) detailView() string {
	problem := m.detail.ProblemDesc
	if problem == "" {
		problem = "—"
	}
	lines := []string{
		titleStyle.Render(m.detail.Title),
		"",
		"Status:   " + ui.Badge(m.detail.Status),
		"Problem:  " + problem,
		"Created:  " + model.FormatCreatedAt(m.detail.CreatedAt),
		"",
		helpStyle.Render("esc close"),
	}
	return strings.Join(lines, "\n")
}
