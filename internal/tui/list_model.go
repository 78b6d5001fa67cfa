package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/balkashynov/tinytodo/internal/lists"
	"github.com/balkashynov/tinytodo/internal/parser"
)

// ListService is the subset of the list manager the browser drives.
type ListService interface {
	All(ctx context.Context, loggedIn bool) (lists.Response, error)
	Create(ctx context.Context, name string) (lists.Response, error)
	Rename(ctx context.Context, id int64, name string) (lists.Response, error)
	SetSort(ctx context.Context, id int64, mode int) (lists.Response, error)
	SetShowCompleted(ctx context.Context, id int64, show bool) (lists.Response, error)
	SetShowNotes(ctx context.Context, id int64, show bool) (lists.Response, error)
	SetHidden(ctx context.Context, id int64, hidden bool) (lists.Response, error)
	SetPublished(ctx context.Context, id int64, published bool) (lists.Response, error)
	Reorder(ctx context.Context, order map[int]int64) (lists.Response, error)
	Delete(ctx context.Context, id int64) (lists.Response, error)
	ClearCompleted(ctx context.Context, id int64) (lists.Response, error)
}

// Mode is what the browser is currently waiting for.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeCreate
	ModeRename
	ModeConfirmDelete
)

// sortCycle is the order the "s" key steps through sort modes.
var sortCycle = []int{0, 1, 2, 3, 4, 101, 102, 103, 104}

// FitName truncates name to width terminal cells and pads it to exactly width.
func FitName(name string, width int) string {
	name = ansi.Truncate(name, width, "...")
	return name + strings.Repeat(" ", max(width-ansi.StringWidth(name), 0))
}

// SortName describes a task sort mode.
func SortName(mode int) string {
	names := map[int]string{
		0: "manual",
		1: "priority",
		2: "due date",
		3: "created",
		4: "edited",
	}
	if mode > 100 {
		if n, ok := names[mode-100]; ok {
			return n + " (desc)"
		}
	}
	if n, ok := names[mode]; ok {
		return n
	}
	return "manual"
}

func nextSort(mode int) int {
	for i, m := range sortCycle {
		if m == mode {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}

// listsLoadedMsg carries a fresh snapshot after an operation.
type listsLoadedMsg struct {
	views  []lists.View
	status string
	err    error
}

// ListModel browses and edits task lists.
type ListModel struct {
	width  int
	height int

	service ListService
	views   []lists.View
	cursor  int

	mode   Mode
	keys   keyMap
	help   help.Model
	input  textinput.Model
	status string
	err    error
}

// NewListModel creates a browser over service.
func NewListModel(service ListService) ListModel {
	input := textinput.New()
	input.Placeholder = "list name"
	input.CharLimit = 50
	input.Width = 40
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))

	h := help.New()
	h.ShowAll = true
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))

	return ListModel{
		service: service,
		keys:    defaultKeyMap(),
		help:    h,
		input:   input,
	}
}

// Init loads the lists.
func (m ListModel) Init() tea.Cmd {
	return m.reload("")
}

func (m ListModel) reload(status string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.service.All(context.Background(), true)
		return listsLoadedMsg{views: resp.List, status: status, err: err}
	}
}

// run applies op and reloads the lists afterwards.
func (m ListModel) run(status string, op func(ctx context.Context) (lists.Response, error)) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := op(ctx); err != nil {
			return listsLoadedMsg{views: m.views, err: err}
		}
		resp, err := m.service.All(ctx, true)
		return listsLoadedMsg{views: resp.List, status: status, err: err}
	}
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case listsLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.views = msg.views
			m.status = msg.status
		}
		if m.cursor >= len(m.views) {
			m.cursor = max(len(m.views)-1, 0)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeCreate, ModeRename:
			return m.handleInputKeys(msg)
		case ModeConfirmDelete:
			return m.handleConfirmKeys(msg)
		}
		return m.handleBrowseKeys(msg)
	}

	return m, nil
}

// Selected returns the list under the cursor.
func (m ListModel) Selected() (lists.View, bool) {
	if m.cursor < 0 || m.cursor >= len(m.views) {
		return lists.View{}, false
	}
	return m.views[m.cursor], true
}

func (m ListModel) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	sel, ok := m.Selected()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.views)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveUp):
		return m.move(-1)

	case key.Matches(msg, m.keys.MoveDown):
		return m.move(1)

	case key.Matches(msg, m.keys.Add):
		m.mode = ModeCreate
		m.input.SetValue("")
		return m, m.input.Focus()
	}

	if !ok {
		return m, nil
	}
	id := sel.ID
	flags := sel.Flags()

	switch {
	case key.Matches(msg, m.keys.Rename):
		if sel.IsAllTasks() {
			return m, nil
		}
		m.mode = ModeRename
		m.input.SetValue(sel.Name)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Delete):
		if sel.IsAllTasks() {
			return m, nil
		}
		m.mode = ModeConfirmDelete
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		mode := nextSort(sel.Sort)
		return m, m.run("sort: "+SortName(mode), func(ctx context.Context) (lists.Response, error) {
			return m.service.SetSort(ctx, id, mode)
		})

	case key.Matches(msg, m.keys.Hide):
		return m, m.run("hidden toggled", func(ctx context.Context) (lists.Response, error) {
			return m.service.SetHidden(ctx, id, !flags.Hidden)
		})

	case key.Matches(msg, m.keys.Notes):
		return m, m.run("notes toggled", func(ctx context.Context) (lists.Response, error) {
			return m.service.SetShowNotes(ctx, id, !flags.ShowNotes)
		})

	case key.Matches(msg, m.keys.Done):
		return m, m.run("completed toggled", func(ctx context.Context) (lists.Response, error) {
			return m.service.SetShowCompleted(ctx, id, !flags.ShowCompleted)
		})

	case key.Matches(msg, m.keys.Publish):
		return m, m.run("publish toggled", func(ctx context.Context) (lists.Response, error) {
			return m.service.SetPublished(ctx, id, sel.Published == 0)
		})

	case key.Matches(msg, m.keys.Clear):
		return m, func() tea.Msg {
			ctx := context.Background()
			resp, err := m.service.ClearCompleted(ctx, id)
			if err != nil {
				return listsLoadedMsg{views: m.views, err: err}
			}
			all, err := m.service.All(ctx, true)
			return listsLoadedMsg{views: all.List, status: fmt.Sprintf("%d completed tasks cleared", resp.Total), err: err}
		}
	}

	return m, nil
}

// move swaps the selected list with its neighbour and stores the new order.
// The all-tasks list is pinned at the top.
func (m ListModel) move(delta int) (tea.Model, tea.Cmd) {
	target := m.cursor + delta
	if target < 0 || target >= len(m.views) {
		return m, nil
	}
	if m.views[m.cursor].IsAllTasks() || m.views[target].IsAllTasks() {
		return m, nil
	}

	views := make([]lists.View, len(m.views))
	copy(views, m.views)
	views[m.cursor], views[target] = views[target], views[m.cursor]

	var ids []int64
	for _, v := range views {
		if !v.IsAllTasks() {
			ids = append(ids, v.ID)
		}
	}

	m.views = views
	m.cursor = target
	order := parser.OrderFromIDs(ids)
	return m, m.run("order saved", func(ctx context.Context) (lists.Response, error) {
		return m.service.Reorder(ctx, order)
	})
}

func (m ListModel) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.mode = ModeBrowse
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		name := m.input.Value()
		mode := m.mode
		m.mode = ModeBrowse
		m.input.Blur()
		if strings.TrimSpace(name) == "" {
			return m, nil
		}

		if mode == ModeCreate {
			return m, m.run("list created", func(ctx context.Context) (lists.Response, error) {
				return m.service.Create(ctx, name)
			})
		}
		sel, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, m.run("list renamed", func(ctx context.Context) (lists.Response, error) {
			return m.service.Rename(ctx, sel.ID, name)
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ListModel) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeBrowse
	sel, ok := m.Selected()
	if !ok || msg.String() != "y" {
		m.status = "delete cancelled"
		return m, nil
	}

	return m, m.run("list deleted", func(ctx context.Context) (lists.Response, error) {
		return m.service.Delete(ctx, sel.ID)
	})
}

// View renders the TUI
func (m ListModel) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		m.renderTable(width*60/100),
		"",
		m.renderFooter(),
	)
	return content
}

func (m ListModel) renderTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(headerStyle.Render("Lists"))
	b.WriteString("\n\n")

	if len(m.views) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No lists yet. Press a to add one."))
	}

	nameWidth := max(width-40, 16)
	for i, v := range m.views {
		row := fmt.Sprintf("%-4s %s %-16s %s",
			idLabel(v), FitName(v.Name, nameWidth), SortName(v.Sort), flagBadges(v))

		switch {
		case i == m.cursor:
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorPrimaryText)).
				Background(lipgloss.Color(ColorAccentMain)).
				Bold(true).
				Render(row))
		case v.Hidden != 0:
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render(row))
		default:
			b.WriteString(row)
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Render(b.String())
}

func idLabel(v lists.View) string {
	if v.IsAllTasks() {
		return "*"
	}
	return fmt.Sprintf("#%d", v.ID)
}

// flagBadges renders the display flags as short markers.
func flagBadges(v lists.View) string {
	var badges []string
	if v.Published != 0 {
		badges = append(badges, "public")
	}
	if v.ShowCompl != 0 {
		badges = append(badges, "done")
	}
	if v.ShowNotes != 0 {
		badges = append(badges, "notes")
	}
	if v.Hidden != 0 {
		badges = append(badges, "hidden")
	}
	return strings.Join(badges, " ")
}

func (m ListModel) renderFooter() string {
	switch m.mode {
	case ModeCreate:
		return "New list: " + m.input.View()
	case ModeRename:
		return "Rename: " + m.input.View()
	case ModeConfirmDelete:
		sel, _ := m.Selected()
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Render(fmt.Sprintf("Delete %q and all its tasks? (y/n)", sel.Name))
	}

	var lines []string
	if m.err != nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("Error: "+m.err.Error()))
	} else if m.status != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(m.status))
	}

	lines = append(lines, m.help.View(m.keys))

	return strings.Join(lines, "\n")
}
