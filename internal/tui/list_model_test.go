package tui

import (
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/tinytodo/internal/db"
	"github.com/balkashynov/tinytodo/internal/lists"
	"github.com/balkashynov/tinytodo/internal/settings"
)

func newTestModel(t *testing.T, listNames ...string) ListModel {
	t.Helper()

	gdb, err := db.Open(filepath.Join(t.TempDir(), "tui.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	manager := lists.NewManager(db.NewListStore(gdb), settings.NewFileStore(t.TempDir()))
	for _, name := range listNames {
		_, err := manager.Create(t.Context(), name)
		require.NoError(t, err)
	}

	m := NewListModel(manager)
	// a blinking cursor would make Focus return a timer command
	m.input.Cursor.SetMode(cursor.CursorStatic)
	return apply(t, m, m.Init())
}

// apply runs cmd synchronously and feeds its message back into the model.
func apply(t *testing.T, m ListModel, cmd tea.Cmd) ListModel {
	t.Helper()

	if cmd == nil {
		return m
	}
	msg := cmd()
	if _, ok := msg.(listsLoadedMsg); !ok {
		return m
	}
	next, _ := m.Update(msg)
	return next.(ListModel)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m ListModel, keys ...string) ListModel {
	t.Helper()

	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		m = apply(t, next.(ListModel), cmd)
	}
	return m
}

func names(m ListModel) []string {
	var out []string
	for _, v := range m.views {
		out = append(out, v.Name)
	}
	return out
}

func TestLoadsListsWithAllTasksFirst(t *testing.T) {
	m := newTestModel(t, "Inbox", "Work")

	assert.Equal(t, []string{"All tasks", "Inbox", "Work"}, names(m))
	assert.Contains(t, m.View(), "Inbox")
}

func TestNavigation(t *testing.T) {
	m := newTestModel(t, "Inbox", "Work")

	m = press(t, m, "j", "j", "j")
	assert.Equal(t, 2, m.cursor)
	m = press(t, m, "k")
	assert.Equal(t, 1, m.cursor)
}

func TestToggles(t *testing.T) {
	m := newTestModel(t, "Inbox")
	m = press(t, m, "j", "h", "n", "c", "p")

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, sel.Hidden)
	assert.Equal(t, 1, sel.ShowNotes)
	assert.Equal(t, 1, sel.ShowCompl)
	assert.Equal(t, 1, sel.Published)
	assert.Equal(t, "publish toggled", m.status)

	m = press(t, m, "c")
	sel, _ = m.Selected()
	assert.Equal(t, 0, sel.ShowCompl)
}

func TestSortCycle(t *testing.T) {
	m := newTestModel(t, "Inbox")
	m = press(t, m, "j", "s", "s")

	sel, _ := m.Selected()
	assert.Equal(t, 2, sel.Sort)

	m = press(t, m, "k", "s")
	sel, _ = m.Selected()
	assert.Equal(t, 4, sel.Sort)
	assert.Equal(t, "sort: edited", m.status)
}

func TestMoveReorders(t *testing.T) {
	m := newTestModel(t, "a", "b", "c")

	m = press(t, m, "j", "J")
	assert.Equal(t, []string{"All tasks", "b", "a", "c"}, names(m))
	assert.Equal(t, 2, m.cursor)

	// the all-tasks list stays on top
	m = press(t, m, "k", "K")
	assert.Equal(t, []string{"All tasks", "b", "a", "c"}, names(m))
}

func TestCreateAndRename(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "a")
	assert.Equal(t, ModeCreate, m.mode)
	m = press(t, m, "Home", "enter")
	assert.Equal(t, ModeBrowse, m.mode)
	assert.Equal(t, []string{"All tasks", "Home"}, names(m))

	m = press(t, m, "j", "r", "!", "enter")
	assert.Equal(t, []string{"All tasks", "Home!"}, names(m))
	assert.Equal(t, "list renamed", m.status)

	m = press(t, m, "a", "Ignored", "esc")
	assert.Equal(t, ModeBrowse, m.mode)
	assert.Len(t, m.views, 2)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := newTestModel(t, "Keep", "Drop")

	m = press(t, m, "j", "j", "d", "n")
	assert.Equal(t, "delete cancelled", m.status)
	assert.Len(t, m.views, 3)

	m = press(t, m, "d", "y")
	assert.Equal(t, []string{"All tasks", "Keep"}, names(m))
	assert.Equal(t, 1, m.cursor)

	// the all-tasks list cannot be deleted
	m = press(t, m, "k", "d")
	assert.Equal(t, ModeBrowse, m.mode)
}

func TestSortName(t *testing.T) {
	assert.Equal(t, "manual", SortName(0))
	assert.Equal(t, "priority (desc)", SortName(101))
	assert.Equal(t, "manual", SortName(50))
	assert.Equal(t, 101, nextSort(4))
	assert.Equal(t, 0, nextSort(104))
	assert.Equal(t, 0, nextSort(77))
}

func TestFitNameCutsByDisplayWidth(t *testing.T) {
	assert.Equal(t, "Home      ", FitName("Home", 10))
	assert.Equal(t, "abcdefg...", FitName("abcdefghijklmnop", 10))

	for _, name := range []string{"Списки покупок на неделю", "買い物リストと週末の予定", "Café ☕ run"} {
		got := FitName(name, 10)
		assert.True(t, utf8.ValidString(got), "FitName(%q) = %q", name, got)
		assert.Equal(t, 10, ansi.StringWidth(got), "FitName(%q) = %q", name, got)
	}
}
