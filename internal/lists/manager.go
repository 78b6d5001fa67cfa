// Package lists applies state changes to task lists: sort mode, display
// flags, publication, ordering, renaming and deletion. A list is either a
// database row or the all-tasks list, whose state lives in a settings domain.
package lists

import (
	"context"
	"errors"
	"log/slog"

	"github.com/balkashynov/tinytodo/internal/logging"
	"github.com/balkashynov/tinytodo/internal/models"
	"github.com/balkashynov/tinytodo/internal/parser"
)

// ErrNotFound is returned by Get for a list that does not exist.
var ErrNotFound = errors.New("list not found")

// Store is the relational backend of real lists.
type Store interface {
	All(ctx context.Context, publishedOnly bool) ([]models.List, error)
	ByID(ctx context.Context, id int64) (*models.List, error)
	Create(ctx context.Context, name string) (*models.List, error)
	Rename(ctx context.Context, id int64, name string) (int64, error)
	SetSorting(ctx context.Context, id int64, mode int) error
	SetPublished(ctx context.Context, id int64, published bool) error
	SetTaskviewBit(ctx context.Context, id int64, bit int, set bool) error
	Reorder(ctx context.Context, order map[int]int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ClearCompleted(ctx context.Context, id int64) (int64, error)
}

// Domains is the settings backend of the all-tasks list.
type Domains interface {
	Get(domain string) (map[string]any, error)
	Update(domain string, fn func(opts map[string]any)) error
}

// Manager runs list operations against the injected backends.
type Manager struct {
	store        Store
	domains      Domains
	allTasksName string
	logger       *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithAllTasksName sets the display name of the all-tasks list.
func WithAllTasksName(name string) Option {
	return func(m *Manager) { m.allTasksName = name }
}

// WithLogger sets the logger used for mutations.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// NewManager returns a manager over the given backends.
func NewManager(store Store, domains Domains, opts ...Option) *Manager {
	m := &Manager{
		store:        store,
		domains:      domains,
		allTasksName: "All tasks",
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Target resolves a list id to the backend that owns its state.
func (m *Manager) Target(id int64) Target {
	if id == AllTasksID {
		return &AllTasksList{domains: m.domains, name: m.allTasksName}
	}
	return &RealList{id: id, store: m.store}
}

// All returns every list visible to the caller. Authorized callers get the
// all-tasks list first; anonymous callers only see published lists.
func (m *Manager) All(ctx context.Context, loggedIn bool) (Response, error) {
	var resp Response

	if loggedIn {
		v, err := m.Target(AllTasksID).View(ctx)
		if err != nil {
			return Response{}, err
		}
		resp.List = append(resp.List, *v)
		resp.Total++
	}

	rows, err := m.store.All(ctx, !loggedIn)
	if err != nil {
		return Response{}, err
	}
	for i := range rows {
		resp.List = append(resp.List, newView(&rows[i]))
		resp.Total++
	}

	return resp, nil
}

// Get returns a single list, or ErrNotFound.
func (m *Manager) Get(ctx context.Context, id int64) (*View, error) {
	return m.Target(id).View(ctx)
}

// Create adds a list named after the sanitized name.
func (m *Manager) Create(ctx context.Context, name string) (Response, error) {
	row, err := m.store.Create(ctx, parser.SanitizeName(name))
	if err != nil {
		return Response{}, err
	}
	m.logger.Info("list created", logging.ListID(row.ID), logging.ListName(row.Name))
	return Response{Total: 1, List: []View{newView(row)}}, nil
}

// Rename renames a list. Total is the number of rows changed.
func (m *Manager) Rename(ctx context.Context, id int64, name string) (Response, error) {
	return m.Target(id).Rename(ctx, parser.SanitizeName(name))
}

// SetSort stores the task sort mode after normalizing it.
func (m *Manager) SetSort(ctx context.Context, id int64, mode int) (Response, error) {
	if err := m.Target(id).SetSort(ctx, NormalizeSort(mode)); err != nil {
		return Response{}, err
	}
	return ok(), nil
}

// SetShowCompleted toggles whether completed tasks are shown.
func (m *Manager) SetShowCompleted(ctx context.Context, id int64, show bool) (Response, error) {
	if err := m.Target(id).SetShowCompleted(ctx, show); err != nil {
		return Response{}, err
	}
	return ok(), nil
}

// SetShowNotes toggles whether task notes are expanded.
func (m *Manager) SetShowNotes(ctx context.Context, id int64, show bool) (Response, error) {
	if err := m.Target(id).SetShowNotes(ctx, show); err != nil {
		return Response{}, err
	}
	return ok(), nil
}

// SetHidden toggles whether the list is hidden from the tab bar.
func (m *Manager) SetHidden(ctx context.Context, id int64, hidden bool) (Response, error) {
	if err := m.Target(id).SetHidden(ctx, hidden); err != nil {
		return Response{}, err
	}
	return ok(), nil
}

// SetPublished toggles anonymous read access to the list.
func (m *Manager) SetPublished(ctx context.Context, id int64, published bool) (Response, error) {
	if err := m.Target(id).SetPublished(ctx, published); err != nil {
		return Response{}, err
	}
	return ok(), nil
}

// Reorder assigns ow = position to every list id in order. A nil or empty
// mapping changes nothing and answers total 0.
func (m *Manager) Reorder(ctx context.Context, order map[int]int64) (Response, error) {
	if len(order) == 0 {
		return Response{}, nil
	}
	if _, err := m.store.Reorder(ctx, order); err != nil {
		return Response{}, err
	}
	return ok(), nil
}

// Delete removes a list together with its tasks and tag associations.
func (m *Manager) Delete(ctx context.Context, id int64) (Response, error) {
	total, err := m.Target(id).Delete(ctx)
	if err != nil {
		return Response{}, err
	}
	if total > 0 {
		m.logger.Info("list deleted", logging.ListID(id))
	}
	return Response{Total: total}, nil
}

// ClearCompleted deletes the completed tasks of a list. Total is the number
// of tasks deleted.
func (m *Manager) ClearCompleted(ctx context.Context, id int64) (Response, error) {
	total, err := m.Target(id).ClearCompleted(ctx)
	if err != nil {
		return Response{}, err
	}
	m.logger.Debug("completed tasks cleared", logging.ListID(id), logging.Total(total))
	return Response{Total: total}, nil
}
