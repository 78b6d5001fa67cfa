package lists

import (
	"context"
	"fmt"

	"github.com/balkashynov/tinytodo/internal/models"
	"github.com/balkashynov/tinytodo/internal/parser"
)

// AllTasksID identifies the all-tasks list, which has no table row.
const AllTasksID int64 = -1

// AllTasksDomain is the settings domain holding the all-tasks list state.
const AllTasksDomain = "alltasks.json"

// Defaults of the all-tasks list when its domain does not override them.
const (
	defaultAllTasksHidden        = 1
	defaultAllTasksSort          = 3
	defaultAllTasksShowCompleted = 1
)

// Target is a list that state operations apply to: either a row of the list
// table (RealList) or the all-tasks list backed by a settings domain
// (AllTasksList).
type Target interface {
	ID() int64
	View(ctx context.Context) (*View, error)
	SetSort(ctx context.Context, mode int) error
	SetShowCompleted(ctx context.Context, show bool) error
	SetShowNotes(ctx context.Context, show bool) error
	SetHidden(ctx context.Context, hidden bool) error
	SetPublished(ctx context.Context, published bool) error
	Rename(ctx context.Context, name string) (Response, error)
	Delete(ctx context.Context) (int64, error)
	ClearCompleted(ctx context.Context) (int64, error)
}

// RealList is a list stored in the relational database.
type RealList struct {
	id    int64
	store Store
}

func (l *RealList) ID() int64 { return l.id }

func (l *RealList) View(ctx context.Context) (*View, error) {
	row, err := l.store.ByID(ctx, l.id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: list #%d", ErrNotFound, l.id)
	}
	v := newView(row)
	return &v, nil
}

func (l *RealList) SetSort(ctx context.Context, mode int) error {
	return l.store.SetSorting(ctx, l.id, mode)
}

func (l *RealList) SetShowCompleted(ctx context.Context, show bool) error {
	return l.store.SetTaskviewBit(ctx, l.id, bitCompleted, completedBit(show))
}

func (l *RealList) SetShowNotes(ctx context.Context, show bool) error {
	return l.store.SetTaskviewBit(ctx, l.id, bitNotes, show)
}

func (l *RealList) SetHidden(ctx context.Context, hidden bool) error {
	return l.store.SetTaskviewBit(ctx, l.id, bitHidden, hidden)
}

func (l *RealList) SetPublished(ctx context.Context, published bool) error {
	return l.store.SetPublished(ctx, l.id, published)
}

func (l *RealList) Rename(ctx context.Context, name string) (Response, error) {
	affected, err := l.store.Rename(ctx, l.id, name)
	if err != nil {
		return Response{}, err
	}

	resp := Response{Total: affected}
	row, err := l.store.ByID(ctx, l.id)
	if err != nil {
		return Response{}, err
	}
	if row != nil {
		resp.List = []View{newView(row)}
	}
	return resp, nil
}

func (l *RealList) Delete(ctx context.Context) (int64, error) {
	return l.store.Delete(ctx, l.id)
}

func (l *RealList) ClearCompleted(ctx context.Context) (int64, error) {
	return l.store.ClearCompleted(ctx, l.id)
}

// AllTasksList is the virtual list aggregating the tasks of every list. Its
// state lives in a settings domain and it cannot be renamed, published or
// deleted.
type AllTasksList struct {
	domains Domains
	name    string
}

func (l *AllTasksList) ID() int64 { return AllTasksID }

func (l *AllTasksList) View(ctx context.Context) (*View, error) {
	opts, err := l.domains.Get(AllTasksDomain)
	if err != nil {
		return nil, err
	}

	v := &View{
		ID:        AllTasksID,
		Name:      newView(&models.List{Name: l.name}).Name,
		Sort:      defaultAllTasksSort,
		Hidden:    defaultAllTasksHidden,
		ShowCompl: defaultAllTasksShowCompleted,
	}
	if h, ok := opts["hidden"]; ok {
		v.Hidden = boolInt(parser.Int(h) != 0)
	}
	if s, ok := opts["sort"]; ok {
		v.Sort = parser.Int(s)
	}
	if c, ok := opts["showCompleted"]; ok {
		v.ShowCompl = parser.Int(c)
	}
	return v, nil
}

func (l *AllTasksList) SetSort(ctx context.Context, mode int) error {
	return l.domains.Update(AllTasksDomain, func(opts map[string]any) {
		opts["sort"] = mode
	})
}

func (l *AllTasksList) SetShowCompleted(ctx context.Context, show bool) error {
	return l.domains.Update(AllTasksDomain, func(opts map[string]any) {
		opts["showCompleted"] = boolInt(show)
	})
}

// SetShowNotes is a no-op: the all-tasks list has no notes flag.
func (l *AllTasksList) SetShowNotes(ctx context.Context, show bool) error {
	return nil
}

func (l *AllTasksList) SetHidden(ctx context.Context, hidden bool) error {
	return l.domains.Update(AllTasksDomain, func(opts map[string]any) {
		opts["hidden"] = boolInt(hidden)
	})
}

// SetPublished is a no-op: the all-tasks list is never public.
func (l *AllTasksList) SetPublished(ctx context.Context, published bool) error {
	return nil
}

func (l *AllTasksList) Rename(ctx context.Context, name string) (Response, error) {
	return Response{}, nil
}

func (l *AllTasksList) Delete(ctx context.Context) (int64, error) {
	return 0, nil
}

func (l *AllTasksList) ClearCompleted(ctx context.Context) (int64, error) {
	return 0, nil
}
