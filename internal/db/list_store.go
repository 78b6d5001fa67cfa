package db

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balkashynov/tinytodo/internal/models"
)

// ListStore keeps task lists in the relational database.
type ListStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewListStore returns a store backed by db.
func NewListStore(db *gorm.DB) *ListStore {
	return &ListStore{db: db, now: time.Now}
}

// WithClock replaces the timestamp source used for d_created/d_edited.
func (s *ListStore) WithClock(now func() time.Time) *ListStore {
	s.now = now
	return s
}

func (s *ListStore) unix() int64 {
	return s.now().Unix()
}

// All returns lists in display order. When publishedOnly is set, unpublished
// lists are left out.
func (s *ListStore) All(ctx context.Context, publishedOnly bool) ([]models.List, error) {
	var lists []models.List

	q := s.db.WithContext(ctx)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	if err := q.Order("ow ASC").Order("id ASC").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch lists: %w", err)
	}

	return lists, nil
}

// ByID retrieves a list by ID. A missing list is not an error: it returns nil.
func (s *ListStore) ByID(ctx context.Context, id int64) (*models.List, error) {
	var lists []models.List

	err := s.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&lists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch list #%d: %w", id, err)
	}
	if len(lists) == 0 {
		return nil, nil
	}

	return &lists[0], nil
}

// Create appends a new list after the last one. The name must already be sanitized.
func (s *ListStore) Create(ctx context.Context, name string) (*models.List, error) {
	now := s.unix()
	list := models.List{
		UUID:     uuid.NewString(),
		Name:     name,
		DCreated: now,
		DEdited:  now,
		Taskview: 1,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOw int
		if err := tx.Model(&models.List{}).Select("COALESCE(MAX(ow), 0)").Scan(&maxOw).Error; err != nil {
			return err
		}
		list.Ow = maxOw + 1
		return tx.Create(&list).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	return &list, nil
}

// Rename sets the list name and returns the number of affected rows.
func (s *ListStore) Rename(ctx context.Context, id int64, name string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.List{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "d_edited": s.unix()})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to rename list #%d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// SetSorting stores the task sort mode. The mode is stored as given.
func (s *ListStore) SetSorting(ctx context.Context, id int64, mode int) error {
	err := s.db.WithContext(ctx).Model(&models.List{}).Where("id = ?", id).
		Updates(map[string]any{"sorting": mode, "d_edited": s.unix()}).Error
	if err != nil {
		return fmt.Errorf("failed to set sorting of list #%d: %w", id, err)
	}
	return nil
}

// SetPublished toggles public visibility. It refreshes d_created, not d_edited.
func (s *ListStore) SetPublished(ctx context.Context, id int64, published bool) error {
	err := s.db.WithContext(ctx).Model(&models.List{}).Where("id = ?", id).
		Updates(map[string]any{"published": published, "d_created": s.unix()}).Error
	if err != nil {
		return fmt.Errorf("failed to publish list #%d: %w", id, err)
	}
	return nil
}

// SetTaskviewBit sets or clears one taskview bit in a single statement.
func (s *ListStore) SetTaskviewBit(ctx context.Context, id int64, bit int, set bool) error {
	expr := gorm.Expr("taskview & ~?", bit)
	if set {
		expr = gorm.Expr("taskview | ?", bit)
	}

	err := s.db.WithContext(ctx).Model(&models.List{}).Where("id = ?", id).
		Update("taskview", expr).Error
	if err != nil {
		return fmt.Errorf("failed to update taskview of list #%d: %w", id, err)
	}
	return nil
}

// Reorder assigns ow = position for every id in order, in one UPDATE using a
// CASE dispatch on id. Lists not named in order keep their ow.
func (s *ListStore) Reorder(ctx context.Context, order map[int]int64) (int64, error) {
	if len(order) == 0 {
		return 0, nil
	}

	positions := make([]int, 0, len(order))
	for pos := range order {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	var caseSQL strings.Builder
	args := make([]any, 0, len(order)*2)
	ids := make([]int64, 0, len(order))
	caseSQL.WriteString("CASE id")
	for _, pos := range positions {
		id := order[pos]
		caseSQL.WriteString(" WHEN ? THEN ?")
		args = append(args, id, pos)
		ids = append(ids, id)
	}
	caseSQL.WriteString(" END")

	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.List{}).Where("id IN ?", ids).Updates(map[string]any{
			"ow":       gorm.Expr(caseSQL.String(), args...),
			"d_edited": s.unix(),
		})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to reorder lists: %w", err)
	}

	return affected, nil
}

// Delete removes a list. Its tasks and tag associations go with it, in the
// same transaction, but only when the list row existed.
func (s *ListStore) Delete(ctx context.Context, id int64) (int64, error) {
	var total int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.List{})
		if res.Error != nil {
			return res.Error
		}
		total = res.RowsAffected
		if total == 0 {
			return nil
		}

		if err := tx.Where("list_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		return tx.Where("list_id = ?", id).Delete(&models.Task{}).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete list #%d: %w", id, err)
	}

	return total, nil
}

// ClearCompleted deletes the completed tasks of a list together with their
// tag associations and returns how many tasks were deleted.
func (s *ListStore) ClearCompleted(ctx context.Context, id int64) (int64, error) {
	var total int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		completed := tx.Model(&models.Task{}).Select("id").Where("list_id = ? AND compl = ?", id, true)
		if err := tx.Where("task_id IN (?)", completed).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}

		res := tx.Where("list_id = ? AND compl = ?", id, true).Delete(&models.Task{})
		total = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear completed tasks of list #%d: %w", id, err)
	}

	return total, nil
}
