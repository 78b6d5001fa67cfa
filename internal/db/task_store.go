package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/tinytodo/internal/models"
)

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	ListID int64
	Title  string
	Tags   []string
	Prio   int
	Note   string
}

// TaskStore keeps tasks and their tag associations.
type TaskStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTaskStore returns a store backed by db.
func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db, now: time.Now}
}

// Create creates a new task with tags. Tags are created on first use.
func (s *TaskStore) Create(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	now := s.now().Unix()
	task := models.Task{
		UUID:     uuid.NewString(),
		ListID:   req.ListID,
		Title:    strings.TrimSpace(req.Title),
		Note:     req.Note,
		Prio:     req.Prio,
		DCreated: now,
		DEdited:  now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list models.List
		if err := tx.First(&list, req.ListID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("list #%d not found", req.ListID)
			}
			return fmt.Errorf("load list #%d: %w", req.ListID, err)
		}

		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		tags, err := findOrCreateTags(tx, req.Tags)
		if err != nil {
			return err
		}
		for _, tag := range tags {
			link := models.TaskTag{TaskID: task.ID, TagID: tag.ID, ListID: task.ListID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

// findOrCreateTags finds existing tags or creates new ones
func findOrCreateTags(tx *gorm.DB, tagNames []string) ([]models.Tag, error) {
	var tags []models.Tag

	for _, name := range tagNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		tag := models.Tag{Name: name}
		if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}

		tags = append(tags, tag)
	}

	return tags, nil
}

// SetCompleted marks a task as completed or back to open.
func (s *TaskStore) SetCompleted(ctx context.Context, id int64, completed bool) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task #%d not found", id)
		}
		return nil, fmt.Errorf("load task #%d: %w", id, err)
	}

	now := s.now().Unix()
	task.Compl = completed
	task.DEdited = now
	task.DCompleted = 0
	if completed {
		task.DCompleted = now
	}

	err := s.db.WithContext(ctx).Model(&task).
		Select("compl", "d_edited", "d_completed").
		Updates(&task).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update task #%d: %w", id, err)
	}

	return &task, nil
}

// ByList returns the tasks of a list, open tasks first.
func (s *TaskStore) ByList(ctx context.Context, listID int64) ([]models.Task, error) {
	var tasks []models.Task

	err := s.db.WithContext(ctx).Where("list_id = ?", listID).
		Order("compl ASC").Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks of list #%d: %w", listID, err)
	}

	return tasks, nil
}

// TagNames returns the tag names attached to a task.
func (s *TaskStore) TagNames(ctx context.Context, taskID int64) ([]string, error) {
	var names []string

	err := s.db.WithContext(ctx).Model(&models.Tag{}).
		Joins("JOIN "+s.taskTagTable()+" tt ON tt.tag_id = "+s.tagTable()+".id").
		Where("tt.task_id = ?", taskID).
		Order(s.tagTable()+".name ASC").
		Pluck(s.tagTable()+".name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags of task #%d: %w", taskID, err)
	}

	return names, nil
}

func (s *TaskStore) tagTable() string {
	return s.db.NamingStrategy.TableName("Tag")
}

func (s *TaskStore) taskTagTable() string {
	return s.db.NamingStrategy.TableName("TaskTag")
}
