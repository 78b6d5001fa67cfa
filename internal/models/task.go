package models

// Task represents a todo item that belongs to a list
type Task struct {
	ID     int64  `gorm:"primarykey" json:"id"`
	UUID   string `gorm:"column:uuid;size:36;uniqueIndex" json:"uuid"`
	ListID int64  `gorm:"not null;index" json:"list_id"`
	Title  string `gorm:"not null" json:"title"`
	Note   string `json:"note"`
	Prio   int    `gorm:"not null;default:0" json:"prio"` // 0=no priority, 1=low, 2=medium, 3=high
	Compl  bool   `gorm:"column:compl;not null;default:false;index" json:"compl"`

	DCreated   int64 `gorm:"column:d_created;not null;default:0" json:"d_created"`
	DEdited    int64 `gorm:"column:d_edited;not null;default:0" json:"d_edited"`
	DCompleted int64 `gorm:"column:d_completed;not null;default:0" json:"d_completed"`
}

// Tag represents a task tag
type Tag struct {
	ID   int64  `gorm:"primarykey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// TaskTag is the join table between tasks and tags. ListID is denormalized
// so a whole list's associations can be dropped without a join.
type TaskTag struct {
	TaskID int64 `gorm:"primaryKey"`
	TagID  int64 `gorm:"primaryKey"`
	ListID int64 `gorm:"not null;index"`
}
