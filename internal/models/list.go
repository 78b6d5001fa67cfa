package models

// List represents a task list row. Display flags are packed into Taskview.
type List struct {
	ID        int64  `gorm:"primarykey" json:"id"`
	UUID      string `gorm:"column:uuid;size:36;uniqueIndex" json:"uuid"`
	Name      string `gorm:"not null" json:"name"`
	Ow        int    `gorm:"column:ow;not null;default:0;index" json:"ow"` // ordering key
	Published bool   `gorm:"not null;default:false" json:"published"`
	Taskview  int    `gorm:"column:taskview;not null;default:0" json:"taskview"`
	Sorting   int    `gorm:"not null;default:0" json:"sorting"`

	// Unix seconds
	DCreated int64 `gorm:"column:d_created;not null;default:0" json:"d_created"`
	DEdited  int64 `gorm:"column:d_edited;not null;default:0" json:"d_edited"`
}
