package lists

import (
	"golang.org/x/net/html"

	"github.com/balkashynov/tinytodo/internal/models"
)

// View is the serialized form of a list. Flags are 0/1 integers.
type View struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Sort      int    `json:"sort"`
	Published int    `json:"published"`
	ShowCompl int    `json:"showCompl"`
	ShowNotes int    `json:"showNotes"`
	Hidden    int    `json:"hidden"`
}

// Response is the envelope every operation answers with. Total is an
// affected-row count for some operations and a 1/0 success flag for others.
type Response struct {
	Total int64  `json:"total"`
	List  []View `json:"list,omitempty"`
}

func newView(row *models.List) View {
	flags := DecodeTaskview(row.Taskview)
	return View{
		ID:        row.ID,
		Name:      html.EscapeString(row.Name),
		Sort:      row.Sorting,
		Published: boolInt(row.Published),
		ShowCompl: boolInt(flags.ShowCompleted),
		ShowNotes: boolInt(flags.ShowNotes),
		Hidden:    boolInt(flags.Hidden),
	}
}

// Flags returns the display flags of the view.
func (v View) Flags() Flags {
	return Flags{
		ShowCompleted: v.ShowCompl != 0,
		ShowNotes:     v.ShowNotes != 0,
		Hidden:        v.Hidden != 0,
	}
}

// IsAllTasks reports whether the view is the all-tasks list.
func (v View) IsAllTasks() bool {
	return v.ID == AllTasksID
}

func ok() Response {
	return Response{Total: 1}
}
