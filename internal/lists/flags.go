package lists

// Bits of the packed taskview column.
const (
	bitCompleted = 1 << iota // set means completed tasks are hidden
	bitNotes
	bitHidden
)

// Flags are the display flags of a list.
type Flags struct {
	ShowCompleted bool
	ShowNotes     bool
	Hidden        bool
}

// completedBit converts between the show-completed flag and bit 0 of
// taskview. The stored bit is the inverse of the flag; only real lists use
// it, the all-tasks list stores the flag as is.
func completedBit(v bool) bool {
	return !v
}

// DecodeTaskview unpacks a taskview value.
func DecodeTaskview(taskview int) Flags {
	return Flags{
		ShowCompleted: completedBit(taskview&bitCompleted != 0),
		ShowNotes:     taskview&bitNotes != 0,
		Hidden:        taskview&bitHidden != 0,
	}
}

// Taskview packs the flags.
func (f Flags) Taskview() int {
	v := 0
	if completedBit(f.ShowCompleted) {
		v |= bitCompleted
	}
	if f.ShowNotes {
		v |= bitNotes
	}
	if f.Hidden {
		v |= bitHidden
	}
	return v
}

// NormalizeSort maps a requested task sort mode onto the supported ones:
// 0, 1..4 and 101..104. Anything else becomes 0.
func NormalizeSort(mode int) int {
	if mode < 0 || mode > 104 {
		return 0
	}
	if mode > 4 && mode < 101 {
		return 0
	}
	return mode
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
