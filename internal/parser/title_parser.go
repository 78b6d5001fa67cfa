package parser

import (
	"regexp"
	"strings"
)

var (
	tagRegex      = regexp.MustCompile(`#([\p{L}0-9_,-]+)`)
	priorityRegex = regexp.MustCompile(`(^|\s)\+([a-zA-Z0-9]+)`)
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Title    string
	Tags     []string
	Priority int
	Errors   []string
}

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Task title #tag1,tag2 +priority"
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Tags:   []string{},
		Errors: []string{},
	}

	// Extract tags (#tag1,tag2 or #tag1 #tag2)
	for _, match := range tagRegex.FindAllStringSubmatch(input, -1) {
		// Split by comma in case of #tag1,tag2
		for _, tag := range strings.Split(match[1], ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" && !contains(result.Tags, tag) {
				result.Tags = append(result.Tags, tag)
			}
		}
	}
	input = tagRegex.ReplaceAllString(input, "")

	// Extract priority (+high, +3, +medium, etc.)
	if m := priorityRegex.FindStringSubmatch(input); m != nil {
		if prio, ok := PriorityToInt(m[2]); ok {
			result.Priority = prio
		} else {
			result.Errors = append(result.Errors, "Invalid priority '"+m[2]+"'. Use: low, medium, high, 1, 2, or 3")
		}
		input = priorityRegex.ReplaceAllString(input, "$1")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}

// PriorityToInt converts a priority name or number to 1..3.
func PriorityToInt(priority string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "1", "low":
		return 1, true
	case "2", "medium", "med":
		return 2, true
	case "3", "high":
		return 3, true
	default:
		return 0, false
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
