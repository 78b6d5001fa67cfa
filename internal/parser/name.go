package parser

import "strings"

var nameStripper = strings.NewReplacer(`"`, "", "'", "", "<", "", ">", "", "&", "")

// SanitizeName trims a list name and drops quote and markup characters.
func SanitizeName(name string) string {
	return nameStripper.Replace(strings.TrimSpace(name))
}
