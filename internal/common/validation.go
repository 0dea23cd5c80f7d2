package common

import "strings"

// IsValidID checks the shape the loader guarantees for county, kingdom and
// character identifiers: non-empty, upper case, no surrounding whitespace.
func IsValidID(id string) bool {
	if id == "" {
		return false
	}
	if strings.TrimSpace(id) != id {
		return false
	}
	return id == strings.ToUpper(id)
}
