package resource

import (
	"fmt"
	"strings"
)

// Format renders a delta as a short human-readable list in canonical order,
// e.g. "+4 gold, -2 wood". Zero entries are omitted.
func (d Delta) Format() string {
	var parts []string
	for _, k := range Kinds {
		v, ok := d[k]
		if !ok || v == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%+d %s", v, strings.ToLower(string(k))))
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}
