package common

import (
	"fmt"
	"image/color"
	"strings"
)

// NeutralColor is the display color for unowned land.
var NeutralColor = color.RGBA{120, 120, 120, 255}

// ParseHexColor converts a "#rrggbb" kingdom color from map data. Malformed
// values fall back to the neutral gray.
func ParseHexColor(s string) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return NeutralColor
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return NeutralColor
	}
	return color.RGBA{r, g, b, 255}
}

// AnsiForeground returns the closest basic ANSI foreground code for a color,
// for console rendering of kingdom ownership.
func AnsiForeground(c color.RGBA) string {
	// Eight basic terminal colors; pick by dominant channel.
	switch {
	case c.R > 180 && c.G > 180 && c.B < 100:
		return "\033[33m" // yellow
	case c.R > 150 && c.G < 120 && c.B < 120:
		return "\033[31m" // red
	case c.G > 150 && c.R < 120 && c.B < 120:
		return "\033[32m" // green
	case c.B > 150 && c.R < 120 && c.G < 150:
		return "\033[34m" // blue
	case c.R > 150 && c.B > 150:
		return "\033[35m" // magenta
	case c.G > 150 && c.B > 150:
		return "\033[36m" // cyan
	default:
		return "\033[37m" // white
	}
}

// AnsiReset clears terminal color state.
const AnsiReset = "\033[0m"
