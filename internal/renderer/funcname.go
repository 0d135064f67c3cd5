package renderer

import (
	"fmt"
	"strings"
)

// ToFunctionName maps a human-readable kernel name to an identifier that
// is valid in every device language we render to. Letters, digits and
// underscores pass through; any other byte becomes its two-digit uppercase
// hex code. A leading digit gets an "n" prefix.
func ToFunctionName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%02X", c)
		}
	}
	out := b.String()
	if out == "" {
		return "_"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "n" + out
	}
	return out
}
