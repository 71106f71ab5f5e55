package formatter

import (
	"fmt"
	"strings"

	"github.com/gnolang/kyber/internal/registry"
)

// FormatRefactorings renders one entry per refactoring with its id aligned
// in a column, followed by its origin and description.
func FormatRefactorings(entries []registry.Refactoring) string {
	width := 0
	for _, e := range entries {
		if n := len(e.ID()); n > width {
			width = n
		}
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(idStyle.Sprintf("%-*s", width, e.ID()))
		b.WriteString("  " + e.Script.Name() + "\n")
		pad := strings.Repeat(" ", width+2)
		b.WriteString(pad + noStyle.Sprint(e.Script.Description()) + "\n")
		b.WriteString(pad + fileStyle.Sprint(e.Origin) + "\n")
	}
	fmt.Fprintf(&b, "%d refactorings\n", len(entries))
	return b.String()
}
