package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/gnolang/kyber/internal/registry"
	"github.com/gnolang/kyber/script"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	kindStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	idStyle      = color.New(color.FgGreen, color.Bold)
	noStyle      = color.New(color.FgWhite)
)

// FormatLoadError renders a script load failure. Errors that carry a source
// position are shown with the offending line and a caret under the column.
func FormatLoadError(err error) string {
	filename, source := "<input>", ""
	var loadErr *registry.LoadError
	if errors.As(err, &loadErr) {
		filename, source = loadErr.Path, loadErr.Source
	}

	kind, message := describe(err)

	var b strings.Builder
	b.WriteString(errorStyle.Sprint("error: ") + kindStyle.Sprint(kind) + "\n")

	pos, ok := script.ErrorPosition(err)
	lines := strings.Split(source, "\n")
	if !ok || source == "" || pos.Line < 1 || pos.Line > len(lines) {
		b.WriteString(lineStyle.Sprint(" --> ") + fileStyle.Sprint(filename) + "\n")
		b.WriteString(lineStyle.Sprint("  | ") + messageStyle.Sprintf("%s\n\n", message))
		return b.String()
	}

	lineNumber := fmt.Sprintf("%d", pos.Line)
	padding := strings.Repeat(" ", len(lineNumber))

	b.WriteString(lineStyle.Sprintf("%s--> ", padding) + fileStyle.Sprintf("%s:%d:%d", filename, pos.Line, pos.Col) + "\n")
	b.WriteString(lineStyle.Sprintf("%s |\n", padding))

	line := lines[pos.Line-1]
	b.WriteString(lineStyle.Sprintf("%s | ", lineNumber))
	b.WriteString(expandTabs(line) + "\n")

	b.WriteString(lineStyle.Sprintf("%s | ", padding))
	b.WriteString(strings.Repeat(" ", calculateVisualColumn(line, pos.Col)))
	b.WriteString(messageStyle.Sprintf("^ %s\n\n", message))

	return b.String()
}

// describe names the error class and strips the position prefix, which the
// snippet already shows.
func describe(err error) (kind, message string) {
	var (
		lexErr     *script.LexError
		parseErr   *script.ParseError
		patternErr *script.PatternCompileError
	)
	switch {
	case errors.As(err, &lexErr):
		return "lex error", fmt.Sprintf("unrecognized input %q", lexErr.Text)
	case errors.As(err, &parseErr):
		return "parse error", fmt.Sprintf("expected %s, found %s", parseErr.Expected, parseErr.Found)
	case errors.As(err, &patternErr):
		return "invalid regex", fmt.Sprintf("/%s/: %v", patternErr.Pattern, patternErr.Err)
	case errors.Is(err, script.ErrMissingDirective), errors.Is(err, script.ErrDuplicateDirective):
		return "invalid directives", unwrapLoad(err).Error()
	default:
		return "load error", unwrapLoad(err).Error()
	}
}

func unwrapLoad(err error) error {
	var loadErr *registry.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Err
	}
	return err
}

func expandTabs(line string) string {
	var expanded strings.Builder
	for i, ch := range line {
		if ch == '\t' {
			spaceCount := tabWidth - (i % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaceCount))
		} else {
			expanded.WriteRune(ch)
		}
	}
	return expanded.String()
}

// calculateVisualColumn converts a 1-based byte column into the number of
// screen cells before it.
func calculateVisualColumn(line string, column int) int {
	visualColumn := 0
	for i, ch := range line {
		if i+1 >= column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}
