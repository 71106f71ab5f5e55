package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ContentRegion is a contiguous span of editor text and whether it holds
// the cursor or selection.
type ContentRegion struct {
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

// EditorContext is the editor state a refactoring is evaluated against.
type EditorContext struct {
	Contents []ContentRegion `json:"contents"`
}

// NewContext builds a context from region texts, marking the region at
// index selected (use -1 for no selection).
func NewContext(selected int, texts ...string) EditorContext {
	regions := make([]ContentRegion, len(texts))
	for i, text := range texts {
		regions[i] = ContentRegion{Text: text, Selected: i == selected}
	}
	return EditorContext{Contents: regions}
}

// Buffer returns the logical buffer: every region's text in order.
func (c EditorContext) Buffer() string {
	var sb strings.Builder
	for _, r := range c.Contents {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Selection returns the byte span of the first selected region within the
// logical buffer, or [0:0) when no region is selected.
func (c EditorContext) Selection() Range {
	start := 0
	for _, r := range c.Contents {
		if r.Selected {
			return Range{Start: start, End: start + len(r.Text)}
		}
		start += len(r.Text)
	}
	return Range{}
}

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// NewRange creates a new Range from start and end offsets.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Shift moves the range forward by offset bytes.
func (r Range) Shift(offset int) Range {
	return Range{Start: r.Start + offset, End: r.End + offset}
}

// MutationKind identifies one of the editing primitives an editor applies
// at the cursor.
type MutationKind uint8

const (
	MutationDelete MutationKind = iota
	MutationBackspace
	MutationInsert
)

func (k MutationKind) String() string {
	switch k {
	case MutationDelete:
		return "delete"
	case MutationBackspace:
		return "backspace"
	case MutationInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Mutation is a single cursor-relative edit. Count is used by delete and
// backspace, Text by insert.
type Mutation struct {
	Kind  MutationKind
	Count int
	Text  string
}

// Delete removes n bytes forward of the cursor.
func Delete(n int) Mutation {
	return Mutation{Kind: MutationDelete, Count: n}
}

// Backspace removes n bytes behind the cursor.
func Backspace(n int) Mutation {
	return Mutation{Kind: MutationBackspace, Count: n}
}

// Insert types text at the cursor.
func Insert(text string) Mutation {
	return Mutation{Kind: MutationInsert, Text: text}
}

func (m Mutation) String() string {
	switch m.Kind {
	case MutationDelete:
		return fmt.Sprintf("Delete(%d)", m.Count)
	case MutationBackspace:
		return fmt.Sprintf("Backspace(%d)", m.Count)
	case MutationInsert:
		return fmt.Sprintf("Insert(%q)", m.Text)
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the mutation as a single-key tagged object:
// {"delete": n}, {"backspace": n} or {"insert": s}.
func (m Mutation) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case MutationDelete, MutationBackspace:
		return json.Marshal(map[string]int{m.Kind.String(): m.Count})
	case MutationInsert:
		return json.Marshal(map[string]string{m.Kind.String(): m.Text})
	default:
		return nil, fmt.Errorf("unknown mutation kind %d", m.Kind)
	}
}

func (m *Mutation) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return fmt.Errorf("mutation must have exactly one key, found %d", len(tagged))
	}

	for key, raw := range tagged {
		switch key {
		case "delete", "backspace":
			var n int
			if err := json.Unmarshal(raw, &n); err != nil {
				return fmt.Errorf("mutation %q: %w", key, err)
			}
			if key == "delete" {
				*m = Delete(n)
			} else {
				*m = Backspace(n)
			}
		case "insert":
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return fmt.Errorf("mutation %q: %w", key, err)
			}
			*m = Insert(s)
		default:
			return fmt.Errorf("unknown mutation %q", key)
		}
	}
	return nil
}
