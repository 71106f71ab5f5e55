package script

import (
	"fmt"
	"regexp"
	"strings"
)

// Node is implemented by every syntax tree element.
type Node interface {
	Position() Position // where the node starts in the source
	String() string     // debugging or printing purpose
}

// TopLevel is an item at the outermost level of a script.
type TopLevel interface {
	Node
	topLevel()
}

// Stmt is a statement, valid at the top level or inside a loop body.
type Stmt interface {
	TopLevel
	stmt()
}

// Expr is an expression.
type Expr interface {
	Node
	expr()
}

var (
	_ TopLevel = (*Import)(nil)
	_ TopLevel = (*Directive)(nil)
	_ Stmt     = (*Assignment)(nil)
	_ Stmt     = (*ExprStmt)(nil)
	_ Stmt     = (*ForLoop)(nil)

	_ Expr = (*Binding)(nil)
	_ Expr = (*DotAccess)(nil)
	_ Expr = (*FnCall)(nil)
	_ Expr = (*MethodCall)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*StringLit)(nil)
	_ Expr = (*RegexLit)(nil)
	_ Expr = (*Concat)(nil)
)

// Import is `{ a, b } from "source";`.
type Import struct {
	Names  []string
	Source string
	pos    Position
}

func (i *Import) Position() Position { return i.pos }
func (i *Import) String() string {
	return fmt.Sprintf("Import(%s from %q)", strings.Join(i.Names, ", "), i.Source)
}
func (*Import) topLevel() {}

// Directive is `@name="value";` metadata.
type Directive struct {
	Name  string
	Value string
	pos   Position
}

func (d *Directive) Position() Position { return d.pos }
func (d *Directive) String() string     { return fmt.Sprintf("Directive(%s=%q)", d.Name, d.Value) }
func (*Directive) topLevel()            {}

// Assignment is `let name = value;`.
type Assignment struct {
	Name  string
	Value Expr
	pos   Position
}

func (a *Assignment) Position() Position { return a.pos }
func (a *Assignment) String() string     { return fmt.Sprintf("Let(%s, %s)", a.Name, a.Value) }
func (*Assignment) topLevel()            {}
func (*Assignment) stmt()                {}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) Position() Position { return s.X.Position() }
func (s *ExprStmt) String() string     { return s.X.String() }
func (*ExprStmt) topLevel()            {}
func (*ExprStmt) stmt()                {}

// ForLoop is `for name in iter { body }`. It parses but does not execute.
type ForLoop struct {
	Var  string
	Iter Expr
	Body []Stmt
	pos  Position
}

func (f *ForLoop) Position() Position { return f.pos }
func (f *ForLoop) String() string {
	body := make([]string, len(f.Body))
	for i, s := range f.Body {
		body[i] = s.String()
	}
	return fmt.Sprintf("For(%s in %s {%s})", f.Var, f.Iter, strings.Join(body, "; "))
}
func (*ForLoop) topLevel() {}
func (*ForLoop) stmt()     {}

// Binding is `name:inner`, recording inner's matched text as a capture.
type Binding struct {
	Name  string
	Inner Expr
	pos   Position
}

func (b *Binding) Position() Position { return b.pos }
func (b *Binding) String() string     { return fmt.Sprintf("Bind(%s, %s)", b.Name, b.Inner) }
func (*Binding) expr()                {}

// DotAccess is `receiver.field`.
type DotAccess struct {
	Receiver Expr
	Field    string
}

func (d *DotAccess) Position() Position { return d.Receiver.Position() }
func (d *DotAccess) String() string     { return fmt.Sprintf("Dot(%s, %s)", d.Receiver, d.Field) }
func (*DotAccess) expr()                {}

// FnCall is `name(args...)`.
type FnCall struct {
	Name string
	Args []Expr
	pos  Position
}

func (f *FnCall) Position() Position { return f.pos }
func (f *FnCall) String() string     { return fmt.Sprintf("Call(%s%s)", f.Name, argsString(f.Args)) }
func (*FnCall) expr()                {}

// MethodCall is `receiver.name(args...)`.
type MethodCall struct {
	Receiver Expr
	Name     string
	Args     []Expr
}

func (m *MethodCall) Position() Position { return m.Receiver.Position() }
func (m *MethodCall) String() string {
	return fmt.Sprintf("Method(%s, %s%s)", m.Receiver, m.Name, argsString(m.Args))
}
func (*MethodCall) expr() {}

// Ident is a variable reference.
type Ident struct {
	Name string
	pos  Position
}

func (i *Ident) Position() Position { return i.pos }
func (i *Ident) String() string     { return fmt.Sprintf("Ident(%s)", i.Name) }
func (*Ident) expr()                {}

// StringLit is a double-quoted literal.
type StringLit struct {
	Value string
	pos   Position
}

func (s *StringLit) Position() Position { return s.pos }
func (s *StringLit) String() string     { return fmt.Sprintf("String(%q)", s.Value) }
func (*StringLit) expr()                {}

// RegexLit is a slash-delimited pattern, compiled when the script is parsed.
type RegexLit struct {
	Source string
	Re     *regexp.Regexp
	pos    Position
}

func (r *RegexLit) Position() Position { return r.pos }
func (r *RegexLit) String() string     { return fmt.Sprintf("Regex(/%s/)", r.Source) }
func (*RegexLit) expr()                {}

// Concat is `left .. right`.
type Concat struct {
	Left  Expr
	Right Expr
}

func (c *Concat) Position() Position { return c.Left.Position() }
func (c *Concat) String() string     { return fmt.Sprintf("Concat(%s, %s)", c.Left, c.Right) }
func (*Concat) expr()                {}

func argsString(args []Expr) string {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(", ")
		sb.WriteString(a.String())
	}
	return sb.String()
}
