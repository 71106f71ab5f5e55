/*
Package script implements the refactoring scripting language: a lexer,
a recursive-descent parser, a pattern matcher over editor text, and an
evaluator that turns a successful match into cursor-relative edits.

# Syntax

A script is a list of top-level items, each terminated by ';':

	@id="extract-not-eq";
	@name="Extract ! from !=";
	@description="Replace a != b with !(a == b)";

	let found = find(a:(/[\w_]+/ .. /\s+/) .. "!=" .. b:(/\s+/ .. /[\w_]+/));
	found.replace("!(" .. found.a .. "==" .. found.b .. ")");

  - `@key="value";` declares metadata. id, name and description are required.
  - `let name = expr;` binds a value; `expr;` evaluates for its effect.
  - "..." is a literal string, /.../ a regular expression (RE2 syntax).
    Neither processes escapes.
  - `a .. b` concatenates. Inside find it requires b to match immediately
    after a; elsewhere it joins two strings.
  - `name:expr` records the text matched by expr, read back as `match.name`.
  - `for` loops and imports are parsed but are rejected when evaluated.

# Evaluation

find(pattern) scans the logical buffer (every region of the editor context
joined together) for the first match that covers the selection. A match
covers the selection when it contains it and ends after the selection
starts. match.replace(text) produces Delete, Backspace and Insert
mutations that, applied at the cursor, swap the matched text for text.

A Script holds no mutable state; any number of goroutines may evaluate it
concurrently against their own contexts.
*/
package script
