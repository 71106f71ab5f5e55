package script

import "unicode/utf8"

// Lexer scans script source and produces tokens.
type Lexer struct {
	input  string
	pos    int // current reading position in input
	line   int
	col    int
	tokens []Token
}

// NewLexer returns a new Lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		col:    1,
		tokens: make([]Token, 0),
	}
}

// Lex performs lexical analysis on the input string
// and returns a sequence of tokens terminated by TokenEOF.
func Lex(input string) ([]Token, error) {
	return NewLexer(input).Tokenize()
}

// Tokenize processes the entire input. The first unrecognized byte
// sequence aborts lexing with a *LexError.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		start := l.position()

		switch {
		case isWhitespace(c):
			l.advance(1)

		case isIdentStart(c):
			end := l.pos + 1
			for end < len(l.input) && isIdentChar(l.input[end]) {
				end++
			}
			word := l.input[l.pos:end]
			if kw, ok := keywords[word]; ok {
				l.emit(kw, "", start)
			} else {
				l.emit(TokenIdent, word, start)
			}
			l.advance(end - l.pos)

		case c == '"':
			if err := l.delimited(TokenString, '"', true); err != nil {
				return nil, err
			}

		case c == '/':
			if err := l.delimited(TokenRegex, '/', false); err != nil {
				return nil, err
			}

		case c == '.':
			// maximal munch: ".." wins over "."
			if l.pos+1 < len(l.input) && l.input[l.pos+1] == '.' {
				l.emit(TokenConcat, "", start)
				l.advance(2)
			} else {
				l.emit(TokenPeriod, "", start)
				l.advance(1)
			}

		default:
			tt, ok := punctuation[c]
			if !ok {
				_, size := utf8.DecodeRuneInString(l.input[l.pos:])
				return nil, &LexError{Pos: start, Text: l.input[l.pos : l.pos+size]}
			}
			l.emit(tt, "", start)
			l.advance(1)
		}
	}

	l.emit(TokenEOF, "", l.position())
	return l.tokens, nil
}

var punctuation = map[byte]TokenType{
	'{': TokenLBrace,
	'}': TokenRBrace,
	'(': TokenLParen,
	')': TokenRParen,
	',': TokenComma,
	';': TokenSemicolon,
	':': TokenColon,
	'@': TokenAt,
	'=': TokenEqual,
}

// delimited scans a literal enclosed by delim, taking its contents
// verbatim. Escapes are not processed.
func (l *Lexer) delimited(tt TokenType, delim byte, allowEmpty bool) error {
	start := l.position()
	end := l.pos + 1
	for end < len(l.input) && l.input[end] != delim {
		end++
	}
	if end >= len(l.input) || (!allowEmpty && end == l.pos+1) {
		stop := end
		if stop < len(l.input) {
			stop++
		}
		return &LexError{Pos: start, Text: l.input[l.pos:stop]}
	}

	l.emit(tt, l.input[l.pos+1:end], start)
	l.advance(end + 1 - l.pos)
	return nil
}

func (l *Lexer) emit(tt TokenType, value string, pos Position) {
	l.tokens = append(l.tokens, Token{Type: tt, Value: value, Pos: pos})
}

// advance consumes n bytes, keeping line and column in step.
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Col: l.col}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f'
}

func isIdentStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9') || c == '_'
}
