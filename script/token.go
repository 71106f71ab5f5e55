package script

import "fmt"

// TokenType defines the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota

	// keywords
	TokenImport
	TokenFrom
	TokenLet
	TokenFor
	TokenIn

	TokenLBrace    // {
	TokenRBrace    // }
	TokenLParen    // (
	TokenRParen    // )
	TokenComma     // ,
	TokenSemicolon // ;
	TokenColon     // :
	TokenConcat    // ..
	TokenPeriod    // .
	TokenAt        // @
	TokenEqual     // =

	TokenIdent
	TokenString // "verbatim"
	TokenRegex  // /verbatim/
)

var tokenNames = map[TokenType]string{
	TokenEOF:       "EOF",
	TokenImport:    `"import"`,
	TokenFrom:      `"from"`,
	TokenLet:       `"let"`,
	TokenFor:       `"for"`,
	TokenIn:        `"in"`,
	TokenLBrace:    `"{"`,
	TokenRBrace:    `"}"`,
	TokenLParen:    `"("`,
	TokenRParen:    `")"`,
	TokenComma:     `","`,
	TokenSemicolon: `";"`,
	TokenColon:     `":"`,
	TokenConcat:    `".."`,
	TokenPeriod:    `"."`,
	TokenAt:        `"@"`,
	TokenEqual:     `"="`,
	TokenIdent:     "identifier",
	TokenString:    "string",
	TokenRegex:     "regex",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "Unknown"
}

var keywords = map[string]TokenType{
	"import": TokenImport,
	"from":   TokenFrom,
	"let":    TokenLet,
	"for":    TokenFor,
	"in":     TokenIn,
}

// Position is a location in script source. Line and Col are 1-based.
type Position struct {
	Offset int
	Line   int
	Col    int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d col %d", p.Line, p.Col)
}

// Token represents a lexical token. Value holds the identifier name or the
// literal contents without their delimiters.
type Token struct {
	Type  TokenType
	Value string
	Pos   Position
}

func (t Token) String() string {
	switch t.Type {
	case TokenIdent:
		return fmt.Sprintf("identifier %q", t.Value)
	case TokenString:
		return fmt.Sprintf("string %q", t.Value)
	case TokenRegex:
		return fmt.Sprintf("regex /%s/", t.Value)
	default:
		return t.Type.String()
	}
}
