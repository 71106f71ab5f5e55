package script

import "regexp"

// Parser builds a syntax tree from tokens by recursive descent with one
// token of lookahead.
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a parser over tokens, which must end with TokenEOF.
func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		tokens = append(tokens, Token{Type: TokenEOF})
	}
	return &Parser{tokens: tokens}
}

// ParseTopLevels lexes and parses source into its top-level items.
func ParseTopLevels(source string) ([]TopLevel, error) {
	tokens, err := Lex(source)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// Parse consumes every token and returns the top-level items in source order.
func (p *Parser) Parse() ([]TopLevel, error) {
	var items []TopLevel
	for p.peek().Type != TokenEOF {
		item, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *Parser) parseTopLevel() (TopLevel, error) {
	switch p.peek().Type {
	case TokenImport:
		return p.parseImport()
	case TokenAt:
		return p.parseDirective()
	}

	s, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if requiresTerminator(s) {
		if _, err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// requiresTerminator reports whether a statement must be followed by ';'.
// Loops are closed by their body.
func requiresTerminator(s Stmt) bool {
	_, isLoop := s.(*ForLoop)
	return !isLoop
}

func (p *Parser) parseImport() (*Import, error) {
	kw := p.next()
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	var names []string
	err := p.list(TokenRBrace, func() error {
		name, err := p.expect(TokenIdent)
		if err != nil {
			return err
		}
		names = append(names, name.Value)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenFrom); err != nil {
		return nil, err
	}
	source, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &Import{Names: names, Source: source.Value, pos: kw.Pos}, nil
}

func (p *Parser) parseDirective() (*Directive, error) {
	at := p.next()
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenEqual); err != nil {
		return nil, err
	}
	value, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &Directive{Name: name.Value, Value: value.Value, pos: at.Pos}, nil
}

func (p *Parser) parseStmt() (Stmt, error) {
	switch p.peek().Type {
	case TokenLet:
		kw := p.next()
		name, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenEqual); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Assignment{Name: name.Value, Value: value, pos: kw.Pos}, nil

	case TokenFor:
		return p.parseFor()
	}

	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ExprStmt{X: x}, nil
}

func (p *Parser) parseFor() (*ForLoop, error) {
	kw := p.next()
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenIn); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	loop := &ForLoop{Var: name.Value, Iter: iter, pos: kw.Pos}
	err = p.listSep(TokenRBrace, TokenSemicolon, func() error {
		s, err := p.parseStmt()
		if err != nil {
			return err
		}
		loop.Body = append(loop.Body, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loop, nil
}

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseConcat()
}

// parseConcat handles `..`, which is left associative.
func (p *Parser) parseConcat() (Expr, error) {
	left, err := p.parseBinding()
	if err != nil {
		return nil, err
	}
	for p.accept(TokenConcat) {
		right, err := p.parseBinding()
		if err != nil {
			return nil, err
		}
		left = &Concat{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseBinding() (Expr, error) {
	if p.peek().Type == TokenIdent && p.peekAt(1).Type == TokenColon {
		name := p.next()
		p.next() // ':'
		inner, err := p.parseFnOrDot()
		if err != nil {
			return nil, err
		}
		return &Binding{Name: name.Value, Inner: inner, pos: name.Pos}, nil
	}
	return p.parseFnOrDot()
}

func (p *Parser) parseFnOrDot() (Expr, error) {
	if p.peek().Type == TokenIdent && p.peekAt(1).Type == TokenLParen {
		name := p.next()
		p.next() // '('
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &FnCall{Name: name.Value, Args: args, pos: name.Pos}, nil
	}
	return p.parseDot()
}

// parseDot handles `.field` and `.method(args)` suffixes.
func (p *Parser) parseDot() (Expr, error) {
	x, err := p.parseParen()
	if err != nil {
		return nil, err
	}

	for p.accept(TokenPeriod) {
		name, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		if p.accept(TokenLParen) {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			x = &MethodCall{Receiver: x, Name: name.Value, Args: args}
			continue
		}
		x = &DotAccess{Receiver: x, Field: name.Value}
	}
	return x, nil
}

func (p *Parser) parseParen() (Expr, error) {
	if !p.accept(TokenLParen) {
		return p.parseLeaf()
	}
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return x, nil
}

func (p *Parser) parseLeaf() (Expr, error) {
	tok := p.next()
	switch tok.Type {
	case TokenString:
		return &StringLit{Value: tok.Value, pos: tok.Pos}, nil
	case TokenRegex:
		re, err := regexp.Compile(tok.Value)
		if err != nil {
			return nil, &PatternCompileError{Pattern: tok.Value, Pos: tok.Pos, Err: err}
		}
		return &RegexLit{Source: tok.Value, Re: re, pos: tok.Pos}, nil
	case TokenIdent:
		return &Ident{Name: tok.Value, pos: tok.Pos}, nil
	default:
		return nil, &ParseError{Expected: "expression", Found: tok}
	}
}

// parseArgs parses a comma-separated argument list after the opening paren.
func (p *Parser) parseArgs() ([]Expr, error) {
	var args []Expr
	err := p.list(TokenRParen, func() error {
		arg, err := p.parseExpr()
		if err != nil {
			return err
		}
		args = append(args, arg)
		return nil
	})
	return args, err
}

func (p *Parser) list(terminal TokenType, item func() error) error {
	return p.listSep(terminal, TokenComma, item)
}

// listSep parses items separated by sep up to and including terminal.
// The list may be empty and may end with a separator.
func (p *Parser) listSep(terminal, sep TokenType, item func() error) error {
	for !p.accept(terminal) {
		if err := item(); err != nil {
			return err
		}
		if p.accept(sep) {
			continue
		}
		if _, err := p.expect(terminal); err != nil {
			return err
		}
		break
	}
	return nil
}

func (p *Parser) peek() Token {
	return p.peekAt(0)
}

// peekAt returns the token n positions ahead, or the EOF token.
func (p *Parser) peekAt(n int) Token {
	if p.current+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+n]
}

func (p *Parser) next() Token {
	tok := p.peek()
	if p.current < len(p.tokens)-1 {
		p.current++
	}
	return tok
}

func (p *Parser) accept(tt TokenType) bool {
	if p.peek().Type == tt {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.next()
	if tok.Type != tt {
		return tok, &ParseError{Expected: tt.String(), Found: tok}
	}
	return tok, nil
}
