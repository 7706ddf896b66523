// Package parser turns a single lexed line into zero or more top-level
// ast.Node statements. One recursive-descent parser covers the statement
// grammar and the expression grammar together, because the language's
// argument grammar is itself recursive: `argument = word | list |
// expression`, and `expression` admits conventional-precedence infix
// arithmetic (=, then + -, then * /, then unary -) alongside nested
// function-call expressions whose own arguments follow the same argument
// grammar. Infix operators desugar directly to the named arithmetic
// procedure they stand for (+ -> sum, - -> difference, * -> product,
// / -> quotient, = -> equalp, unary - -> minus) so pkg/eval never needs to
// know whether an expression was written prefix or infix.
package parser

import (
	"strings"
	"unicode"

	"github.com/mbianchi/mlogo/pkg/ast"
	"github.com/mbianchi/mlogo/pkg/lexer"
	"github.com/mbianchi/mlogo/pkg/logoerr"
	"github.com/mbianchi/mlogo/pkg/value"
)

// parser holds the mutable state of one parse over a token stream.
type parser struct {
	toks   []lexer.Token
	pos    int
	line   string
	lookup ast.ArityLookup
}

// ParseLine lexes and parses a single line into its top-level statements.
// lookup resolves a procedure name to its declared argument count, which
// decides how many following tokens each call consumes.
func ParseLine(line string, lookup ast.ArityLookup) ([]ast.Node, error) {
	toks, err := lexer.Lex(line)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, line: line, lookup: lookup}

	var stmts []ast.Node
	for p.cur().Type != lexer.EOF {
		n, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, n)
	}
	return stmts, nil
}

func (p *parser) cur() lexer.Token { return p.toks[p.pos] }

func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errAt(tok lexer.Token) error {
	return &logoerr.SyntaxError{Line: p.line, Pos: tok.Pos}
}

// parseStatement parses `proc_name argument*`, where argument count comes
// from the procedure table. A token at the top of a statement that isn't a
// proc_name (a raw word, variable, list, or operator) is rejected: the
// grammar never starts a statement any other way.
func (p *parser) parseStatement() (ast.Node, error) {
	tok := p.cur()
	if tok.Type != lexer.IDENT {
		return nil, p.errAt(tok)
	}
	p.advance()
	return p.parseCall(tok)
}

// parseCall consumes exactly arity(name) arguments for a proc_name already
// read from the token stream, at either statement or expression depth.
func (p *parser) parseCall(nameTok lexer.Token) (ast.Node, error) {
	name := nameTok.Lexeme
	arity, err := p.lookup.GetProcedureNArgs(name)
	if err != nil {
		return nil, err
	}
	args := make([]ast.Node, 0, arity)
	for i := 0; i < arity; i++ {
		if p.cur().Type == lexer.EOF {
			return nil, p.errAt(nameTok)
		}
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &ast.ProcCall{Name: name, Args: args}, nil
}

// parseArgument implements `argument = word | list | expression`. A word or
// list literal is taken verbatim; everything else is parsed as an
// expression, which covers numbers, variables, parenthesized sub-expressions
// and nested function calls.
func (p *parser) parseArgument() (ast.Node, error) {
	switch p.cur().Type {
	case lexer.WORD:
		t := p.advance()
		return ast.Const{Value: value.NewWord(t.Lexeme)}, nil
	case lexer.LISTLIT:
		t := p.advance()
		v, err := ParseListLiteral(t.Lexeme)
		if err != nil {
			return nil, err
		}
		return ast.Const{Value: v}, nil
	default:
		return p.parseExpression()
	}
}

func (p *parser) parseExpression() (ast.Node, error) {
	return p.parseEquality()
}

// parseEquality is the lowest-precedence level: `=`.
func (p *parser) parseEquality() (ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == lexer.EQUALS {
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.ProcCall{Name: "equalp", Args: []ast.Node{left, right}}
	}
	return left, nil
}

// parseAdditive handles `+` and `-`, left-associative.
func (p *parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var name string
		switch p.cur().Type {
		case lexer.PLUS:
			name = "sum"
		case lexer.MINUS:
			name = "difference"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.ProcCall{Name: name, Args: []ast.Node{left, right}}
	}
}

// parseMultiplicative handles `*` and `/`, left-associative.
func (p *parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var name string
		switch p.cur().Type {
		case lexer.STAR:
			name = "product"
		case lexer.SLASH:
			name = "quotient"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.ProcCall{Name: name, Args: []ast.Node{left, right}}
	}
}

// parseUnary handles a leading `-`, which desugars to the arity-1 `minus`
// builtin rather than reusing `difference` (which takes two operands).
func (p *parser) parseUnary() (ast.Node, error) {
	if p.cur().Type == lexer.MINUS {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.ProcCall{Name: "minus", Args: []ast.Node{operand}}, nil
	}
	return p.parsePrimary()
}

// parsePrimary handles the grammar's atoms: number, variable, a
// parenthesized expression, or a function-call expression (a proc_name
// followed by its own arguments, parsed with the same argument grammar).
func (p *parser) parsePrimary() (ast.Node, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		return ast.Const{Value: value.NewWord(tok.Lexeme)}, nil
	case lexer.VARIABLE:
		p.advance()
		return ast.VarRef{Name: tok.Lexeme}, nil
	case lexer.LPAREN:
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.cur().Type != lexer.RPAREN {
			return nil, p.errAt(p.cur())
		}
		p.advance()
		return e, nil
	case lexer.IDENT:
		p.advance()
		return p.parseCall(tok)
	case lexer.UNSUPPORTED:
		// `~`, `!`, `%`, ... look like infix operators but aren't part of
		// the expression grammar.
		return nil, p.errAt(tok)
	default:
		return nil, p.errAt(tok)
	}
}

// ParseListLiteral parses the raw text of a bracketed list literal
// (including its own enclosing brackets) into a value.Value list. List
// contents are not recursively parsed: each whitespace-separated run becomes
// a Word element verbatim, including a bracketed sub-run, whose brackets
// stay part of its literal text rather than becoming a nested list value.
// That nested text is only interpreted structurally later, when a consuming
// builtin (repeat, a user-defined procedure body) re-lexes and re-parses it
// as code.
func ParseListLiteral(raw string) (value.Value, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return value.Value{}, &logoerr.SyntaxError{Line: raw, Pos: 0}
	}
	return parseListBody([]rune(trimmed[1 : len(trimmed)-1]))
}

func parseListBody(runes []rune) (value.Value, error) {
	var items []value.Value
	i := 0
	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		if i >= len(runes) {
			break
		}
		if runes[i] == '[' {
			depth := 0
			start := i
			for i < len(runes) {
				switch runes[i] {
				case '[':
					depth++
				case ']':
					depth--
				}
				i++
				if depth == 0 {
					break
				}
			}
			if depth != 0 {
				return value.Value{}, &logoerr.SyntaxError{Line: string(runes), Pos: start}
			}
			items = append(items, value.NewWord(string(runes[start:i])))
			continue
		}
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != '[' && runes[i] != ']' {
			i++
		}
		items = append(items, value.NewWord(string(runes[start:i])))
	}
	return value.NewList(items...), nil
}
