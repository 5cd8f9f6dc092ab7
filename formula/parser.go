package formula

import (
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp     // + - * / % ^
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	pos  int
	text string
	val  float64 // tokNumber only
}

type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := l.input[l.pos]

	switch {
	case c == '(':
		l.pos++
		return token{kind: tokLParen, pos: start, text: "("}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, pos: start, text: ")"}, nil
	case strings.IndexByte("+-*/%^", c) >= 0:
		l.pos++
		return token{kind: tokOp, pos: start, text: string(c)}, nil
	case c >= '0' && c <= '9' || c == '.':
		return l.lexNumber()
	case c == '`':
		return l.lexQuotedIdent()
	case isIdentStart(c):
		for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, pos: start, text: l.input[start:l.pos]}, nil
	default:
		return token{}, &ErrParse{Pos: start, Msg: "unexpected character " + strconv.QuoteRune(rune(c))}
	}
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '.') {
		l.pos++
	}
	// Exponent part, e.g. 1e-3.
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		mark := l.pos
		l.pos++
		if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = mark // not an exponent, e.g. "2e" where e starts an ident
		}
	}
	text := l.input[start:l.pos]
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, &ErrParse{Pos: start, Msg: "malformed number " + strconv.Quote(text)}
	}
	return token{kind: tokNumber, pos: start, text: text, val: val}, nil
}

func (l *lexer) lexQuotedIdent() (token, error) {
	start := l.pos
	l.pos++ // opening backtick
	nameStart := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '`' {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{}, &ErrParse{Pos: start, Msg: "unterminated quoted identifier"}
	}
	name := l.input[nameStart:l.pos]
	l.pos++ // closing backtick
	if name == "" {
		return token{}, &ErrParse{Pos: start, Msg: "empty quoted identifier"}
	}
	return token{kind: tokIdent, pos: start, text: name}, nil
}

func isSpace(c byte) bool      { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }

// parser is a recursive-descent parser with the precedence
// (low to high): + -, * / %, unary -, ^ (right-associative).
type parser struct {
	lex *lexer
	tok token
}

func (p *parser) next() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) parseExpr() (node, error) {
	return p.parseAdditive()
}

func (p *parser) parseAdditive() (node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp && (p.tok.text == "+" || p.tok.text == "-") {
		op := p.tok.text[0]
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp && (p.tok.text == "*" || p.tok.text == "/" || p.tok.text == "%") {
		op := p.tok.text[0]
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.tok.kind == tokOp && (p.tok.text == "-" || p.tok.text == "+") {
		neg := p.tok.text == "-"
		if err := p.next(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if neg {
			return unaryNode{op: '-', x: x}, nil
		}
		return x, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokOp && p.tok.text == "^" {
		if err := p.next(); err != nil {
			return nil, err
		}
		// Right-associative; the exponent may carry its own unary sign,
		// so 2^-3 parses as 2^(-3).
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: '^', l: base, r: exp}, nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.tok.kind {
	case tokNumber:
		n := numberNode{val: p.tok.val}
		return n, p.next()

	case tokIdent:
		name := p.tok.text
		pos := p.tok.pos
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokLParen {
			if !isFunction(name) {
				return nil, &ErrParse{Pos: pos, Msg: "unknown function " + strconv.Quote(name)}
			}
			if err := p.next(); err != nil {
				return nil, err
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if p.tok.kind != tokRParen {
				return nil, &ErrParse{Pos: p.tok.pos, Msg: "expected closing parenthesis"}
			}
			return callNode{fn: name, arg: arg}, p.next()
		}
		return varNode{name: name}, nil

	case tokLParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, &ErrParse{Pos: p.tok.pos, Msg: "expected closing parenthesis"}
		}
		return inner, p.next()

	case tokEOF:
		return nil, &ErrParse{Pos: p.tok.pos, Msg: "unexpected end of formula"}

	default:
		return nil, &ErrParse{Pos: p.tok.pos, Msg: "unexpected token " + strconv.Quote(p.tok.text)}
	}
}
