package expr

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/tensorcanon/pkg/errors"
)

// Parse reads an index expression from its textual form.
//
// The grammar covers what index slots need in practice: symbols, integer
// literals, function application, parenthesized sub-expressions, and the
// binary operators + - * with the usual precedence. Operators build left
// associative [Op] nodes; no algebraic simplification is performed, so
// "i+j" and "j+i" parse to distinct expressions.
//
//	expr   := term (('+' | '-') term)*
//	term   := unary ('*' unary)*
//	unary  := '-' unary | atom
//	atom   := NUMBER | IDENT | IDENT '(' expr (',' expr)* ')' | '(' expr ')'
//
// Returns ErrCodeInvalidExpr on malformed input.
func Parse(input string) (Expr, error) {
	p := &parser{input: input}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return nil, errors.New(errors.ErrCodeInvalidExpr,
			"unexpected %q at offset %d in %q", p.input[p.pos], p.pos, p.input)
	}
	return e, nil
}

// MustParse is like Parse but panics on error. For tests and fixtures.
func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if op, ok := p.peekAny("+", "-"); ok {
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = NewOp(op, left, right)
			continue
		}
		return left, nil
	}
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if _, ok := p.peekAny("*"); ok {
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = NewOp("*", left, right)
			continue
		}
		return left, nil
	}
}

func (p *parser) parseUnary() (Expr, error) {
	p.skipSpace()
	if _, ok := p.peekAny("-"); ok {
		p.pos++
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NewOp("neg", inner), nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (Expr, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, errors.New(errors.ErrCodeInvalidExpr, "unexpected end of input in %q", p.input)
	}

	c := rune(p.input[p.pos])
	switch {
	case c == '(':
		p.pos++
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return e, nil

	case unicode.IsDigit(c):
		start := p.pos
		for p.pos < len(p.input) && unicode.IsDigit(rune(p.input[p.pos])) {
			p.pos++
		}
		v, err := strconv.ParseInt(p.input[start:p.pos], 10, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidExpr, err, "number at offset %d", start)
		}
		return NewNum(v), nil

	case isIdentStart(c):
		start := p.pos
		for p.pos < len(p.input) && isIdentPart(rune(p.input[p.pos])) {
			p.pos++
		}
		name := p.input[start:p.pos]
		p.skipSpace()
		if p.pos < len(p.input) && p.input[p.pos] == '(' {
			p.pos++
			var args []Expr
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				p.skipSpace()
				if p.pos < len(p.input) && p.input[p.pos] == ',' {
					p.pos++
					continue
				}
				break
			}
			if err := p.expect(')'); err != nil {
				return nil, err
			}
			return NewOp(name, args...), nil
		}
		return NewSym(name), nil
	}

	return nil, errors.New(errors.ErrCodeInvalidExpr,
		"unexpected %q at offset %d in %q", p.input[p.pos], p.pos, p.input)
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != c {
		return errors.New(errors.ErrCodeInvalidExpr,
			"expected %q at offset %d in %q", string(c), p.pos, p.input)
	}
	p.pos++
	return nil
}

func (p *parser) peekAny(ops ...string) (string, bool) {
	for _, op := range ops {
		if strings.HasPrefix(p.input[p.pos:], op) {
			return op, true
		}
	}
	return "", false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentPart(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}
