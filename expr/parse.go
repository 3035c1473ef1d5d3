package expr

import (
	"fmt"
	"strconv"
)

// SyntaxError reports where a source text failed to parse.
type SyntaxError struct {
	Message string
	Position
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

type Expression interface {
	// TBD
}

type literal struct {
	value any
}

type field struct {
	ident string
}

type member struct {
	left  Expression
	ident string
}

type index struct {
	left  Expression
	index Expression
}

type call struct {
	ident string
	args  []Expression
}

type test struct {
	cdt Expression
	csq Expression
	alt Expression
}

type unary struct {
	op    rune
	right Expression
}

type binary struct {
	op    rune
	left  Expression
	right Expression
}

const (
	powLowest  = iota
	powTernary // ?:
	powOr      // ||
	powAnd     // &&
	powEqual   // ==, !=
	powCompare // <, <=, >, >=
	powAdd     // +, -
	powMul     // /, *, %
	powPow     // **
	powPrefix
	powCall // (), ., []
)

type powerMap map[rune]int

func (p powerMap) Get(r rune) int {
	v, ok := p[r]
	if !ok {
		return powLowest
	}
	return v
}

var powers = powerMap{
	Add:     powAdd,
	Sub:     powAdd,
	Mul:     powMul,
	Div:     powMul,
	Mod:     powMul,
	Pow:     powPow,
	Lparen:  powCall,
	Dot:     powCall,
	Lsquare: powCall,
	Ternary: powTernary,
	And:     powAnd,
	Or:      powOr,
	Eq:      powEqual,
	Ne:      powEqual,
	Lt:      powCompare,
	Le:      powCompare,
	Gt:      powCompare,
	Ge:      powCompare,
}

type parser struct {
	scan *Scanner
	curr Token
	peek Token

	prefix map[rune]func() (Expression, error)
	infix  map[rune]func(Expression) (Expression, error)
}

// Parse reads a single expression. Anything left after it is an error.
func Parse(str string) (Expression, error) {
	p := parser{
		scan: Scan(str),
	}
	p.prefix = map[rune]func() (Expression, error){
		Sub:     p.parsePrefix,
		Not:     p.parsePrefix,
		Number:  p.parsePrefix,
		Literal: p.parsePrefix,
		Ident:   p.parsePrefix,
		Keyword: p.parsePrefix,
		Lparen:  p.parseGroup,
	}
	p.infix = map[rune]func(Expression) (Expression, error){
		Add:     p.parseInfix,
		Sub:     p.parseInfix,
		Mul:     p.parseInfix,
		Div:     p.parseInfix,
		Mod:     p.parseInfix,
		Pow:     p.parsePower,
		Eq:      p.parseInfix,
		Ne:      p.parseInfix,
		Lt:      p.parseInfix,
		Le:      p.parseInfix,
		Gt:      p.parseInfix,
		Ge:      p.parseInfix,
		And:     p.parseInfix,
		Or:      p.parseInfix,
		Ternary: p.parseTernary,
		Lparen:  p.parseCall,
		Dot:     p.parseMember,
		Lsquare: p.parseIndex,
	}
	p.next()
	p.next()
	return p.Parse()
}

func (p *parser) Parse() (Expression, error) {
	p.skipEOL()
	if p.done() {
		return nil, p.errorf("empty expression")
	}
	expr, err := p.parse(powLowest)
	if err != nil {
		return nil, err
	}
	p.skipEOL()
	if !p.done() {
		return nil, p.unexpected()
	}
	return expr, nil
}

func (p *parser) parse(pow int) (Expression, error) {
	fn, ok := p.prefix[p.curr.Type]
	if !ok {
		return nil, p.unexpected()
	}
	left, err := fn()
	if err != nil {
		return nil, err
	}
	for pow < powers.Get(p.curr.Type) {
		fn, ok := p.infix[p.curr.Type]
		if !ok {
			return nil, p.unexpected()
		}
		left, err = fn(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *parser) parseTernary(left Expression) (Expression, error) {
	var err error
	expr := test{
		cdt: left,
	}
	p.next()
	if expr.csq, err = p.parse(powLowest); err != nil {
		return nil, err
	}
	if p.curr.Type != Alt {
		return nil, p.errorf("missing : in ternary expression")
	}
	p.next()
	if expr.alt, err = p.parse(powTernary - 1); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) parseInfix(left Expression) (Expression, error) {
	expr := binary{
		op:   p.curr.Type,
		left: left,
	}
	pow := powers.Get(p.curr.Type)
	p.next()
	right, err := p.parse(pow)
	if err != nil {
		return nil, err
	}
	expr.right = right
	return expr, nil
}

// parsePower is right associative: 2 ** 3 ** 2 is 2 ** 9.
func (p *parser) parsePower(left Expression) (Expression, error) {
	expr := binary{
		op:   Pow,
		left: left,
	}
	p.next()
	right, err := p.parse(powPow - 1)
	if err != nil {
		return nil, err
	}
	expr.right = right
	return expr, nil
}

func (p *parser) parsePrefix() (Expression, error) {
	var expr Expression
	switch p.curr.Type {
	case Sub, Not:
		op := p.curr.Type
		p.next()

		right, err := p.parse(powPrefix)
		if err != nil {
			return nil, err
		}
		expr = unary{
			op:    op,
			right: right,
		}
		return expr, nil
	case Literal:
		expr = literal{
			value: p.curr.Literal,
		}
	case Number:
		n, err := strconv.ParseFloat(p.curr.Literal, 64)
		if err != nil {
			return nil, p.errorf("%s: invalid number", p.curr.Literal)
		}
		expr = literal{
			value: n,
		}
	case Keyword:
		switch p.curr.Literal {
		case kwTrue:
			expr = literal{value: true}
		case kwFalse:
			expr = literal{value: false}
		default:
			expr = literal{}
		}
	case Ident:
		expr = field{
			ident: p.curr.Literal,
		}
	default:
		return nil, p.unexpected()
	}
	p.next()
	return expr, nil
}

func (p *parser) parseMember(left Expression) (Expression, error) {
	p.next()
	if p.curr.Type != Ident && p.curr.Type != Keyword {
		return nil, p.errorf("field name expected after dot")
	}
	expr := member{
		left:  left,
		ident: p.curr.Literal,
	}
	p.next()
	return expr, nil
}

func (p *parser) parseIndex(left Expression) (Expression, error) {
	p.next()
	ix, err := p.parse(powLowest)
	if err != nil {
		return nil, err
	}
	if p.curr.Type != Rsquare {
		return nil, p.errorf("missing closing ]")
	}
	p.next()
	expr := index{
		left:  left,
		index: ix,
	}
	return expr, nil
}

func (p *parser) parseCall(left Expression) (Expression, error) {
	id, ok := left.(field)
	if !ok {
		return nil, p.errorf("try to call non function")
	}
	if _, ok := builtins[id.ident]; !ok {
		return nil, p.errorf("%s: function undefined", id.ident)
	}
	fn := call{
		ident: id.ident,
	}
	p.next()
	for p.curr.Type != Rparen && !p.done() {
		e, err := p.parse(powLowest)
		if err != nil {
			return nil, err
		}
		fn.args = append(fn.args, e)
		switch p.curr.Type {
		case Comma:
			p.next()
		case Rparen:
		default:
			return nil, p.errorf("missing comma")
		}
	}
	if p.curr.Type != Rparen {
		return nil, p.errorf("missing closing )")
	}
	p.next()
	return fn, nil
}

func (p *parser) parseGroup() (Expression, error) {
	p.next()
	expr, err := p.parse(powLowest)
	if err != nil {
		return nil, err
	}
	if p.curr.Type != Rparen {
		return nil, p.errorf("missing closing )")
	}
	p.next()
	return expr, nil
}

func (p *parser) skipEOL() {
	for p.curr.Type == EOL {
		p.next()
	}
}

func (p *parser) unexpected() error {
	if p.curr.Type == Invalid {
		return p.errorf("invalid token %q", p.curr.Literal)
	}
	return p.errorf("unexpected token %s", p.curr)
}

func (p *parser) errorf(format string, args ...any) error {
	return SyntaxError{
		Message:  fmt.Sprintf(format, args...),
		Position: p.curr.Position,
	}
}

func (p *parser) done() bool {
	return p.curr.Type == EOF
}

func (p *parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
}
