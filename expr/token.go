package expr

import (
	"fmt"
)

const (
	kwTrue  = "true"
	kwFalse = "false"
	kwNull  = "null"
	kwElse  = "else"
)

func isKeyword(str string) bool {
	switch str {
	case kwTrue, kwFalse, kwNull:
		return true
	default:
		return false
	}
}

const (
	Invalid rune = -(iota + 1)
	Keyword
	Literal
	Number
	Ident
	Dot
	Comma
	Lparen
	Rparen
	Lsquare
	Rsquare
	Add
	Sub
	Mul
	Pow
	Div
	Mod
	Lt
	Le
	Gt
	Ge
	Eq
	Ne
	Ternary
	Alt
	Not
	And
	Or
	Arrow
	EOL
	EOF
)

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Literal string
	Type    rune
	Position
}

func (t Token) String() string {
	var prefix string
	switch t.Type {
	default:
		prefix = "unknown"
	case Invalid:
		prefix = "invalid"
	case Literal:
		prefix = "literal"
	case Number:
		prefix = "number"
	case Keyword:
		prefix = "keyword"
	case Ident:
		prefix = "identifier"
	case Dot:
		return "<dot>"
	case Comma:
		return "<comma>"
	case Lparen:
		return "<lparen>"
	case Rparen:
		return "<rparen>"
	case Lsquare:
		return "<lsquare>"
	case Rsquare:
		return "<rsquare>"
	case Add:
		return "<add>"
	case Sub:
		return "<subtract>"
	case Mul:
		return "<multiply>"
	case Pow:
		return "<power>"
	case Div:
		return "<divide>"
	case Mod:
		return "<modulo>"
	case Lt:
		return "<lt>"
	case Le:
		return "<le>"
	case Gt:
		return "<gt>"
	case Ge:
		return "<ge>"
	case Eq:
		return "<eq>"
	case Ne:
		return "<ne>"
	case Ternary:
		return "<ternary>"
	case Alt:
		return "<alter>"
	case Not:
		return "<not>"
	case And:
		return "<and>"
	case Or:
		return "<or>"
	case Arrow:
		return "<arrow>"
	case EOL:
		return "<eol>"
	case EOF:
		return "<eof>"
	}
	return fmt.Sprintf("%s(%s)", prefix, t.Literal)
}
