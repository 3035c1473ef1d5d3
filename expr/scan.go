package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Scanner struct {
	input []byte

	curr int
	next int
	char rune

	Position
}

func Scan(str string) *Scanner {
	s := Scanner{
		input: []byte(strings.ReplaceAll(str, "\r\n", "\n")),
	}
	s.Line = 1
	s.read()
	return &s
}

func (s *Scanner) Scan() Token {
	s.skipBlank()

	var tok Token
	tok.Position = s.Position
	if s.done() {
		tok.Type = EOF
		return tok
	}
	switch {
	case isNL(s.char):
		s.scanNewline(&tok)
	case isQuote(s.char):
		s.scanQuote(&tok)
	case isDigit(s.char) || (s.char == dot && isDigit(s.peek())):
		s.scanNumber(&tok)
	case isLetter(s.char):
		s.scanIdent(&tok)
	default:
		s.scanPunct(&tok)
	}
	return tok
}

func (s *Scanner) scanIdent(tok *Token) {
	pos := s.curr
	for isAlpha(s.char) {
		s.read()
	}
	tok.Type = Ident
	tok.Literal = string(s.input[pos:s.curr])
	if isKeyword(tok.Literal) {
		tok.Type = Keyword
	}
}

func (s *Scanner) scanNumber(tok *Token) {
	pos := s.curr
	for isDigit(s.char) {
		s.read()
	}
	if s.char == dot {
		s.read()
		for isDigit(s.char) {
			s.read()
		}
	}
	if s.char == 'e' || s.char == 'E' {
		s.read()
		if s.char == plus || s.char == minus {
			s.read()
		}
		if !isDigit(s.char) {
			tok.Type = Invalid
			tok.Literal = string(s.input[pos:s.curr])
			return
		}
		for isDigit(s.char) {
			s.read()
		}
	}
	tok.Type = Number
	tok.Literal = string(s.input[pos:s.curr])
}

func (s *Scanner) scanQuote(tok *Token) {
	var (
		quote = s.char
		str   strings.Builder
	)
	s.read()
	for s.char != quote && !isNL(s.char) && !s.done() {
		if s.char == backslash {
			s.read()
			switch s.char {
			case 'n':
				str.WriteRune(nl)
			case 't':
				str.WriteRune(tab)
			default:
				str.WriteRune(s.char)
			}
			s.read()
			continue
		}
		str.WriteRune(s.char)
		s.read()
	}
	tok.Literal = str.String()
	if s.char != quote {
		tok.Type = Invalid
		return
	}
	s.read()
	tok.Type = Literal
}

func (s *Scanner) scanNewline(tok *Token) {
	for isNL(s.char) || isBlank(s.char) {
		s.read()
		s.skipComment()
	}
	tok.Type = EOL
}

func (s *Scanner) scanPunct(tok *Token) {
	var (
		char = s.char
		next = s.peek()
	)
	tok.Literal = string(char)
	tok.Type = Invalid

	double := func(kind rune) {
		s.read()
		tok.Type = kind
		tok.Literal += string(next)
	}
	switch char {
	case dot:
		tok.Type = Dot
	case comma:
		tok.Type = Comma
	case lparen:
		tok.Type = Lparen
	case rparen:
		tok.Type = Rparen
	case lsquare:
		tok.Type = Lsquare
	case rsquare:
		tok.Type = Rsquare
	case plus:
		tok.Type = Add
	case minus:
		tok.Type = Sub
		if next == rangle {
			double(Arrow)
		}
	case star:
		tok.Type = Mul
		if next == star {
			double(Pow)
		}
	case slash:
		tok.Type = Div
	case percent:
		tok.Type = Mod
	case langle:
		tok.Type = Lt
		if next == equal {
			double(Le)
		}
	case rangle:
		tok.Type = Gt
		if next == equal {
			double(Ge)
		}
	case equal:
		if next == equal {
			double(Eq)
		}
	case bang:
		tok.Type = Not
		if next == equal {
			double(Ne)
		}
	case ampersand:
		if next == ampersand {
			double(And)
		}
	case pipe:
		if next == pipe {
			double(Or)
		}
	case question:
		tok.Type = Ternary
	case colon:
		tok.Type = Alt
	}
	s.read()
}

func (s *Scanner) skipBlank() {
	for isBlank(s.char) {
		s.read()
	}
	s.skipComment()
}

func (s *Scanner) skipComment() {
	if s.char != hash {
		return
	}
	for !isNL(s.char) && !s.done() {
		s.read()
	}
}

func (s *Scanner) done() bool {
	return s.char == eof
}

func (s *Scanner) read() {
	if s.done() {
		return
	}
	if isNL(s.char) {
		s.Line++
		s.Column = 0
	}
	s.Column++
	if s.next >= len(s.input) {
		s.curr = len(s.input)
		s.char = eof
		return
	}
	r, size := utf8.DecodeRune(s.input[s.next:])
	s.curr = s.next
	s.next += size
	s.char = r
}

func (s *Scanner) peek() rune {
	if s.next >= len(s.input) {
		return eof
	}
	r, _ := utf8.DecodeRune(s.input[s.next:])
	return r
}

const (
	eof        rune = -1
	space      rune = ' '
	tab             = '\t'
	nl              = '\n'
	dot             = '.'
	comma           = ','
	colon           = ':'
	question        = '?'
	lparen          = '('
	rparen          = ')'
	lsquare         = '['
	rsquare         = ']'
	langle          = '<'
	rangle          = '>'
	plus            = '+'
	minus           = '-'
	star            = '*'
	slash           = '/'
	backslash       = '\\'
	percent         = '%'
	equal           = '='
	bang            = '!'
	ampersand       = '&'
	pipe            = '|'
	hash            = '#'
	squote          = '\''
	dquote          = '"'
	underscore      = '_'
)

func isLetter(r rune) bool {
	return r == underscore || r == '$' || unicode.IsLetter(r)
}

func isAlpha(r rune) bool {
	return isLetter(r) || isDigit(r)
}

func isQuote(r rune) bool {
	return r == squote || r == dquote
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isBlank(r rune) bool {
	return r == space || r == tab
}

func isNL(r rune) bool {
	return r == nl
}
