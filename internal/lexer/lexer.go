// Package lexer turns Lox source text into a token stream.
package lexer

import (
	"strconv"

	"github.com/loxlang/loxi/internal/token"
)

// Reporter receives lexer diagnostics. It mirrors the host error sink from
// the language specification's external interface.
type Reporter interface {
	Report(line int, where, message string)
}

// Scanner lexes a single source file with one byte of lookahead (two for
// numeric fractions).
type Scanner struct {
	reporter Reporter
	path     string
	src      []byte
	start    int
	current  int
	line     int
	HadError bool
}

// New creates a Scanner over src, attributing diagnostics to path.
func New(reporter Reporter, path string, src []byte) *Scanner {
	return &Scanner{reporter: reporter, path: path, src: src, line: 1}
}

// Scan consumes the whole source and returns its token stream, always
// terminated by a single EOF token.
func (s *Scanner) Scan() []token.Token {
	var toks []token.Token
	for !s.atEnd() {
		s.start = s.current
		if tok, ok := s.scanToken(); ok {
			toks = append(toks, tok)
		}
	}
	toks = append(toks, token.Token{Type: token.EOF, Loc: s.loc()})
	return toks
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func (s *Scanner) match(want byte) bool {
	if s.atEnd() || s.src[s.current] != want {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) loc() token.Location {
	return token.Location{Path: s.path, Row: s.line}
}

func (s *Scanner) lexeme() string { return string(s.src[s.start:s.current]) }

func (s *Scanner) tok(typ token.Type) token.Token {
	return token.Token{Type: typ, Lexeme: s.lexeme(), Loc: s.loc()}
}

func (s *Scanner) scanToken() (token.Token, bool) {
	c := s.advance()
	switch c {
	case ' ', '\t', '\r':
		return token.Token{}, false
	case '\n':
		s.line++
		return token.Token{}, false
	case '(':
		return s.tok(token.LeftParen), true
	case ')':
		return s.tok(token.RightParen), true
	case '{':
		return s.tok(token.LeftBrace), true
	case '}':
		return s.tok(token.RightBrace), true
	case ',':
		return s.tok(token.Comma), true
	case '.':
		return s.tok(token.Dot), true
	case '-':
		return s.tok(token.Minus), true
	case '+':
		return s.tok(token.Plus), true
	case ';':
		return s.tok(token.Semicolon), true
	case '*':
		return s.tok(token.Star), true
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
			return token.Token{}, false
		}
		return s.tok(token.Slash), true
	case '=':
		if s.match('=') {
			return s.tok(token.EqualEqual), true
		}
		return s.tok(token.Equal), true
	case '!':
		if s.match('=') {
			return s.tok(token.BangEqual), true
		}
		return s.tok(token.Bang), true
	case '<':
		if s.match('=') {
			return s.tok(token.LessEqual), true
		}
		return s.tok(token.Less), true
	case '>':
		if s.match('=') {
			return s.tok(token.GreaterEqual), true
		}
		return s.tok(token.Greater), true
	case '"':
		return s.stringLiteral()
	default:
		if isDigit(c) {
			return s.numberLiteral(), true
		}
		if isAlpha(c) {
			return s.identifier(), true
		}
		s.error("Unexpected character.")
		return token.Token{}, false
	}
}

func (s *Scanner) stringLiteral() (token.Token, bool) {
	startLine := s.line
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		s.line = startLine
		s.error("Unterminated string.")
		return token.Token{}, false
	}
	s.advance() // closing quote
	value := string(s.src[s.start+1 : s.current-1])
	return token.Token{
		Type:    token.String,
		Lexeme:  s.lexeme(),
		Literal: value,
		HasLit:  true,
		Loc:     s.loc(),
	}, true
}

func (s *Scanner) numberLiteral() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	lexeme := s.lexeme()
	f, _ := strconv.ParseFloat(lexeme, 64)
	return token.Token{
		Type:    token.Number,
		Lexeme:  lexeme,
		Literal: strconv.FormatFloat(f, 'g', -1, 64),
		HasLit:  true,
		Loc:     s.loc(),
	}
}

func (s *Scanner) identifier() token.Token {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	lexeme := s.lexeme()
	typ := token.Identifier
	if kw, ok := token.Keywords[lexeme]; ok {
		typ = kw
	}
	return token.Token{Type: typ, Lexeme: lexeme, Loc: s.loc()}
}

func (s *Scanner) error(message string) {
	s.HadError = true
	if s.reporter != nil {
		s.reporter.Report(s.line, "", message)
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
