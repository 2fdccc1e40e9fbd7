package fss

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokLParen
	tokRParen
	tokEquals
	tokIRI
	tokWord
	tokLiteral
)

type token struct {
	kind tokenKind
	text string
	dt   *Term
	lang string
	pos  Pos
}

type lexer struct {
	r    *bufio.Reader
	line int
	col  int

	buf    rune
	bufPos Pos
	hasBuf bool
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r), line: 1, col: 0}
}

// read returns the next rune and its position. It returns io.EOF at the end.
func (l *lexer) read() (rune, Pos, error) {
	if l.hasBuf {
		l.hasBuf = false
		return l.buf, l.bufPos, nil
	}
	c, _, err := l.r.ReadRune()
	if err != nil {
		return 0, Pos{Line: l.line, Col: l.col + 1}, err
	}
	if c == '\n' {
		p := Pos{Line: l.line, Col: l.col + 1}
		l.line++
		l.col = 0
		return c, p, nil
	}
	l.col++
	return c, Pos{Line: l.line, Col: l.col}, nil
}

func (l *lexer) unread(c rune, p Pos) {
	l.buf, l.bufPos, l.hasBuf = c, p, true
}

func (l *lexer) peek() (rune, error) {
	c, p, err := l.read()
	if err != nil {
		return 0, err
	}
	l.unread(c, p)
	return c, nil
}

func (l *lexer) here() Pos {
	if l.hasBuf {
		return l.bufPos
	}
	return Pos{Line: l.line, Col: l.col + 1}
}

func isDelimiter(c rune) bool {
	switch c {
	case '(', ')', '<', '>', '"', '=', '#':
		return true
	}
	return unicode.IsSpace(c)
}

func (l *lexer) next() (token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		if errors.Is(err, io.EOF) {
			return token{kind: tokEOF, pos: l.here()}, nil
		}
		return token{}, err
	}

	c, pos, err := l.read()
	if err != nil {
		return token{}, err
	}

	switch c {
	case '(':
		return token{kind: tokLParen, pos: pos}, nil
	case ')':
		return token{kind: tokRParen, pos: pos}, nil
	case '=':
		return token{kind: tokEquals, pos: pos}, nil
	case '<':
		iri, err := l.readIRI(pos)
		if err != nil {
			return token{}, err
		}
		return token{kind: tokIRI, text: iri, pos: pos}, nil
	case '"':
		return l.readLiteral(pos)
	case '>':
		return token{}, &SyntaxError{Pos: pos, Msg: "unexpected '>'"}
	}

	l.unread(c, pos)
	word, err := l.readWord()
	if err != nil {
		return token{}, err
	}
	return token{kind: tokWord, text: word, pos: pos}, nil
}

func (l *lexer) skipSpaceAndComments() error {
	for {
		c, p, err := l.read()
		if err != nil {
			return err
		}
		switch {
		case unicode.IsSpace(c):
		case c == '#':
			for {
				c, _, err = l.read()
				if err != nil {
					return err
				}
				if c == '\n' {
					break
				}
			}
		default:
			l.unread(c, p)
			return nil
		}
	}
}

func (l *lexer) readIRI(start Pos) (string, error) {
	var b strings.Builder
	for {
		c, _, err := l.read()
		if err != nil {
			return "", &SyntaxError{Pos: start, Msg: "unterminated IRI"}
		}
		switch {
		case c == '>':
			return b.String(), nil
		case c == '<' || c == '"' || unicode.IsSpace(c):
			return "", &SyntaxError{Pos: start, Msg: "invalid character in IRI"}
		}
		b.WriteRune(c)
	}
}

func (l *lexer) readWord() (string, error) {
	var b strings.Builder
	for {
		c, p, err := l.read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return b.String(), nil
			}
			return "", err
		}
		if isDelimiter(c) {
			l.unread(c, p)
			return b.String(), nil
		}
		b.WriteRune(c)
	}
}

func (l *lexer) readLiteral(start Pos) (token, error) {
	var b strings.Builder
	for {
		c, _, err := l.read()
		if err != nil {
			return token{}, &SyntaxError{Pos: start, Msg: "unterminated literal"}
		}
		if c == '"' {
			break
		}
		if c == '\\' {
			c, _, err = l.read()
			if err != nil {
				return token{}, &SyntaxError{Pos: start, Msg: "unterminated literal"}
			}
			if c != '"' && c != '\\' {
				return token{}, &SyntaxError{Pos: start, Msg: "invalid escape in literal"}
			}
		}
		b.WriteRune(c)
	}

	tok := token{kind: tokLiteral, text: b.String(), pos: start}

	c, err := l.peek()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return tok, nil
		}
		return token{}, err
	}

	switch c {
	case '^':
		_, p, _ := l.read()
		if c2, _, err := l.read(); err != nil || c2 != '^' {
			return token{}, &SyntaxError{Pos: p, Msg: "expected '^^'"}
		}
		dt, err := l.readDatatype()
		if err != nil {
			return token{}, err
		}
		tok.dt = dt
	case '@':
		_, p, _ := l.read()
		lang, err := l.readWord()
		if err != nil {
			return token{}, err
		}
		if lang == "" {
			return token{}, &SyntaxError{Pos: p, Msg: "empty language tag"}
		}
		tok.lang = lang
	}
	return tok, nil
}

func (l *lexer) readDatatype() (*Term, error) {
	c, p, err := l.read()
	if err != nil {
		return nil, &SyntaxError{Pos: p, Msg: "expected datatype"}
	}
	if c == '<' {
		iri, err := l.readIRI(p)
		if err != nil {
			return nil, err
		}
		return &Term{Kind: IRI, Text: iri, Pos: p}, nil
	}
	l.unread(c, p)
	word, err := l.readWord()
	if err != nil {
		return nil, err
	}
	if !strings.Contains(word, ":") {
		return nil, &SyntaxError{Pos: p, Msg: "expected datatype IRI"}
	}
	return &Term{Kind: Abbreviated, Text: word, Pos: p}, nil
}

func classifyWord(w string) Kind {
	digits := strings.TrimPrefix(w, "-")
	if digits != "" && strings.Trim(digits, "0123456789") == "" {
		return Integer
	}
	if strings.Contains(w, ":") {
		return Abbreviated
	}
	return Name
}
