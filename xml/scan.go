package xml

import (
	"bufio"
	"bytes"
	"fmt"
	"html"
	"io"
	"unicode"
)

const (
	EOF rune = -(1 + iota)
	Name
	Namespace // name:
	Attr      // name=
	Literal
	Cdata
	CommentTag   // <!--
	OpenTag      // <
	EndTag       // >
	CloseTag     // </
	EmptyElemTag // />
	ProcInstTag  // <?, ?>
	Directive    // <!DOCTYPE
	Invalid
)

type Position struct {
	Line   int
	Column int
}

type Token struct {
	Literal string
	Type    rune
	Position
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "<eof>"
	case CommentTag:
		return fmt.Sprintf("comment(%s)", t.Literal)
	case Name:
		return fmt.Sprintf("name(%s)", t.Literal)
	case Namespace:
		return fmt.Sprintf("namespace(%s)", t.Literal)
	case Attr:
		return fmt.Sprintf("attr(%s)", t.Literal)
	case Cdata:
		return fmt.Sprintf("chardata(%s)", t.Literal)
	case Literal:
		return fmt.Sprintf("literal(%s)", t.Literal)
	case Directive:
		return fmt.Sprintf("directive(%s)", t.Literal)
	case OpenTag:
		return "<open-elem-tag>"
	case EndTag:
		return "<end-elem-tag>"
	case CloseTag:
		return "<close-elem-tag>"
	case EmptyElemTag:
		return "<empty-elem-tag>"
	case ProcInstTag:
		return "<processing-instruction>"
	case Invalid:
		return "<invalid>"
	default:
		return "<unknown>"
	}
}

const (
	langle     = '<'
	rangle     = '>'
	lsquare    = '['
	rsquare    = ']'
	colon      = ':'
	quote      = '"'
	apos       = '\''
	slash      = '/'
	question   = '?'
	bang       = '!'
	equal      = '='
	ampersand  = '&'
	semicolon  = ';'
	dash       = '-'
	underscore = '_'
	dot        = '.'
)

// Scanner splits its input in tokens. Outside of a tag, everything up to the
// next '<' is a literal; inside a tag, blanks separate names and values. The
// content of a processing instruction other than the xml declaration is given
// as a single literal.
type Scanner struct {
	input io.RuneScanner
	char  rune
	eof   bool
	str   bytes.Buffer

	Position

	intag  bool
	target bool
	raw    bool
}

func Scan(r io.Reader) *Scanner {
	var (
		rs    = bufio.NewReader(r)
		pk, _ = rs.Peek(3)
	)
	if bytes.Equal(pk, []byte{0xEF, 0xBB, 0xBF}) {
		rs.Discard(3)
	}

	scan := &Scanner{
		input: rs,
	}
	scan.Position.Line = 1
	scan.read()
	return scan
}

func (s *Scanner) Scan() Token {
	var tok Token
	if s.intag {
		s.skipBlank()
	}
	tok.Position = s.Position
	if s.done() {
		tok.Type = EOF
		return tok
	}
	s.str.Reset()
	if s.raw {
		s.scanInstruction(&tok)
		return tok
	}
	if !s.intag {
		if s.char == langle {
			s.scanOpeningTag(&tok)
		} else {
			s.scanLiteral(&tok)
		}
		return tok
	}
	target := s.target
	s.target = false
	switch {
	case s.char == rangle:
		s.scanEndTag(&tok)
	case s.char == slash || s.char == question:
		s.scanClosingTag(&tok)
	case s.char == quote || s.char == apos:
		s.scanValue(&tok)
	case isNameStart(s.char):
		s.scanName(&tok)
		if target {
			s.raw = tok.Type == Name && tok.Literal != "xml"
		}
	default:
		tok.Type = Invalid
		tok.Literal = string(s.char)
		s.read()
	}
	return tok
}

func (s *Scanner) scanOpeningTag(tok *Token) {
	s.read()
	tok.Type = OpenTag
	switch s.char {
	case bang:
		s.read()
		switch {
		case s.char == lsquare:
			s.scanCharData(tok)
		case s.char == dash:
			s.scanComment(tok)
		case unicode.IsUpper(s.char):
			s.scanDirective(tok)
		default:
			tok.Type = Invalid
		}
		return
	case question:
		tok.Type = ProcInstTag
		s.target = true
		s.read()
	case slash:
		tok.Type = CloseTag
		s.read()
	default:
	}
	s.intag = true
}

func (s *Scanner) scanComment(tok *Token) {
	s.read()
	if s.char != dash {
		tok.Type = Invalid
		return
	}
	s.read()
	tok.Type = Invalid
	for !s.done() {
		if s.char == rangle && bytes.HasSuffix(s.str.Bytes(), []byte("--")) {
			s.str.Truncate(s.str.Len() - 2)
			s.read()
			tok.Type = CommentTag
			break
		}
		s.write()
		s.read()
	}
	tok.Literal = s.str.String()
}

func (s *Scanner) scanCharData(tok *Token) {
	s.read()
	for !s.done() && s.char != lsquare {
		s.write()
		s.read()
	}
	s.read()
	if s.str.String() != "CDATA" {
		tok.Type = Invalid
		return
	}
	s.str.Reset()
	tok.Type = Invalid
	for !s.done() {
		if s.char == rangle && bytes.HasSuffix(s.str.Bytes(), []byte("]]")) {
			s.str.Truncate(s.str.Len() - 2)
			s.read()
			tok.Type = Cdata
			break
		}
		s.write()
		s.read()
	}
	tok.Literal = s.str.String()
}

func (s *Scanner) scanDirective(tok *Token) {
	var depth int
	tok.Type = Invalid
	for !s.done() {
		switch s.char {
		case lsquare:
			depth++
		case rsquare:
			depth--
		case rangle:
			if depth <= 0 {
				s.read()
				tok.Type = Directive
				tok.Literal = s.str.String()
				return
			}
		}
		s.write()
		s.read()
	}
}

// scanInstruction reads the content of a processing instruction and stops
// before its closing "?>".
func (s *Scanner) scanInstruction(tok *Token) {
	s.raw = false
	for !s.done() {
		if s.char == question && s.peek() == rangle {
			break
		}
		s.write()
		s.read()
	}
	tok.Type = Literal
	tok.Literal = s.str.String()
}

func (s *Scanner) scanEndTag(tok *Token) {
	tok.Type = EndTag
	s.intag = false
	s.read()
}

func (s *Scanner) scanClosingTag(tok *Token) {
	tok.Type = Invalid
	if s.char == question {
		tok.Type = ProcInstTag
	} else if s.char == slash {
		tok.Type = EmptyElemTag
	}
	s.read()
	if s.char != rangle {
		tok.Type = Invalid
		return
	}
	s.intag = false
	s.read()
}

func (s *Scanner) scanValue(tok *Token) {
	delim := s.char
	s.read()
	for !s.done() && s.char != delim {
		if s.char == ampersand {
			s.scanEntity()
			continue
		}
		s.write()
		s.read()
	}
	tok.Type = Literal
	tok.Literal = s.str.String()
	if s.char != delim {
		tok.Type = Invalid
		return
	}
	s.read()
}

func (s *Scanner) scanLiteral(tok *Token) {
	for !s.done() && s.char != langle {
		if s.char == ampersand {
			s.scanEntity()
			continue
		}
		s.write()
		s.read()
	}
	tok.Type = Literal
	tok.Literal = s.str.String()
}

// scanEntity decodes a character or entity reference. A reference that is
// not terminated by a semicolon is kept as is.
func (s *Scanner) scanEntity() {
	var ref bytes.Buffer
	ref.WriteRune(s.char)
	s.read()
	for !s.done() && (isNameChar(s.char) || s.char == '#') {
		ref.WriteRune(s.char)
		s.read()
	}
	if s.char != semicolon {
		s.str.Write(ref.Bytes())
		return
	}
	ref.WriteRune(semicolon)
	s.read()
	s.str.WriteString(html.UnescapeString(ref.String()))
}

func (s *Scanner) scanName(tok *Token) {
	for !s.done() && isNameChar(s.char) {
		s.write()
		s.read()
	}
	tok.Type = Name
	tok.Literal = s.str.String()
	if s.char == colon {
		tok.Type = Namespace
		s.read()
		return
	}
	s.skipBlank()
	if s.char == equal {
		tok.Type = Attr
		s.read()
		s.skipBlank()
	}
}

func (s *Scanner) write() {
	s.str.WriteRune(s.char)
}

func (s *Scanner) read() {
	if s.char == '\n' {
		s.Column = 0
		s.Line++
	}
	s.Column++
	char, _, err := s.input.ReadRune()
	if err != nil {
		s.eof = true
		char = 0
	}
	s.char = char
}

func (s *Scanner) peek() rune {
	char, _, err := s.input.ReadRune()
	if err != nil {
		return 0
	}
	s.input.UnreadRune()
	return char
}

func (s *Scanner) done() bool {
	return s.eof
}

func (s *Scanner) skipBlank() {
	for !s.done() && unicode.IsSpace(s.char) {
		s.read()
	}
}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r) || r == underscore
}

func isNameChar(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r) || r == dash || r == dot
}
