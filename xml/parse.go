package xml

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

const MaxDepth = 512

const (
	SupportedVersion  = "1.0"
	SupportedEncoding = "UTF-8"
)

type ParseError struct {
	Position
	Element string
	Message string
}

func createParseError(elem, msg string, pos Position) error {
	return ParseError{
		Position: pos,
		Element:  elem,
		Message:  msg,
	}
}

func (p ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", p.Line, p.Column, p.Element, p.Message)
}

type Parser struct {
	scan *Scanner
	curr Token
	peek Token

	depth int

	TrimSpace  bool
	KeepEmpty  bool
	OmitProlog bool
	StrictNS   bool
	MaxDepth   int

	namespaces *scope
}

func NewParser(r io.Reader) *Parser {
	p := Parser{
		scan:       Scan(r),
		TrimSpace:  true,
		MaxDepth:   MaxDepth,
		namespaces: rootScope(),
	}
	p.next()
	p.next()
	return &p
}

type ParserOption func(*Parser)

// PreserveSpace keeps the text of the document as is instead of trimming
// every text node.
func PreserveSpace(p *Parser) {
	p.TrimSpace = false
}

// ParseFile parses the given file. The prolog is optional.
func ParseFile(file string, opts ...ParserOption) (*Document, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	p := NewParser(r)
	p.OmitProlog = true
	for _, o := range opts {
		o(p)
	}
	return p.Parse()
}

func (p *Parser) Parse() (*Document, error) {
	p.skipBlank()
	doc := Document{
		Version:  SupportedVersion,
		Encoding: SupportedEncoding,
	}
	if err := p.parseProlog(&doc); err != nil {
		return nil, err
	}
	for !p.done() {
		if p.is(Directive) {
			p.next()
			continue
		}
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		if node == nil {
			continue
		}
		switch node.Type() {
		case TypeComment, TypeInstruction:
		case TypeText:
			if strings.TrimSpace(node.Value()) != "" {
				return nil, p.createError("document", "text outside of root element")
			}
			continue
		case TypeElement:
			if doc.Root() != nil {
				return nil, p.createError("document", "multiple root elements")
			}
		default:
			return nil, p.createError("document", "invalid node type")
		}
		doc.attach(node)
	}
	if doc.Root() == nil {
		return nil, p.createError("document", "missing root element")
	}
	return &doc, nil
}

func (p *Parser) parseProlog(doc *Document) error {
	if !p.is(ProcInstTag) || p.peek.Type != Name || p.peek.Literal != "xml" {
		if !p.OmitProlog {
			return p.createError("document", "xml prolog missing")
		}
		return nil
	}
	node, err := p.parsePI()
	if err != nil {
		return err
	}
	pi := node.(*Instruction)
	ok := slices.ContainsFunc(pi.Attrs, func(a Attribute) bool {
		return a.LocalName() == "version" && a.Value() == SupportedVersion
	})
	if !ok {
		return p.createError("document", "xml version not supported")
	}
	ix := slices.IndexFunc(pi.Attrs, func(a Attribute) bool {
		return a.LocalName() == "encoding"
	})
	if ix >= 0 && strings.ToUpper(pi.Attrs[ix].Value()) != SupportedEncoding {
		return p.createError("document", "xml encoding not supported")
	}
	p.skipBlank()
	return nil
}

func (p *Parser) parseNode() (Node, error) {
	p.enter()
	defer p.leave()
	if p.depth >= p.MaxDepth {
		return nil, p.createError("document", "maximum depth reached")
	}
	switch p.curr.Type {
	case OpenTag:
		return p.parseElement()
	case CommentTag:
		return p.parseComment()
	case ProcInstTag:
		return p.parsePI()
	case Cdata:
		return p.parseCharData()
	case Literal:
		return p.parseLiteral()
	default:
		return nil, p.createError("document", "unsupported element type")
	}
}

func (p *Parser) parseElement() (Node, error) {
	p.namespaces = enclosedScope(p.namespaces)
	defer func() {
		p.namespaces = p.namespaces.unwrap()
	}()
	p.next()
	var (
		elem Element
		err  error
	)
	if p.is(Namespace) {
		elem.Space = p.getCurrentLiteral()
		p.next()
	}
	if !p.is(Name) {
		return nil, p.createError("element", "name is missing")
	}
	elem.Name = p.getCurrentLiteral()
	p.next()

	elem.Attrs, err = p.parseAttributes(&elem, func() bool {
		return p.is(EndTag) || p.is(EmptyElemTag)
	})
	if err != nil {
		return nil, err
	}
	if elem.Uri, err = p.resolve(elem.Space); err != nil {
		return nil, err
	}
	for i := range elem.Attrs {
		a := &elem.Attrs[i]
		if a.Space == "" || a.Space == AttrXmlNS {
			continue
		}
		if a.Uri, err = p.resolve(a.Space); err != nil {
			return nil, err
		}
	}

	switch p.curr.Type {
	case EmptyElemTag:
		p.next()
		return &elem, nil
	case EndTag:
		p.next()
		for !p.done() && !p.is(CloseTag) {
			child, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			if child != nil {
				elem.Append(child)
			}
		}
		if !p.is(CloseTag) {
			return nil, p.createError("element", "closing element is missing")
		}
		p.next()
		return &elem, p.parseCloseElement(elem)
	default:
		return nil, p.createError("element", "end of element expected")
	}
}

func (p *Parser) parseCloseElement(elem Element) error {
	if elem.Space != "" && !p.is(Namespace) {
		return p.createError("element", "closing element without namespace")
	}
	if p.is(Namespace) {
		if elem.Space != p.getCurrentLiteral() {
			return p.createError("element", "namespace mismatched with opening element")
		}
		p.next()
	}
	if !p.is(Name) {
		return p.createError("element", "name is missing")
	}
	if p.getCurrentLiteral() != elem.Name {
		return p.createError("element", "name mismatched with opening element")
	}
	p.next()
	if !p.is(EndTag) {
		return p.createError("element", "end of element expected")
	}
	p.next()
	return nil
}

func (p *Parser) parsePI() (Node, error) {
	p.next()
	if !p.is(Name) {
		return nil, p.createError("processing instruction", "name is missing")
	}
	pi := NewInstruction(LocalName(p.getCurrentLiteral()))
	p.next()
	if pi.Name == "xml" {
		attrs, err := p.parseAttributes(pi, func() bool {
			return p.is(ProcInstTag)
		})
		if err != nil {
			return nil, err
		}
		pi.Attrs = attrs
	} else if p.is(Literal) {
		pi.Content = p.getCurrentLiteral()
		p.next()
	}
	if !p.is(ProcInstTag) {
		return nil, p.createError("processing instruction", "end of element expected")
	}
	p.next()
	return pi, nil
}

func (p *Parser) parseAttributes(parent Node, done func() bool) ([]Attribute, error) {
	var attrs []Attribute
	for i := 0; !p.done() && !done(); i++ {
		attr, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		ok := slices.ContainsFunc(attrs, func(a Attribute) bool {
			return attr.QualifiedName() == a.QualifiedName()
		})
		if ok {
			return nil, p.createError("attribute", "attribute is already defined")
		}
		attr.setParent(parent)
		attr.setPosition(i)
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func (p *Parser) parseAttr() (Attribute, error) {
	var attr Attribute
	if p.is(Namespace) {
		attr.Space = p.getCurrentLiteral()
		p.next()
	}
	if !p.is(Attr) {
		return attr, p.createError("attribute", "name is expected")
	}
	attr.Name = p.getCurrentLiteral()
	p.next()
	if !p.is(Literal) {
		return attr, p.createError("attribute", "value is missing")
	}
	attr.Datum = p.getCurrentLiteral()
	p.next()
	if attr.Space == "" && attr.Name == AttrXmlNS {
		p.namespaces.define("", attr.Datum)
	} else if attr.Space == AttrXmlNS {
		p.namespaces.define(attr.Name, attr.Datum)
	}
	return attr, nil
}

func (p *Parser) parseComment() (Node, error) {
	defer p.next()
	return NewComment(p.getCurrentLiteral()), nil
}

func (p *Parser) parseCharData() (Node, error) {
	defer p.next()
	return NewCharacterData(p.getCurrentLiteral()), nil
}

func (p *Parser) parseLiteral() (Node, error) {
	str := p.getCurrentLiteral()
	if p.TrimSpace {
		str = strings.TrimSpace(str)
	}
	p.next()
	if !p.KeepEmpty && str == "" {
		return nil, nil
	}
	return NewText(str), nil
}

func (p *Parser) resolve(prefix string) (string, error) {
	uri, err := p.namespaces.resolve(prefix)
	if err != nil && p.StrictNS {
		return "", p.createError("namespace", err.Error())
	}
	return uri, nil
}

func (p *Parser) skipBlank() {
	for p.is(Literal) && strings.TrimSpace(p.getCurrentLiteral()) == "" {
		p.next()
	}
}

func (p *Parser) getCurrentLiteral() string {
	return p.curr.Literal
}

func (p *Parser) createError(elem, msg string) error {
	if p.is(Invalid) {
		msg = fmt.Sprintf("%s (invalid token)", msg)
	}
	return createParseError(elem, msg, p.curr.Position)
}

func (p *Parser) is(kind rune) bool {
	return p.curr.Type == kind
}

func (p *Parser) done() bool {
	return p.is(EOF)
}

func (p *Parser) enter() {
	p.depth++
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
}
