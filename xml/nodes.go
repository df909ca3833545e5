package xml

import (
	"fmt"
	"slices"
	"strings"
)

type NodeType int8

const (
	TypeDocument NodeType = 1 << iota
	TypeElement
	TypeComment
	TypeAttribute
	TypeInstruction
	TypeText
)

var typeNames = map[NodeType]string{
	TypeDocument:    "document",
	TypeElement:     "element",
	TypeComment:     "comment",
	TypeAttribute:   "attribute",
	TypeInstruction: "pi",
	TypeText:        "text",
}

func (n NodeType) String() string {
	if str, ok := typeNames[n]; ok {
		return str
	}
	return "<>"
}

type Node interface {
	Type() NodeType
	LocalName() string
	QualifiedName() string
	Position() int
	Parent() Node
	Value() string

	setParent(Node)
	setPosition(int)
}

// link is embedded by every node that can be attached to a parent.
type link struct {
	parent   Node
	position int
}

func (k *link) Parent() Node {
	return k.parent
}

func (k *link) Position() int {
	return k.position
}

func (k *link) setParent(parent Node) {
	k.parent = parent
}

func (k *link) setPosition(pos int) {
	k.position = pos
}

// unnamed is embedded by the nodes that only carry content.
type unnamed struct{}

func (unnamed) LocalName() string {
	return ""
}

func (unnamed) QualifiedName() string {
	return ""
}

type Document struct {
	unnamed
	Version  string
	Encoding string

	Nodes []Node
}

// Root returns the document element or nil when the document has none.
func (d *Document) Root() *Element {
	for i := range d.Nodes {
		if el, ok := d.Nodes[i].(*Element); ok {
			return el
		}
	}
	return nil
}

func (*Document) Type() NodeType {
	return TypeDocument
}

func (*Document) Position() int {
	return 0
}

func (*Document) Parent() Node {
	return nil
}

func (d *Document) Value() string {
	if root := d.Root(); root != nil {
		return root.Value()
	}
	return ""
}

func (d *Document) attach(node Node) {
	node.setParent(d)
	node.setPosition(len(d.Nodes))
	d.Nodes = append(d.Nodes, node)
}

func (*Document) setParent(Node) {}

func (*Document) setPosition(int) {}

type QName struct {
	Uri   string
	Space string
	Name  string
}

// ParseName splits a prefixed name. The prefix is optional but, when present,
// neither part can be empty.
func ParseName(name string) (QName, error) {
	var qn QName
	space, local, ok := strings.Cut(name, ":")
	if !ok {
		qn.Name = name
		return qn, nil
	}
	if space == "" || local == "" {
		return qn, fmt.Errorf("%s: invalid qualified name", name)
	}
	qn.Space, qn.Name = space, local
	return qn, nil
}

func LocalName(name string) QName {
	return QName{Name: name}
}

func (q QName) LocalName() string {
	return q.Name
}

func (q QName) ExpandedName() string {
	if q.Uri == "" {
		return q.Name
	}
	return "{" + q.Uri + "}" + q.Name
}

func (q QName) QualifiedName() string {
	if q.Space == "" {
		return q.Name
	}
	return q.Space + ":" + q.Name
}

type Attribute struct {
	QName
	link
	Datum string
}

func NewAttribute(name QName, value string) Attribute {
	return Attribute{
		QName: name,
		Datum: value,
	}
}

func (Attribute) Type() NodeType {
	return TypeAttribute
}

func (a Attribute) Value() string {
	return a.Datum
}

type Element struct {
	QName
	link
	Attrs []Attribute
	Nodes []Node
}

func NewElement(name QName) *Element {
	return &Element{
		QName: name,
	}
}

func (*Element) Type() NodeType {
	return TypeElement
}

// Leaf reports whether the element has no child element.
func (e *Element) Leaf() bool {
	return !slices.ContainsFunc(e.Nodes, func(n Node) bool {
		return n.Type() == TypeElement
	})
}

// Value returns the text content of the element and its descendants as it
// appears in the document. Comments and processing instructions are left out.
func (e *Element) Value() string {
	var buf strings.Builder
	for _, n := range e.Nodes {
		switch n.Type() {
		case TypeComment, TypeInstruction:
		default:
			buf.WriteString(n.Value())
		}
	}
	return buf.String()
}

// Find returns the first child element with the given local name.
func (e *Element) Find(name string) *Element {
	for _, el := range e.Elements() {
		if el.LocalName() == name {
			return el
		}
	}
	return nil
}

// FindAll returns every child element with the given local name whatever its
// namespace.
func (e *Element) FindAll(name string) []*Element {
	return e.FindFunc(func(el *Element) bool {
		return el.LocalName() == name
	})
}

func (e *Element) FindFunc(accept func(*Element) bool) []*Element {
	var list []*Element
	for _, el := range e.Elements() {
		if accept(el) {
			list = append(list, el)
		}
	}
	return list
}

func (e *Element) Elements() []*Element {
	var list []*Element
	for _, n := range e.Nodes {
		if el, ok := n.(*Element); ok {
			list = append(list, el)
		}
	}
	return list
}

func (e *Element) Append(node Node) {
	if a, ok := node.(*Attribute); ok {
		e.SetAttribute(*a)
		return
	}
	node.setParent(e)
	node.setPosition(len(e.Nodes))
	e.Nodes = append(e.Nodes, node)
}

// LookupAttr reports the value of an unprefixed attribute and whether it is
// present, so that an empty value can be told apart from a missing attribute.
func (e *Element) LookupAttr(name string) (string, bool) {
	ix := slices.IndexFunc(e.Attrs, func(a Attribute) bool {
		return a.Name == name && a.Space == ""
	})
	if ix < 0 {
		return "", false
	}
	return e.Attrs[ix].Value(), true
}

// SetAttribute adds attr to the element or replaces the attribute with the
// same qualified name.
func (e *Element) SetAttribute(attr Attribute) {
	attr.setParent(e)
	ix := slices.IndexFunc(e.Attrs, func(a Attribute) bool {
		return a.QualifiedName() == attr.QualifiedName()
	})
	if ix < 0 {
		attr.setPosition(len(e.Attrs))
		e.Attrs = append(e.Attrs, attr)
		return
	}
	attr.setPosition(ix)
	e.Attrs[ix] = attr
}

// Instruction is a processing instruction. The xml declaration is the only
// instruction whose content is split in pseudo attributes; any other target
// keeps its content as found between the target and the closing "?>".
type Instruction struct {
	QName
	link
	Attrs   []Attribute
	Content string
}

func NewInstruction(name QName) *Instruction {
	return &Instruction{
		QName: name,
	}
}

func (*Instruction) Type() NodeType {
	return TypeInstruction
}

func (i *Instruction) Value() string {
	return i.Content
}

type CharData struct {
	unnamed
	link
	Content string
}

func NewCharacterData(chardata string) *CharData {
	return &CharData{
		Content: chardata,
	}
}

func (*CharData) Type() NodeType {
	return TypeText
}

func (c *CharData) Value() string {
	return c.Content
}

type Text struct {
	unnamed
	link
	Content string
}

func NewText(text string) *Text {
	return &Text{
		Content: text,
	}
}

func (*Text) Type() NodeType {
	return TypeText
}

func (t *Text) Value() string {
	return t.Content
}

type Comment struct {
	unnamed
	link
	Content string
}

func NewComment(comment string) *Comment {
	return &Comment{
		Content: comment,
	}
}

func (*Comment) Type() NodeType {
	return TypeComment
}

func (c *Comment) Value() string {
	return c.Content
}
