package xml

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type WriterOptions uint64

const (
	OptionCompact WriterOptions = 1 << iota
	OptionNoNamespace
	OptionNoComment
	OptionNoProlog
)

func (w WriterOptions) Compact() bool {
	return w&OptionCompact > 0
}

func (w WriterOptions) NoNamespace() bool {
	return w&OptionNoNamespace > 0
}

func (w WriterOptions) NoComment() bool {
	return w&OptionNoComment > 0
}

func (w WriterOptions) NoProlog() bool {
	return w&OptionNoProlog > 0
}

type Writer struct {
	writer *bufio.Writer

	Indent string
	WriterOptions
}

// WriteNode returns the compact serialization of a single node.
func WriteNode(node Node) string {
	var buf bytes.Buffer

	ws := NewWriter(&buf)
	ws.WriterOptions |= OptionCompact
	ws.writeNode(node, 0)
	ws.writer.Flush()
	return buf.String()
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer: bufio.NewWriter(w),
		Indent: "  ",
	}
}

func (w *Writer) Write(doc *Document) error {
	defer w.writer.Flush()
	if !w.NoProlog() {
		w.writeProlog(doc)
	}
	for i, n := range doc.Nodes {
		if i > 0 || !w.NoProlog() {
			w.writeNL()
		}
		if err := w.writeNode(n, 0); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeNode(node Node, depth int) error {
	switch node := node.(type) {
	case *Element:
		return w.writeElement(node, depth)
	case *CharData:
		return w.writeCharData(node)
	case *Text:
		return w.writeLiteral(node)
	case *Instruction:
		return w.writeInstruction(node, depth)
	case *Comment:
		return w.writeComment(node, depth)
	default:
		return fmt.Errorf("node: unknown type (%T)", node)
	}
}

func (w *Writer) writeElement(node *Element, depth int) error {
	prefix := w.getIndent(depth)
	w.writer.WriteString(prefix)
	w.writer.WriteRune(langle)
	w.writeName(node.QName)
	w.writeAttributes(node.Attrs)
	if len(node.Nodes) == 0 {
		w.writer.WriteRune(slash)
		w.writer.WriteRune(rangle)
		return nil
	}
	w.writer.WriteRune(rangle)
	for _, n := range node.Nodes {
		if n.Type() != TypeText {
			w.writeNL()
		}
		if err := w.writeNode(n, depth+1); err != nil {
			return err
		}
	}
	if !node.Leaf() {
		w.writeNL()
		w.writer.WriteString(prefix)
	}
	w.writer.WriteRune(langle)
	w.writer.WriteRune(slash)
	w.writeName(node.QName)
	w.writer.WriteRune(rangle)
	return nil
}

func (w *Writer) writeName(name QName) {
	if w.NoNamespace() {
		w.writer.WriteString(name.LocalName())
	} else {
		w.writer.WriteString(name.QualifiedName())
	}
}

func (w *Writer) writeLiteral(node *Text) error {
	_, err := w.writer.WriteString(escapeText(node.Content))
	return err
}

func (w *Writer) writeCharData(node *CharData) error {
	w.writer.WriteString("<![CDATA[")
	w.writer.WriteString(node.Content)
	_, err := w.writer.WriteString("]]>")
	return err
}

func (w *Writer) writeComment(node *Comment, depth int) error {
	if w.NoComment() {
		return nil
	}
	w.writer.WriteString(w.getIndent(depth))
	w.writer.WriteString("<!--")
	w.writer.WriteString(node.Content)
	_, err := w.writer.WriteString("-->")
	return err
}

func (w *Writer) writeInstruction(node *Instruction, depth int) error {
	w.writer.WriteString(w.getIndent(depth))
	w.writer.WriteRune(langle)
	w.writer.WriteRune(question)
	w.writer.WriteString(node.Name)
	w.writeAttributes(node.Attrs)
	if node.Content != "" {
		w.writer.WriteRune(' ')
		w.writer.WriteString(node.Content)
	}
	w.writer.WriteRune(question)
	_, err := w.writer.WriteRune(rangle)
	return err
}

func (w *Writer) writeProlog(doc *Document) error {
	prolog := NewInstruction(LocalName("xml"))
	prolog.Attrs = []Attribute{
		NewAttribute(LocalName("version"), doc.Version),
		NewAttribute(LocalName("encoding"), doc.Encoding),
	}
	return w.writeInstruction(prolog, 0)
}

func (w *Writer) writeAttributes(attrs []Attribute) {
	for _, a := range attrs {
		if w.NoNamespace() && (a.Space == AttrXmlNS || a.Name == AttrXmlNS) {
			continue
		}
		w.writer.WriteRune(' ')
		w.writeName(a.QName)
		w.writer.WriteRune(equal)
		w.writer.WriteRune(quote)
		w.writer.WriteString(escapeText(a.Value()))
		w.writer.WriteRune(quote)
	}
}

func (w *Writer) writeNL() {
	if w.Compact() {
		return
	}
	w.writer.WriteRune('\n')
}

func (w *Writer) getIndent(depth int) string {
	if w.Compact() {
		return ""
	}
	return strings.Repeat(w.Indent, depth)
}

func escapeText(str string) string {
	var buf bytes.Buffer
	for i := 0; i < len(str); {
		r, z := utf8.DecodeRuneInString(str[i:])
		i += z

		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&apos;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
