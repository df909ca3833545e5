package xsd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Writer encodes element lists as JSON. Keys are written in a fixed order:
// name, type, mandatory, documentation, attributes, maxOccurs, children.
type Writer struct {
	ws *bufio.Writer

	Indent  string
	Compact bool

	level int
}

func NewWriter(w io.Writer) *Writer {
	ws := Writer{
		ws:     bufio.NewWriter(w),
		Indent: "  ",
	}
	return &ws
}

func (w *Writer) Write(list []Element) error {
	defer w.reset()
	w.writeElements(list)
	if !w.Compact {
		w.ws.WriteRune('\n')
	}
	return w.ws.Flush()
}

func (w *Writer) writeElements(list []Element) {
	if len(list) == 0 {
		w.ws.WriteString("[]")
		return
	}
	w.enter()
	w.ws.WriteRune('[')
	w.writeNL()
	for i := range list {
		if i > 0 {
			w.ws.WriteRune(',')
			w.writeNL()
		}
		w.writePrefix()
		w.writeElement(list[i])
	}
	w.leave()
	w.writeNL()
	w.writePrefix()
	w.ws.WriteRune(']')
}

func (w *Writer) writeElement(el Element) {
	w.enter()
	w.ws.WriteRune('{')
	w.writeNL()

	w.writeField("name", false)
	w.writeString(el.Name)
	w.writeField("type", true)
	w.writeString(el.Type)
	w.writeField("mandatory", true)
	if el.Mandatory {
		w.ws.WriteString("true")
	} else {
		w.ws.WriteString("false")
	}
	w.writeField("documentation", true)
	w.writeString(el.Documentation)
	if len(el.Attributes) > 0 {
		w.writeField("attributes", true)
		w.writeAttributes(el.Attributes)
	}
	if el.MaxOccurs != "" {
		w.writeField("maxOccurs", true)
		w.writeString(el.MaxOccurs)
	}
	w.writeField("children", true)
	w.writeElements(el.Children)

	w.leave()
	w.writeNL()
	w.writePrefix()
	w.ws.WriteRune('}')
}

func (w *Writer) writeAttributes(attrs Attributes) {
	w.enter()
	w.ws.WriteRune('{')
	w.writeNL()
	for i, a := range attrs {
		w.writeField(a.Name, i > 0)
		w.writeString(a.Type)
	}
	w.leave()
	w.writeNL()
	w.writePrefix()
	w.ws.WriteRune('}')
}

func (w *Writer) writeField(key string, comma bool) {
	if comma {
		w.ws.WriteRune(',')
		w.writeNL()
	}
	w.writePrefix()
	w.writeString(key)
	w.ws.WriteRune(':')
	if !w.Compact {
		w.ws.WriteRune(' ')
	}
}

func (w *Writer) writeString(value string) {
	w.ws.WriteRune('"')
	for _, r := range value {
		switch r {
		case '"':
			w.ws.WriteString(`\"`)
		case '\\':
			w.ws.WriteString(`\\`)
		case '\n':
			w.ws.WriteString(`\n`)
		case '\r':
			w.ws.WriteString(`\r`)
		case '\t':
			w.ws.WriteString(`\t`)
		case '\b':
			w.ws.WriteString(`\b`)
		case '\f':
			w.ws.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(w.ws, `\u%04x`, r)
			} else {
				w.ws.WriteRune(r)
			}
		}
	}
	w.ws.WriteRune('"')
}

func (w *Writer) writePrefix() {
	if w.Compact || w.level == 0 {
		return
	}
	w.ws.WriteString(strings.Repeat(w.Indent, w.level))
}

func (w *Writer) writeNL() {
	if w.Compact {
		return
	}
	w.ws.WriteRune('\n')
}

func (w *Writer) enter() {
	w.level++
}

func (w *Writer) leave() {
	w.level--
}

func (w *Writer) reset() {
	w.level = 0
}

// Encode writes list to w, indented with two spaces.
func Encode(w io.Writer, list []Element) error {
	return NewWriter(w).Write(list)
}

// WriteFile writes list to file, creating the missing parent folders. The
// file is written next to its final location first and then renamed, so an
// existing artifact is never left half written.
func WriteFile(file string, list []Element) error {
	return writeFile(file, list, "  ")
}

// WriteFileIndent is like WriteFile but uses indent as indentation unit. An
// empty indent gives a compact output.
func WriteFileIndent(file string, list []Element, indent string) error {
	return writeFile(file, list, indent)
}

func writeFile(file string, list []Element, indent string) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	ws := NewWriter(tmp)
	ws.Indent = indent
	ws.Compact = indent == ""
	if err := ws.Write(list); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), file)
}
