package xml_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/midbel/fpmlchat/xml"
)

const xsdNS = "http://www.w3.org/2001/XMLSchema"

func TestParseValidDocument(t *testing.T) {
	r, err := os.Open(filepath.Join("testdata", "sample.xml"))
	if err != nil {
		t.Errorf("fail to open sample file: %s", err)
		return
	}
	defer r.Close()

	doc, err := xml.NewParser(r).Parse()
	if err != nil {
		t.Errorf("fail to parse sample file: %s", err)
		return
	}
	root := doc.Root()
	if root == nil {
		t.Errorf("root element not found")
		return
	}
	if root.LocalName() != "schema" || root.Uri != xsdNS {
		t.Errorf("unexpected root element: %s", root.ExpandedName())
	}
	elems := root.FindAll("element")
	if len(elems) != 3 {
		t.Errorf("element count mismatched! want 3, got %d", len(elems))
		return
	}
	if got, _ := elems[0].LookupAttr("name"); got != "trade" {
		t.Errorf("single quoted attribute: want trade, got %s", got)
	}
	part := elems[1].Find("complexType").Find("sequence").Find("element")
	if v, ok := part.LookupAttr("minOccurs"); !ok || v != "0" {
		t.Errorf("attribute with blanks around '=' not parsed: %q (%t)", v, ok)
	}
	if got := elems[2].Value(); got != "<raw> text" {
		t.Errorf("character data mismatched: %q", got)
	}
	doc1 := root.Find("annotation").Find("documentation")
	if got := doc1.Value(); got != "Sample & test A" {
		t.Errorf("entities not decoded: %q", got)
	}
	if len(doc1.Attrs) != 1 || doc1.Attrs[0].Uri != xml.NamespaceXML {
		t.Errorf("xml prefix not bound: %v", doc1.Attrs)
	}
	pi, ok := root.Nodes[3].(*xml.Instruction)
	if !ok {
		t.Errorf("processing instruction expected, got %T", root.Nodes[3])
		return
	}
	if pi.Name != "fpml-hint" || pi.Content != `skip="true"` {
		t.Errorf("processing instruction mismatched: %s %q", pi.Name, pi.Content)
	}
}

func TestParseOptionalProlog(t *testing.T) {
	str := `<root><a/>text after empty element</root>`
	p := xml.NewParser(strings.NewReader(str))
	p.OmitProlog = true
	doc, err := p.Parse()
	if err != nil {
		t.Errorf("fail to parse document without prolog: %s", err)
		return
	}
	if got := doc.Root().Value(); got != "text after empty element" {
		t.Errorf("text mismatched: %q", got)
	}
}

func TestParseInstructions(t *testing.T) {
	data := []struct {
		Xml     string
		Target  string
		Content string
	}{
		{
			Xml:     `<root><?foo some text; here?></root>`,
			Target:  "foo",
			Content: "some text; here",
		},
		{
			Xml:     `<root><?foo  a ? b > c ?></root>`,
			Target:  "foo",
			Content: "a ? b > c ",
		},
		{
			Xml:    `<root><?foo?></root>`,
			Target: "foo",
		},
		{
			Xml:     `<root><?xml-stylesheet href="style.css" type="text/css"?></root>`,
			Target:  "xml-stylesheet",
			Content: `href="style.css" type="text/css"`,
		},
	}
	for _, d := range data {
		p := xml.NewParser(strings.NewReader(d.Xml))
		p.OmitProlog = true
		doc, err := p.Parse()
		if err != nil {
			t.Errorf("%s: fail to parse document: %s", d.Xml, err)
			continue
		}
		root := doc.Root()
		if len(root.Nodes) != 1 {
			t.Errorf("%s: node count mismatched! want 1, got %d", d.Xml, len(root.Nodes))
			continue
		}
		pi, ok := root.Nodes[0].(*xml.Instruction)
		if !ok {
			t.Errorf("%s: processing instruction expected, got %T", d.Xml, root.Nodes[0])
			continue
		}
		if pi.Name != d.Target {
			t.Errorf("%s: target mismatched! want %s, got %s", d.Xml, d.Target, pi.Name)
		}
		if pi.Content != d.Content {
			t.Errorf("%s: content mismatched! want %q, got %q", d.Xml, d.Content, pi.Content)
		}
	}
}

func TestParseReplacementCharacter(t *testing.T) {
	data := []string{
		"<root>bad \uFFFD char</root>",
		"<root attr=\"\uFFFD\">text</root>",
		"<root>invalid \xff byte</root>",
	}
	for _, str := range data {
		p := xml.NewParser(strings.NewReader(str))
		p.OmitProlog = true
		doc, err := p.Parse()
		if err != nil {
			t.Errorf("%q: fail to parse document: %s", str, err)
			continue
		}
		if doc.Root().LocalName() != "root" {
			t.Errorf("%q: root element not found", str)
		}
	}
	p := xml.NewParser(strings.NewReader("<root>bad \uFFFD char</root>"))
	p.OmitProlog = true
	doc, _ := p.Parse()
	if got := doc.Root().Value(); got != "bad \uFFFD char" {
		t.Errorf("text mismatched: %q", got)
	}
}

func TestParsePreserveSpace(t *testing.T) {
	const str = `<doc>The <b>bold</b>, text.<!-- note --> <i>end</i></doc>`
	data := []struct {
		Trim bool
		Want string
	}{
		{
			Trim: false,
			Want: "The bold, text. end",
		},
		{
			Trim: true,
			Want: "Thebold, text.end",
		},
	}
	for _, d := range data {
		p := xml.NewParser(strings.NewReader(str))
		p.OmitProlog = true
		p.TrimSpace = d.Trim
		doc, err := p.Parse()
		if err != nil {
			t.Errorf("fail to parse document: %s", err)
			continue
		}
		if got := doc.Root().Value(); got != d.Want {
			t.Errorf("value mismatched! want %q, got %q", d.Want, got)
		}
	}
}

func TestParseNamespaces(t *testing.T) {
	str := `<a xmlns="urn:default" xmlns:x="urn:x"><x:b><c/></x:b><d xmlns="urn:other"/></a>`
	p := xml.NewParser(strings.NewReader(str))
	p.OmitProlog = true
	doc, err := p.Parse()
	if err != nil {
		t.Errorf("fail to parse document: %s", err)
		return
	}
	root := doc.Root()
	data := []struct {
		Elem *xml.Element
		Uri  string
	}{
		{Elem: root, Uri: "urn:default"},
		{Elem: root.Find("b"), Uri: "urn:x"},
		{Elem: root.Find("b").Find("c"), Uri: "urn:default"},
		{Elem: root.Find("d"), Uri: "urn:other"},
	}
	for _, d := range data {
		if d.Elem.Uri != d.Uri {
			t.Errorf("%s: namespace mismatched! want %s, got %s", d.Elem.QualifiedName(), d.Uri, d.Elem.Uri)
		}
	}
}

const prolog = `<?xml version="1.0" encoding="UTF-8"?>`

func TestParseInvalidDocument(t *testing.T) {
	data := []struct {
		Xml        string
		Cause      string
		OmitProlog bool
		StrictNS   bool
	}{
		{
			Xml:   ``,
			Cause: "document without root element",
		},
		{
			Xml:        `<root></root>`,
			Cause:      "document without prolog",
			OmitProlog: true,
		},
		{
			Xml:   `<root empty-attr></root>`,
			Cause: "attribute without value",
		},
		{
			Xml:   `<root id="id-1" id="id-2"></root>`,
			Cause: "duplicate attribute",
		},
		{
			Xml:   `<root><a></b></root>`,
			Cause: "mismatched closing element",
		},
		{
			Xml:   `<root><a>`,
			Cause: "unclosed element",
		},
		{
			Xml:   `<root/><root/>`,
			Cause: "multiple root elements",
		},
		{
			Xml:      `<x:root/>`,
			Cause:    "undefined namespace",
			StrictNS: true,
		},
		{
			Xml:   `<root attr="value></root>`,
			Cause: "unterminated attribute value",
		},
	}
	for _, d := range data {
		if !d.OmitProlog {
			d.Xml = prolog + d.Xml
		}
		p := xml.NewParser(strings.NewReader(d.Xml))
		p.StrictNS = d.StrictNS
		_, err := p.Parse()
		if err == nil {
			t.Errorf("%s: invalid document parsed properly!", d.Cause)
			continue
		}
		var perr xml.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%s: unexpected error type %T", d.Cause, err)
		}
	}
}

func TestParseFile(t *testing.T) {
	doc, err := xml.ParseFile(filepath.Join("testdata", "sample.xml"))
	if err != nil {
		t.Errorf("fail to parse file: %s", err)
		return
	}
	if doc.Root() == nil {
		t.Errorf("root element not found")
	}
	doc, err = xml.ParseFile(filepath.Join("testdata", "sample.xml"), xml.PreserveSpace)
	if err != nil {
		t.Errorf("fail to parse file: %s", err)
		return
	}
	str := doc.Root().Find("annotation").Value()
	if strings.TrimSpace(str) == str {
		t.Errorf("surrounding blanks of annotation not preserved: %q", str)
	}
	if _, err := xml.ParseFile(filepath.Join("testdata", "missing.xml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: unexpected error %v", err)
	}
}
