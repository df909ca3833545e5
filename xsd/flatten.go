package xsd

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/midbel/fpmlchat/xml"
)

const SchemaNS = "http://www.w3.org/2001/XMLSchema"

type Option func(*Loader)

func WithTracer(tracer Tracer) Option {
	return func(l *Loader) {
		if tracer != nil {
			l.tracer = tracer
		}
	}
}

// WithParallel parses the schemas imported by a file with up to n concurrent
// workers before walking them. The order of the output does not change.
func WithParallel(n int) Option {
	return func(l *Loader) {
		l.parallel = n
	}
}

// Loader flattens the schema files found under one base folder. A Loader
// keeps track of the files it already processed: it must not be shared
// between two runs.
type Loader struct {
	base     string
	tracer   Tracer
	parallel int

	visited map[string]struct{}

	mu    sync.Mutex
	cache map[string]parseResult
}

type parseResult struct {
	doc *xml.Document
	err error
}

func NewLoader(base string, opts ...Option) *Loader {
	l := Loader{
		base:    base,
		tracer:  NoopTracer(),
		visited: make(map[string]struct{}),
		cache:   make(map[string]parseResult),
	}
	for _, o := range opts {
		o(&l)
	}
	return &l
}

// Flatten returns the elements declared by the root schema and by every
// schema it imports, imported elements first.
func Flatten(root, base string, opts ...Option) ([]Element, error) {
	return NewLoader(base, opts...).Load(root)
}

// Load flattens file. A file that was already loaded by l gives no
// elements.
func (l *Loader) Load(file string) ([]Element, error) {
	key := canonical(file)
	if _, ok := l.visited[key]; ok {
		l.tracer.Skip(file)
		return nil, nil
	}
	l.visited[key] = struct{}{}
	l.tracer.Enter(file)

	schema, err := l.open(file)
	if err != nil {
		l.tracer.Error(file, err)
		return nil, err
	}
	imports := l.imports(schema)
	if l.parallel > 1 {
		l.prefetch(imports)
	}

	var list []Element
	for _, loc := range imports {
		others, err := l.Load(loc)
		if err != nil {
			l.tracer.Error(file, err)
			return nil, err
		}
		list = append(list, others...)
	}
	for _, el := range children(schema, "element") {
		list = append(list, createElement(el))
	}
	l.tracer.Leave(file, len(list))
	return list, nil
}

func (l *Loader) open(file string) (*xml.Element, error) {
	doc, err := l.parse(file)
	if err != nil {
		return nil, &SchemaLoadError{File: file, Err: err}
	}
	root := doc.Root()
	if !isSchemaNode(root, "schema") {
		return nil, &SchemaLoadError{File: file, Err: ErrNoSchema}
	}
	return root, nil
}

func (l *Loader) parse(file string) (*xml.Document, error) {
	key := canonical(file)

	l.mu.Lock()
	res, ok := l.cache[key]
	delete(l.cache, key)
	l.mu.Unlock()

	if ok {
		return res.doc, res.err
	}
	return xml.ParseFile(file, xml.PreserveSpace)
}

func (l *Loader) prefetch(files []string) {
	var grp errgroup.Group
	grp.SetLimit(l.parallel)
	for _, f := range files {
		key := canonical(f)
		if _, ok := l.visited[key]; ok {
			continue
		}
		grp.Go(func() error {
			doc, err := xml.ParseFile(f, xml.PreserveSpace)

			l.mu.Lock()
			defer l.mu.Unlock()
			l.cache[key] = parseResult{
				doc: doc,
				err: err,
			}
			return nil
		})
	}
	grp.Wait()
}

// imports gives the files referenced by the import and include declarations
// of schema, in declaration order, resolved against the base folder.
func (l *Loader) imports(schema *xml.Element) []string {
	var files []string
	for _, el := range schema.Elements() {
		if !isSchemaNode(el, "import") && !isSchemaNode(el, "include") {
			continue
		}
		loc, _ := el.LookupAttr("schemaLocation")
		if loc = strings.TrimSpace(loc); loc == "" {
			continue
		}
		if !filepath.IsAbs(loc) {
			loc = filepath.Join(l.base, loc)
		}
		files = append(files, loc)
	}
	return files
}

func createElement(el *xml.Element) Element {
	elem := Element{
		Name:          elementName(el),
		Type:          DefaultType,
		Documentation: DefaultDocumentation,
		Children:      []Element{},
	}
	if typ, _ := el.LookupAttr("type"); typ != "" {
		elem.Type = typ
	}
	minOccurs, _ := el.LookupAttr("minOccurs")
	elem.Mandatory = minOccurs != "0"
	elem.MaxOccurs, _ = el.LookupAttr("maxOccurs")

	if doc := documentation(el); doc != "" {
		elem.Documentation = doc
	}
	complex := first(children(el, "complexType"))
	if complex == nil {
		return elem
	}
	for _, a := range children(complex, "attribute") {
		name := elementName(a)
		if name == "" {
			continue
		}
		typ, _ := a.LookupAttr("type")
		if typ == "" {
			typ = DefaultAttributeType
		}
		elem.Attributes.Set(name, typ)
	}
	if seq := first(children(complex, "sequence")); seq != nil {
		for _, c := range children(seq, "element") {
			elem.Children = append(elem.Children, createElement(c))
		}
	}
	return elem
}

// elementName gives the name of a declaration or, for a reference, the local
// part of the referenced name.
func elementName(el *xml.Element) string {
	if name, ok := el.LookupAttr("name"); ok {
		return name
	}
	ref, _ := el.LookupAttr("ref")
	if qn, err := xml.ParseName(ref); err == nil {
		return qn.LocalName()
	}
	return ref
}

// documentation gives the first non blank documentation of el, runs of
// blanks being collapsed into a single space.
func documentation(el *xml.Element) string {
	for _, a := range children(el, "annotation") {
		for _, d := range children(a, "documentation") {
			if str := strings.Join(strings.Fields(d.Value()), " "); str != "" {
				return str
			}
		}
	}
	return ""
}

// children gives the direct children of el that are the given XML Schema
// element.
func children(el *xml.Element, name string) []*xml.Element {
	list := el.FindAll(name)
	return slices.DeleteFunc(list, func(c *xml.Element) bool {
		return !isSchemaNode(c, name)
	})
}

func first(list []*xml.Element) *xml.Element {
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// isSchemaNode checks that el is the given XML Schema element. Documents that
// do not bind the XML Schema namespace are accepted when they use one of the
// conventional prefixes.
func isSchemaNode(el *xml.Element, name string) bool {
	if el == nil || el.LocalName() != name {
		return false
	}
	if el.Uri != "" {
		return el.Uri == SchemaNS
	}
	return el.Space == "xs" || el.Space == "xsd"
}

func canonical(file string) string {
	if abs, err := filepath.Abs(file); err == nil {
		return abs
	}
	return filepath.Clean(file)
}
