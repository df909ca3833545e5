// Package lookup answers questions about the fields of a flattened schema.
//
// An Index is built once from the element descriptors of an artifact and is
// read-only afterwards: it can be shared between goroutines.
package lookup

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/midbel/distance"

	"github.com/midbel/fpmlchat/xml"
	"github.com/midbel/fpmlchat/xsd"
)

const (
	DefaultThreshold = 0.3
	DefaultLimit     = 5
)

var ErrElementNotFound = errors.New("element not found")

type NotFoundError struct {
	Name   string
	Others []string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, ErrElementNotFound)
}

func (e NotFoundError) Unwrap() error {
	return ErrElementNotFound
}

type Entry struct {
	Label         string
	Value         string
	Documentation string
	Required      bool
	MinOccurs     string
	MaxOccurs     string

	Path       string
	Depth      int
	Attributes xsd.Attributes

	normalized string
}

func createEntry(el xsd.Element, path []string) Entry {
	e := Entry{
		Label:         el.Name,
		Value:         el.Type,
		Documentation: el.Documentation,
		Required:      el.Mandatory,
		MinOccurs:     "0",
		MaxOccurs:     "1",
		Path:          strings.Join(path, "/"),
		Depth:         len(path) - 1,
		Attributes:    el.Attributes,
		normalized:    normalize(el.Name),
	}
	if e.Required {
		e.MinOccurs = "1"
	}
	if el.MaxOccurs != "" {
		e.MaxOccurs = el.MaxOccurs
	}
	return e
}

// Sample gives a small XML fragment showing how the field is written.
func (e Entry) Sample() string {
	el := xml.NewElement(xml.LocalName(e.Label))
	for _, a := range e.Attributes {
		el.SetAttribute(xml.NewAttribute(xml.LocalName(a.Name), "sample"))
	}
	el.Append(xml.NewText("Sample Value"))
	return xml.WriteNode(el)
}

type Option func(*Index)

// WithThreshold sets the worst score a match can have to be reported by
// Query and Suggest.
func WithThreshold(threshold float64) Option {
	return func(ix *Index) {
		if threshold >= 0 && threshold <= 1 {
			ix.threshold = threshold
		}
	}
}

// WithLimit sets the number of suggestions given when Suggest is called
// without an explicit count.
func WithLimit(limit int) Option {
	return func(ix *Index) {
		if limit > 0 {
			ix.limit = limit
		}
	}
}

type Index struct {
	entries   []Entry
	threshold float64
	limit     int
}

// New indexes every element of list and all their descendants, depth first.
// Duplicate names are kept.
func New(list []xsd.Element, opts ...Option) *Index {
	ix := Index{
		threshold: DefaultThreshold,
		limit:     DefaultLimit,
	}
	for _, o := range opts {
		o(&ix)
	}
	for _, el := range list {
		el.Walk(func(el xsd.Element, path []string) {
			ix.entries = append(ix.entries, createEntry(el, path))
		})
	}
	return &ix
}

// Load reads an artifact written by xsd.WriteFile and indexes it.
func Load(file string, opts ...Option) (*Index, error) {
	list, err := xsd.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return New(list, opts...), nil
}

func (ix *Index) Len() int {
	return len(ix.entries)
}

func (ix *Index) Entries() []Entry {
	return slices.Clone(ix.entries)
}

// Query returns the entry whose label matches text best. It reports false
// when text is blank or when no label is close enough.
func (ix *Index) Query(text string) (Entry, bool) {
	res := ix.search(text)
	if len(res) == 0 {
		return Entry{}, false
	}
	return res[0].Entry, true
}

// Suggest returns at most k entries matching text, best first. When k is not
// positive, the limit of the index is used.
func (ix *Index) Suggest(text string, k int) []Entry {
	if k <= 0 {
		k = ix.limit
	}
	res := ix.search(text)
	if len(res) > k {
		res = res[:k]
	}
	list := make([]Entry, 0, len(res))
	for _, r := range res {
		list = append(list, r.Entry)
	}
	return list
}

// Lookup returns the first entry, in index order, whose label is name. A
// missing name gives a NotFoundError with the closest labels of the index.
func (ix *Index) Lookup(name string) (Entry, error) {
	name = strings.TrimSpace(name)
	i := slices.IndexFunc(ix.entries, func(e Entry) bool {
		return e.Label == name
	})
	if i >= 0 {
		return ix.entries[i], nil
	}
	err := NotFoundError{
		Name:   name,
		Others: distance.Levenshtein(name, ix.labels()),
	}
	return Entry{}, err
}

func (ix *Index) labels() []string {
	var (
		list []string
		seen = make(map[string]struct{})
	)
	for _, e := range ix.entries {
		if _, ok := seen[e.Label]; ok {
			continue
		}
		seen[e.Label] = struct{}{}
		list = append(list, e.Label)
	}
	return list
}

type result struct {
	Entry
	score float64
}

func (ix *Index) search(text string) []result {
	query := normalize(strings.TrimSpace(text))
	if query == "" {
		return nil
	}
	var list []result
	for _, e := range ix.entries {
		s := score(query, e.normalized)
		if s > ix.threshold {
			continue
		}
		list = append(list, result{Entry: e, score: s})
	}
	slices.SortStableFunc(list, func(a, b result) int {
		return cmp.Compare(a.score, b.score)
	})
	return list
}
