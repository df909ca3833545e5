// Package xsd flattens a tree of import-linked XML Schema documents into an
// ordered list of element descriptors and reads and writes that list as JSON.
package xsd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

const (
	DefaultType          = "Unknown"
	DefaultDocumentation = "No documentation available"
	DefaultAttributeType = "string"
)

// Element describes one element declaration of a schema.
type Element struct {
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	Mandatory     bool       `json:"mandatory"`
	Documentation string     `json:"documentation"`
	Attributes    Attributes `json:"attributes,omitempty"`
	MaxOccurs     string     `json:"maxOccurs,omitempty"`
	Children      []Element  `json:"children"`
}

// Walk calls fn for e and every descendant of e, depth first. The path given
// to fn holds the names of the ancestors, e included.
func (e Element) Walk(fn func(Element, []string)) {
	e.walk(nil, fn)
}

func (e Element) walk(path []string, fn func(Element, []string)) {
	path = append(slices.Clip(path), e.Name)
	fn(e, path)
	for _, c := range e.Children {
		c.walk(path, fn)
	}
}

type Attribute struct {
	Name string
	Type string
}

// Attributes keeps the attributes of an element in declaration order. It is
// encoded as a JSON object.
type Attributes []Attribute

func (a Attributes) Get(name string) (string, bool) {
	ix := slices.IndexFunc(a, func(attr Attribute) bool {
		return attr.Name == name
	})
	if ix < 0 {
		return "", false
	}
	return a[ix].Type, true
}

// Set adds an attribute or replaces the type of an existing one in place.
func (a *Attributes) Set(name, typ string) {
	ix := slices.IndexFunc(*a, func(attr Attribute) bool {
		return attr.Name == name
	})
	if ix >= 0 {
		(*a)[ix].Type = typ
		return
	}
	*a = append(*a, Attribute{Name: name, Type: typ})
}

func (a *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*a = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("attributes: object expected")
	}
	var list Attributes
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return err
		}
		var typ string
		if err := dec.Decode(&typ); err != nil {
			return fmt.Errorf("attributes: %s: %w", key, err)
		}
		list.Set(key.(string), typ)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*a = list
	return nil
}
