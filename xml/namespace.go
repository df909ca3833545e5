package xml

import (
	"errors"
	"fmt"
)

const (
	AttrXmlNS    = "xmlns"
	NamespaceXML = "http://www.w3.org/XML/1998/namespace"
)

var ErrUndefined = errors.New("undefined namespace")

// scope holds the prefix bindings visible from an element. Each element opens
// a new scope enclosed by the scope of its parent.
type scope struct {
	values map[string]string
	parent *scope
}

func rootScope() *scope {
	s := enclosedScope(nil)
	s.define("xml", NamespaceXML)
	return s
}

func enclosedScope(parent *scope) *scope {
	return &scope{
		values: make(map[string]string),
		parent: parent,
	}
}

func (s *scope) define(prefix, uri string) {
	s.values[prefix] = uri
}

func (s *scope) resolve(prefix string) (string, error) {
	uri, ok := s.values[prefix]
	if ok {
		return uri, nil
	}
	if s.parent != nil {
		return s.parent.resolve(prefix)
	}
	if prefix == "" {
		return "", nil
	}
	return "", fmt.Errorf("%s: %w", prefix, ErrUndefined)
}

func (s *scope) unwrap() *scope {
	if s.parent == nil {
		return s
	}
	return s.parent
}
