package xsd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a list of elements previously written by Encode.
func Decode(r io.Reader) ([]Element, error) {
	var list []Element
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode elements: %w", err)
	}
	fixChildren(list)
	return list, nil
}

func ReadFile(file string) ([]Element, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Decode(r)
}

func fixChildren(list []Element) {
	for i := range list {
		if list[i].Children == nil {
			list[i].Children = []Element{}
		}
		fixChildren(list[i].Children)
	}
}
