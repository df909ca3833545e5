package xsd

import (
	"errors"
	"fmt"
)

var ErrNoSchema = errors.New("schema element missing")

// SchemaLoadError reports a schema file that can not be read, is not well
// formed or has no top-level schema element. It aborts the flattening.
type SchemaLoadError struct {
	File string
	Err  error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Err)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Err
}
