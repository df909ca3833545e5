package chat

import (
	"fmt"
	"strings"

	"github.com/midbel/fpmlchat/lookup"
)

const NotFound = "Sorry, I couldn't find details for that field."

// Format writes the answer given for entry.
func Format(e lookup.Entry) string {
	var str strings.Builder
	fmt.Fprintf(&str, "Field Name: %s\n\n", e.Label)
	fmt.Fprintf(&str, "Data Type: %s\n\n", e.Value)
	if e.Required {
		str.WriteString("Required: Yes, this field must be provided.\n\n")
	} else {
		str.WriteString("Required: No, this field is optional.\n\n")
	}
	str.WriteString("Occurrences:\n")
	fmt.Fprintf(&str, "- Minimum: %s\n", e.MinOccurs)
	fmt.Fprintf(&str, "- Maximum: %s\n\n", e.MaxOccurs)
	str.WriteString("Explanation:\n")
	str.WriteString(e.Documentation)
	return str.String()
}

// Reply answers a question with the best matching field of ix.
func Reply(ix *lookup.Index, question string) string {
	e, ok := ix.Query(question)
	if !ok {
		return NotFound
	}
	return Format(e)
}
