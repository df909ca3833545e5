package casing

import (
	"strings"
	"unicode"
)

type CaseType int8

const (
	DefaultCase CaseType = -(1 << iota)
	SnakeCase
	KebabCase
	CamelCase
	PascalCase
	TitleCase
)

func To(to CaseType, str string) string {
	switch to {
	case SnakeCase:
		str = ToSnake(str)
	case KebabCase:
		str = ToKebab(str)
	case CamelCase:
		str = ToCamel(str)
	case PascalCase:
		str = ToPascal(str)
	case TitleCase:
		str = ToTitle(str)
	default:
	}
	return str
}

func ToSnake(str string) string {
	return joinLower(Words(str), underscore)
}

func ToKebab(str string) string {
	return joinLower(Words(str), hyphen)
}

func ToPascal(str string) string {
	var b strings.Builder
	for _, w := range Words(str) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

func ToCamel(str string) string {
	var b strings.Builder
	for i, w := range Words(str) {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// ToTitle turns an identifier into space separated words, each one starting
// with an upper case letter: tradeHeader gives Trade Header.
func ToTitle(str string) string {
	list := Words(str)
	for i := range list {
		list[i] = capitalize(list[i])
	}
	return strings.Join(list, string(space))
}

// Words splits str on separators and on case transitions. A run of upper case
// letters is kept as one word except for its last letter when it starts a
// new lower case word: FpMLTradeID gives Fp, ML, Trade, ID.
func Words(str string) []string {
	var (
		words []string
		curr  []rune
		runes = []rune(str)
	)
	flush := func() {
		if len(curr) > 0 {
			words = append(words, string(curr))
			curr = curr[:0]
		}
	}
	for i, r := range runes {
		if isSep(r) || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			flush()
			continue
		}
		if i > 0 && len(curr) > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				flush()
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		curr = append(curr, r)
	}
	flush()
	return words
}

const (
	hyphen     = '-'
	space      = ' '
	underscore = '_'
)

func isSep(r rune) bool {
	return r == hyphen || r == underscore || r == space
}

func joinLower(words []string, sep rune) string {
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	return strings.Join(words, string(sep))
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return word
	}
	if isAcronym(word) {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func isAcronym(word string) bool {
	var count int
	for _, r := range word {
		if !unicode.IsUpper(r) {
			return false
		}
		count++
	}
	return count > 1
}
