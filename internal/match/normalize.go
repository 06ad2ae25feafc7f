package match

import (
	"go/token"
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for loose comparison: CamelCase and
// separators are dropped and everything is lowercased.
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(tokenizeCamelCase(s), ""))
}

// ExportedIdent converts a column or member name into an exported Go
// identifier ("first_name" -> "FirstName", "createdAt" -> "CreatedAt").
// Characters that cannot appear in an identifier are dropped; a leading digit
// gets an "X" prefix. It returns "" when nothing usable remains.
func ExportedIdent(s string) string {
	var b strings.Builder

	for _, tok := range tokenizeCamelCase(s) {
		tok = strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}

			return -1
		}, tok)

		b.WriteString(Capitalize(tok))
	}

	ident := b.String()
	if ident == "" {
		return ""
	}

	if unicode.IsDigit(rune(ident[0])) {
		ident = "X" + ident
	}

	if !token.IsIdentifier(ident) {
		return ""
	}

	return ident
}

// SnakeCase converts a Go identifier into lower snake case
// ("CustomerOrder" -> "customer_order", "HTTPRequest" -> "http_request").
func SnakeCase(s string) string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return strings.Join(tokens, "_")
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customerName" -> ["customer", "Name"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "first_name" -> ["first", "name"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "orderID": split before 'I'
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": split before 'P'
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
