package naming

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CapitalizeFirst upper-cases the first character of s and leaves the rest
// untouched.
// Example: "users/{id}" -> "Users/{id}"
func CapitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}

// ResourceName derives the display name of a resource from its complete
// relative URI: the leading "/" is dropped and the first character
// capitalised.
// Example: "/users/{id}" -> "Users/{id}"
func ResourceName(uri string) string {
	return CapitalizeFirst(strings.Replace(uri, "/", "", 1))
}
