// Package sanitize guards user-supplied free text before it is stored.
// Text is stored as submitted; values carrying HTML markup are rejected rather than rewritten.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
)

var (
	strict = bluemonday.StrictPolicy()
	upper  = cases.Upper(language.Und)

	// the HTML tokenizer folds CR and CRLF into LF
	newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Text trims s and returns it unchanged unless it carries HTML markup, in which case a
// validation error naming field is returned. Plain text using <, > or & is accepted.
func Text(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if ContainsMarkup(s) {
		return "", errors.NewValidationError("HTML markup is not allowed", field)
	}
	return s, nil
}

// ContainsMarkup reports whether stripping every HTML element from s would change its text.
func ContainsMarkup(s string) bool {
	if !strings.ContainsAny(s, "<>") {
		return false
	}
	want := newlines.Replace(html.UnescapeString(s))
	return html.UnescapeString(strict.Sanitize(s)) != want
}

// Upper trims s and converts it to upper case using Unicode case mapping.
func Upper(s string) string {
	return upper.String(strings.TrimSpace(s))
}
