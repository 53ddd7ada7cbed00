package service

import (
	"regexp"
	"unicode/utf8"
)

const (
	excerptRunes  = 250
	excerptSuffix = "..."
)

var markupTag = regexp.MustCompile(`<[^>]*>`)

// DeriveExcerpt strips every <...> tag from content and keeps the first 250
// characters of what remains, followed by an ellipsis.
func DeriveExcerpt(content string) string {
	text := markupTag.ReplaceAllString(content, "")
	if utf8.RuneCountInString(text) > excerptRunes {
		text = string([]rune(text)[:excerptRunes])
	}
	return text + excerptSuffix
}
