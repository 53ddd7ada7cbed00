package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"strips tags and truncates", "<p>Hello</p>" + strings.Repeat("x", 300), "Hello" + strings.Repeat("x", 245) + "..."},
		{"short content keeps everything", "<b>Breaking</b> news", "Breaking news..."},
		{"counts runes not bytes", strings.Repeat("é", 260), strings.Repeat("é", 250) + "..."},
		{"attributes inside tags", `<a href="https://example.com">link</a> text`, "link text..."},
		{"exactly 250 characters", strings.Repeat("y", 250), strings.Repeat("y", 250) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveExcerpt(tt.content))
		})
	}
}
