// Package markdown renders description fields as inline HTML. This is an
// opt-in convenience for emphasis and inline links inside descriptions; by
// default descriptions are stamped literally.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// Inline converts a one-line Markdown snippet to HTML and unwraps the
// paragraph element Goldmark adds around loose text, so the result can be
// stamped into an inline context.
func Inline(src string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return out, nil
}
