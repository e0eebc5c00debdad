// Package stamper implements literal placeholder substitution for template
// files. It is deliberately not a template engine: no loops, no conditionals,
// no escaping. A placeholder is a plain marker string (e.g. "@NAME") replaced
// verbatim wherever it occurs.
package stamper

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrTemplateNotFound indicates a required template file does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// Token pairs a placeholder marker with its replacement value. Tokens are
// applied in slice order so substitution is deterministic for the caller.
type Token struct {
	Placeholder string
	Value       string
}

// Stamp replaces every occurrence of each token's placeholder in text,
// applying tokens sequentially. Values substituted by an earlier token are
// scanned again by later tokens only if their placeholders happen to appear
// in the value; a single token never re-scans its own output. Data containing
// placeholder-shaped substrings is substituted like anything else — this is
// a documented property of literal stamping, not something to special-case.
func Stamp(text string, tokens []Token) string {
	for _, t := range tokens {
		text = strings.ReplaceAll(text, t.Placeholder, t.Value)
	}
	return text
}

// StampFile reads the template at path and stamps it with tokens.
// A missing file yields an error matching ErrTemplateNotFound; any other
// read failure is wrapped with the path for the operator.
func StampFile(path string, tokens []Token) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return "", fmt.Errorf("read template %s: %w", path, err)
	}
	return Stamp(string(data), tokens), nil
}
