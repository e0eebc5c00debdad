// Package parser turns a line-oriented links file into a model.Document.
// Each line is classified as a group header (one comma-separated field) or a
// link entry (two or more fields); bad lines are reported and skipped so a
// single mistake never aborts a whole generation.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/homer/internal/model"
)

const commentMarker = "#"

// ErrorKind classifies recoverable per-line errors.
type ErrorKind string

const (
	// KindMissingGroup marks a link entry seen before any group header.
	KindMissingGroup ErrorKind = "missing_group"
	// KindMalformed marks a link entry with an empty name or URL field.
	KindMalformed ErrorKind = "malformed"
)

// LineError records one skipped line.
type LineError struct {
	Line   int
	Kind   ErrorKind
	Reason string
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Parser feeds parsed lines into a document. One parser handles one input
// stream; its error list grows as lines are skipped.
type Parser struct {
	doc  *model.Document
	errs []LineError
}

// New creates a parser that mutates doc.
func New(doc *model.Document) *Parser {
	return &Parser{doc: doc}
}

// ProcessLine classifies one physical line and updates the document. Blank
// lines and comments are skipped silently; structural problems are recorded
// and logged, and parsing continues.
func (p *Parser) ProcessLine(raw string, lineNo int) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, commentMarker) {
		return
	}

	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if len(fields) == 1 {
		p.doc.AddGroup(fields[0], "")
		return
	}

	// Link entry: name, url, optional description; extra fields ignored.
	name, url := fields[0], fields[1]
	description := ""
	if len(fields) >= 3 {
		description = fields[2]
	}

	if name == "" || url == "" {
		p.report(LineError{Line: lineNo, Kind: KindMalformed,
			Reason: "link entry needs a non-empty name and url"})
		return
	}

	if err := p.doc.AddLink(model.NewLink(name, url, description)); err != nil {
		p.report(LineError{Line: lineNo, Kind: KindMissingGroup,
			Reason: "link entry before any group header"})
	}
}

// ProcessReader consumes r line by line in file order. The returned error
// covers stream-level read failures only; per-line problems land in Errors.
func (p *Parser) ProcessReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		p.ProcessLine(scanner.Text(), lineNo)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Errors returns the recoverable errors collected so far, in line order.
func (p *Parser) Errors() []LineError {
	return p.errs
}

func (p *Parser) report(e LineError) {
	p.errs = append(p.errs, e)
	slog.Warn("Skipping input line", "line", e.Line, "kind", string(e.Kind), "reason", e.Reason)
}
