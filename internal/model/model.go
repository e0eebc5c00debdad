// Package model holds the in-memory document built from a links file: an
// ordered sequence of groups, each owning an ordered sequence of links.
// Entities render themselves to HTML by stamping per-level template files.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/homer/internal/markdown"
	"git.home.luguber.info/inful/homer/internal/stamper"
	"git.home.luguber.info/inful/homer/internal/theme"
)

// ErrNoCurrentGroup indicates a link was added before any group header.
var ErrNoCurrentGroup = errors.New("no current group")

// GeneratedDateFormat is the layout used for the @GENERATED_DATE placeholder.
const GeneratedDateFormat = time.RFC1123

// urlSchemes are the prefixes accepted as-is; anything else gets https://.
var urlSchemes = []string{"http://", "https://", "ftp://", "mailto:"}

// RenderOptions carries everything a render pass needs: the resolved template
// set and whether description fields are rendered as inline Markdown.
type RenderOptions struct {
	Templates theme.Set
	Markdown  bool
}

func (o RenderOptions) description(raw string) (string, error) {
	if !o.Markdown || raw == "" {
		return raw, nil
	}
	return markdown.Inline(raw)
}

// Link is a single named hyperlink. Immutable after construction.
type Link struct {
	name        string
	url         string
	description string
}

// NewLink builds a Link, trimming all fields and defaulting the URL scheme
// to https:// when no recognized scheme prefix is present.
func NewLink(name, rawURL, description string) Link {
	url := strings.TrimSpace(rawURL)
	if url != "" && !hasScheme(url) {
		url = "https://" + url
	}
	return Link{
		name:        strings.TrimSpace(name),
		url:         url,
		description: strings.TrimSpace(description),
	}
}

func hasScheme(url string) bool {
	for _, scheme := range urlSchemes {
		if strings.HasPrefix(url, scheme) {
			return true
		}
	}
	return false
}

func (l Link) Name() string        { return l.name }
func (l Link) URL() string         { return l.url }
func (l Link) Description() string { return l.description }

// Render stamps the link template with this link's fields.
func (l Link) Render(opts RenderOptions) (string, error) {
	desc, err := opts.description(l.description)
	if err != nil {
		return "", fmt.Errorf("render link %q description: %w", l.name, err)
	}
	return stamper.StampFile(opts.Templates.Link, []stamper.Token{
		{Placeholder: "@URL", Value: l.url},
		{Placeholder: "@NAME", Value: l.name},
		{Placeholder: "@DESCRIPTION", Value: desc},
	})
}

// Group is a named collection of links, rendered as one block. Links are kept
// in insertion order and are never reordered or pruned.
type Group struct {
	name        string
	description string
	links       []Link
}

// NewGroup builds a Group with a trimmed name and description.
func NewGroup(name, description string) Group {
	return Group{
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
	}
}

func (g *Group) Name() string        { return g.name }
func (g *Group) Description() string { return g.description }
func (g *Group) Links() []Link       { return g.links }

func (g *Group) addLink(l Link) {
	g.links = append(g.links, l)
}

// Render concatenates the renders of all contained links and stamps the group
// template around them.
func (g *Group) Render(opts RenderOptions) (string, error) {
	var links strings.Builder
	for _, l := range g.links {
		out, err := l.Render(opts)
		if err != nil {
			return "", err
		}
		links.WriteString(out)
	}

	desc, err := opts.description(g.description)
	if err != nil {
		return "", fmt.Errorf("render group %q description: %w", g.name, err)
	}
	return stamper.StampFile(opts.Templates.Group, []stamper.Token{
		{Placeholder: "@NAME", Value: g.name},
		{Placeholder: "@DESCRIPTION", Value: desc},
		{Placeholder: "@LINKS", Value: links.String()},
		{Placeholder: "@LINK_COUNT", Value: strconv.Itoa(len(g.links))},
	})
}

// Document aggregates the groups parsed from one links file. The current
// group is tracked as an index into groups (-1 before the first header) so
// ownership of groups stays singular.
type Document struct {
	groups  []Group
	current int
	created time.Time
}

// NewDocument creates an empty document with its creation timestamp captured
// once.
func NewDocument() *Document {
	return &Document{current: -1, created: time.Now()}
}

// AddGroup appends a new group and makes it current. Groups with the same
// name stay distinct.
func (d *Document) AddGroup(name, description string) {
	d.groups = append(d.groups, NewGroup(name, description))
	d.current = len(d.groups) - 1
}

// AddLink appends a link to the current group. Returns ErrNoCurrentGroup if
// no group header has been seen yet.
func (d *Document) AddLink(l Link) error {
	if d.current < 0 {
		return ErrNoCurrentGroup
	}
	d.groups[d.current].addLink(l)
	return nil
}

func (d *Document) Groups() []Group    { return d.groups }
func (d *Document) Created() time.Time { return d.created }

// TotalGroups returns the number of groups in file order.
func (d *Document) TotalGroups() int { return len(d.groups) }

// TotalLinks returns the number of links across all groups.
func (d *Document) TotalLinks() int {
	total := 0
	for i := range d.groups {
		total += len(d.groups[i].links)
	}
	return total
}

// Render concatenates all group renders and stamps the document template
// with the aggregate counts and the document's creation timestamp.
func (d *Document) Render(opts RenderOptions) (string, error) {
	var groups strings.Builder
	for i := range d.groups {
		out, err := d.groups[i].Render(opts)
		if err != nil {
			return "", err
		}
		groups.WriteString(out)
	}

	return stamper.StampFile(opts.Templates.Document, []stamper.Token{
		{Placeholder: "@LINK_GROUPS", Value: groups.String()},
		{Placeholder: "@TOTAL_GROUPS", Value: strconv.Itoa(d.TotalGroups())},
		{Placeholder: "@TOTAL_LINKS", Value: strconv.Itoa(d.TotalLinks())},
		{Placeholder: "@GENERATED_DATE", Value: d.created.Format(GeneratedDateFormat)},
	})
}
