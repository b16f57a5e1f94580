package main

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Release is one version section of the changelog. Body holds the
// markdown between this version heading and the next, link definitions
// excluded.
type Release struct {
	Version string
	Date    string
	Body    string
}

// Notes is a parsed changelog: version sections in file order plus the
// trailing link definitions keyed by label.
type Notes struct {
	Releases []Release
	Links    map[string]string
}

// Find returns the release for a version, tolerating a leading "v" on
// either side. Nil when the version has no section.
func (n *Notes) Find(version string) *Release {
	want := strings.TrimPrefix(version, "v")
	for i := range n.Releases {
		if strings.TrimPrefix(n.Releases[i].Version, "v") == want {
			return &n.Releases[i]
		}
	}
	return nil
}

// Latest returns the newest dated release, skipping the Unreleased
// section. Nil when nothing has shipped yet.
func (n *Notes) Latest() *Release {
	for i := range n.Releases {
		if n.Releases[i].Date != "" {
			return &n.Releases[i]
		}
	}
	return nil
}

// versionSpan marks where a version heading sits in the source so the
// body between consecutive headings can be sliced out.
type versionSpan struct {
	version   string
	date      string
	headStart int
	bodyStart int
}

func parseNotes(source []byte) (*Notes, error) {
	md := goldmark.New()
	ctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	notes := &Notes{Links: map[string]string{}}
	for _, ref := range ctx.References() {
		notes.Links[string(ref.Label())] = string(ref.Destination())
	}

	var spans []versionSpan
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		heading, ok := n.(*ast.Heading)
		if !entering || !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}

		version, date := splitVersionHeading(headingText(heading, source))
		span := versionSpan{version: version, date: date}
		if lines := heading.Lines(); lines.Len() > 0 {
			span.headStart = lines.At(0).Start
			span.bodyStart = lines.At(lines.Len() - 1).Stop
		}
		spans = append(spans, span)
		return ast.WalkContinue, nil
	})

	for i, span := range spans {
		end := len(source)
		if i+1 < len(spans) {
			end = spans[i+1].headStart
		}
		body := ""
		if span.bodyStart < end {
			body = stripLinkDefinitions(string(source[span.bodyStart:end]))
		}
		notes.Releases = append(notes.Releases, Release{
			Version: span.version,
			Date:    span.date,
			Body:    body,
		})
	}

	return notes, nil
}

// headingText flattens a heading's inline children, descending one
// level into links so "[1.0.0] - 2024-01-15" reads whole.
func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
		case *ast.Link:
			for inner := c.FirstChild(); inner != nil; inner = inner.NextSibling() {
				if t, ok := inner.(*ast.Text); ok {
					buf.Write(t.Segment.Value(source))
				}
			}
		}
	}
	return buf.String()
}

// splitVersionHeading pulls "version" and "date" out of a level-2
// heading in either bracketed ("[1.0.0] - 2024-01-15") or bare
// ("1.0.0 - 2024-01-15") form.
func splitVersionHeading(heading string) (string, string) {
	heading = strings.TrimSpace(strings.TrimPrefix(heading, "["))

	if bracket := strings.Index(heading, "]"); bracket != -1 {
		version := heading[:bracket]
		rest := strings.TrimSpace(heading[bracket+1:])
		return version, strings.TrimSpace(strings.TrimPrefix(rest, "- "))
	}
	if sep := strings.Index(heading, " - "); sep != -1 {
		return strings.TrimSpace(heading[:sep]), strings.TrimSpace(heading[sep+3:])
	}
	return heading, ""
}

func stripLinkDefinitions(body string) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.Contains(trimmed, "]:") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
