// Package links extracts wiki-style and markdown-style links from page lines.
package links

import (
	"regexp"
	"strings"

	"github.com/yash-srivastava19/thicket/internal/pages"
)

type Kind int

const (
	Wiki Kind = iota
	Markdown
)

func (k Kind) String() string {
	if k == Markdown {
		return "markdown"
	}
	return "wiki"
}

// Link is one reference found in a page. Line is the zero-based index of the
// line it was found on.
type Link struct {
	Kind Kind
	Text string // label shown to the reader
	// Target is the page name a wiki link points at. For [[A|B]] it is "A"
	// while Text is "B"; for [[A]] both are "A".
	Target string
	Hint   string // markdown link URL; empty for wiki links
	Line   int
	Start  int // byte offsets of the whole span within the line
	End    int
}

var (
	wikiRe     = regexp.MustCompile(`\[\[(.*?)\]\]`)
	markdownRe = regexp.MustCompile(`\[([^\[\]]*)\]\(([^()\s]*)\)`)
)

// Parse scans every line in order, wiki spans first, then markdown spans
// whose target ends in the page extension.
func Parse(lines []string) []Link {
	var out []Link
	for i, line := range lines {
		for _, m := range wikiRe.FindAllStringSubmatchIndex(line, -1) {
			interior := line[m[2]:m[3]]
			target, text := splitAlias(interior)
			out = append(out, Link{
				Kind:   Wiki,
				Text:   text,
				Target: target,
				Line:   i,
				Start:  m[0],
				End:    m[1],
			})
		}
		for _, m := range markdownRe.FindAllStringSubmatchIndex(line, -1) {
			if m[0] > 0 && line[m[0]-1] == '[' {
				continue // inside a [[wiki]] span
			}
			target := line[m[4]:m[5]]
			if !strings.HasSuffix(stripFragment(target), pages.Ext) {
				continue
			}
			label := line[m[2]:m[3]]
			out = append(out, Link{
				Kind:   Markdown,
				Text:   label,
				Target: label,
				Hint:   target,
				Line:   i,
				Start:  m[0],
				End:    m[1],
			})
		}
	}
	return out
}

// At returns the first link on the given line.
func At(all []Link, line int) (Link, bool) {
	for _, l := range all {
		if l.Line == line {
			return l, true
		}
	}
	return Link{}, false
}

// OnLine returns every link on the given line in the order they were found.
func OnLine(all []Link, line int) []Link {
	var out []Link
	for _, l := range all {
		if l.Line == line {
			out = append(out, l)
		}
	}
	return out
}

func splitAlias(interior string) (target, text string) {
	if i := strings.Index(interior, "|"); i >= 0 {
		target = strings.TrimSpace(interior[:i])
		text = strings.TrimSpace(interior[i+1:])
		if text == "" {
			text = target
		}
		return target, text
	}
	return interior, interior
}

func stripFragment(target string) string {
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		return target[:i]
	}
	return target
}
