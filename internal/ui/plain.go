package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/yash-srivastava19/thicket/internal/links"
	"github.com/yash-srivastava19/thicket/internal/pages"
)

// Separator is the rule used when there is no terminal to draw panels on.
var Separator = strings.Repeat("-", 80)

// WritePageList prints the page index without any styling.
func WritePageList(w io.Writer, root string, all []*pages.Page) error {
	if _, err := fmt.Fprintf(w, "thicket  %s  (%d pages)\n%s\n", root, len(all), Separator); err != nil {
		return err
	}
	for _, p := range all {
		if _, err := fmt.Fprintf(w, "%-40s  %s\n", p.Name, p.RelPath); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, Separator)
	return err
}

// WriteLinks prints the links found in a page, one per line.
func WriteLinks(w io.Writer, p *pages.Page, ls []links.Link) error {
	if _, err := fmt.Fprintf(w, "%s  (%s)\n%s\n", p.Name, p.RelPath, Separator); err != nil {
		return err
	}
	for _, l := range ls {
		target := l.Target
		if l.Kind == links.Markdown {
			target = l.Hint
		}
		if _, err := fmt.Fprintf(w, "%4d  %-8s  %-30s  %s\n", l.Line+1, l.Kind, l.Text, target); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, Separator)
	return err
}
