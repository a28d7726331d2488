package pages

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Ext is the extension every page file carries.
const Ext = ".md"

type Page struct {
	Name    string // display title
	Path    string // location on disk
	RelPath string // path relative to the pages root, slash separated
}

// NameFromFile derives a display title from a file name: the extension is
// dropped and underscores become spaces.
func NameFromFile(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), Ext)
	return strings.ReplaceAll(base, "_", " ")
}

// Slugify turns a page name into a file-system safe stem. Characters other
// than letters, digits, spaces and hyphens are dropped, whitespace runs become
// a single underscore and the result is lower-cased.
func Slugify(name string) string {
	var kept strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-':
			kept.WriteRune(r)
		case unicode.IsSpace(r):
			kept.WriteRune(' ')
		}
	}
	slug := strings.ToLower(strings.Join(strings.Fields(kept.String()), "_"))
	if slug == "" {
		slug = "untitled"
	}
	return slug
}

// normalize is the key used by FindByName: lower-case letters and digits only.
func normalize(s string) string {
	var out strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out.WriteRune(unicode.ToLower(r))
		}
	}
	return out.String()
}

// SplitLines splits file content into lines. A single trailing newline does
// not produce an extra empty line.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if content == "" {
		return []string{}
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
