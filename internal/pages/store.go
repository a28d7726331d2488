package pages

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("page not found")

// Store indexes the markdown files below a root directory. It owns the
// ordered page sequence; callers get pointers into it but never reorder it.
type Store struct {
	root  string
	pages []*Page
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

// Pages returns the indexed pages sorted by name.
func (s *Store) Pages() []*Page {
	return s.pages
}

// Discover walks the root recursively and replaces the index with every
// non-hidden markdown file found. A missing root yields an empty index.
func (s *Store) Discover() []*Page {
	var found []*Page
	_ = filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && p != s.root {
				return fs.SkipDir
			}
			return nil
		}
		if p != s.root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), Ext) {
			return nil
		}
		rel, relErr := filepath.Rel(s.root, p)
		if relErr != nil {
			return nil
		}
		found = append(found, &Page{
			Name:    NameFromFile(d.Name()),
			Path:    p,
			RelPath: filepath.ToSlash(rel),
		})
		return nil
	})
	sort.SliceStable(found, func(i, j int) bool {
		return less(found[i], found[j])
	})
	if found == nil {
		found = []*Page{}
	}
	s.pages = found
	return s.pages
}

// CreatePage writes a new page holding a single heading and adds it to the
// index. An existing file at the slug path is reused, never overwritten.
func (s *Store) CreatePage(name string) (*Page, error) {
	slug := Slugify(name)
	rel := slug + Ext
	if p, ok := s.FindByPath(rel); ok {
		return p, nil
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, fmt.Errorf("pages: mkdir: %w", err)
	}
	abs := filepath.Join(s.root, rel)
	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	switch {
	case err == nil:
		_, werr := f.WriteString("# " + name + "\n\n")
		cerr := f.Close()
		if werr != nil {
			return nil, fmt.Errorf("pages: write %s: %w", rel, werr)
		}
		if cerr != nil {
			return nil, fmt.Errorf("pages: close %s: %w", rel, cerr)
		}
	case errors.Is(err, fs.ErrExist):
	default:
		return nil, fmt.Errorf("pages: create %s: %w", rel, err)
	}

	p := &Page{Name: name, Path: abs, RelPath: rel}
	s.insert(p)
	return p, nil
}

func (s *Store) insert(p *Page) {
	i := sort.Search(len(s.pages), func(i int) bool {
		return less(p, s.pages[i])
	})
	s.pages = append(s.pages, nil)
	copy(s.pages[i+1:], s.pages[i:])
	s.pages[i] = p
}

// FindByName matches case-insensitively, ignoring everything that is not a
// letter or digit, so "My Page", "my-page" and "my_page" are equal.
func (s *Store) FindByName(name string) (*Page, bool) {
	key := normalize(name)
	if key == "" {
		return nil, false
	}
	for _, p := range s.pages {
		if normalize(p.Name) == key {
			return p, true
		}
	}
	return nil, false
}

// FindByPath looks a page up by its root-relative path.
func (s *Store) FindByPath(rel string) (*Page, bool) {
	want := path.Clean(strings.TrimPrefix(filepath.ToSlash(rel), "/"))
	for _, p := range s.pages {
		if p.RelPath == want {
			return p, true
		}
	}
	return nil, false
}

// ResolvePath resolves a link target the way a markdown renderer would:
// relative to the linking page first, then relative to the root.
func (s *Store) ResolvePath(from *Page, target string) (*Page, bool) {
	target = filepath.ToSlash(target)
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		target = target[:i]
	}
	if target == "" || strings.Contains(target, "://") {
		return nil, false
	}
	if from != nil && !strings.HasPrefix(target, "/") {
		if p, ok := s.FindByPath(path.Join(path.Dir(from.RelPath), target)); ok {
			return p, true
		}
	}
	return s.FindByPath(target)
}

// LoadContent reads a page and splits it into lines. On failure the returned
// slice is empty, never nil, and the error says why.
func (s *Store) LoadContent(p *Page) ([]string, error) {
	if p == nil {
		return []string{}, ErrNotFound
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return []string{}, fmt.Errorf("pages: read %s: %w", p.RelPath, err)
	}
	return SplitLines(string(data)), nil
}

// WriteLines atomically replaces a page's content: temp file, fsync, rename.
func (s *Store) WriteLines(p *Page, lines []string) error {
	dir := filepath.Dir(p.Path)
	tmp, err := os.CreateTemp(dir, ".thicket-tmp-*")
	if err != nil {
		return fmt.Errorf("pages: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(JoinLines(lines)); err != nil {
		return fmt.Errorf("pages: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("pages: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("pages: close temp: %w", err)
	}
	if err := os.Rename(tmpName, p.Path); err != nil {
		return fmt.Errorf("pages: rename: %w", err)
	}
	success = true
	return nil
}

func less(a, b *Page) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.RelPath < b.RelPath
}
