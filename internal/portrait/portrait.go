// Package portrait loads and cycles the frames of the decorative portrait
// shown in the side panel.
package portrait

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoFrames = errors.New("portrait: no frames")

var builtin = []string{
	"   .-\"\"\"-.\n  /  o o  \\\n |    ^    |\n  \\  '-'  /\n   '-...-'",
	"   .-\"\"\"-.\n  /  - o  \\\n |    ^    |\n  \\  '-'  /\n   '-...-'",
	"   .-\"\"\"-.\n  /  o o  \\\n |    ^    |\n  \\  'o'  /\n   '-...-'",
}

// Animator cycles through a fixed set of frames.
type Animator struct {
	frames []string
	i      int
}

// New returns an animator over frames, or over the built-in frames when
// frames is empty.
func New(frames []string) *Animator {
	if len(frames) == 0 {
		frames = builtin
	}
	return &Animator{frames: frames}
}

// Load reads every *.txt file in dir as one frame, ordered by file name.
func Load(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("portrait: glob %s: %w", dir, err)
	}
	sort.Strings(matches)
	var frames []string
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			return nil, fmt.Errorf("portrait: read %s: %w", filepath.Base(m), err)
		}
		frames = append(frames, strings.TrimRight(string(data), "\n"))
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFrames, dir)
	}
	return frames, nil
}

func (a *Animator) Frame() string {
	return a.frames[a.i]
}

// Advance moves to the next frame, wrapping around.
func (a *Animator) Advance() {
	a.i = (a.i + 1) % len(a.frames)
}

func (a *Animator) Len() int {
	return len(a.frames)
}
