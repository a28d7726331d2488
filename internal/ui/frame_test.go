package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/yash-srivastava19/thicket/internal/nav"
)

func TestSplice(t *testing.T) {
	tests := []struct {
		dst   string
		col   int
		s     string
		width int
		want  string
	}{
		{"", 0, "abc", 10, "abc"},
		{"", 3, "x", 10, "   x"},
		{"abcdef", 2, "XY", 10, "abXYef"},
		{"abc", 1, "XYZW", 10, "aXYZW"},
		{"abc", 8, "XYZW", 10, "abc     XY"},
	}
	for _, tt := range tests {
		if got := splice(tt.dst, tt.col, tt.s, tt.width); got != tt.want {
			t.Errorf("splice(%q, %d, %q, %d) = %q, want %q", tt.dst, tt.col, tt.s, tt.width, got, tt.want)
		}
	}
}

func TestSplice_keepsStyledNeighbours(t *testing.T) {
	dst := "\x1b[1mbold text\x1b[0m"
	got := splice(dst, 5, "XX", 20)
	if ansi.Strip(got) != "bold XXxt" {
		t.Errorf("visible text: %q", ansi.Strip(got))
	}
}

func TestCanvas_drawClips(t *testing.T) {
	c := newCanvas(5, 2)
	c.draw(1, 3, "abcdef\nnext")
	c.draw(-1, 0, "gone\nkept")
	rows := strings.Split(c.String(), "\n")
	if len(rows) != 2 {
		t.Fatalf("rows: %q", rows)
	}
	if rows[0] != "kept" {
		t.Errorf("row 0: %q", rows[0])
	}
	if rows[1] != "   ab" {
		t.Errorf("row 1: %q", rows[1])
	}
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name          string
		w, h          int
		mode          nav.Mode
		overlay       bool
		wantSide      bool
		wantOverlay   bool
		wantMainWidth int
		wantViewH     int
	}{
		{"list no overlay", 80, 24, nav.ModeList, false, false, false, 80, 24 - 3 - 3 - 1},
		{"content no overlay", 80, 24, nav.ModeContent, false, false, false, 80, 24 - 3 - 2 - 1},
		{"wide gets side panel", 120, 30, nav.ModeList, true, true, true, 120 - 38, 30 - 3 - 3 - 1},
		{"narrow gets band", 80, 30, nav.ModeContent, true, false, true, 80, 30 - 3 - 2 - 1 - 10},
		{"tiny terminal", 80, 5, nav.ModeList, true, false, false, 80, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := computeLayout(tt.w, tt.h, tt.mode, tt.overlay, 100)
			if l.side != tt.wantSide || l.overlay != tt.wantOverlay {
				t.Errorf("side=%v overlay=%v", l.side, l.overlay)
			}
			if l.mainWidth != tt.wantMainWidth {
				t.Errorf("mainWidth = %d, want %d", l.mainWidth, tt.wantMainWidth)
			}
			if l.viewH != tt.wantViewH {
				t.Errorf("viewH = %d, want %d", l.viewH, tt.wantViewH)
			}
			if l.statusRow != tt.h-1 {
				t.Errorf("statusRow = %d", l.statusRow)
			}
		})
	}
}

func TestComputeLayout_bandSitsAboveStatus(t *testing.T) {
	l := computeLayout(80, 30, nav.ModeList, true, 100)
	if l.panelRow+l.panelH != l.statusRow {
		t.Errorf("band rows [%d,%d) do not end at status row %d", l.panelRow, l.panelRow+l.panelH, l.statusRow)
	}
	if l.bodyTop+l.viewH > l.panelRow {
		t.Errorf("primary pane overlaps the band")
	}
}
