package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/yash-srivastava19/thicket/internal/nav"
)

// Fixed row counts of the screen regions.
const (
	hudRows           = 3
	listHeaderRows    = 3
	contentHeaderRows = 2
	statusRows        = 1
	sidePanelWidth    = 38
	bandRows          = 10
)

// canvas is one full frame addressed by absolute (row, col), both 0-based.
// Later draws overwrite earlier ones cell by cell.
type canvas struct {
	width, height int
	rows          []string
}

func newCanvas(width, height int) *canvas {
	return &canvas{width: width, height: height, rows: make([]string, height)}
}

// draw places block with its top-left corner at (row, col). Lines falling
// outside the frame are clipped.
func (c *canvas) draw(row, col int, block string) {
	if col >= c.width {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		r := row + i
		if r < 0 {
			continue
		}
		if r >= c.height {
			return
		}
		c.rows[r] = splice(c.rows[r], col, line, c.width)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.rows, "\n")
}

// splice overwrites dst from cell col with s, keeping whatever of dst lies
// to the right of s. The result is never wider than width cells.
func splice(dst string, col int, s string, width int) string {
	s = ansi.Truncate(s, width-col, "")
	sw := ansi.StringWidth(s)

	left := ansi.Truncate(dst, col, "")
	if lw := ansi.StringWidth(left); lw < col {
		left += strings.Repeat(" ", col-lw)
	}
	right := ""
	if ansi.StringWidth(dst) > col+sw {
		right = ansi.TruncateLeft(dst, col+sw, "")
	}
	return left + s + right
}

// layout is the geometry of one frame.
type layout struct {
	width, height int

	mainWidth int
	headerTop int // first row of the primary pane header
	bodyTop   int // first row of the visible slice
	viewH     int // rows available to the visible slice

	overlay   bool
	side      bool
	panelRow  int
	panelCol  int
	panelW    int
	panelH    int
	statusRow int
}

func computeLayout(width, height int, mode nav.Mode, overlay bool, sideThreshold int) layout {
	l := layout{
		width:     width,
		height:    height,
		mainWidth: width,
		headerTop: hudRows,
		statusRow: height - statusRows,
	}
	header := listHeaderRows
	if mode == nav.ModeContent {
		header = contentHeaderRows
	}
	l.bodyTop = hudRows + header

	band := 0
	if overlay {
		l.overlay = true
		if width >= sideThreshold {
			l.side = true
			l.mainWidth = width - sidePanelWidth
			l.panelRow = hudRows
			l.panelCol = l.mainWidth
			l.panelW = sidePanelWidth
			l.panelH = height - hudRows - statusRows
		} else {
			band = bandRows
			if room := height - l.bodyTop - statusRows - 1; band > room {
				band = max(room, 0)
			}
			l.panelRow = l.statusRow - band
			l.panelW = width
			l.panelH = band
			if band == 0 {
				l.overlay = false
			}
		}
	}

	l.viewH = max(height-l.bodyTop-statusRows-band, 1)
	return l
}
