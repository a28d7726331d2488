package viewport

import (
	"testing"

	"pgregory.net/rapid"
)

func TestVisibleSlice(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	tests := []struct {
		name       string
		items      []int
		cursor     int
		offset     int
		height     int
		wantFirst  int
		wantLen    int
		wantOffset int
	}{
		{"fits", items[:3], 2, 0, 5, 0, 3, 0},
		{"fits resets offset", items[:3], 0, 2, 5, 0, 3, 0},
		{"top", items, 0, 0, 4, 0, 4, 0},
		{"scroll down", items, 5, 0, 4, 2, 4, 2},
		{"scroll up", items, 1, 5, 4, 1, 4, 1},
		{"bottom", items, 9, 0, 4, 6, 4, 6},
		{"cursor inside", items, 4, 3, 4, 3, 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, off := VisibleSlice(tt.items, tt.cursor, tt.offset, tt.height)
			if off != tt.wantOffset {
				t.Errorf("offset: got %d, want %d", off, tt.wantOffset)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len: got %d, want %d", len(got), tt.wantLen)
			}
			if got[0] != tt.wantFirst {
				t.Errorf("first: got %d, want %d", got[0], tt.wantFirst)
			}
		})
	}
}

func TestVisibleSlice_empty(t *testing.T) {
	got, off := VisibleSlice([]string{}, 0, 3, 5)
	if len(got) != 0 || off != 0 {
		t.Errorf("got %v offset %d", got, off)
	}
}

func TestVisibleSlice_lastItemProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 500).Draw(t, "n")
		h := rapid.IntRange(1, n-1).Draw(t, "h")
		start := rapid.IntRange(0, n-1).Draw(t, "start")

		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		_, off := VisibleSlice(items, start, 0, h)
		got, off := VisibleSlice(items, n-1, off, h)

		if got[len(got)-1] != n-1 {
			t.Fatalf("last visible: got %d, want %d", got[len(got)-1], n-1)
		}
		if off+h-1 != n-1 {
			t.Fatalf("offset %d + height %d - 1 != %d", off, h, n-1)
		}
	})
}

func TestVisibleSlice_cursorAlwaysVisible(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 300).Draw(t, "n")
		h := rapid.IntRange(1, 60).Draw(t, "h")
		off := 0
		steps := rapid.SliceOfN(rapid.IntRange(0, n-1), 1, 20).Draw(t, "cursors")
		for _, c := range steps {
			var got []int
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}
			got, off = VisibleSlice(items, c, off, h)
			if off > c || c > off+h-1 {
				t.Fatalf("cursor %d outside [%d, %d]", c, off, off+h-1)
			}
			if len(got) > h {
				t.Fatalf("slice longer than height: %d > %d", len(got), h)
			}
			if got[c-off] != c {
				t.Fatalf("item at cursor row: got %d, want %d", got[c-off], c)
			}
		}
	})
}
