// Package viewport computes the visible window of a scrollable sequence.
package viewport

// Adjust returns the scroll offset that keeps cursor visible in a window of
// height rows over n items. The cursor is never moved; only the offset is.
func Adjust(n, cursor, offset, height int) int {
	if height < 1 {
		height = 1
	}
	if n <= height {
		return 0
	}
	if cursor < offset {
		offset = cursor
	} else if cursor >= offset+height {
		offset = cursor - height + 1
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// Bounds returns the half-open range [start, end) that is visible.
func Bounds(n, offset, height int) (start, end int) {
	if height < 1 {
		height = 1
	}
	if offset > n {
		offset = n
	}
	end = offset + height
	if end > n {
		end = n
	}
	return offset, end
}

// VisibleSlice returns the visible part of items together with the updated
// offset.
func VisibleSlice[T any](items []T, cursor, offset, height int) ([]T, int) {
	offset = Adjust(len(items), cursor, offset, height)
	start, end := Bounds(len(items), offset, height)
	return items[start:end], offset
}
