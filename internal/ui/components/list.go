package components

// List tracks the cursor and scroll window over a result list that only
// grows at the bottom while the user scrolls.
type List struct {
	rows   int
	cursor int
	offset int
	height int
}

// NewList creates a list that shows height rows at a time.
func NewList(height int) *List {
	if height < 1 {
		height = 1
	}
	return &List{height: height}
}

// Reset replaces the result set with n rows and moves back to the top.
func (l *List) Reset(n int) {
	l.rows = max(n, 0)
	l.cursor = 0
	l.offset = 0
}

// Grow sets the row count to n and keeps the cursor where the user left it.
// Appended pages land below the window without moving it.
func (l *List) Grow(n int) {
	l.rows = max(n, 0)
	l.cursor = min(l.cursor, max(l.rows-1, 0))
	l.offset = min(l.offset, l.cursor)
}

// Down moves the cursor one row down, scrolling when it leaves the window.
func (l *List) Down() {
	if l.cursor >= l.rows-1 {
		return
	}
	l.cursor++
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
}

// Up moves the cursor one row up.
func (l *List) Up() {
	if l.cursor == 0 {
		return
	}
	l.cursor--
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
}

// Len is the number of rows.
func (l *List) Len() int { return l.rows }

// Cursor is the absolute index of the highlighted row.
func (l *List) Cursor() int { return l.cursor }

// Height is the number of rows shown at once.
func (l *List) Height() int { return l.height }

// Window returns the half-open range of rows on screen.
func (l *List) Window() (start, end int) {
	return l.offset, min(l.offset+l.height, l.rows)
}

// LastRowVisible reports whether the final row is on screen. It is the
// scroll sentinel that asks for the next page.
func (l *List) LastRowVisible() bool {
	return l.rows > 0 && l.offset+l.height >= l.rows
}
