package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func window(l *List) [2]int {
	start, end := l.Window()
	return [2]int{start, end}
}

func TestNewListClampsHeight(t *testing.T) {
	assert.Equal(t, 1, NewList(0).Height())
	assert.Equal(t, 8, NewList(8).Height())
}

func TestListScrollsWithCursor(t *testing.T) {
	l := NewList(3)
	l.Reset(5)
	assert.Equal(t, [2]int{0, 3}, window(l))

	l.Down()
	l.Down()
	assert.Equal(t, 2, l.Cursor())
	assert.Equal(t, [2]int{0, 3}, window(l))

	l.Down()
	assert.Equal(t, 3, l.Cursor())
	assert.Equal(t, [2]int{1, 4}, window(l))

	l.Down()
	l.Down()
	assert.Equal(t, 4, l.Cursor())
	assert.Equal(t, [2]int{2, 5}, window(l))
}

func TestListUpScrollsBack(t *testing.T) {
	l := NewList(3)
	l.Reset(5)
	for range 4 {
		l.Down()
	}

	l.Up()
	l.Up()
	assert.Equal(t, 2, l.Cursor())
	assert.Equal(t, [2]int{2, 5}, window(l))

	l.Up()
	assert.Equal(t, 1, l.Cursor())
	assert.Equal(t, [2]int{1, 4}, window(l))

	l.Up()
	l.Up()
	assert.Equal(t, 0, l.Cursor())
	assert.Equal(t, [2]int{0, 3}, window(l))
}

func TestListEmpty(t *testing.T) {
	l := NewList(4)
	l.Down()
	l.Up()
	assert.Equal(t, 0, l.Cursor())
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.LastRowVisible())
	assert.Equal(t, [2]int{0, 0}, window(l))
}

func TestListResetReturnsToTop(t *testing.T) {
	l := NewList(2)
	l.Reset(6)
	l.Down()
	l.Down()
	l.Down()

	l.Reset(3)

	assert.Equal(t, 0, l.Cursor())
	assert.Equal(t, [2]int{0, 2}, window(l))
}

func TestListGrowKeepsPosition(t *testing.T) {
	l := NewList(3)
	l.Reset(4)
	l.Down()
	l.Down()
	l.Down()
	assert.Equal(t, [2]int{1, 4}, window(l))

	l.Grow(8)

	assert.Equal(t, 3, l.Cursor())
	assert.Equal(t, [2]int{1, 4}, window(l))
	assert.False(t, l.LastRowVisible())
}

func TestListGrowClampsWhenShrinking(t *testing.T) {
	l := NewList(3)
	l.Reset(6)
	for range 5 {
		l.Down()
	}

	l.Grow(2)

	assert.Equal(t, 1, l.Cursor())
	assert.LessOrEqual(t, window(l)[0], l.Cursor())
}

func TestListLastRowVisible(t *testing.T) {
	l := NewList(3)
	l.Reset(2)
	assert.True(t, l.LastRowVisible())

	l.Reset(5)
	assert.False(t, l.LastRowVisible())
	l.Down()
	l.Down()
	assert.False(t, l.LastRowVisible())
	l.Down()
	l.Down()
	assert.True(t, l.LastRowVisible())
}
