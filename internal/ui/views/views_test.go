package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateLeavesShortStringsAlone(t *testing.T) {
	assert.Equal(t, "金型A", truncate("金型A", 10))
	assert.Equal(t, "abc", truncate("abc", 3))
}

func TestTruncateShortensByRune(t *testing.T) {
	assert.Equal(t, "射出成形金…", truncate("射出成形金型二号", 6))
}

func TestPadFillsToDisplayWidth(t *testing.T) {
	// Full-width characters take two cells
	assert.Len(t, pad("ab", 6), 6)
	got := pad("金型", 8)
	assert.Contains(t, got, "金型")
}

func TestVisibleWindowCentersCursor(t *testing.T) {
	window, offset := visibleWindow(100, 50, 10)
	assert.Equal(t, 10, window)
	assert.Equal(t, 45, offset)
}

func TestVisibleWindowClampsAtEdges(t *testing.T) {
	_, offset := visibleWindow(100, 0, 10)
	assert.Equal(t, 0, offset)

	_, offset = visibleWindow(100, 99, 10)
	assert.Equal(t, 90, offset)

	window, offset := visibleWindow(3, 1, 10)
	assert.Equal(t, 3, window)
	assert.Equal(t, 0, offset)
}

func TestStatusStylePicksOutboundColor(t *testing.T) {
	s := NewStyles()
	assert.Equal(t, s.StatusOut, s.StatusStyle("持出中"))
	assert.Equal(t, s.StatusIn, s.StatusStyle("在庫"))
	assert.Equal(t, s.StatusNeutral, s.StatusStyle("不明"))
}

func TestDirectionGlyph(t *testing.T) {
	assert.Equal(t, "▲", directionGlyph("asc"))
	assert.Equal(t, "▼", directionGlyph("desc"))
	assert.Equal(t, "▼", directionGlyph(""))
}
