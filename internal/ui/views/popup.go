package views

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centers a popup over the main content area. The
// base content is not composited behind the modal; it is replaced for
// the duration of the popup.
func (pr *PopupRenderer) RenderPopupOverlay(popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	if w := lipgloss.Width(styledPopup); w > width-4 && width > 4 {
		styledPopup = popupStyle.Width(width - 4).Render(popupContent)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styledPopup)
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes color/style codes, used when handing content to the
// external pager which does its own styling.
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
