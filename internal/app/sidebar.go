package app

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"chainchat/internal/types"
)

const (
	sidebarTitleMax = 24
	activeDot       = "●"
	inactiveDot     = " "
)

// renderSidebar lists the sessions in collection order, newest last, with
// the active session marked.
func renderSidebar(sessions []*types.ChatSession, activeID string, width, height int) string {
	if width <= 0 {
		return ""
	}
	lines := make([]string, 0, len(sessions)+2)
	lines = append(lines, headerStyle.Render(truncateTitle("Chats", width)))
	for _, session := range sessions {
		dot := inactiveDot
		style := sessionStyle
		if session.ID == activeID {
			dot = activeDot
			style = activeSessionStyle
		}
		label := truncateTitle(dot+" "+session.Title, width)
		lines = append(lines, style.Render(label))
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func truncateTitle(title string, width int) string {
	if width <= 0 {
		return ""
	}
	max := width
	if max > sidebarTitleMax {
		max = sidebarTitleMax
	}
	if runewidth.StringWidth(title) <= max {
		return title
	}
	return runewidth.Truncate(title, max, "…")
}
