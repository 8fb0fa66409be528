package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"chainchat/internal/types"
)

func TestRenderSidebarMarksActive(t *testing.T) {
	sessions := []*types.ChatSession{
		{ID: "1", Title: "Chat 1"},
		{ID: "2", Title: "Chat 2"},
	}
	out := xansi.Strip(renderSidebar(sessions, "2", 20, 6))
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected padded height 6, got %d", len(lines))
	}
	if !strings.Contains(lines[1], inactiveDot+" Chat 1") && !strings.HasPrefix(lines[1], " ") {
		t.Fatalf("unexpected inactive row: %q", lines[1])
	}
	if !strings.Contains(lines[2], activeDot+" Chat 2") {
		t.Fatalf("active session not marked: %q", lines[2])
	}
}

func TestRenderSidebarTruncatesLongTitles(t *testing.T) {
	sessions := []*types.ChatSession{
		{ID: "1", Title: strings.Repeat("long", 20)},
	}
	out := xansi.Strip(renderSidebar(sessions, "1", 20, 0))
	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > 20 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if !strings.Contains(out, "…") {
		t.Fatalf("expected truncation marker:\n%s", out)
	}
}

func TestTruncateTitle(t *testing.T) {
	if got := truncateTitle("short", 20); got != "short" {
		t.Fatalf("short title must pass through, got %q", got)
	}
	if got := truncateTitle("anything", 0); got != "" {
		t.Fatalf("zero width must yield empty, got %q", got)
	}
}
