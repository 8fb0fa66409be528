package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"chainchat/internal/txlink"
	"chainchat/internal/types"
)

var testLinker = txlink.Linker{ExplorerBase: "https://testnet.bscscan.com"}

func plainRender(t *testing.T, blocks []ChatBlock, width int) string {
	t.Helper()
	return xansi.Strip(renderChatBlocks(blocks, testLinker, width))
}

func TestRenderChatBlocksEmpty(t *testing.T) {
	if got := renderChatBlocks(nil, testLinker, 80); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderChatBlockAlignment(t *testing.T) {
	blocks := []ChatBlock{
		{Role: types.RoleUser, Text: "hi"},
		{Role: types.RoleAssistant, Text: "hello"},
	}
	out := plainRender(t, blocks, 60)
	lines := strings.Split(out, "\n")
	if len(lines) < 6 {
		t.Fatalf("expected two bubbles, got %d lines", len(lines))
	}
	// User bubble is placed on the right, assistant on the left.
	if !strings.HasPrefix(lines[0], " ") {
		t.Fatalf("user bubble not right-aligned: %q", lines[0])
	}
	assistantStart := -1
	for i, line := range lines {
		if strings.Contains(line, "hello") {
			assistantStart = i
			break
		}
	}
	if assistantStart < 0 {
		t.Fatalf("assistant text missing:\n%s", out)
	}
	if strings.HasPrefix(lines[assistantStart], "    ") {
		t.Fatalf("assistant bubble not left-aligned: %q", lines[assistantStart])
	}
}

func TestRenderAssistantTextWithTxHash(t *testing.T) {
	out := xansi.Strip(renderAssistantText("Sent! TX Hash: 0xabc123", testLinker, 60))
	if !strings.Contains(out, "Sent! TX Hash: 0xabc123") {
		t.Fatalf("prefix and hash missing: %q", out)
	}
	if !strings.Contains(out, "https://testnet.bscscan.com/tx/0xabc123") {
		t.Fatalf("explorer url missing: %q", out)
	}
}

func TestRenderAssistantTextWithoutHash(t *testing.T) {
	out := xansi.Strip(renderAssistantText("plain reply", testLinker, 60))
	if !strings.Contains(out, "plain reply") {
		t.Fatalf("text missing: %q", out)
	}
	if strings.Contains(out, "/tx/") {
		t.Fatalf("unexpected link for hash-free text: %q", out)
	}
}

func TestRenderChatBlockSkipsBlank(t *testing.T) {
	if lines := renderChatBlock(ChatBlock{Role: types.RoleUser, Text: "   "}, testLinker, 60); lines != nil {
		t.Fatalf("expected nil for blank text, got %v", lines)
	}
}
