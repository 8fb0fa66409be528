package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"chainchat/internal/txlink"
	"chainchat/internal/types"
)

type ChatBlock struct {
	Role types.Role
	Text string
}

func blocksFromMessages(messages []types.Message) []ChatBlock {
	blocks := make([]ChatBlock, 0, len(messages))
	for _, message := range messages {
		blocks = append(blocks, ChatBlock{Role: message.Role, Text: message.Text})
	}
	return blocks
}

func renderChatBlocks(blocks []ChatBlock, linker txlink.Linker, width int) string {
	if len(blocks) == 0 {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	lines := make([]string, 0, len(blocks)*4)
	for _, block := range blocks {
		blockLines := renderChatBlock(block, linker, width)
		if len(blockLines) == 0 {
			continue
		}
		lines = append(lines, blockLines...)
		lines = append(lines, "")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func renderChatBlock(block ChatBlock, linker txlink.Linker, width int) []string {
	if width <= 0 {
		width = 80
	}
	text := strings.TrimSpace(block.Text)
	if text == "" {
		return nil
	}
	maxBubbleWidth := width - 4
	if maxBubbleWidth < 10 {
		maxBubbleWidth = width
	}
	innerWidth := maxBubbleWidth - 2 - 2
	if innerWidth < 1 {
		innerWidth = 1
	}

	var rendered string
	var bubbleStyle lipgloss.Style
	align := lipgloss.Left
	switch block.Role {
	case types.RoleUser:
		bubbleStyle = userBubbleStyle
		align = lipgloss.Right
		rendered = xansi.Hardwrap(text, innerWidth, true)
	default:
		bubbleStyle = agentBubbleStyle
		rendered = renderAssistantText(text, linker, innerWidth)
	}

	bubble := bubbleStyle.Render(rendered)
	placed := lipgloss.PlaceHorizontal(width, align, bubble)
	return strings.Split(placed, "\n")
}

// renderAssistantText styles a detected transaction hash and appends the
// explorer URL under the text; hash-free text goes through the markdown
// pipeline unchanged.
func renderAssistantText(text string, linker txlink.Linker, width int) string {
	segments := txlink.Segments(text)
	if len(segments) == 1 && segments[0].Kind == txlink.SegmentPlain {
		return renderMarkdown(text, width)
	}
	var b strings.Builder
	var hash string
	for _, segment := range segments {
		switch segment.Kind {
		case txlink.SegmentLink:
			hash = segment.Hash
			b.WriteString(txHashStyle.Render(segment.Text))
		default:
			b.WriteString(segment.Text)
		}
	}
	out := xansi.Hardwrap(b.String(), width, true)
	if hash != "" {
		url := txLinkMetaStyle.Render(linker.URL(hash))
		out += "\n" + xansi.Hardwrap(url, width, true)
	}
	return out
}
