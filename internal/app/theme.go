package app

import "github.com/charmbracelet/lipgloss"

const (
	chatBubblePaddingVertical   = 0
	chatBubblePaddingHorizontal = 1
)

var (
	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sessionStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeSessionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true)
	dividerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	userBubbleStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Background(lipgloss.Color("236")).Padding(chatBubblePaddingVertical, chatBubblePaddingHorizontal)
	agentBubbleStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(chatBubblePaddingVertical, chatBubblePaddingHorizontal)
	txHashStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Underline(true)
	txLinkMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
)
