package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("99")
	pink    = lipgloss.Color("205")
	green   = lipgloss.Color("42")
	amber   = lipgloss.Color("214")
	red     = lipgloss.Color("196")
	muted   = lipgloss.Color("240")
	subtle  = lipgloss.Color("245")
	bright  = lipgloss.Color("252")
	onFocus = lipgloss.Color("229")
)

// Header and tab strip.
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(pink).Padding(0, 1)
	managerStyle   = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(onFocus).Background(accent).Padding(0, 1)
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	searchStyle    = lipgloss.NewStyle().Foreground(accent)
)

// Package rows. The status column is one of busy, installed or not installed.
var (
	normalStyle       = lipgloss.NewStyle().Foreground(bright)
	selectedStyle     = lipgloss.NewStyle().Bold(true).Foreground(pink)
	bookmarkStyle     = lipgloss.NewStyle().Foreground(amber)
	busyStyle         = lipgloss.NewStyle().Foreground(amber)
	installedStyle    = lipgloss.NewStyle().Bold(true).Foreground(green)
	notInstalledStyle = lipgloss.NewStyle().Foreground(muted)
	dimStyle          = lipgloss.NewStyle().Foreground(muted)
)

// Status line, help and dialogs.
var (
	successStyle = lipgloss.NewStyle().Foreground(green)
	errorStyle   = lipgloss.NewStyle().Foreground(red)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	modalStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2).
			Width(72)
)
