package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	paneWidth = 34
	tapeWidth = 36
	codeWidth = 72
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1).
	Width(paneWidth).
	Height(historyLines + 2).
	BorderForeground(lipgloss.Color("99"))

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Width(paneWidth).
	Align(lipgloss.Left).
	PaddingLeft(1).
	Foreground(lipgloss.Color("212"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("63"))

// current instruction
var PcTextStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("226")).
	Foreground(lipgloss.Color("0")).
	Bold(true)

var partnerTextStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("81")).
	Underline(true)

var errorTextStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true)
