package main

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan   = lipgloss.Color("#00E5FF")
	colorAmber  = lipgloss.Color("#FFB300")
	colorViolet = lipgloss.Color("#9C4AFF")
	colorTeal   = lipgloss.Color("#2DD4BF")
	colorRed    = lipgloss.Color("#F87171")
	colorDim    = lipgloss.Color("240")
	colorText   = lipgloss.Color("15")
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	tileStyle = cardStyle.Copy().
			Width(18).
			Align(lipgloss.Center)

	selectedTileStyle = tileStyle.Copy().
				BorderForeground(colorCyan)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0F3D3E")).
			Background(colorAmber).
			Padding(0, 3)

	idleButtonStyle = lipgloss.NewStyle().
			Foreground(colorAmber).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAmber).
			Padding(0, 3)

	displayStyle = cardStyle.Copy().
			Width(30).
			Align(lipgloss.Right)

	keyStyle = lipgloss.NewStyle().
			Width(6).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238"))

	operatorKeyStyle = keyStyle.Copy().
				Foreground(colorAmber)

	equalsKeyStyle = operatorKeyStyle.Copy().
			BorderForeground(colorAmber)

	navStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 2)

	activeNavStyle = navStyle.Copy().
			Foreground(colorCyan).
			Underline(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)
)

// categoryColor is the accent used for a category tile.
func categoryColor(category string) lipgloss.Color {
	switch category {
	case "health":
		return colorCyan
	case "money":
		return colorAmber
	case "career":
		return colorViolet
	default:
		return colorTeal
	}
}
