package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lifecalc/internal/calc"
	"lifecalc/internal/expr"
	"lifecalc/internal/nav"
	"lifecalc/internal/profile"
	"lifecalc/internal/state"
)

var titleCase = cases.Title(language.English)

func (m appModel) View() string {
	snapshot := m.deps.store.Snapshot()

	var body string
	switch nav.Resolve(snapshot.Nav.Current) {
	case nav.ViewSplash:
		body = m.viewSplash()
	case nav.ViewDashboard:
		body = m.viewDashboard()
	case nav.ViewInput:
		body = m.viewInput(snapshot)
	case nav.ViewResults:
		body = m.viewResults(snapshot)
	case nav.ViewChallenges:
		body = m.viewChallenges()
	case nav.ViewProfile:
		body = m.viewProfile()
	case nav.ViewCalculator:
		body = m.viewCalculator()
	default:
		body = "Page not found"
	}

	if nav.ShowsBottomNav(snapshot.Nav.Current) {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.viewBottomNav(snapshot.Nav.Current))
	}
	return appStyle.Render(body)
}

func (m appModel) viewSplash() string {
	orb := brandStyle.Render("◉")
	title := brandStyle.Copy().Underline(true).Render("LifeCalc AI")
	button := buttonStyle.Render("Tap to Analyze")
	hint := dimStyle.Render("press any key · q to quit")

	return lipgloss.JoinVertical(lipgloss.Center, "", orb, "", title, "", "", button, hint)
}

func (m appModel) viewDashboard() string {
	user := profile.Default()

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("Dashboard"),
		"   ",
		m.tileLabel(nav.PageCalculator, "[k] Calculator"),
	)

	score := cardStyle.Render(lipgloss.JoinHorizontal(lipgloss.Bottom,
		lipgloss.JoinVertical(lipgloss.Left,
			labelStyle.Render("LIFE SCORE"),
			brandStyle.Render(fmt.Sprintf("%d/100", user.LifeScore)),
		),
		"   ",
		brandStyle.Render(percentBars(profile.WeeklyTrend())),
	))

	var tiles []string
	for i, page := range nav.Categories() {
		label := fmt.Sprintf("%d  %s", i+1, titleCase.String(string(page)))
		style := tileStyle
		if m.dashCursor == i {
			style = selectedTileStyle
		}
		tiles = append(tiles, style.Copy().Foreground(categoryColor(string(page))).Render(label))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tiles[0], tiles[1]),
		lipgloss.JoinHorizontal(lipgloss.Top, tiles[2], tiles[3]),
	)

	active := profile.ActiveChallenge()
	challenge := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render(active.Title), "  ", idleButtonStyle.Copy().Padding(0, 1).Render(active.Reward)),
		m.progress.ViewAs(float64(active.Progress)/100),
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		header, "", score, "", grid, "",
		titleStyle.Render("Active Challenges"), challenge,
	)
}

func (m appModel) tileLabel(page nav.Page, label string) string {
	tiles := dashboardTiles()
	if tiles[m.dashCursor] == page {
		return brandStyle.Render("› " + label)
	}
	return dimStyle.Render(label)
}

func (m appModel) viewInput(snapshot state.Snapshot) string {
	category := inputCategory(snapshot.Nav)
	title := titleStyle.Render(titleCase.String(category) + " Estimator")

	var rows []string
	for i, spec := range m.specs {
		label := labelStyle.Render(strings.ToUpper(spec.Label))
		if i == m.focus {
			label = brandStyle.Render(strings.ToUpper(spec.Label))
		}
		rows = append(rows, label, m.inputs[i].View(), "")
	}

	var button string
	switch {
	case snapshot.Analyzing():
		button = idleButtonStyle.Render(m.spinner.View() + " Analyzing")
	case m.focus == len(m.inputs):
		button = buttonStyle.Render("ANALYZE")
	default:
		button = idleButtonStyle.Render("ANALYZE")
	}

	hint := dimStyle.Render("tab/↑↓ move · enter analyze · esc back")
	parts := append([]string{title, ""}, rows...)
	parts = append(parts, button, "", hint)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m appModel) viewResults(snapshot state.Snapshot) string {
	res := snapshot.Result
	if res == nil {
		return dimStyle.Render("No result")
	}

	scoreStyle := lipgloss.NewStyle().Bold(true)
	switch calc.Band(res.Score) {
	case calc.BandHigh:
		scoreStyle = scoreStyle.Foreground(colorCyan)
	case calc.BandMid:
		scoreStyle = scoreStyle.Foreground(colorAmber)
	default:
		scoreStyle = scoreStyle.Foreground(colorRed)
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Analysis Result"),
		"",
		labelStyle.Render("FINAL RESULT"),
		scoreStyle.Render(formatScore(res.Score)),
		"",
		labelStyle.Render("FORMULA CURVE")+"  "+lipgloss.NewStyle().Foreground(colorViolet).Render(sparkline(calc.Curve(res.Category))),
	)

	hint := dimStyle.Render("↑↓ scroll · esc home")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.viewport.View(), hint)
}

func (m appModel) viewChallenges() string {
	rows := []string{titleStyle.Render("Challenges"), ""}
	for i, challenge := range profile.Challenges() {
		flame := dimStyle.Render("🔥")
		if i == 0 {
			flame = lipgloss.NewStyle().Foreground(colorAmber).Render("🔥")
		}
		card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, brandStyle.Render("⚡ "), titleStyle.Render(challenge.Title), "  ", flame),
			dimStyle.Render(fmt.Sprintf("Progress: %d%%", challenge.Progress)),
			m.progress.ViewAs(float64(challenge.Progress)/100),
		))
		rows = append(rows, card)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m appModel) viewProfile() string {
	user := profile.Default()

	stat := func(value, label string, color lipgloss.Color) string {
		return cardStyle.Copy().Width(14).Align(lipgloss.Center).Render(lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Bold(true).Foreground(color).Render(value),
			labelStyle.Render(label),
		))
	}

	var months []string
	var scores []int
	for _, point := range user.History {
		months = append(months, point.Date)
		scores = append(scores, point.Score)
	}

	history := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		brandStyle.Render(spacedBars(scores)),
		dimStyle.Render(strings.Join(months, " ")),
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(user.DisplayName),
		labelStyle.Render(strings.ToUpper(user.Rank)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			stat(printer.Sprintf("%d", user.Points), "POINTS", colorCyan),
			stat(printer.Sprintf("%d", user.Streak), "STREAK", colorAmber),
		),
		"",
		titleStyle.Render("Life Score History"),
		history,
		"",
		dimStyle.Render("Share Profile QR"),
	)
}

func (m appModel) viewCalculator() string {
	display := m.keypad.Display()
	displayLine := titleStyle.Render(display)
	if m.keypad.Failed() {
		displayLine = errorStyle.Render(display)
	}
	screen := displayStyle.Render(lipgloss.JoinVertical(lipgloss.Right,
		dimStyle.Render(m.keypad.Equation()),
		displayLine,
	))

	keys := expr.Keys()
	var rows []string
	for i := 0; i < len(keys); i += 4 {
		var row []string
		for _, key := range keys[i:min(i+4, len(keys))] {
			row = append(row, keyCap(key))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	hint := dimStyle.Render("type keys · enter = · backspace DEL · c clear · r √ · esc home")
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Advanced Calc"), "", screen, "",
		lipgloss.JoinVertical(lipgloss.Left, rows...), "", hint,
	)
}

func keyCap(key string) string {
	switch key {
	case expr.KeyEquals:
		return equalsKeyStyle.Render(key)
	case "/", "*", "-", "+", "^", expr.KeySqrt:
		return operatorKeyStyle.Render(key)
	default:
		return keyStyle.Render(key)
	}
}

func (m appModel) viewBottomNav(current nav.Page) string {
	labels := map[nav.Page]string{
		nav.PageHome:       "F1 HOME",
		nav.PageChallenges: "F2 CHALLENGES",
		nav.PageProfile:    "F3 PROFILE",
	}
	var items []string
	for _, page := range nav.BottomNav() {
		style := navStyle
		if page == current {
			style = activeNavStyle
		}
		items = append(items, style.Render(labels[page]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

// percentBars draws 0-100 values as block glyphs.
func percentBars(values []int) string {
	var b strings.Builder
	for _, v := range values {
		v = min(max(v, 0), 100)
		b.WriteRune(sparkBlocks[v*(len(sparkBlocks)-1)/100])
	}
	return b.String()
}

// spacedBars is percentBars with each bar widened to sit above a month label.
func spacedBars(values []int) string {
	bars := []rune(percentBars(values))
	parts := make([]string, len(bars))
	for i, r := range bars {
		parts[i] = strings.Repeat(string(r), 3)
	}
	return strings.Join(parts, " ")
}
