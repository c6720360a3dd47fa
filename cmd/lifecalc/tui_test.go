package main

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifecalc/internal/analysis"
	"lifecalc/internal/calc"
	"lifecalc/internal/expr"
	"lifecalc/internal/nav"
	"lifecalc/internal/observability"
	"lifecalc/internal/state"
)

func newTestModel(t *testing.T, splash bool) (appModel, *observability.Metrics) {
	t.Helper()
	metrics, err := observability.NewMetrics(observability.MetricsConfig{Enabled: true})
	require.NoError(t, err)

	m := newAppModel(context.Background(), tuiDeps{
		store:        state.NewStore(),
		evaluator:    expr.NewEvaluator(8),
		metrics:      metrics,
		splash:       splash,
		glamourStyle: "notty",
	})
	return m, metrics
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func press(m appModel, keys ...string) appModel {
	for _, key := range keys {
		next, _ := m.Update(keyMsg(key))
		m = next.(appModel)
	}
	return m
}

func send(m appModel, msg tea.Msg) appModel {
	next, _ := m.Update(msg)
	return next.(appModel)
}

func TestSplashAdvancesToHome(t *testing.T) {
	m, metrics := newTestModel(t, true)
	assert.Equal(t, nav.PageSplash, m.current())
	assert.Contains(t, m.View(), "LifeCalc AI")

	m = press(m, "enter")
	assert.Equal(t, nav.PageHome, m.current())
	assert.Equal(t, 1.0, metrics.Count("navigations", map[string]string{"page": "home"}))
	assert.Contains(t, m.View(), "Dashboard")
	assert.Contains(t, m.View(), "72/100")
}

func TestSplashDisabledStartsOnHome(t *testing.T) {
	m, _ := newTestModel(t, false)

	snapshot := m.deps.store.Snapshot()
	assert.Equal(t, nav.PageHome, snapshot.Nav.Current)
	assert.Equal(t, nav.PageSplash, snapshot.Nav.Previous)
}

func TestAnalyzeShowsResults(t *testing.T) {
	m, metrics := newTestModel(t, false)

	m = press(m, "2")
	require.Equal(t, nav.PageMoney, m.current())
	require.Len(t, m.inputs, 3)
	assert.Contains(t, m.View(), "Money Estimator")

	m = press(m, "1", "0", "0", "0")
	assert.Equal(t, "1000", m.deps.store.Snapshot().Fields["principal"])

	m = press(m, "enter", "enter", "enter")
	snapshot := m.deps.store.Snapshot()
	require.True(t, snapshot.Analyzing())
	assert.Contains(t, m.View(), "Analyzing")

	m = send(m, analysisDoneMsg{
		token:    snapshot.PendingToken,
		category: "money",
		result:   calc.Compute("money", snapshot.Fields),
	})

	snapshot = m.deps.store.Snapshot()
	assert.Equal(t, nav.PageResults, snapshot.Nav.Current)
	assert.Equal(t, nav.PageMoney, snapshot.Nav.Previous)
	require.NotNil(t, snapshot.Result)
	assert.InDelta(t, 1.61051, snapshot.Result.Score, 1e-9)
	assert.Equal(t, 1.0, metrics.Count("analyses", map[string]string{"outcome": observability.OutcomeApplied}))

	view := m.View()
	assert.Contains(t, view, "Analysis Result")
	assert.Contains(t, view, "1.61")
	assert.Contains(t, view, "Wealth Projection")

	m = press(m, "esc")
	snapshot = m.deps.store.Snapshot()
	assert.Equal(t, nav.PageHome, snapshot.Nav.Current)
	assert.Nil(t, snapshot.Result)
}

func TestLeavingBeforeTimerDiscardsResult(t *testing.T) {
	m, metrics := newTestModel(t, false)

	m = press(m, "1", "tab", "tab", "tab", "enter")
	token := m.deps.store.Snapshot().PendingToken
	require.NotEmpty(t, token)

	m = press(m, "esc")
	require.Equal(t, nav.PageHome, m.current())

	m = send(m, analysisDoneMsg{token: token, category: "health", result: calc.Compute("health", nil)})

	snapshot := m.deps.store.Snapshot()
	assert.Equal(t, nav.PageHome, snapshot.Nav.Current)
	assert.Nil(t, snapshot.Result)
	assert.Equal(t, 1.0, metrics.Count("analyses", map[string]string{"outcome": observability.OutcomeDiscarded}))
	assert.Zero(t, metrics.Count("analyses", map[string]string{"outcome": observability.OutcomeApplied}))
}

func TestCancelledTimerIsDiscarded(t *testing.T) {
	m, metrics := newTestModel(t, false)
	m = press(m, "3")
	m = press(m, "enter", "enter", "enter")
	token := m.deps.store.Snapshot().PendingToken

	m = send(m, analysisDoneMsg{token: token, category: "career", err: context.Canceled})

	assert.Equal(t, nav.PageCareer, m.current())
	assert.Equal(t, 1.0, metrics.Count("analyses", map[string]string{"category": "career", "outcome": observability.OutcomeDiscarded}))

	assert.False(t, m.deps.store.Snapshot().Analyzing())
	assert.NotContains(t, m.View(), "Analyzing")

	m = press(m, "enter")
	assert.True(t, m.deps.store.Snapshot().Analyzing(), "a new Analyze press is accepted")
	assert.NotEqual(t, token, m.deps.store.Snapshot().PendingToken)
}

func TestDailyFallsThroughToCareerPlaceholder(t *testing.T) {
	m, _ := newTestModel(t, false)
	m = press(m, "4")
	require.Equal(t, nav.PageDaily, m.current())
	assert.Empty(t, m.inputs)

	m = press(m, "enter")
	snapshot := m.deps.store.Snapshot()
	require.True(t, snapshot.Analyzing())

	m = send(m, analysisDoneMsg{token: snapshot.PendingToken, category: "daily", result: calc.Compute("daily", nil)})
	res := m.deps.store.Snapshot().Result
	require.NotNil(t, res)
	assert.Equal(t, "career", res.Category)
	assert.Equal(t, float64(calc.CareerPlaceholderScore), res.Score)
	assert.Equal(t, "daily", m.deps.store.Nav().ActiveCategory)
}

func TestInputBackClearsFields(t *testing.T) {
	m, _ := newTestModel(t, false)
	m = press(m, "1", "8", "0")
	assert.Equal(t, "80", m.deps.store.Snapshot().Fields["weight"])

	m = press(m, "esc")
	snapshot := m.deps.store.Snapshot()
	assert.Equal(t, nav.PageHome, snapshot.Nav.Current)
	assert.Equal(t, "health", snapshot.Nav.ActiveCategory)
	assert.Empty(t, snapshot.Fields)
}

func TestCalculatorKeypad(t *testing.T) {
	m, metrics := newTestModel(t, false)
	m = press(m, "k")
	require.Equal(t, nav.PageCalculator, m.current())

	m = press(m, "7", "+", "3", "enter")
	assert.Equal(t, "10", m.keypad.Display())
	assert.Contains(t, m.View(), "7+3 =")
	assert.Equal(t, 1.0, metrics.Count("evaluations", map[string]string{"outcome": "ok"}))

	m = press(m, "/", "0", "enter")
	assert.Equal(t, expr.ErrorToken, m.keypad.Display())
	assert.Equal(t, 1.0, metrics.Count("evaluations", map[string]string{"outcome": "error"}))

	m = press(m, "5", "backspace")
	assert.Equal(t, expr.ErrorToken, m.keypad.Display())

	m = press(m, "c")
	assert.Equal(t, "0", m.keypad.Display())
	assert.Equal(t, nav.PageCalculator, m.current(), "c clears on the calculator instead of opening challenges")

	m = press(m, "r", "9", "enter")
	assert.Equal(t, "3", m.keypad.Display())

	m = press(m, "esc")
	assert.Equal(t, nav.PageHome, m.current())
}

func TestCalculatorResetsOnEntry(t *testing.T) {
	m, _ := newTestModel(t, false)
	m = press(m, "k", "4", "2", "esc", "k")
	assert.Equal(t, "0", m.keypad.Display())
}

func TestBottomNav(t *testing.T) {
	m, _ := newTestModel(t, false)

	m = press(m, "f2")
	require.Equal(t, nav.PageChallenges, m.current())
	view := m.View()
	assert.Contains(t, view, "Walk 10k Steps")
	assert.Contains(t, view, "Progress: 75%")

	m = press(m, "p")
	require.Equal(t, nav.PageProfile, m.current())
	view = m.View()
	assert.Contains(t, view, "Alex Architect")
	assert.Contains(t, view, "1,240")
	assert.Contains(t, view, "Jun")

	m = press(m, "h")
	assert.Equal(t, nav.PageHome, m.current())
	assert.Equal(t, nav.PageProfile, m.deps.store.Nav().Previous)
}

func TestBottomNavHiddenOnInputPages(t *testing.T) {
	m, _ := newTestModel(t, false)
	assert.Contains(t, m.View(), "F1 HOME")

	m = press(m, "1")
	assert.NotContains(t, m.View(), "F1 HOME")

	m = press(m, "h")
	assert.Equal(t, nav.PageHealth, m.current(), "letters are typed into the form")
}

func TestUnknownPageRendersNotFound(t *testing.T) {
	m, _ := newTestModel(t, false)
	m.deps.store.Apply(state.Navigate{Page: nav.Page("settings")})

	assert.Contains(t, m.View(), "Page not found")
	m = press(m, "esc")
	assert.Equal(t, nav.PageHome, m.current())
}

func TestRunAnalysisHonoursCancellation(t *testing.T) {
	req := analysis.NewRequest("health", map[string]string{"weight": "80"})

	msg := runAnalysis(context.Background(), 0, req)().(analysisDoneMsg)
	require.NoError(t, msg.err)
	assert.Equal(t, req.Token, msg.token)
	assert.Equal(t, "Health Projection", msg.result.Title)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msg = runAnalysis(ctx, analysis.DefaultDelay, req)().(analysisDoneMsg)
	assert.True(t, errors.Is(msg.err, context.Canceled))
}

func TestBottomNavTarget(t *testing.T) {
	page, ok := bottomNavTarget("c", false)
	assert.True(t, ok)
	assert.Equal(t, nav.PageChallenges, page)

	_, ok = bottomNavTarget("c", true)
	assert.False(t, ok)

	page, ok = bottomNavTarget("f3", true)
	assert.True(t, ok)
	assert.Equal(t, nav.PageProfile, page)
}
