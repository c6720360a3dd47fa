package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"lifecalc/internal/analysis"
	"lifecalc/internal/calc"
	apperrors "lifecalc/internal/errors"
	"lifecalc/internal/expr"
	"lifecalc/internal/logging"
	"lifecalc/internal/nav"
	"lifecalc/internal/observability"
	"lifecalc/internal/state"
)

// analysisDoneMsg carries the outcome of one Analyze timer.
type analysisDoneMsg struct {
	token    string
	category string
	result   calc.Result
	err      error
}

// tuiDeps are the collaborators the app model needs from the container.
type tuiDeps struct {
	store     *state.Store
	evaluator *expr.Evaluator
	metrics   *observability.Metrics
	logger    logging.Logger
	delay     time.Duration
	splash    bool
	// glamourStyle selects the results renderer style; empty picks from the terminal.
	glamourStyle string
}

// appModel is the root bubbletea model. Navigation, form values and results
// live in the store; the model only keeps widget state for the current page.
type appModel struct {
	deps tuiDeps
	ctx  context.Context

	keypad     *expr.Keypad
	specs      []calc.FieldSpec
	inputs     []textinput.Model
	focus      int
	dashCursor int

	spinner  spinner.Model
	progress progress.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	cancelAnalysis context.CancelFunc

	width  int
	height int
}

func newAppModel(ctx context.Context, deps tuiDeps) appModel {
	if deps.store == nil {
		deps.store = state.NewStore()
	}
	deps.logger = logging.OrNop(deps.logger)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = brandStyle

	m := appModel{
		deps:     deps,
		ctx:      ctx,
		keypad:   expr.NewKeypad(deps.evaluator),
		spinner:  sp,
		progress: progress.New(progress.WithSolidFill(string(colorCyan)), progress.WithWidth(30)),
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
	m.renderer = m.newRenderer()

	if !deps.splash && m.current() == nav.PageSplash {
		m.navigate(state.Navigate{Page: nav.PageHome})
	}
	return m
}

func (m *appModel) newRenderer() *glamour.TermRenderer {
	wrap := max(m.viewport.Width-4, 20)
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wrap)}
	if m.deps.glamourStyle != "" {
		opts = append(opts, glamour.WithStandardStyle(m.deps.glamourStyle))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		m.deps.logger.Warn("failed to initialize markdown renderer: %v", err)
		return nil
	}
	return renderer
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) current() nav.Page {
	return m.deps.store.Nav().Current
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-6, 20)
		m.viewport.Height = max(msg.Height-12, 5)
		m.renderer = m.newRenderer()
		m.refreshResults()
		return m, nil

	case analysisDoneMsg:
		return m.finishAnalysis(msg)

	case spinner.TickMsg:
		if !m.deps.store.Snapshot().Analyzing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		return m.handleKey(msg)
	}

	return m.forwardToWidgets(msg)
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.stopAnalysis()
	return m, tea.Quit
}

// handleKey routes a key press to the handler for the current view.
func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.current()
	view := nav.Resolve(page)

	if nav.ShowsBottomNav(page) {
		if target, ok := bottomNavTarget(msg.String(), view == nav.ViewCalculator); ok {
			cmd := m.navigate(state.Navigate{Page: target})
			return m, cmd
		}
	}

	switch view {
	case nav.ViewSplash:
		return m.updateSplash(msg)
	case nav.ViewDashboard:
		return m.updateDashboard(msg)
	case nav.ViewInput:
		return m.updateInput(msg)
	case nav.ViewResults:
		return m.updateResults(msg)
	case nav.ViewCalculator:
		return m.updateCalculator(msg)
	default:
		return m.updateStatic(msg)
	}
}

// bottomNavTarget maps F1-F3 and, outside the calculator, h/c/p onto the
// bottom bar destinations.
func bottomNavTarget(key string, calculator bool) (nav.Page, bool) {
	switch key {
	case "f1":
		return nav.PageHome, true
	case "f2":
		return nav.PageChallenges, true
	case "f3":
		return nav.PageProfile, true
	}
	if calculator {
		return "", false
	}
	switch key {
	case "h":
		return nav.PageHome, true
	case "c":
		return nav.PageChallenges, true
	case "p":
		return nav.PageProfile, true
	}
	return "", false
}

func (m appModel) updateSplash(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m.quit()
	default:
		cmd := m.navigate(state.Navigate{Page: nav.PageHome})
		return m, cmd
	}
}

// dashboardTiles is the selectable order on the dashboard: the four
// categories, then the calculator shortcut.
func dashboardTiles() []nav.Page {
	return append(nav.Categories(), nav.PageCalculator)
}

func (m appModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tiles := dashboardTiles()
	switch msg.String() {
	case "q", "esc":
		return m.quit()
	case "left", "up", "shift+tab":
		m.dashCursor = (m.dashCursor + len(tiles) - 1) % len(tiles)
	case "right", "down", "tab":
		m.dashCursor = (m.dashCursor + 1) % len(tiles)
	case "1", "2", "3", "4":
		m.dashCursor = int(msg.String()[0] - '1')
		cmd := m.openTile(tiles[m.dashCursor])
		return m, cmd
	case "k":
		cmd := m.openTile(nav.PageCalculator)
		return m, cmd
	case "enter", " ":
		cmd := m.openTile(tiles[m.dashCursor])
		return m, cmd
	}
	return m, nil
}

func (m *appModel) openTile(page nav.Page) tea.Cmd {
	if nav.IsCategory(page) {
		return m.navigate(state.Navigate{Page: page, Category: string(page)})
	}
	return m.navigate(state.Navigate{Page: page})
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		cmd := m.navigate(state.GoBack{})
		return m, cmd
	}
	if m.deps.store.Snapshot().Analyzing() {
		return m, nil
	}

	buttons := len(m.inputs)
	switch msg.String() {
	case "tab", "down":
		cmd := m.setFocus((m.focus + 1) % (buttons + 1))
		return m, cmd
	case "shift+tab", "up":
		cmd := m.setFocus((m.focus + buttons) % (buttons + 1))
		return m, cmd
	case "enter":
		if m.focus < buttons-1 {
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		}
		cmd := m.analyze()
		return m, cmd
	}

	if m.focus >= buttons {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.deps.store.Apply(state.SetField{ID: m.specs[m.focus].ID, Value: m.inputs[m.focus].Value()})
	return m, cmd
}

// setFocus moves focus to index; len(inputs) is the Analyze button.
func (m *appModel) setFocus(index int) tea.Cmd {
	m.focus = index
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == index {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m appModel) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "b", "q":
		cmd := m.navigate(state.Navigate{Page: nav.PageHome})
		return m, cmd
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// calculatorKey maps keyboard input onto keypad buttons.
func calculatorKey(msg tea.KeyMsg) (string, bool) {
	switch msg.String() {
	case "enter", "=":
		return expr.KeyEquals, true
	case "backspace":
		return expr.KeyDelete, true
	case "delete", "c", "C":
		return expr.KeyClear, true
	case "r", "s":
		return expr.KeySqrt, true
	case "x":
		return "*", true
	}
	key := msg.String()
	if expr.IsKey(key) {
		return key, true
	}
	return "", false
}

func (m appModel) updateCalculator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		cmd := m.navigate(state.Navigate{Page: nav.PageHome})
		return m, cmd
	case "q":
		return m.quit()
	}

	key, ok := calculatorKey(msg)
	if !ok {
		return m, nil
	}
	if evaluated, success := m.keypad.Press(key); evaluated {
		m.deps.metrics.RecordEvaluation(m.ctx, success)
		if !success {
			m.deps.logger.Debug("calculator evaluation failed for %q", m.keypad.Equation())
		}
	}
	return m, nil
}

func (m appModel) updateStatic(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc", "backspace":
		cmd := m.navigate(state.Navigate{Page: nav.PageHome})
		return m, cmd
	}
	return m, nil
}

func (m appModel) forwardToWidgets(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch nav.Resolve(m.current()) {
	case nav.ViewInput:
		if m.focus < len(m.inputs) {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}
	case nav.ViewResults:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// navigate applies a navigation update, cancels any pending analysis and
// prepares the widgets of the page being entered.
func (m *appModel) navigate(update state.Update) tea.Cmd {
	before := m.deps.store.Nav()
	m.stopAnalysis()
	m.deps.store.Apply(update)
	after := m.deps.store.Nav()

	m.deps.metrics.RecordNavigation(m.ctx, string(after.Current))
	if nav.Resolve(after.Current) == nav.ViewNotFound {
		m.deps.logger.Warn("%v", &apperrors.UnknownPageError{Page: string(after.Current)})
	}
	if !after.Valid() {
		m.deps.logger.Warn("page %s has no active category", after.Current)
	}
	if before.Current == after.Current {
		return nil
	}
	return m.enterPage(after)
}

func (m *appModel) enterPage(s nav.State) tea.Cmd {
	switch nav.Resolve(s.Current) {
	case nav.ViewInput:
		return m.buildForm(inputCategory(s))
	case nav.ViewResults:
		m.viewport.GotoTop()
		m.refreshResults()
	case nav.ViewCalculator:
		m.keypad = expr.NewKeypad(m.deps.evaluator)
	case nav.ViewDashboard:
		m.dashCursor = 0
	}
	return nil
}

// inputCategory is the category an input page computes: the active category,
// or the page itself when none was chosen.
func inputCategory(s nav.State) string {
	if s.ActiveCategory != "" {
		return s.ActiveCategory
	}
	return string(s.Current)
}

func (m *appModel) buildForm(category string) tea.Cmd {
	m.specs = calc.Fields(category)
	m.inputs = make([]textinput.Model, len(m.specs))
	for i, spec := range m.specs {
		ti := textinput.New()
		ti.Placeholder = spec.Placeholder()
		ti.Prompt = "› "
		ti.CharLimit = 16
		ti.Width = 24
		m.inputs[i] = ti
	}
	return m.setFocus(0)
}

// analyze starts the delayed calculation for the current form.
func (m *appModel) analyze() tea.Cmd {
	snapshot := m.deps.store.Snapshot()
	category := inputCategory(snapshot.Nav)
	req := analysis.NewRequest(category, snapshot.Fields)
	if !m.deps.store.Apply(state.BeginAnalysis{Request: req}) {
		return nil
	}

	ctx, cancel := context.WithCancel(observability.ContextWithRequestToken(m.ctx, req.Token))
	logger := logging.FromContext(ctx, m.deps.logger)
	for _, fallback := range calc.Fallbacks(category, req.Fields) {
		logger.Debug("%v", fallback)
	}
	logger.Debug("analysis scheduled for %s in %s", category, m.deps.delay)

	m.cancelAnalysis = cancel
	return tea.Batch(m.spinner.Tick, runAnalysis(ctx, m.deps.delay, req))
}

// runAnalysis waits out delay off the UI goroutine and reports back.
func runAnalysis(ctx context.Context, delay time.Duration, req analysis.Request) tea.Cmd {
	return func() tea.Msg {
		res, err := analysis.Run(ctx, delay, req)
		return analysisDoneMsg{token: req.Token, category: req.Category, result: res, err: err}
	}
}

func (m appModel) finishAnalysis(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	applied := msg.err == nil && m.deps.store.Apply(state.CompleteAnalysis{Token: msg.token, Result: msg.result})

	outcome := observability.OutcomeDiscarded
	if applied {
		outcome = observability.OutcomeApplied
	}
	m.deps.metrics.RecordAnalysis(m.ctx, msg.category, outcome)

	if !applied {
		if msg.err != nil && m.deps.store.Apply(state.AbortAnalysis{Token: msg.token}) {
			m.stopAnalysis()
		}
		m.deps.logger.Debug("analysis %s discarded (err=%v)", msg.token, msg.err)
		return m, nil
	}

	m.stopAnalysis()
	m.deps.metrics.RecordNavigation(m.ctx, string(nav.PageResults))
	m.deps.logger.Info("analysis %s applied: %s score %s", msg.token, msg.category, formatScore(msg.result.Score))
	cmd := m.enterPage(m.deps.store.Nav())
	return m, cmd
}

func (m *appModel) stopAnalysis() {
	if m.cancelAnalysis != nil {
		m.cancelAnalysis()
		m.cancelAnalysis = nil
	}
}

// refreshResults renders the current result into the viewport.
func (m *appModel) refreshResults() {
	res := m.deps.store.Snapshot().Result
	if res == nil {
		m.viewport.SetContent("")
		return
	}
	body := resultMarkdown(*res)
	if m.renderer != nil {
		rendered, err := m.renderer.Render(body)
		if err == nil {
			body = rendered
		} else {
			m.deps.logger.Warn("failed to render result: %v", err)
		}
	}
	m.viewport.SetContent(body)
}

// runTUI starts the full-screen app and blocks until the user quits.
func runTUI(ctx context.Context, container *Container) error {
	model := newAppModel(ctx, tuiDeps{
		store:     container.Store,
		evaluator: container.Evaluator,
		metrics:   container.Metrics,
		logger:    container.Log("tui"),
		delay:     container.Config.AnalyzeDelay,
		splash:    container.Config.Splash,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
