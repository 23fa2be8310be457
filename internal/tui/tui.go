// Package tui is the Bubble Tea presentation layer. It subscribes to
// the game's event bus and renders turn prompts, probability bars and
// the final verdict; no game rules live here.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/thisistayeb/QuantumBlackJack/internal/game"
	"github.com/thisistayeb/QuantumBlackJack/internal/quantum"
	"github.com/thisistayeb/QuantumBlackJack/internal/randutil"
)

// Options configures the TUI session runner.
type Options struct {
	Seed   int64
	Rules  game.Rules
	Pace   time.Duration
	Clock  quartz.Clock
	Logger *log.Logger
}

type distKey struct {
	owner game.Role
	slot  int
}

// Model is the Bubble Tea model for the game. It owns the live
// session and doubles as the event bus subscriber that feeds the log
// pane and the distribution bars.
type Model struct {
	opts   Options
	logger *log.Logger

	session *game.Session
	format  *game.EventFormatter

	gameNum  int
	gameLog  []string
	dists    map[distKey]game.DistributionEvent
	fatalErr error

	logViewport viewport.Model
	width       int
	height      int
	initialized bool
	quitting    bool
}

// New creates the model and starts the first session.
func New(opts Options) (*Model, error) {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	m := &Model{
		opts:        opts,
		logger:      opts.Logger.WithPrefix("tui"),
		format:      game.NewEventFormatter(game.FormattingOptions{}),
		logViewport: viewport.New(10, 5),
	}
	if err := m.startSession(); err != nil {
		return nil, err
	}
	return m, nil
}

// OnEvent implements game.EventSubscriber: every session event becomes
// a log line, and distribution snapshots refresh the bars.
func (m *Model) OnEvent(event game.GameEvent) {
	if e, ok := event.(game.DistributionEvent); ok {
		m.dists[distKey{owner: e.Owner, slot: e.Slot}] = e
		return
	}
	m.appendLog(m.format.Format(event))
}

func (m *Model) appendLog(text string) {
	m.gameLog = append(m.gameLog, text)
	m.logViewport.SetContent(GameLogStyle.Render(strings.Join(m.gameLog, "\n")))
	m.logViewport.GotoBottom()
}

// startSession begins a fresh game: new bus, new register, new deal.
func (m *Model) startSession() error {
	bus := game.NewEventBus()
	bus.Subscribe(m)
	m.dists = make(map[distKey]game.DistributionEvent)

	seed := randutil.Derive(m.opts.Seed, m.gameNum)
	m.gameNum++
	if len(m.gameLog) > 0 {
		m.appendLog("")
		m.appendLog("--- New game ---")
	}

	session, err := game.NewSession(seed,
		game.WithRules(m.opts.Rules),
		game.WithLogger(m.opts.Logger),
		game.WithEventBus(bus),
		game.WithPacing(m.opts.Clock, m.opts.Pace),
	)
	if err != nil {
		return err
	}
	m.session = session
	return nil
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = msg.Width - 4
		logHeight := msg.Height - lipgloss.Height(m.renderStatus()) - lipgloss.Height(m.renderBars()) - 4
		if logHeight < 3 {
			logHeight = 3
		}
		m.logViewport.Height = logHeight
		m.initialized = true

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			m.logViewport.ScrollUp(1)
		case "down", "j":
			m.logViewport.ScrollDown(1)
		default:
			m.handleGameKey(msg.String())
		}
	}
	return m, nil
}

// handleGameKey maps a key press to a turn action for the current
// player, or a new game once the session has ended.
func (m *Model) handleGameKey(key string) {
	if m.fatalErr != nil {
		return
	}
	if m.session.State() == game.Ended {
		if key == "n" {
			if err := m.startSession(); err != nil {
				m.fatalErr = err
			}
		}
		return
	}

	player, ok := m.session.CurrentPlayer()
	if !ok {
		return
	}
	var action game.Action
	switch key {
	case "s":
		action = game.Action{Type: game.Skip}
	case "e":
		action = game.Action{Type: game.End}
	case "1":
		action = game.Action{Type: game.ResetSlot, Slot: 1}
	case "2":
		action = game.Action{Type: game.ResetSlot, Slot: 2}
	default:
		return
	}

	if err := m.session.Apply(player, action); err != nil {
		if m.session.Aborted() {
			m.fatalErr = err
			m.logger.Error("Session aborted", "error", err)
			return
		}
		// Rejections already produce a log line via the event bus.
		m.logger.Debug("Action rejected", "error", err)
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.initialized {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" ♠ Quantum Blackjack ♠ "))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderBars())
	b.WriteString("\n")
	b.WriteString(m.logViewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

// renderStatus shows whose turn it is, or the verdict.
func (m *Model) renderStatus() string {
	if m.fatalErr != nil {
		return ErrorStyle.Render(fmt.Sprintf("Session aborted: %v", m.fatalErr))
	}
	if m.session.State() == game.Ended {
		if result, ok := m.session.Result(); ok {
			return VerdictStyle.Render(m.format.FormatVerdict(*result))
		}
		return ErrorStyle.Render("Game over")
	}
	player, _ := m.session.CurrentPlayer()
	return TurnStyle.Render(fmt.Sprintf("Round %d - %s to act", m.session.Round(), player))
}

// renderBars draws one probability bar row per player slot.
func (m *Model) renderBars() string {
	if m.session.State() == game.Ended {
		return m.renderHands()
	}
	var b strings.Builder
	for _, player := range []game.Role{game.PlayerOne, game.PlayerTwo} {
		card := m.session.Participant(player).Hand[0]
		b.WriteString(PlayerStyle.Render(fmt.Sprintf("%s (showing %d)", player, card)))
		b.WriteString("\n")
		for slot := 1; slot <= quantum.SlotsPerHand; slot++ {
			if e, ok := m.dists[distKey{owner: player, slot: slot}]; ok {
				b.WriteString(renderDistribution(slot, e.Probs))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// renderDistribution renders the 8 outcome probabilities of one slot
// as a compact bar row.
func renderDistribution(slot int, probs [quantum.SlotOutcomes]float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  slot %d ", slot)
	for v, p := range probs {
		bar := int(p*16 + 0.5)
		if bar > 4 {
			bar = 4
		}
		cell := fmt.Sprintf("%d%s", v+1, strings.Repeat("▮", bar))
		if bar == 0 {
			b.WriteString(BarDimStyle.Render(cell))
		} else {
			b.WriteString(BarStyle.Render(cell))
		}
		b.WriteString(" ")
	}
	return b.String()
}

// renderHands shows the final hands next to the verdict.
func (m *Model) renderHands() string {
	result, ok := m.session.Result()
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, role := range []game.Role{game.Dealer, game.PlayerOne, game.PlayerTwo} {
		style := PlayerStyle
		if role == game.Dealer {
			style = DealerStyle
		}
		status := ""
		if result.Busted[role] {
			status = " bust!"
		}
		cards := make([]string, len(result.Hands[role]))
		for i, c := range result.Hands[role] {
			cards[i] = fmt.Sprintf("%d", c)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s: [%s] = %d%s",
			role, strings.Join(cards, " "), result.Scores[role], status)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderHelp() string {
	if m.fatalErr != nil {
		return HelpStyle.Render("q quit")
	}
	if m.session.State() == game.Ended {
		return HelpStyle.Render("n new game • q quit")
	}
	return HelpStyle.Render("s skip • e end game • 1/2 re-shuffle slot • q quit")
}

// Run starts the interactive session and blocks until the player
// quits.
func Run(opts Options) error {
	model, err := New(opts)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
