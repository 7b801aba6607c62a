package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/dulcinea/internal/avail"
	"github.com/javiermolinar/dulcinea/internal/config"
	"github.com/javiermolinar/dulcinea/internal/prefs"
	"github.com/javiermolinar/dulcinea/internal/source"
	"github.com/javiermolinar/dulcinea/internal/tui/theme"
)

// advanceInterval is how long the auto-advance timer dwells on a page.
const advanceInterval = 30 * time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	roster       source.RosterSource
	availability source.AvailabilitySource
	store        prefs.Store
	config       *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Board state
	board *avail.Board

	// Auto-advance timer chain. Every toggle bumps the generation so
	// ticks armed before the toggle are recognized as stale.
	autoAdvance bool
	advanceGen  int

	// A pending 'g' waiting for its page digit.
	jumpPending bool

	// Fetch state
	loading bool
	warning string

	// Temporary status message
	statusMsg  string
	statusTime time.Time

	// Components
	spinner spinner.Model

	// Terminal dimensions
	width  int
	height int

	nowFunc func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithUpcomingWindow sets the initial window mode from the stored
// preference.
func WithUpcomingWindow(on bool) ModelOption {
	return func(m *Model) {
		if on {
			m.board.WindowPolicy().SetMode(avail.ModeUpcoming)
		} else {
			m.board.WindowPolicy().SetMode(avail.ModeFullDay)
		}
	}
}

// WithAutoAdvance sets the initial auto-advance state from the stored
// preference.
func WithAutoAdvance(on bool) ModelOption {
	return func(m *Model) {
		m.autoAdvance = on
	}
}

// WithNow injects the clock, for testing.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.nowFunc = now
		m.board = avail.NewBoard(
			avail.NewWindowPolicy(m.config.Board.DayStartHour, m.config.Board.DayEndHour, now),
			avail.NewPager(m.config.Board.PageSize),
			now,
		)
	}
}

// New creates a new TUI model.
func New(roster source.RosterSource, availability source.AvailabilitySource, store prefs.Store, cfg *config.Config, opts ...ModelOption) *Model {
	// Load falls back to frappe for unknown names.
	t, _ := theme.Load(cfg.UI.Theme)
	styles := NewStyles(t)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	board := avail.NewBoard(
		avail.NewWindowPolicy(cfg.Board.DayStartHour, cfg.Board.DayEndHour, nil),
		avail.NewPager(cfg.Board.PageSize),
		nil,
	)

	m := &Model{
		roster:       roster,
		availability: availability,
		store:        store,
		config:       cfg,
		theme:        t,
		styles:       styles,
		board:        board,
		spinner:      sp,
		loading:      true,
		nowFunc:      time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init starts the first fetch and the timers.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.fetchCmd(),
		m.refreshTickCmd(),
	}
	if m.autoAdvance {
		cmds = append(cmds, m.advanceTickCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) refreshInterval() time.Duration {
	return time.Duration(m.config.Board.RefreshMinutes) * time.Minute
}

// Run starts the TUI. Stored preferences seed the initial window mode
// and auto-advance state.
func Run(roster source.RosterSource, availability source.AvailabilitySource, store prefs.Store, cfg *config.Config) error {
	return RunWithDebug(roster, availability, store, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(roster source.RosterSource, availability source.AvailabilitySource, store prefs.Store, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	upcoming := prefs.DefaultUpcomingWindow
	auto := prefs.DefaultAutoAdvance
	if store != nil {
		ctx := context.Background()
		upcoming, _ = store.Bool(ctx, prefs.KeyUpcomingWindow, prefs.DefaultUpcomingWindow)
		auto, _ = store.Bool(ctx, prefs.KeyAutoAdvance, prefs.DefaultAutoAdvance)
	}

	model := New(roster, availability, store, cfg,
		WithUpcomingWindow(upcoming),
		WithAutoAdvance(auto),
	)
	p := tea.NewProgram(*model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
