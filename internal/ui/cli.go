package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/dulcinea/internal/config"
	"github.com/javiermolinar/dulcinea/internal/prefs"
	"github.com/javiermolinar/dulcinea/internal/source"
	"github.com/javiermolinar/dulcinea/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	store  prefs.Store
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "dulcinea",
		Short: "A terminal availability board",
		Long: `Dulcinea renders a busy/free grid for a roster of rooms and people,
built from their ICS calendar feeds.

Running without arguments opens the interactive board. Use
'dulcinea show' for a one-shot view.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			roster, availability := a.sources()
			return tui.RunWithDebug(roster, availability, a.openStore(), a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to dulcinea-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())

	return a
}

// sources builds the roster and availability sources from the config.
func (a *App) sources() (source.RosterSource, source.AvailabilitySource) {
	feeds := make([]source.Feed, 0, len(a.config.Sources))
	for _, f := range a.config.Sources {
		feeds = append(feeds, source.Feed{ResourceID: f.ID, URL: f.URL})
	}
	roster := source.NewRoster(a.config.Roster.IDs, a.config.Roster.URL)
	return roster, source.NewICS(feeds, nil)
}

// openStore opens the preference store, falling back to an in-memory
// one when the database cannot be opened. Preferences then reset on
// exit but the board still runs.
func (a *App) openStore() prefs.Store {
	if a.store != nil {
		return a.store
	}
	s, err := prefs.NewSQLite(a.config.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: preference store unavailable: %v\n", err)
		a.store = prefs.NewMemory()
		return a.store
	}
	a.store = s
	return a.store
}

// Close releases the preference store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("dulcinea %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
