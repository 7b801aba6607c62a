package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/dulcinea/internal/config"
	"github.com/javiermolinar/dulcinea/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  dulcinea config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Board.PageSize = promptInt(reader, "Page size", cfg.Board.PageSize)
	cfg.Board.DayStartHour = promptInt(reader, "Day start hour", cfg.Board.DayStartHour)
	cfg.Board.DayEndHour = promptInt(reader, "Day end hour", cfg.Board.DayEndHour)
	cfg.Board.RefreshMinutes = promptInt(reader, "Refresh interval (minutes)", cfg.Board.RefreshMinutes)
	cfg.Roster.IDs = promptSlice(reader, "Roster ids (comma-separated)", cfg.Roster.IDs)
	cfg.Roster.URL = promptValue(reader, "Roster URL (empty for none)", cfg.Roster.URL)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[board]")
	fmt.Printf("  page_size       = %d\n", cfg.Board.PageSize)
	fmt.Printf("  day_start_hour  = %d\n", cfg.Board.DayStartHour)
	fmt.Printf("  day_end_hour    = %d\n", cfg.Board.DayEndHour)
	fmt.Printf("  refresh_minutes = %d\n", cfg.Board.RefreshMinutes)
	fmt.Println("\n[roster]")
	fmt.Printf("  ids             = %s\n", strings.Join(cfg.Roster.IDs, ", "))
	if cfg.Roster.URL != "" {
		fmt.Printf("  url             = %s\n", cfg.Roster.URL)
	}
	if len(cfg.Sources) > 0 {
		fmt.Println()
		for _, s := range cfg.Sources {
			fmt.Println("[[sources]]")
			fmt.Printf("  id              = %s\n", s.ID)
			fmt.Printf("  url             = %s\n", s.URL)
		}
	}
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path         = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme           = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		input := promptValue(reader, label, strconv.Itoa(current))
		v, err := strconv.Atoi(input)
		if err == nil {
			return v
		}
		fmt.Printf("  Not a number: %q\n", input)
	}
}

func promptSlice(reader *bufio.Reader, label string, current []string) []string {
	currentStr := strings.Join(current, ", ")
	fmt.Printf("  %s [%s]: ", label, currentStr)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
