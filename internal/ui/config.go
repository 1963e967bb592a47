package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvillagra/gantterm/internal/config"
	"github.com/mvillagra/gantterm/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  gantterm config`,
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
	if os.IsNotExist(fileErr) {
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

	cfg.Chart.Zoom = promptValue(reader, "Default zoom (day/week/month)", cfg.Chart.Zoom)
	cfg.Chart.WeekendShade = promptBool(reader, "Shade weekends", cfg.Chart.WeekendShade)
	cfg.Chart.TodayMarker = promptBool(reader, "Draw today marker", cfg.Chart.TodayMarker)
	cfg.Chart.ShowAdvisor = promptBool(reader, "Show schedule alerts", cfg.Chart.ShowAdvisor)
	cfg.Chart.DefaultColor = promptValue(reader, "Default bar color", cfg.Chart.DefaultColor)
	cfg.Chart.ExportDir = promptValue(reader, "Export directory", cfg.Chart.ExportDir)
	cfg.LLM.Provider = promptValue(reader, "LLM provider", cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(reader, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, "LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
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
	fmt.Println("[chart]")
	fmt.Printf("  zoom          = %s\n", cfg.Chart.Zoom)
	fmt.Printf("  weekend_shade = %t\n", cfg.Chart.WeekendShade)
	fmt.Printf("  today_marker  = %t\n", cfg.Chart.TodayMarker)
	fmt.Printf("  show_advisor  = %t\n", cfg.Chart.ShowAdvisor)
	fmt.Printf("  default_color = %s\n", cfg.Chart.DefaultColor)
	fmt.Printf("  export_dir    = %s\n", cfg.Chart.ExportDir)
	fmt.Println("\n[llm]")
	fmt.Printf("  provider      = %s\n", cfg.LLM.Provider)
	fmt.Printf("  model         = %s\n", cfg.LLM.Model)
	fmt.Printf("  base_url      = %s\n", cfg.LLM.BaseURL)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path       = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme         = %s\n", cfg.UI.Theme)
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

func promptBool(reader *bufio.Reader, label string, current bool) bool {
	fmt.Printf("  %s [%t]: ", label, current)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return current
	}
	v, err := strconv.ParseBool(input)
	if err != nil {
		return current
	}
	return v
}

func promptTheme(reader *bufio.Reader, current string) string {
	fmt.Printf("  Theme (%s) [%s]: ", strings.Join(theme.Available(), "/"), current)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return current
	}
	if !theme.IsAvailable(input) {
		fmt.Printf("  Unknown theme %q, keeping %s\n", input, current)
		return current
	}
	return input
}
