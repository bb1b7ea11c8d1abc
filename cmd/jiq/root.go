// Command jiq is an interactive terminal explorer for JSON documents,
// piping queries through an external jq-compatible binary and optionally
// asking an AI provider for follow-up suggestions (spec.md §6).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jiqtui/jiq/internal/apperr"
	"github.com/jiqtui/jiq/internal/config"
	"github.com/jiqtui/jiq/internal/jsonio"
	"github.com/jiqtui/jiq/internal/logging"
	"github.com/jiqtui/jiq/internal/query"
	"github.com/jiqtui/jiq/internal/ui"
)

var (
	flagNoAI     bool
	flagConfig   string
	flagLogLevel string
	flagBinary   string

	loadedConfig config.Config

	rootCmd = &cobra.Command{
		Use:           "jiq [file]",
		Short:         "Interactive jq-style explorer for JSON documents",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
			if flagNoAI {
				cfg.AI.Enabled = false
			}
			loadedConfig = cfg
			return nil
		},
		RunE: runJiq,
	}
)

func init() {
	rootCmd.Flags().BoolVar(&flagNoAI, "no-ai", false, "disable the AI suggestions popup for this session")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to an alternate config.toml")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug|info|warn|error")
	rootCmd.Flags().StringVar(&flagBinary, "binary", "jq", "name of the jq-compatible query engine on PATH")
}

func runJiq(cmd *cobra.Command, args []string) error {
	if err := query.BinaryAvailable(flagBinary); err != nil {
		return err
	}

	cfg := loadedConfig

	logDir := ""
	if cacheDir, err := os.UserCacheDir(); err == nil {
		logDir = filepath.Join(cacheDir, "jiq", "logs")
	}
	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(flagLogLevel),
		LogDir:  logDir,
		Service: "jiq",
	})
	defer logger.Close()

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else if isatty.IsTerminal(os.Stdin.Fd()) {
		return apperr.New(apperr.Configuration, fmt.Errorf("no input file given and stdin is a terminal")).
			WithHint("pass a JSON file path, or pipe JSON in on stdin")
	}

	data, err := loadInputSync(path)
	if err != nil {
		return err
	}

	model := ui.NewModel(cfg, logger, data, flagBinary)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := program.Run()
	if err != nil {
		return apperr.New(apperr.Fatal, err)
	}

	if m, ok := finalModel.(*ui.Model); ok {
		switch m.ExitAction {
		case ui.ExitPrintQuery, ui.ExitPrintResult:
			fmt.Println(m.ExitText)
		}
	}
	return nil
}

func loadConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.LoadFrom(flagConfig)
	}
	return config.Load()
}

// loadInputSync drains internal/jsonio's progress channel synchronously:
// the CLI entrypoint has no renderer to show progress against yet, so it
// just waits for the terminal Done update (spec.md §6: "Input JSON is
// validated before entering the TUI; failure is a fatal pre-TUI error").
func loadInputSync(path string) ([]byte, error) {
	for p := range jsonio.Load(path) {
		if p.Done {
			if p.Err != nil {
				return nil, p.Err
			}
			return p.Data, nil
		}
	}
	return nil, apperr.New(apperr.Fatal, fmt.Errorf("input loader closed without a result"))
}
