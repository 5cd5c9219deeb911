package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	mdwlog "github.com/msto63/khamseena/foundation/core/log"
	"github.com/msto63/khamseena/foundation/khamseena"
	"github.com/msto63/khamseena/internal/tui/inspector"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:     "inspect <file>",
	Aliases: []string{"tui"},
	Short:   "Browse the stages in a terminal UI",
	Long: `Opens a read-only terminal UI with one view per stage: the source,
the tokens, the syntax tree, the diagnostics and the symbol table.

Shortcuts:
  1-5 / Tab   Switch view
  r           Reload the file and compile again
  g / G       Jump to top / bottom
  PgUp/PgDn   Scroll
  q / Ctrl+C  Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	// Log output would corrupt the alternate screen
	engine := khamseena.NewEngine(khamseena.Options{
		Logger:          mdwlog.Discard(),
		DropComments:    cfg.Frontend.DropComments,
		MaxSourceLength: cfg.Frontend.MaxSourceBytes,
	})

	model := inspector.New(inspector.Config{
		Path: path,
		Load: func() (string, error) {
			data, err := os.ReadFile(path)
			return string(data), err
		},
		Engine: engine,
	})

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
