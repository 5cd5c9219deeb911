package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const stdinName = "<stdin>"

// readSource returns the display name and contents of the source named by
// args. No argument or "-" reads standard input.
func readSource(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read source: %w", err)
		}
		return args[0], string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			return "", "", fmt.Errorf("no input: pass a source file or pipe source on stdin")
		}
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return stdinName, string(data), nil
}
