// clipbridge: paste clipboard images into terminal tools as file references.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.design/x/hotkey/mainthread"

	"go.klb.dev/clipbridge/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	code := 0
	// Global hotkeys on macOS must be serviced from the main thread.
	mainthread.Init(func() { code = execute(os.Args[1:]) })
	os.Exit(code)
}

func execute(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errMissingBase):
		return 0
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
}

func newRootCmd() *cobra.Command {
	root := newRunCmd()
	root.Version = Version
	root.SilenceErrors = true
	root.AddCommand(
		newTriggerCmd(),
		newStatusCmd(),
		newStopCmd(),
		newSweepCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clipbridge %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(interactive bool, formatStr, levelStr string) {
	logging.Setup(logging.Options{
		Format:      logging.ParseFormat(formatStr),
		Level:       levelStr,
		Interactive: interactive,
	})
}
