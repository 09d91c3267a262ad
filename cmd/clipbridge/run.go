package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipbridge/internal/clip"
	"go.klb.dev/clipbridge/internal/config"
	"go.klb.dev/clipbridge/internal/daemon"
	"go.klb.dev/clipbridge/internal/hotkey/system"
	"go.klb.dev/clipbridge/internal/inject"
	"go.klb.dev/clipbridge/internal/ipc"
	"go.klb.dev/clipbridge/internal/pathconv"
)

// errMissingBase ends the process quietly with status 0.
var errMissingBase = errors.New("base path does not exist")

const basePrompt = "Provide the directory path: "

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "clipbridge [base-dir]",
		Short: "Paste clipboard images into terminal tools as file references",
		Long: `clipbridge waits for a global hotkey. When it fires, the image on the
clipboard is saved as PNG under <base-dir>/sharedclaude, the clipboard is
replaced with a reference to the file and ctrl+v is sent to the focused
window.

  ` + config.DefaultHotkeyShort + `        paste @sharedclaude/<name>.png
  ` + config.DefaultHotkeyFull + `   paste the full path (with --wsl: /mnt/<drive>/...)

Saved images are deleted after --lifetime. If base-dir is omitted it is read
from stdin; a base-dir that does not exist exits successfully without doing
anything.

Config file search order (first found wins):
  /etc/clipbridge/clipbridge.toml
  $HOME/.config/clipbridge/clipbridge.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → CLIPBRIDGE_* env vars → flags`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PreRunE:      func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:         func(cmd *cobra.Command, args []string) error { return runDaemon(cmd, v, args) },
	}

	f := cmd.Flags()
	f.Bool("wsl", false, "write full paths in WSL form (/mnt/c/...)")
	f.String("path-style", "native", "full path style: native|wsl")
	f.String("mount-prefix", pathconv.DefaultMountPrefix, "where WSL mounts Windows drives")
	f.String("hotkey", config.DefaultHotkeyShort, "chord that pastes the short reference")
	f.String("hotkey-full", config.DefaultHotkeyFull, "chord that pastes the full path")
	f.Duration("paste-delay", config.DefaultPasteDelay, "wait between clipboard write and ctrl+v")
	f.Bool("no-paste", false, "only rewrite the clipboard, do not send ctrl+v")
	f.Bool("no-control", false, "do not open the control socket")
	addRetentionFlags(cmd)
	addSocketFlag(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runDaemon(cmd *cobra.Command, v *viper.Viper, args []string) error {
	setupLogging(v)

	base, err := readBase(cmd.InOrStdin(), cmd.OutOrStdout(), args)
	if err != nil {
		return err
	}
	if ok, _ := afero.DirExists(afero.NewOsFs(), base); !ok {
		slog.Info("base path does not exist, nothing to do", "path", base)
		return errMissingBase
	}

	cfg, err := buildConfig(v, base)
	if err != nil {
		return err
	}

	backend := clip.New()
	defer backend.Close()
	slog.Info("clipbridge starting",
		"version", Version,
		"shared_dir", cfg.SharedDir,
		"clipboard", backend.Name(),
		"paste", cfg.Paste,
	)

	deps := daemon.Deps{
		Clipboard: backend,
		Hotkeys:   system.NewSource(),
		Log:       slog.Default(),
	}
	if !system.Supported {
		slog.Warn("this build has no global hotkey support; use `clipbridge trigger` or rebuild with -tags x11hotkey")
	}
	if cfg.Paste {
		inj, err := inject.New()
		if err != nil {
			slog.Warn("paste injection unavailable, the reference stays on the clipboard", "err", err)
		} else {
			deps.Injector = inj
		}
	}
	if cfg.Control {
		path := socketPath(v)
		deps.Listen = func() (net.Listener, error) {
			ln, err := ipc.Listen(path)
			if err == nil {
				slog.Info("control socket listening", "path", path)
			}
			return ln, err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return daemon.New(cfg, deps).Run(ctx)
}

// readBase returns the base directory from args, or prompts for it on in.
func readBase(in io.Reader, out io.Writer, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	fmt.Fprint(out, basePrompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read base path: %w", err)
	}
	base := strings.TrimSpace(line)
	if base == "" {
		return "", errMissingBase
	}
	return base, nil
}
