package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipbridge/internal/config"
	"go.klb.dev/clipbridge/internal/ipc"
	"go.klb.dev/clipbridge/internal/logging"
	"go.klb.dev/clipbridge/internal/pathconv"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPBRIDGE_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPBRIDGE_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("clipbridge")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/clipbridge/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "clipbridge"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-background", false, "run interactively: tinter logs + debug level")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: info for service, debug for interactive)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addSocketFlag adds the --socket flag used by the control client commands.
func addSocketFlag(cmd *cobra.Command) {
	cmd.Flags().String("socket", "", "control socket path (default: platform location)")
}

// addRetentionFlags adds the flags shared by the daemon and the sweep command.
func addRetentionFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("lifetime", config.DefaultLifetime, "delete saved images older than this")
	cmd.Flags().Duration("sweep-interval", config.DefaultSweepInterval, "how often to look for expired images")
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) {
	interactive := v.GetBool("no-background") || logging.IsTTY(os.Stderr)
	resolveLogging(interactive, v.GetString("log-format"), v.GetString("log-level"))
}

// buildConfig turns viper values into a validated config.Config rooted at
// base.
func buildConfig(v *viper.Viper, base string) (config.Config, error) {
	cfg := config.Default()

	style := v.GetString("path-style")
	if v.GetBool("wsl") {
		style = string(pathconv.StyleWSL)
	}
	ps, err := pathconv.ParseStyle(style)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	cfg.PathStyle = ps

	if p := v.GetString("mount-prefix"); p != "" {
		cfg.MountPrefix = p
	}
	if s := v.GetString("hotkey"); s != "" {
		cfg.HotkeyShort = s
	}
	if s := v.GetString("hotkey-full"); s != "" {
		cfg.HotkeyFull = s
	}
	if v.IsSet("lifetime") {
		cfg.Lifetime = v.GetDuration("lifetime")
	}
	if v.IsSet("sweep-interval") {
		cfg.SweepInterval = v.GetDuration("sweep-interval")
	}
	if v.IsSet("paste-delay") {
		cfg.PasteDelay = v.GetDuration("paste-delay")
	}
	cfg.Paste = !v.GetBool("no-paste")
	cfg.Control = !v.GetBool("no-control")

	cfg, err = cfg.WithBaseDir(base)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// socketPath returns the --socket flag or the platform default.
func socketPath(v *viper.Viper) string {
	if s := v.GetString("socket"); s != "" {
		return s
	}
	return ipc.SocketPath()
}
