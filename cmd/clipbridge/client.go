package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipbridge/internal/control"
	"go.klb.dev/clipbridge/internal/ipc"
	"go.klb.dev/clipbridge/internal/message"
)

// newClientCmd builds a command that talks to the running daemon over the
// control socket.
func newClientCmd(use, short string, run func(cmd *cobra.Command, v *viper.Viper) error) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return run(cmd, v) },
	}
	addSocketFlag(cmd)
	addConfigFlag(cmd)
	return cmd
}

// request sends req to the daemon, reporting a friendly error when none is
// running.
func request(v *viper.Viper, req *message.Message) (*message.Message, error) {
	path := socketPath(v)
	if !ipc.IsRunning(path) {
		return nil, fmt.Errorf("no clipbridge daemon listening on %s", path)
	}
	resp, err := control.Request(path, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Type, err)
	}
	return resp, nil
}
