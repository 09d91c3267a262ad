package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipbridge/internal/message"
)

func newStopCmd() *cobra.Command {
	cmd := newClientCmd("stop", "Shut down the running daemon", runStop)
	return cmd
}

func runStop(cmd *cobra.Command, v *viper.Viper) error {
	if _, err := request(v, &message.Message{Type: message.TypeStop}); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "stop requested")
	return nil
}
