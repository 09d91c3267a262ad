package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipbridge/internal/hotkey"
	"go.klb.dev/clipbridge/internal/message"
)

func newTriggerCmd() *cobra.Command {
	cmd := newClientCmd("trigger", "Convert the clipboard image now, as if the hotkey was pressed", runTrigger)
	cmd.Long = `Asks the running daemon to perform one conversion. Bind this to a key in
your terminal or window manager when global hotkeys are unavailable.`
	cmd.Flags().Bool("full", false, "paste the full path instead of the short reference")
	return cmd
}

func runTrigger(cmd *cobra.Command, v *viper.Viper) error {
	action := hotkey.ActionShortRef
	if v.GetBool("full") {
		action = hotkey.ActionFullPath
	}
	if _, err := request(v, message.Trigger(string(action))); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "triggered %s\n", action)
	return nil
}
