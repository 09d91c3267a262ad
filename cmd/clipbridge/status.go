package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipbridge/internal/message"
)

func newStatusCmd() *cobra.Command {
	cmd := newClientCmd("status", "Show the running daemon's state", runStatus)
	cmd.Long = `Displays the shared directory, hotkey bindings and conversion counters of
the daemon listening on the control socket.`
	cmd.Flags().Bool("json", false, "output raw JSON")
	return cmd
}

func runStatus(cmd *cobra.Command, v *viper.Viper) error {
	resp, err := request(v, &message.Message{Type: message.TypeStatus})
	if err != nil {
		return err
	}
	if resp.Status == nil {
		return fmt.Errorf("daemon sent %s without status", resp.Type)
	}

	out := cmd.OutOrStdout()
	if v.GetBool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.Status)
	}
	printStatus(out, resp.Status)
	return nil
}

func printStatus(out io.Writer, st *message.Status) {
	w := tabwriter.NewWriter(out, 1, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PID:\t%d\n", st.PID)
	fmt.Fprintf(w, "Shared dir:\t%s\n", st.SharedDir)
	fmt.Fprintf(w, "Path style:\t%s\n", st.PathStyle)
	fmt.Fprintf(w, "Lifetime:\t%s\n", st.Lifetime)
	if !st.StartedAt.IsZero() {
		fmt.Fprintf(w, "Started:\t%s (%s)\n", st.StartedAt.UTC().Format(time.RFC3339), fmtAge(st.StartedAt))
	}
	fmt.Fprintf(w, "Images:\t%d\n", st.Images)
	c := st.Counters
	fmt.Fprintf(w, "Conversions:\t%d run, %d saved, %d empty, %d failed\n", c.Runs, c.Saved, c.Empty, c.Failed)
	fmt.Fprintln(w)
	_ = w.Flush()

	if len(st.Bindings) == 0 {
		fmt.Fprintln(out, "No hotkeys registered.")
		return
	}

	tw := tabwriter.NewWriter(out, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "ACTION\tCHORD\tSTATE\n")
	_, _ = fmt.Fprintf(tw, "------\t-----\t-----\n")
	for _, b := range st.Bindings {
		state := "registered"
		if !b.Registered {
			state = "failed: " + b.Error
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Action, b.Chord, state)
	}
	_ = tw.Flush()
}

func fmtAge(t time.Time) string {
	age := time.Since(t).Round(time.Second)
	if age < time.Minute {
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	}
	if age < time.Hour {
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	}
	return fmt.Sprintf("%dh%02dm ago", int(age.Hours()), int(age.Minutes())%60)
}
