package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pilot/internal/events"
)

func newVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the daemon version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := opts.client.Version(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
}

func newDaemonCommands(opts *RootOptions) []*cobra.Command {
	var off bool
	pause := &cobra.Command{
		Use:   "pause",
		Short: "Stop watching cradles until resumed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.client.Pause(cmd.Context(), !off)
		},
	}
	pause.Flags().BoolVar(&off, "off", false, "resume watching")

	resume := &cobra.Command{
		Use:   "resume",
		Short: "Resume watching cradles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.client.Pause(cmd.Context(), false)
		},
	}

	reread := &cobra.Command{
		Use:   "reread",
		Short: "Reload the cradle configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.client.RereadConfig(cmd.Context())
		},
	}

	noop := &cobra.Command{
		Use:   "noop",
		Short: "Wait until the daemon is between sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.client.Noop(cmd.Context())
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the daemon state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := opts.client.Status(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), st)
		},
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Stream daemon events as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			return opts.client.Watch(cmd.Context(), func(ev events.Event) error {
				return printJSON(out, ev)
			})
		},
	}

	return []*cobra.Command{pause, resume, reread, noop, status, watch}
}
