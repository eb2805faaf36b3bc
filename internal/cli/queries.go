package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// query builds a command printing the JSON result of fn.
func query(use, short string, args cobra.PositionalArgs, fn func(cmd *cobra.Command, args []string) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := fn(cmd, args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}
}

func newQueryCommands(opts *RootOptions) []*cobra.Command {
	return []*cobra.Command{
		query("users", "List the owners of known handhelds", cobra.NoArgs, func(cmd *cobra.Command, _ []string) (any, error) {
			return opts.client.GetUsers(cmd.Context())
		}),
		query("cradles", "List the configured cradles", cobra.NoArgs, func(cmd *cobra.Command, _ []string) (any, error) {
			return opts.client.GetCradles(cmd.Context())
		}),
		query("pilots", "List the handheld profiles", cobra.NoArgs, func(cmd *cobra.Command, _ []string) (any, error) {
			return opts.client.GetPilots(cmd.Context())
		}),
		query("pilot-ids", "List the handheld user ids", cobra.NoArgs, func(cmd *cobra.Command, _ []string) (any, error) {
			return opts.client.GetPilotIDs(cmd.Context())
		}),
		query("pilots-by-name <user name>", "List the profiles owned by a user name", cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) (any, error) {
			return opts.client.GetPilotsByUserName(cmd.Context(), args[0])
		}),
		query("pilots-by-login <login>", "List the profiles owned by a login", cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) (any, error) {
			return opts.client.GetPilotsByUserLogin(cmd.Context(), args[0])
		}),
		query("basedir <pilot>", "Print the base directory of a profile", cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) (any, error) {
			return opts.client.GetPilotBaseDir(cmd.Context(), args[0])
		}),
		query("pilot-id <pilot>", "Print the user id of a profile", cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) (any, error) {
			return opts.client.GetPilotIDFromName(cmd.Context(), args[0])
		}),
		query("pilot-name <id>", "Print the profile name of a user id", cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) (any, error) {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid pilot id %q", args[0])
			}
			return opts.client.GetPilotNameFromID(cmd.Context(), uint32(id))
		}),
		query("databases <pilot>", "List the cached database list of a profile", cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) (any, error) {
			return opts.client.GetDatabasesFromCache(cmd.Context(), args[0])
		}),
	}
}
