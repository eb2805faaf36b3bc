// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pilot/models"
)

// requestFlags are shared by every command that queues a request.
type requestFlags struct {
	persistence string
	timeout     int
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.persistence, "persistence", "", "persistent or immediate")
	cmd.Flags().IntVar(&f.timeout, "timeout-seconds", 0, "expiry of an immediate request")
}

func (f *requestFlags) parse() (models.Persistence, error) {
	return models.ParsePersistence(f.persistence)
}

func newRequestCommands(opts *RootOptions) []*cobra.Command {
	var installFlags requestFlags
	var description string
	install := &cobra.Command{
		Use:   "install <pilot> <file>",
		Short: "Install a file on the next hotsync",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := installFlags.parse()
			if err != nil {
				return err
			}
			file, err := filepath.Abs(args[1])
			if err != nil {
				return err
			}
			handle, err := opts.client.RequestInstall(cmd.Context(), models.InstallRequest{
				Pilot:       args[0],
				File:        file,
				Description: description,
				Persistence: p,
				Timeout:     installFlags.timeout,
			})
			if err != nil {
				return err
			}
			return printHandle(cmd.OutOrStdout(), handle)
		},
	}
	installFlags.register(install)
	install.Flags().StringVar(&description, "description", "", "shown while installing")

	var restoreFlags requestFlags
	var directory string
	restore := &cobra.Command{
		Use:   "restore <pilot>",
		Short: "Reinstall every backed up database on the next hotsync",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := restoreFlags.parse()
			if err != nil {
				return err
			}
			handle, err := opts.client.RequestRestore(cmd.Context(), models.RestoreRequest{
				Pilot:       args[0],
				Directory:   directory,
				Persistence: p,
				Timeout:     restoreFlags.timeout,
			})
			if err != nil {
				return err
			}
			return printHandle(cmd.OutOrStdout(), handle)
		},
	}
	restoreFlags.register(restore)
	restore.Flags().StringVar(&directory, "dir", "", "backup directory, defaults to the pilot's")

	var conduitFlags requestFlags
	var operation string
	conduit := &cobra.Command{
		Use:   "conduit <pilot> <conduit>",
		Short: "Run one conduit on the next hotsync",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := conduitFlags.parse()
			if err != nil {
				return err
			}
			handle, err := opts.client.RequestConduit(cmd.Context(), models.ConduitRunRequest{
				Pilot:       args[0],
				Conduit:     args[1],
				Operation:   models.ConduitOperation(operation),
				Persistence: p,
				Timeout:     conduitFlags.timeout,
			})
			if err != nil {
				return err
			}
			return printHandle(cmd.OutOrStdout(), handle)
		},
	}
	conduitFlags.register(conduit)
	conduit.Flags().StringVar(&operation, "op", string(models.OperationDefault),
		"synchronize, copy_from, copy_to, merge_from, merge_to or default")

	remove := &cobra.Command{
		Use:   "remove <handle>",
		Short: "Cancel a queued request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid handle %q", args[0])
			}
			return opts.client.RemoveRequest(cmd.Context(), handle)
		},
	}

	list := &cobra.Command{
		Use:   "requests",
		Short: "List queued requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reqs, err := opts.client.ListRequests(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), reqs)
		},
	}

	return []*cobra.Command{install, restore, conduit, remove, list}
}
