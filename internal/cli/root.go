// Package cli implements the gpilotctl command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pilot/internal/adapter"
	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/logger"
)

// AdapterFactory builds the daemon client from the resolved configuration.
type AdapterFactory func(cfg config.CtlConfig, log *logger.Logger) (adapter.ControlAdapter, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Address    string
	TokenKey   string
	ConfigPath string
	Timeout    time.Duration
	Verbose    bool

	newAdapter AdapterFactory
	client     adapter.ControlAdapter
}

// NewRootCommand creates the gpilotctl root command. A nil factory uses the
// HTTP adapter.
func NewRootCommand(newAdapter AdapterFactory) *cobra.Command {
	if newAdapter == nil {
		newAdapter = adapter.NewHTTPControlAdapter
	}
	opts := &RootOptions{newAdapter: newAdapter}

	cmd := &cobra.Command{
		Use:           "gpilotctl",
		Short:         "Control a running gpilotd",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.connect()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Address, "address", "a", "", "daemon control address (host:port)")
	cmd.PersistentFlags().StringVar(&opts.TokenKey, "token-key", "", "key signing the control bearer token")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a JSON configuration file")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "timeout of each control request")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(newVersionCommand(opts))
	cmd.AddCommand(newDaemonCommands(opts)...)
	cmd.AddCommand(newRequestCommands(opts)...)
	cmd.AddCommand(newCradleCommands(opts)...)
	cmd.AddCommand(newQueryCommands(opts)...)

	return cmd
}

func (o *RootOptions) connect() error {
	cfg, err := config.GetCtlConfig(config.CtlConfig{
		Address:  o.Address,
		TokenKey: o.TokenKey,
		Timeout:  o.Timeout,
	}, o.ConfigPath)
	if err != nil {
		return err
	}

	log := logger.Nop()
	if o.Verbose {
		log = logger.New("gpilotctl", logger.Options{Level: "debug"})
	}

	o.client, err = o.newAdapter(*cfg, log)
	return err
}

// printJSON writes v indented, one value per call.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printHandle(w io.Writer, handle int64) error {
	_, err := fmt.Fprintf(w, "queued request %d\n", handle)
	return err
}
