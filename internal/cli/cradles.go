package cli

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pilot/models"
)

func newCradleCommands(opts *RootOptions) []*cobra.Command {
	var sysFlags requestFlags
	var sysContinue bool
	sysinfo := &cobra.Command{
		Use:   "sysinfo <cradle>",
		Short: "Read the system block of the next handheld on a cradle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := cradleRequest(args[0], sysFlags, sysContinue)
			if err != nil {
				return err
			}
			handle, err := opts.client.GetSystemInfo(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printHandle(cmd.OutOrStdout(), handle)
		},
	}
	sysFlags.register(sysinfo)
	sysinfo.Flags().BoolVar(&sysContinue, "continue", false, "hotsync after reading")

	userinfo := &cobra.Command{
		Use:   "userinfo",
		Short: "Read or write the identity of the next handheld on a cradle",
	}

	var getFlags requestFlags
	var getContinue bool
	get := &cobra.Command{
		Use:   "get <cradle>",
		Short: "Read the user info",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := cradleRequest(args[0], getFlags, getContinue)
			if err != nil {
				return err
			}
			handle, err := opts.client.GetUserInfo(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printHandle(cmd.OutOrStdout(), handle)
		},
	}
	getFlags.register(get)
	get.Flags().BoolVar(&getContinue, "continue", false, "hotsync after reading")

	var setFlags requestFlags
	var setContinue bool
	var userID uint32
	var username string
	set := &cobra.Command{
		Use:   "set <cradle>",
		Short: "Write the user info, restoring a hard reset handheld",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := cradleRequest(args[0], setFlags, setContinue)
			if err != nil {
				return err
			}
			req.UserInfo = &models.UserInfo{UserID: userID, Username: username}
			handle, err := opts.client.SetUserInfo(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printHandle(cmd.OutOrStdout(), handle)
		},
	}
	setFlags.register(set)
	set.Flags().BoolVar(&setContinue, "continue", false, "hotsync after writing")
	set.Flags().Uint32Var(&userID, "user-id", 0, "user id to write")
	set.Flags().StringVar(&username, "username", "", "user name to write")

	userinfo.AddCommand(get, set)
	return []*cobra.Command{sysinfo, userinfo}
}

func cradleRequest(cradle string, flags requestFlags, continueSync bool) (models.CradleRequest, error) {
	p, err := flags.parse()
	if err != nil {
		return models.CradleRequest{}, err
	}
	return models.CradleRequest{
		Cradle:       cradle,
		Persistence:  p,
		Timeout:      flags.timeout,
		ContinueSync: continueSync,
	}, nil
}
