package main

import (
	"github.com/spf13/cobra"

	"github.com/jacksparrot/jsp/internal/messages"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	quiet      bool
	noCache    bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", messages.RootFlagConfig)
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", messages.RootFlagLogLevel)
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, messages.RootFlagQuiet)
	cmd.PersistentFlags().BoolVar(&flags.noCache, "no-cache", false, messages.RootFlagNoCache)

	cmd.AddCommand(
		newListCmd(flags),
		newInstallCmd(flags),
		newUpdateCmd(flags),
		newRemoveCmd(flags),
		newSyncCmd(flags),
		newPlanCmd(flags),
		newRefreshCmd(flags),
		newBrowseCmd(flags),
		newServeCmd(flags),
		newInitCmd(flags),
	)
	return cmd
}
