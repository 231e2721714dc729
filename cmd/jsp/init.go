package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jacksparrot/jsp/internal/config"
	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/root"
)

func newInitCmd(flags *globalFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   messages.InitUse,
		Short: messages.InitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.configPath
			if path == "" {
				cwd, err := getwd()
				if err != nil {
					return err
				}
				projectRoot, err := root.FindRepoRoot(cwd)
				if err != nil {
					return err
				}
				path = config.DefaultConfigPath(projectRoot)
			}
			if err := writeDefaultConfig(path, force); err != nil {
				return err
			}
			if !flags.quiet {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.InitWroteFmt, path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, messages.FlagForce)
	return cmd
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf(messages.InitExistsFmt, path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.InitMkdirFmt, dir, err)
	}
	if err := os.WriteFile(path, []byte(config.DefaultConfigTOML), 0o644); err != nil {
		return fmt.Errorf(messages.InitWriteFmt, path, err)
	}
	return nil
}
