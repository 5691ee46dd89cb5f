package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmcdole/anidex/internal/adapter"
)

// errConfigExists is returned by config init when it would overwrite a file
var errConfigExists = errors.New("config file already exists (use --force to overwrite)")

func newConfigCmd(configPath *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *configPath
			if path == "" {
				path = filepath.Join(adapter.ConfigDir(), "config.yaml")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s: %w", path, errConfigExists)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			cfg := adapter.DefaultConfig()
			if f := cmd.Flag("source"); f != nil && f.Value.String() != "" {
				cfg.Source.Path = f.Value.String()
			}

			var err error
			if *configPath == "" {
				err = adapter.SaveConfig(cfg)
			} else {
				err = adapter.SaveConfigFile(cfg, path)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the directory searched for config.yaml",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), adapter.ConfigDir())
		},
	}

	configCmd.AddCommand(initCmd, pathCmd)
	return configCmd
}
