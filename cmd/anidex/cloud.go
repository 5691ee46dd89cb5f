package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/anidex/internal/domain"
)

func newCloudCmd(configPath *string) *cobra.Command {
	cloudCmd := &cobra.Command{
		Use:   "cloud",
		Short: "Manage the cloud share link used to resolve entry URLs",
	}

	setCmd := &cobra.Command{
		Use:   "set <link>",
		Short: "Validate and store a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCloud(cmd, *configPath, func(a *app, svc cloudSvc) error {
				if err := svc.Set(args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "cloud link saved")
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored share link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCloud(cmd, *configPath, func(a *app, svc cloudSvc) error {
				if err := svc.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "cloud link removed")
				return nil
			})
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored share link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCloud(cmd, *configPath, func(a *app, svc cloudSvc) error {
				link, ok := svc.Current()
				if !ok {
					return fmt.Errorf("cloud link: %w", domain.ErrSettingNotFound)
				}
				fmt.Fprintln(cmd.OutOrStdout(), link)
				return nil
			})
		},
	}

	cloudCmd.AddCommand(setCmd, clearCmd, showCmd)
	return cloudCmd
}

type cloudSvc interface {
	Set(link string) error
	Clear() error
	Current() (string, bool)
}

func withCloud(cmd *cobra.Command, configPath string, fn func(*app, cloudSvc) error) error {
	a, err := setup(cmd, configPath)
	if err != nil {
		return err
	}
	defer a.close()

	settings := a.openSettings()
	defer settings.Close()
	if !settings.Persistent() {
		a.logger.Warn("cloud link will not outlive this process")
	}
	return fn(a, a.cloudService(settings))
}
