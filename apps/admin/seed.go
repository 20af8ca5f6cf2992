package main

import (
	"github.com/spf13/cobra"

	"github.com/trezcool/contentadmin/storage/seed"
)

func (cli *commandLine) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the admin user, default categories & site settings when missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			usrSvc, err := cli.userService(ctx)
			if err != nil {
				return err
			}
			catSvc, err := cli.categoryService(ctx)
			if err != nil {
				return err
			}
			setSvc, err := cli.settingsService(ctx)
			if err != nil {
				return err
			}
			return seed.NewSeeder(cli.conf, cli.logger, usrSvc, catSvc, setSvc).Run(ctx, seed.DefaultData())
		},
	}
}
