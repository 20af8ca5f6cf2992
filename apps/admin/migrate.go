package main

import (
	"github.com/spf13/cobra"

	"github.com/trezcool/contentadmin/storage/database/postgres"
)

var (
	gooseRunFunc = postgres.RunMigrations    // mockable
	createDBFunc = postgres.CreateIfNotExist // mockable
)

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run a goose migration command (up, up-by-one, up-to, down, down-to, redo, reset, status, version, fix)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			db, err := cli.sqlDB(cmd.Context())
			if err != nil {
				return err
			}
			return gooseRunFunc(db, args[0], args[1:]...)
		},
	}
}

func (cli *commandLine) createDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "createdb",
		Short: "Create the postgres app user & database if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createDBFunc(cmd.Context(), cli.conf)
		},
	}
}
