package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/contentadmin/core"
	"github.com/trezcool/contentadmin/core/category"
	"github.com/trezcool/contentadmin/core/integrity"
	"github.com/trezcool/contentadmin/core/settings"
	"github.com/trezcool/contentadmin/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp     = errors.New("help provided")
	errNotSQLDB = errors.New("the configured database engine has no SQL migrations")
)

type commandLine struct {
	conf    *core.Config
	logger  core.Logger
	out     io.Writer
	connect func(ctx context.Context) (core.DocumentStore, error)

	db core.DocumentStore
}

// store connects on first use: `createdb` must run before the database exists.
func (cli *commandLine) store(ctx context.Context) (core.DocumentStore, error) {
	if cli.db == nil {
		db, err := cli.connect(ctx)
		if err != nil {
			return nil, err
		}
		cli.db = db
	}
	return cli.db, nil
}

func (cli *commandLine) sqlDB(ctx context.Context) (*sql.DB, error) {
	db, err := cli.store(ctx)
	if err != nil {
		return nil, err
	}
	if sdb, ok := db.(interface{ SQL() *sql.DB }); ok {
		return sdb.SQL(), nil
	}
	return nil, errNotSQLDB
}

func (cli *commandLine) close() {
	if cli.db != nil {
		_ = cli.db.Close(context.Background())
		cli.db = nil
	}
}

func (cli *commandLine) userService(ctx context.Context) (user.Service, error) {
	db, err := cli.store(ctx)
	if err != nil {
		return nil, err
	}
	return user.NewService(user.NewRepository(db), integrity.NewChecker(db, cli.conf.Integrity.StrictReferences)), nil
}

func (cli *commandLine) categoryService(ctx context.Context) (category.Service, error) {
	db, err := cli.store(ctx)
	if err != nil {
		return nil, err
	}
	return category.NewService(category.NewRepository(db), integrity.NewChecker(db, cli.conf.Integrity.StrictReferences)), nil
}

func (cli *commandLine) settingsService(ctx context.Context) (settings.Service, error) {
	db, err := cli.store(ctx)
	if err != nil {
		return nil, err
	}
	return settings.NewService(settings.NewRepository(db)), nil
}

// promptPassword reads a password from the terminal without echoing it.
func (cli *commandLine) promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Enter password:")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         cli.conf.AppName + " administration",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	root.AddCommand(
		cli.addUserCmd(),
		cli.resetPasswordCmd(),
		cli.seedCmd(),
		cli.createDBCmd(),
		cli.migrateCmd(),
	)
	return root
}

// run executes the command line; args include the program name.
func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	if len(args) > 1 {
		root.SetArgs(args[1:])
	} else {
		root.SetArgs([]string{})
	}
	return root.ExecuteContext(context.Background())
}
