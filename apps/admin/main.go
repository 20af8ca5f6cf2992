package main

import (
	"context"
	"os"

	"github.com/trezcool/contentadmin/core"
	logsvc "github.com/trezcool/contentadmin/services/logger"
	"github.com/trezcool/contentadmin/storage/database"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(os.Stdout, conf)
	logger.Enable(false)

	cli := &commandLine{
		conf:   conf,
		logger: logger,
		out:    os.Stdout,
		connect: func(ctx context.Context) (core.DocumentStore, error) {
			return database.Open(ctx, conf)
		},
	}
	defer cli.close()

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		cli.close()
		os.Exit(1)
	}
}
