package cli

import (
	"context"
	"os"

	mcpserver "github.com/m-mizutani/noctua/pkg/mcp"
	"github.com/m-mizutani/noctua/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the MCP server on stdio",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			// stdout carries the protocol, logs go to stderr
			logger := logging.New(cfg.logLevel, os.Stderr)
			logging.SetDefault(logger)
			ctx = logging.With(ctx, logger)

			eng, err := cfg.newEngine()
			if err != nil {
				return err
			}

			logger.Info("starting MCP server", "coding", cfg.coding)
			return mcpserver.New(eng).Run(ctx)
		},
	}
}
