package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ramlo/ramlo/internal/mcpserver"
)

// HandleMCP starts the MCP server over stdio and blocks until the client
// disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a ramlo YAML config file")
	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: ramlo mcp [flags]\n\n")
		Writef(output, "Serve ramlo tools to MCP clients over stdio.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	mcpserver.Configure(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
