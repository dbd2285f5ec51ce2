package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bookdesk/bookdesk/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override bookdesk config path (optional)")
	server := flag.String("server", "", "lending server address, host:port or URL (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, Server: *server}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "bookdesk: %v\n", err)
		return 1
	}
	return 0
}
