package main

import (
	"context"
	"fmt"
	"os"

	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
	"github.com/josei-decelis/sistema-ventas-cli/internal/cli"
	"github.com/josei-decelis/sistema-ventas-cli/internal/config"
)

func main() {
	cfg := config.Load()

	client := api.New(cfg.APIBaseURL)
	app := cli.New(client, os.Stdin, os.Stdout)

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
