package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	app := &cli.App{
		Name:    "perksd",
		Usage:   "Startup perks directory server",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(),
			validateCmd(),
			sitemapCmd(),
		},
		// Bare invocation serves, matching how the container runs it.
		Action: func(c *cli.Context) error {
			return runServe()
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the directory website and JSON API",
		Action: func(c *cli.Context) error {
			return runServe()
		},
	}
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Load the dataset and check ids, required fields, and categories",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "Dataset directory (defaults to the embedded dataset)"},
		},
		Action: func(c *cli.Context) error {
			return runValidate(c.String("dir"), os.Stdout)
		},
	}
}

func sitemapCmd() *cli.Command {
	return &cli.Command{
		Name:  "sitemap",
		Usage: "Print the generated sitemap.xml to stdout",
		Action: func(c *cli.Context) error {
			return runSitemap(os.Stdout)
		},
	}
}

func setupLogging() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
}
