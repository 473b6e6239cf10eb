// The jimage command inspects runtime image files and extracts resources
// from them.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	jimage "github.com/lagertha-vm/lagertha-image"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "jimage:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "jimage"
	app.Usage = "Inspect runtime image files"
	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, TakesFile: true, Usage: "Path to the image file", EnvVars: []string{"JIMAGE_FILE"}},
		&cli.StringFlag{Name: "module", Aliases: []string{"m"}, Value: jimage.DefaultModule, Usage: "Module that class names are resolved in", EnvVars: []string{"JIMAGE_MODULE"}},
		&cli.StringFlag{Name: "log-level", Value: "info", Usage: "Set log level (debug, info, warn, error)", EnvVars: []string{"JIMAGE_LOG_LEVEL"}},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "header",
			Usage:  "Print the image header and region layout",
			Action: headerAction,
		},
		{
			Name:      "lookup",
			Usage:     "Print size and digest of classes",
			ArgsUsage: "NAME...",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "cache-size", Value: 0, Usage: "Number of lookups to cache (0 uses the default)"},
			},
			Action: lookupAction,
		},
		{
			Name:      "cat",
			Usage:     "Write a class file to stdout",
			ArgsUsage: "NAME",
			Action:    catAction,
		},
		{
			Name:      "resource",
			Usage:     "Look up a resource by full path and print its location record",
			ArgsUsage: "FULLPATH",
			Action:    resourceAction,
		},
		{
			Name:      "verify",
			Usage:     "Check that every class is present and readable",
			ArgsUsage: "NAME...",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Value: 4, Usage: "Number of concurrent lookups"},
			},
			Action: verifyAction,
		},
	}
	return app
}

func newLogger(c *cli.Context) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level})), nil
}

func openImage(c *cli.Context) (*jimage.Image, error) {
	logger, err := newLogger(c)
	if err != nil {
		return nil, err
	}
	return jimage.Open(c.String("file"),
		jimage.WithLogger(logger),
		jimage.WithDefaultModule(c.String("module")),
	)
}
