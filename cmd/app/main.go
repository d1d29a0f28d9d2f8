package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/brianbruff/Log4YM/internal"
	"github.com/brianbruff/Log4YM/internal/apperr"
	pkgconfig "github.com/brianbruff/Log4YM/pkg/config"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runImport(ctx context.Context, cmd *cli.Command) error {
	file := cmd.Args().First()
	if file == "" {
		return fmt.Errorf("usage: log4ym import <file>")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	err = internal.Run(ctx,
		internal.WithConfig(cfg),
		internal.WithFile(file),
		internal.WithForce(cmd.Bool("force")),
		internal.WithDryRun(cmd.Bool("dry-run")),
	)
	if errors.Is(err, apperr.ErrAlreadyImported) {
		// The skip message was already printed; not a failure.
		return nil
	}
	if err != nil {
		return fmt.Errorf("import error: %w", err)
	}
	return nil
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if dir := cmd.String("dir"); dir != "" {
		cfg.Watch.Dir = dir
	}

	if err := internal.RunWatch(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("watch error: %w", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "log4ym",
		Usage: "Import ADIF amateur-radio contact logs into MongoDB",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Parse an ADIF file and load its QSO records",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Import even when the file checksum was seen before",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Parse and report counts without writing to the store",
					},
				},
				Action: runImport,
			},
			{
				Name:  "watch",
				Usage: "Watch a directory and import ADIF files as they appear",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Directory to watch (overrides config)",
					},
				},
				Action: runWatch,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
