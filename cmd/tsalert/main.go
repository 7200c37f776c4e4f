package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/arjunmahishi/tsalert/tsalert"
	"github.com/urfave/cli/v3"
)

func main() {
	app := rootCommand(os.Stdout)
	if err := app.Run(context.Background(), os.Args); err != nil {
		writeError(err)
		os.Exit(1)
	}
}

func rootCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "tsalert",
		Usage:     "render static-analysis alerts inside their enclosing function",
		ArgsUsage: "<report> <source_dir>",
		Writer:    stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a config file (toml, yaml or json)",
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Value:   tsalert.DefaultLanguage,
				Usage:   "grammar used for every source file: " + strings.Join(tsalert.List(), ", "),
			},
			&cli.StringFlag{
				Name:  "color",
				Value: string(tsalert.ColorAuto),
				Usage: "auto, always or never",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "fail on the first unreadable source file",
			},
			&cli.BoolFlag{
				Name:  "dedup",
				Usage: "drop alerts identical to an earlier one",
			},
			&cli.BoolFlag{
				Name:  "allow-syntax-errors",
				Usage: "render files that do not parse cleanly",
			},
			&cli.BoolFlag{
				Name:  "cache",
				Usage: "parse each source file once per run",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			listCommand(),
			examplesCommand(),
			languagesCommand(),
		},
		Action: runRender,
	}
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		fmt.Fprintf(cmd.Root().Writer, "Usage: %s <file_path> <source_dir>\n", cmd.Root().Name)
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := cfg.RenderOptions(cmd.Args().Get(0), cmd.Args().Get(1))
	opts.Output = cmd.Root().Writer
	opts.Logger = newLogger(cfg.Log.Level)

	stats, err := tsalert.Render(ctx, opts)
	if err != nil {
		return err
	}
	opts.Logger.Debug("render finished",
		slog.Int("alerts", stats.Alerts),
		slog.Int("rendered", stats.Rendered),
		slog.Int("skipped", stats.Skipped),
	)
	return nil
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list the alerts of a report without rendering them",
		ArgsUsage: "<report> [source_dir]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print alerts as JSON",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize JSON output",
			},
			&cli.IntFlag{
				Name:  "width",
				Value: tsalert.DefaultMessageWidth,
				Usage: "max message width in the table, negative for no limit",
			},
		},
		Action: runList,
	}
}

func runList(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 1 {
		return fmt.Errorf("usage: %s list <report> [source_dir]", cmd.Root().Name)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	root := cmd.Args().Get(1)
	alerts, err := tsalert.ListAlerts(tsalert.ListOptions{
		Report:     cmd.Args().Get(0),
		SourceRoot: root,
		Dedup:      cfg.Alerts.Dedup,
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return writeJSON(cmd.Root().Writer, alerts, cmd.Bool("compact"))
	}
	return tsalert.WriteAlertTable(cmd.Root().Writer, alerts, root, cmd.Int("width"))
}

func languagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "list the grammars a run can be bound to",
		Action: func(_ context.Context, cmd *cli.Command) error {
			for _, name := range tsalert.List() {
				lang := tsalert.Get(name)
				fmt.Fprintf(cmd.Root().Writer, "%s\t%s\n", name, strings.Join(lang.Extensions(), " "))
			}
			return nil
		},
	}
}

// loadConfig layers the config file and then the flags set on the command line.
func loadConfig(cmd *cli.Command) (*tsalert.Config, error) {
	var cfg *tsalert.Config
	if path := cmd.String("config"); path != "" {
		loaded, err := tsalert.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = tsalert.LoadConfigOrDefault(".")
	}

	if cmd.IsSet("language") {
		cfg.Language = cmd.String("language")
	}
	if cmd.IsSet("color") {
		cfg.Output.Color = cmd.String("color")
	}
	if cmd.IsSet("strict") {
		cfg.Alerts.Strict = cmd.Bool("strict")
	}
	if cmd.IsSet("dedup") {
		cfg.Alerts.Dedup = cmd.Bool("dedup")
	}
	if cmd.IsSet("allow-syntax-errors") {
		cfg.Alerts.AllowSyntaxErrors = cmd.Bool("allow-syntax-errors")
	}
	if cmd.IsSet("cache") {
		cfg.Cache.Enabled = cmd.Bool("cache")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// JSON output helpers
func writeJSON(w io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeError(err error) {
	enc := json.NewEncoder(os.Stderr)
	enc.Encode(map[string]string{
		"error": err.Error(),
	})
}
