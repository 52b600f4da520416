package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/doctree/internal/config"
	"github.com/standardbeagle/doctree/internal/converter"
	"github.com/standardbeagle/doctree/internal/debug"
	"github.com/standardbeagle/doctree/internal/events"
	"github.com/standardbeagle/doctree/internal/loader"
	"github.com/standardbeagle/doctree/internal/metrics"
	"github.com/standardbeagle/doctree/internal/version"
)

func main() {
	app := &cli.App{
		Name:    "doctree",
		Usage:   "Generate a documentation model from TypeScript/JavaScript sources",
		Version: version.Info(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: ".doctree.kdl",
				Usage: "Path to configuration file",
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "Project root directory (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "entry",
				Usage: "Entry file glob patterns (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclusion glob patterns (appended to config)",
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "Comment style: jsdoc, block, line, or all",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path for the JSON model (default: stdout)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "Parse the project and write the reflection tree",
				Action: runGenerate,
			},
			{
				Name:  "version",
				Usage: "Print detailed version information",
				Action: func(c *cli.Context) error {
					fmt.Println(version.FullInfo())
					return nil
				},
			},
		},
		// Bare invocation generates, matching the common workflow.
		Action: runGenerate,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")

	// If root is specified and config path is default, look for config in
	// the root directory.
	if rootFlag := c.String("root"); rootFlag != "" && configPath == ".doctree.kdl" {
		configPath = filepath.Join(rootFlag, ".doctree.kdl")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	if rootFlag := c.String("root"); rootFlag != "" {
		absRoot, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path %q: %w", rootFlag, err)
		}
		cfg.Project.Root = absRoot
	}
	if entries := c.StringSlice("entry"); len(entries) > 0 {
		cfg.Entry = entries
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludes...)
	}
	if style := c.String("style"); style != "" {
		cfg.Comments.Style = style
	}
	if output := c.String("output"); output != "" {
		cfg.Output.Path = output
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGenerate(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	logger := debug.Discard("doctree")
	if debug.Enabled() {
		fileLogger, logPath, err := debug.NewFileLogger("doctree")
		if err == nil {
			logger = fileLogger
			defer fileLogger.Close()
			fmt.Fprintf(os.Stderr, "debug log: %s\n", logPath)
		}
	}

	l := loader.New(logger.Component("loader"))
	defer l.Close()

	program, err := l.LoadProgram(context.Background(), cfg)
	if err != nil {
		return err
	}
	if len(program.Files()) == 0 {
		return fmt.Errorf("no source files matched entry patterns under %s", cfg.Project.Root)
	}

	bus := events.NewBus()
	cv := converter.New(cfg, logger.Component("convert"), bus)
	converter.RegisterTypeEnricher(cv)
	converter.RegisterSignatureEnricher(cv)
	cv.AddProgram(program)

	project := cv.Convert()
	fmt.Fprint(os.Stderr, metrics.Collect(project).Summary())

	out, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	if cfg.Output.Path != "" {
		if err := os.WriteFile(cfg.Output.Path, out, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfg.Output.Path, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", cfg.Output.Path)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
