package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/virtualtechbox/backend/internal/importer"
	"github.com/virtualtechbox/backend/internal/logger"
	"go.uber.org/zap"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the content CLI writing user facing output to out
func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "contentctl",
		Usage:     "Import content modules into Virtual Tech Box",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base",
				Value:   "./content/modules",
				Usage:   "content modules directory",
				EnvVars: []string{"CONTENT_BASE_PATH"},
			},
			&cli.StringFlag{
				Name:  "templates",
				Value: "./content/templates",
				Usage: "module templates directory",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			return logger.Init(c.String("log-level"))
		},
		After: func(c *cli.Context) error {
			logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create learning area structure",
				ArgsUsage: "<area>",
				Action:    createAction,
			},
			{
				Name:      "import",
				Usage:     "Import a module JSON file",
				ArgsUsage: "<file> <area>",
				Action:    importAction,
			},
		},
	}
}

func newImporter(c *cli.Context) *importer.Importer {
	return importer.NewImporter(c.String("base"), c.String("templates"), logger.Logger)
}

func createAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("usage: contentctl create <area>", 2)
	}
	area := c.Args().Get(0)

	result, err := newImporter(c).CreateAreaStructure(area)
	if err != nil {
		logger.Logger.Error("failed to create area structure", zap.String("area", area), zap.Error(err))
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	out := c.App.Writer
	if result.CreatedBase {
		fmt.Fprintf(out, "Created base content directory at %s\n", c.String("base"))
	}
	if result.CreatedArea {
		fmt.Fprintf(out, "Created learning area directory at %s\n", result.AreaPath)
	}
	if result.TemplateCopied {
		fmt.Fprintf(out, "Copied module template to %s\n", result.TemplatePath)
	} else {
		fmt.Fprintf(out, "Template not found. Please create a template at %s/%s\n", c.String("templates"), importer.TemplateFileName)
	}

	return nil
}

func importAction(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit("usage: contentctl import <file> <area>", 2)
	}
	file, area := c.Args().Get(0), c.Args().Get(1)

	target, err := newImporter(c).ImportModule(file, area)
	if err != nil {
		logger.Logger.Error("failed to import module", zap.String("file", file), zap.String("area", area), zap.Error(err))
		switch {
		case errors.Is(err, importer.ErrSourceNotFound):
			return cli.Exit(fmt.Sprintf("Error: File %s not found", file), 1)
		case errors.Is(err, importer.ErrInvalidModule):
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		default:
			return cli.Exit(fmt.Sprintf("Error importing module: %v", err), 1)
		}
	}

	fmt.Fprintf(c.App.Writer, "Successfully imported module to %s\n", target)
	return nil
}
