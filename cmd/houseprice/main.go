// Command houseprice serves the house price widget over HTTP, runs it as an
// interactive terminal form, or renders it once to stdout.
//
// Usage:
//
//	houseprice serve --addr :8080
//	houseprice prompt
//	houseprice render --renderer vanilla --size 1800 --bedrooms 3 --age 8 --predict
//	houseprice info
//	houseprice contract --output predict.yaml
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	app := &cli.App{
		Name:    "houseprice",
		Usage:   "Estimate a house price from its size, bedrooms and age",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (default: ./houseprice.yaml when present)",
				EnvVars: []string{"HOUSEPRICE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Prediction service base URL",
				EnvVars: []string{"HOUSEPRICE_BASE_URL"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"HOUSEPRICE_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Also write JSON logs to this rotating file",
				EnvVars: []string{"HOUSEPRICE_LOG_FILE"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			promptCommand(),
			renderCommand(),
			infoCommand(),
			contractCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
