// Package cli contains the attdet command line: one shot solvers for hand entered observations
// and a streaming estimator for MARG boards.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	logLevelFlag = "log-level"
	configFlag   = "config"
	sensorFlag   = "sensor"
	inputFlag    = "input"
	solverFlag   = "solver"
	limitFlag    = "limit"
)

// NewApp returns a new app with the attdet commands, Writer set to out, and ErrWriter set to
// errOut. Logs go to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	r := &runner{}
	return &cli.App{
		Name:            "attdet",
		Usage:           "determine attitude from vector observations",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  logLevelFlag,
				Value: "info",
				Usage: "log at `LEVEL` (debug, info, warn or error)",
			},
		},
		Before: r.before,
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "solve for the attitude with QUEST",
				UsageText: `attdet solve --sensor "mx my mz rx ry rz w" --sensor ...`,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     sensorFlag,
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "observation as measured vector, reference vector and weight, seven numbers separated by spaces",
					},
				},
				Action: r.solveAction,
			},
			{
				Name:      "triad",
				Usage:     "solve for the attitude matrix with TRIAD",
				UsageText: `attdet triad --sensor "mx my mz rx ry rz w" --sensor "mx my mz rx ry rz w"`,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     sensorFlag,
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "observation as measured vector, reference vector and weight; the first one is trusted most",
					},
				},
				Action: r.triadAction,
			},
			{
				Name:  "stream",
				Usage: "estimate the attitude of every sample a MARG board sends",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    configFlag,
						Aliases: []string{"c"},
						Usage:   "load configuration from `FILE`",
					},
					&cli.StringFlag{
						Name:    inputFlag,
						Aliases: []string{"i"},
						Usage:   "read samples from `FILE` (- for stdin) instead of the configured serial port",
					},
					&cli.StringFlag{
						Name:  solverFlag,
						Usage: "override the configured solver (quest or triad)",
					},
					&cli.IntFlag{
						Name:  limitFlag,
						Usage: "stop after `N` solved samples",
					},
				},
				Action: r.streamAction,
			},
			{
				Name:   "version",
				Usage:  "print version info for this program",
				Action: r.versionAction,
			},
		},
	}
}
