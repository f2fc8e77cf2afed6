// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// si70xx reads Si70xx relative humidity and temperature sensors attached
// to an I²C bus.
package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	chlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v2"
)

var version string

func main() {
	os.Exit(run())
}

func run() int {
	app := cli.NewApp()
	app.Name = "si70xx"
	app.Usage = "read Si70xx humidity/temperature sensors"
	app.Version = version
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "bus",
			Usage: "I²C bus name or number, empty for the first available",
		},
		&cli.BoolFlag{
			Name:  "si7013",
			Usage: "dual-address Si7013 variant",
		},
		&cli.UintFlag{
			Name:  "addr",
			Value: 0x40,
			Usage: "device address, Si7013 only (0x40 or 0x41)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "enable verbose logging",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		charm := chlog.NewWithOptions(os.Stderr, chlog.Options{
			ReportTimestamp: true,
			TimeFormat:      time.DateTime,
			Prefix:          "si70xx",
		})
		charm.SetColorProfile(termenv.ColorProfile())
		charm.SetLevel(chlog.InfoLevel)
		if ctx.Bool("verbose") {
			charm.SetLevel(chlog.DebugLevel)
		}
		slog.SetDefault(slog.New(charm))
		return nil
	}
	app.Commands = cli.Commands{
		&readCmd,
		&watchCmd,
	}
	if err := app.Run(os.Args); err != nil {
		slog.Error("unexpected error", "error", err)
		var exerr cli.ExitCoder
		if errors.As(err, &exerr) {
			return exerr.ExitCode()
		}
		return 1
	}
	return 0
}
