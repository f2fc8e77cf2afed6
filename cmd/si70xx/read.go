// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/si70xx"
)

var readCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"r"},
	Usage:   "read temperature and humidity once",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "print the scaled integer values instead of physic units",
		},
	},
	Action: func(c *cli.Context) error {
		dev, bus, err := openDev(c)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer bus.Close()

		if c.Bool("raw") {
			if err := dev.Measure(); err != nil {
				return cli.Exit(err, 1)
			}
			hum, err := dev.ReadHumidity()
			if err != nil {
				return cli.Exit(err, 1)
			}
			temp, err := dev.ReadTemperature()
			if err != nil {
				return cli.Exit(err, 1)
			}
			fmt.Printf("humidity: %d (%.2f%%RH)\ntemperature: %d (%.2f°C)\n",
				hum, float64(hum)/100, temp, float64(temp)/100)
			return nil
		}

		env := physic.Env{}
		if err := dev.Sense(&env); err != nil {
			return cli.Exit(err, 1)
		}
		fmt.Printf("%8s %9s\n", env.Temperature, env.Humidity)
		return nil
	},
}

var watchCmd = cli.Command{
	Name:    "watch",
	Aliases: []string{"w"},
	Usage:   "read temperature and humidity continuously",
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:  "interval",
			Value: time.Second,
			Usage: "time between reads",
		},
	},
	Action: func(c *cli.Context) error {
		dev, bus, err := openDev(c)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer bus.Close()

		ch, err := dev.SenseContinuous(c.Duration("interval"))
		if err != nil {
			return cli.Exit(err, 1)
		}
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		go func() {
			<-sig
			slog.Debug("halting")
			if err := dev.Halt(); err != nil {
				slog.Error("halt failed", "error", err)
			}
		}()
		for env := range ch {
			fmt.Printf("%8s %9s\n", env.Temperature, env.Humidity)
		}
		return nil
	},
}

// openDev brings up the host drivers and opens the selected bus and device.
func openDev(c *cli.Context) (*si70xx.Dev, i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("could not init host: %w", err)
	}
	bus, err := i2creg.Open(c.String("bus"))
	if err != nil {
		return nil, nil, fmt.Errorf("could not open i2c bus: %w", err)
	}
	slog.Debug("bus open", "bus", bus.String())

	var dev *si70xx.Dev
	if c.Bool("si7013") {
		dev, err = si70xx.NewSi7013(bus, i2c.Addr(c.Uint("addr")))
	} else {
		dev, err = si70xx.New(bus)
	}
	if err != nil {
		bus.Close()
		return nil, nil, err
	}
	return dev, bus, nil
}
