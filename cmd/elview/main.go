/*
 * main.go, part of elview.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//elview converts structures and trajectories into ElectroLens configuration
//documents, and optionally shows them in the ElectroLens front end.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ncruces/zenity"
	"github.com/rmera/elview/cfg"
	"github.com/rmera/elview/chemplot"
	"github.com/rmera/elview/convert"
	"github.com/rmera/elview/view"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

//run is the whole program. It returns the exit code.
func run(args []string, stderr io.Writer) int {
	opts, apply, rest, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	c, err := cfg.Load(opts.configFile, opts.envFile)
	if err == nil {
		apply(c)
		err = c.Check()
	}
	if err != nil {
		fmt.Fprintf(stderr, "elview: configuration: %v\n", err)
		return 2
	}
	log, err := newLogger(c.Log.Level, c.Log.Format)
	if err != nil {
		fmt.Fprintf(stderr, "elview: logger: %v\n", err)
		return 1
	}
	defer log.Sync()
	undo := zap.ReplaceGlobals(log)
	defer undo()

	name, err := inputName(opts.pick, rest)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return 0
		}
		fmt.Fprintf(stderr, "elview: %v\n", err)
		return 2
	}
	if err := process(name, c, log); err != nil {
		log.Error("Failed", zap.String("file", name), zap.Error(err))
		if opts.pick {
			zenity.Error(err.Error(), zenity.Title("elview"), zenity.ErrorIcon)
		}
		return 1
	}
	return 0
}

//inputPatterns are the files offered by the file dialog, one per format readInput knows.
var inputPatterns = []string{"*.xyz", "*.extxyz", "*.stf", "*.stz", "*.stl", "*.str", "*.crd", "*.mdcrd"}

func inputName(pick bool, args []string) (string, error) {
	if pick {
		return zenity.SelectFile(
			zenity.Title("Open structure or trajectory"),
			zenity.FileFilters{{
				Name:     "Structures and trajectories",
				Patterns: inputPatterns,
			}},
		)
	}
	if len(args) != 1 {
		return "", fmt.Errorf("need exactly one input file, got %d", len(args))
	}
	return args[0], nil
}

//process reads the file name and converts it (or shows it) as c says.
func process(name string, c *cfg.Cfg, log *zap.Logger) error {
	in, err := readInput(name, c.Topology, c.AmberBox, log)
	if err != nil {
		return err
	}
	copts := []convert.Option{
		convert.WithOutputDir(c.OutputDir),
		convert.WithThreshold(c.Threshold),
		convert.WithMoleculeName(c.MoleculeName),
		convert.WithLogger(log),
	}
	if c.Preview != "" {
		ref, err := in.Reference()
		if err != nil {
			return err
		}
		if err := chemplot.Preview(ref, c.MoleculeName, c.Preview); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		log.Info("Wrote preview", zap.String("file", c.Preview))
	}
	conv := convert.New(in, copts...)
	if c.View {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		vopts := view.Options{
			ShowDevTools:   c.DevTools,
			SaveConfig:     c.SaveConfig,
			ConfigFilename: c.ConfigFilename,
			OutputDir:      c.OutputDir,
			FrontEnd:       c.FrontEnd,
			Convert:        copts[1:],
			Logger:         log,
		}
		if err := view.View(ctx, in, view.NewSystemEngine(""), vopts); err != nil {
			return err
		}
	} else if _, err := conv.Convert(); err != nil {
		return err
	}
	if c.Validate {
		if err := convert.ValidateFile(conv.JSONPath()); err != nil {
			return err
		}
		log.Info("Valid document", zap.String("file", conv.JSONPath()))
	}
	return nil
}
