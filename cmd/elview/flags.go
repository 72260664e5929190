/*
 * flags.go, part of elview.
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

package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/rmera/elview/cfg"
)

//options are the command line options that are not part of the configuration.
type options struct {
	configFile string
	envFile    string
	pick       bool
}

//parseFlags parses args. Configuration values are only taken from the flags that
//were actually given, so the file and the environment can set them too.
//It returns the options, a function that applies the given flags to a configuration,
//and the positional arguments.
func parseFlags(args []string, usage io.Writer) (options, func(*cfg.Cfg), []string, error) {
	var opts options
	d := cfg.Default()
	fs := flag.NewFlagSet("elview", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.Usage = func() {
		fmt.Fprintf(usage, "Usage: elview [flags] FILE\n\nFILE is an XYZ file (one or more frames), an STF trajectory or an ASCII Amber trajectory.\n\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configFile, "config", "", "YAML configuration file. elview.yaml in the current or the user's config directory, if it exists, when not given")
	fs.StringVar(&opts.envFile, "env", ".env", "File with environment variables to load")
	fs.BoolVar(&opts.pick, "pick", false, "Choose the input file with a file dialog")

	out := fs.String("out", d.OutputDir, "Directory for the JSON and CSV output files")
	threshold := fs.Int("threshold", d.Threshold, "Atom-instances (frames x atoms) from which trajectories are written to CSV")
	name := fs.String("name", d.MoleculeName, "Name of the molecule in the view")
	top := fs.String("top", d.Topology, "XYZ file with the atoms, for Amber trajectories and STF trajectories without topology")
	amberBox := fs.Bool("amber-box", d.AmberBox, "Amber trajectory frames end with a box line")
	validate := fs.Bool("validate", d.Validate, "Validate the written document")
	preview := fs.String("preview", d.Preview, "Write a preview image of the first frame to this file")
	show := fs.Bool("view", d.View, "Show the data in the ElectroLens front end")
	devtools := fs.Bool("devtools", d.DevTools, "Show developer tools in the front end")
	frontend := fs.String("frontend", d.FrontEnd, "Location of the ElectroLens front end")
	level := fs.String("log-level", d.Log.Level, "Log level: debug, info, warn or error")
	format := fs.String("log-format", d.Log.Format, "Log format: console or json")

	if err := fs.Parse(args); err != nil {
		return opts, nil, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	apply := func(c *cfg.Cfg) {
		if set["out"] {
			c.OutputDir = *out
		}
		if set["threshold"] {
			c.Threshold = *threshold
		}
		if set["name"] {
			c.MoleculeName = *name
		}
		if set["top"] {
			c.Topology = *top
		}
		if set["amber-box"] {
			c.AmberBox = *amberBox
		}
		if set["validate"] {
			c.Validate = *validate
		}
		if set["preview"] {
			c.Preview = *preview
		}
		if set["view"] {
			c.View = *show
		}
		if set["devtools"] {
			c.DevTools = *devtools
		}
		if set["frontend"] {
			c.FrontEnd = *frontend
		}
		if set["log-level"] {
			c.Log.Level = *level
		}
		if set["log-format"] {
			c.Log.Format = *format
		}
	}
	return opts, apply, fs.Args(), nil
}
