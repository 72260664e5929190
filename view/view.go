/*
 * view.go, part of elview.
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

package view

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/rmera/elview/convert"
	"go.uber.org/zap"
)

//Options for View. Start from DefaultOptions, as the zero value doesn't save the config.
type Options struct {
	ShowDevTools   bool
	SaveConfig     bool   //Save a copy of the document to ConfigFilename, in OutputDir.
	ConfigFilename string //"config.json" if empty.
	OutputDir      string //"." if empty.
	Title          string //"ElectroLens" if empty.
	FrontEnd       string //URL or path of the ElectroLens front end.
	Convert        []convert.Option
	Logger         *zap.Logger //zap's global logger if nil.
}

//DefaultOptions returns the default options for View.
func DefaultOptions() Options {
	return Options{
		SaveConfig:     true,
		ConfigFilename: "config.json",
		OutputDir:      ".",
		Title:          "ElectroLens",
		FrontEnd:       DefaultFrontEnd,
	}
}

//DefaultFrontEnd is the location of the ElectroLens bundle, relative to the page.
const DefaultFrontEnd = "electrolens.js"

func (O Options) withDefaults() Options {
	d := DefaultOptions()
	if O.ConfigFilename == "" {
		O.ConfigFilename = d.ConfigFilename
	}
	if O.OutputDir == "" {
		O.OutputDir = d.OutputDir
	}
	if O.Title == "" {
		O.Title = d.Title
	}
	if O.FrontEnd == "" {
		O.FrontEnd = d.FrontEnd
	}
	if O.Logger == nil {
		O.Logger = zap.L()
	}
	return O
}

//View converts in and shows it with the ElectroLens front end in a browser of eng.
//The engine is shut down when View returns, and also if it panics.
func View(ctx context.Context, in convert.Input, eng Engine, opts Options) (err error) {
	opts = opts.withDefaults()
	log := opts.Logger.Named("view")
	log.Info("Starting")
	checkVersions(log, eng)
	defer func() {
		if r := recover(); r != nil {
			eng.Shutdown()
			panic(r)
		}
		if serr := eng.Shutdown(); serr != nil && err == nil {
			err = fmt.Errorf("view: shutting down the engine: %w", serr)
		}
	}()

	copts := append([]convert.Option{convert.WithOutputDir(opts.OutputDir), convert.WithLogger(opts.Logger)}, opts.Convert...)
	doc, err := convert.New(in, copts...).Convert()
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}
	if opts.SaveConfig {
		if err := saveConfig(filepath.Join(opts.OutputDir, opts.ConfigFilename), doc); err != nil {
			return err
		}
	}

	log.Info("Creating browser", zap.String("url", opts.FrontEnd))
	b, err := eng.CreateBrowser(BrowserSettings{URL: opts.FrontEnd, Title: opts.Title, FileAccess: true})
	if err != nil {
		return fmt.Errorf("view: creating the browser: %w", err)
	}
	b.SetLoadHandler(NewLoadHandler(doc, log))
	if opts.ShowDevTools {
		if err := b.ShowDevTools(); err != nil {
			log.Warn("Can't show developer tools", zap.Error(err))
		}
	}
	if err := eng.MessageLoop(ctx); err != nil {
		return fmt.Errorf("view: %w", err)
	}
	return nil
}

func checkVersions(log *zap.Logger, eng Engine) {
	v := eng.Versions()
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		log.Info("Engine component", zap.String("name", k), zap.String("version", v[k]))
	}
	log.Info("Go runtime", zap.String("version", runtime.Version()), zap.String("arch", runtime.GOOS+"/"+runtime.GOARCH))
}

func saveConfig(name string, doc *convert.Document) error {
	b, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("view: encoding the config: %w", err)
	}
	if err := os.WriteFile(name, b, 0o644); err != nil {
		return fmt.Errorf("view: saving the config: %w", err)
	}
	return nil
}
