/*
 * cfg.go, part of elview.
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

//Package cfg holds the parameters of the elview program, read from a YAML file,
//the environment (variables with the ELVIEW_ prefix, also from .env files) and defaults.
package cfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rmera/elview/convert"
	"github.com/spf13/viper"
)

//EnvPrefix is the prefix of the environment variables read. ELVIEW_OUT sets "out",
//ELVIEW_LOG_LEVEL sets "log.level" and so on.
const EnvPrefix = "ELVIEW"

//Log is the logging configuration.
type Log struct {
	//Level is one of debug, info, warn or error.
	Level string `mapstructure:"level"`

	//Format is console (human-readable) or json.
	Format string `mapstructure:"format"`
}

//Cfg is a structure containing the parameters of the program. It can be
//obtained with Load or by "hand". If it is built by hand, please use the Check
//method to check if the Cfg meets the requirements.
type Cfg struct {
	//OutputDir is where the JSON and CSV files are written.
	OutputDir string `mapstructure:"out"`

	//Threshold is the number of atom-instances from which trajectories go to CSV.
	Threshold int `mapstructure:"threshold"`

	//MoleculeName is the name of the view.
	MoleculeName string `mapstructure:"name"`

	//Topology is an XYZ file with the atoms of Amber trajectories, and of STF ones without a topology.
	Topology string `mapstructure:"top"`

	//AmberBox tells that each frame of an Amber trajectory ends with a box line.
	AmberBox bool `mapstructure:"amber_box"`

	//Validate checks the written document against the schema.
	Validate bool `mapstructure:"validate"`

	//Preview is the name of the image with a preview of the first frame, or empty for none.
	Preview string `mapstructure:"preview"`

	//View shows the data in the ElectroLens front end.
	View bool `mapstructure:"view"`

	DevTools bool `mapstructure:"devtools"`

	//SaveConfig saves a copy of the document to ConfigFilename when viewing.
	SaveConfig     bool   `mapstructure:"save_config"`
	ConfigFilename string `mapstructure:"config_filename"`

	//FrontEnd is the location of the ElectroLens front end.
	FrontEnd string `mapstructure:"frontend"`

	Log Log `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("out", ".")
	v.SetDefault("threshold", convert.DefaultThreshold)
	v.SetDefault("name", convert.DefaultMoleculeName)
	v.SetDefault("top", "")
	v.SetDefault("amber_box", false)
	v.SetDefault("validate", false)
	v.SetDefault("preview", "")
	v.SetDefault("view", false)
	v.SetDefault("devtools", false)
	v.SetDefault("save_config", true)
	v.SetDefault("config_filename", "config.json")
	v.SetDefault("frontend", "electrolens.js")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

//Default returns the default configuration.
func Default() *Cfg {
	v := viper.New()
	setDefaults(v)
	var c Cfg
	//The defaults always decode.
	_ = v.Unmarshal(&c)
	return &c
}

//Load reads the configuration. If path is empty, a file named elview.yaml (or .yml) is
//looked for in the current directory and in the user's config directory, and it is fine
//not to find one. The .env files in envFiles (or ./.env if none is given) are loaded into
//the environment first, if they exist. Environment variables take precedence over the file.
//This method automatically calls the Check method to check the integrity of Cfg.
func Load(path string, envFiles ...string) (*Cfg, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("elview")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "elview"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}
	var c Cfg
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Check(); err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}
	return &c, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

//Check checks if Cfg is correct. It returns an error if a field doesn't meet
//the requirements.
func (c *Cfg) Check() error {
	if c.OutputDir == "" {
		return fmt.Errorf("the output directory can't be empty")
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("Threshold must be greater than 0")
	}
	if c.SaveConfig && c.ConfigFilename == "" {
		return fmt.Errorf("a config filename is needed to save the config")
	}
	if strings.ContainsRune(c.ConfigFilename, os.PathSeparator) {
		return fmt.Errorf("the config filename %q must not contain directories", c.ConfigFilename)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
