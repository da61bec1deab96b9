/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rybbit-io/filtersql/types"
)

// envPrefix namespaces environment overrides, e.g. FILTERC_EVENTS_TABLE.
const envPrefix = "FILTERC"

// Config holds the CLI settings after flags, environment and config file
// are merged. Flags win over environment, environment over the file.
type Config struct {
	EventsTable  string `mapstructure:"events_table"`
	NotEqualsAll bool   `mapstructure:"not_equals_all"`
	LogLevel     string `mapstructure:"log_level"`
	SiteID       int64  `mapstructure:"site_id"`
	Time         string `mapstructure:"time"`
	Bound        bool   `mapstructure:"bound"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"events-table":   "events_table",
	"not-equals-all": "not_equals_all",
	"log-level":      "log_level",
	"site-id":        "site_id",
	"time":           "time",
	"bound":          "bound",
}

func newFlagSet(output io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet("filterc", pflag.ContinueOnError)
	flags.SetOutput(output)
	flags.String("config", "", "config file (default ./filterc.yaml or $XDG_CONFIG_HOME/filterc/filterc.yaml)")
	flags.String("events-table", types.DefaultEventsTable, "table session subqueries read from")
	flags.Bool("not-equals-all", false, "join multi-value not_equals with AND instead of OR")
	flags.String("log-level", "warn", "log level: debug, info, warn, error or off")
	flags.Int64("site-id", 0, "site id session subqueries are restricted to; 0 for none")
	flags.String("time", "", "time predicate session subqueries are restricted to")
	flags.Bool("bound", false, "print ? placeholders and the arguments as JSON on a second line")
	flags.Usage = func() {
		fmt.Fprintf(output, "Usage: filterc [flags] [filters-json]\n\nReads the filters from stdin when no argument is given.\n\n")
		flags.PrintDefaults()
	}
	return flags
}

// LoadConfig merges parsed flags with FILTERC_* variables and the config
// file. A missing default config file is not an error; a missing --config
// file is.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("events_table", types.DefaultEventsTable)
	v.SetDefault("not_equals_all", false)
	v.SetDefault("log_level", "warn")
	v.SetDefault("site_id", 0)
	v.SetDefault("time", "")
	v.SetDefault("bound", false)

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if cfgFile, err := flags.GetString("config"); err == nil && cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("filterc")
		v.AddConfigPath(".")
		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "filterc"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}
