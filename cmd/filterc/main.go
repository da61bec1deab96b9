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

// Command filterc compiles dashboard filter JSON into a ClickHouse predicate
// fragment and prints it.
//
//	$ filterc --site-id 1 '[{"parameter":"browser","type":"equals","value":["Chrome"]}]'
//	AND browser = 'Chrome'
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/rybbit-io/filtersql"
	"github.com/rybbit-io/filtersql/logger"
	"github.com/rybbit-io/filtersql/types"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := newFlagSet(stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "filterc: %v\n", err)
		flags.Usage()
		return 2
	}

	cfg, err := LoadConfig(flags)
	if err != nil {
		fmt.Fprintf(stderr, "filterc: %v\n", err)
		return 1
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "filterc: %v\n", err)
		return 2
	}

	input, err := readInput(flags, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "filterc: read filters: %v\n", err)
		return 1
	}

	options := []filtersql.Option{
		filtersql.WithEventsTable(cfg.EventsTable),
		filtersql.WithLogOutput(stderr, level),
	}
	if cfg.NotEqualsAll {
		options = append(options, filtersql.WithNotEqualsAll())
	}
	c := filtersql.New(options...)
	scope := types.Scope{SiteID: cfg.SiteID, TimeStatement: cfg.Time}

	if !cfg.Bound {
		stmt, err := c.Compile(input, scope)
		if err != nil {
			fmt.Fprintf(stderr, "filterc: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, stmt)
		return 0
	}

	stmt, bound, err := c.CompileArgs(input, scope)
	if err != nil {
		fmt.Fprintf(stderr, "filterc: %v\n", err)
		return 1
	}
	if bound == nil {
		bound = []interface{}{}
	}
	encoded, err := json.Marshal(bound)
	if err != nil {
		fmt.Fprintf(stderr, "filterc: encode arguments: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, stmt)
	fmt.Fprintln(stdout, string(encoded))
	return 0
}

func readInput(flags *pflag.FlagSet, stdin io.Reader) (string, error) {
	if flags.NArg() > 0 {
		return flags.Arg(0), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
