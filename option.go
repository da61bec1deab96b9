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

package filtersql

import (
	"io"

	"github.com/rybbit-io/filtersql/logger"
	"github.com/rybbit-io/filtersql/session"
	"github.com/rybbit-io/filtersql/types"
)

// Option changes a default of the Compiler.
type Option func(*Compiler)

// WithConfig replaces all compiler settings.
//
// Example:
//
//	cfg := types.DefaultConfig()
//	cfg.EventsTable = "analytics.events"
//	c := filtersql.New(filtersql.WithConfig(cfg))
func WithConfig(config types.Config) Option {
	return func(c *Compiler) {
		if config.EventsTable == "" {
			config.EventsTable = types.DefaultEventsTable
		}
		c.config = config
	}
}

// WithEventsTable sets the table session subqueries read from.
func WithEventsTable(table string) Option {
	return func(c *Compiler) {
		if table != "" {
			c.config.EventsTable = table
		}
	}
}

// WithNotEqualsAll joins the values of a not_equals filter with AND, so a
// row passes only when it differs from every value. By default they join
// with OR. user_id and event_name exclusions are not affected.
func WithNotEqualsAll() Option {
	return func(c *Compiler) {
		c.config.NotEqualsAll = true
	}
}

// WithSessionFactory replaces how entry_page, exit_page and event_name
// filters are compiled, for stores with a different session layout.
func WithSessionFactory(factory session.Factory) Option {
	return func(c *Compiler) {
		if factory != nil {
			c.sessions = factory
		}
	}
}

// WithLogger sets the logger of this compiler.
//
// Example:
//
//	c := filtersql.New(filtersql.WithLogger(logger.NewLogger(logger.DEBUG, os.Stderr)))
func WithLogger(log logger.Logger) Option {
	return func(c *Compiler) {
		if log != nil {
			c.log = log
		}
	}
}

// WithLogLevel gives the compiler its own stderr logger at level.
func WithLogLevel(level logger.Level) Option {
	return func(c *Compiler) {
		c.log = logger.NewLogger(level, nil)
	}
}

// WithLogOutput gives the compiler its own logger writing to output.
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(c *Compiler) {
		c.log = logger.NewLogger(level, output)
	}
}

// WithDiscardLog disables logging.
func WithDiscardLog() Option {
	return func(c *Compiler) {
		c.log = logger.NewDiscardLogger()
	}
}
