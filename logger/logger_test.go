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

package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{OFF, "OFF"},
		{Level(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{"", INFO, false},
		{" warn ", WARN, false},
		{"warning", WARN, false},
		{"Error", ERROR, false},
		{"off", OFF, false},
		{"verbose", INFO, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggerWritesAtOrAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(WARN, &buf)

	log.Debug("debug %d", 1)
	log.Info("info %d", 2)
	assert.Empty(t, buf.String())

	log.Warn("rejected %s", "regex")
	log.Error("failed")
	out := buf.String()
	assert.Contains(t, out, "[WARN] [filtersql] rejected regex")
	assert.Contains(t, out, "[ERROR] [filtersql] failed")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(ERROR, &buf)

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.SetLevel(DEBUG)
	log.Debug("shown")
	assert.Contains(t, buf.String(), "[DEBUG] [filtersql] shown")

	buf.Reset()
	log.SetLevel(OFF)
	log.Error("hidden")
	assert.Empty(t, buf.String())
}

func TestDiscardLogger(t *testing.T) {
	log := NewDiscardLogger()
	assert.NotPanics(t, func() {
		log.Debug("x")
		log.Info("x")
		log.Warn("x")
		log.Error("x")
		log.SetLevel(DEBUG)
	})
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(NewLogger(INFO, &buf))
	Info("via %s", "default")
	Debug("not shown")
	Warn("warned")
	Error("errored")
	out := buf.String()
	assert.Contains(t, out, "via default")
	assert.NotContains(t, out, "not shown")
	assert.Contains(t, out, "warned")
	assert.Contains(t, out, "errored")

	SetDefault(nil)
	assert.NotNil(t, GetDefault())
}

func TestLoggerConcurrentUse(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(OFF, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log.SetLevel(Level(i % 5))
			log.Debug("message %d", i)
		}(i)
	}
	wg.Wait()
}
