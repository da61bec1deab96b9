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

package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrInvalidJSON      = errors.New("invalid JSON format")
	ErrEmptyRegex       = errors.New("regex pattern cannot be empty")
	ErrRegexTooLong     = errors.New("regex pattern too long")
	ErrInvalidRegex     = errors.New("invalid regex pattern")
	ErrInvalidNumber    = errors.New("invalid numeric value")
	ErrUnknownParameter = errors.New("unknown filter parameter")
	ErrUnknownOperator  = errors.New("unknown filter type")
	ErrEmptyValues      = errors.New("filter values cannot be empty")
	ErrUnsupported      = errors.New("filter not supported")
)

// ErrorType classifies compile failures.
type ErrorType int

const (
	ErrorTypeInvalidJSON ErrorType = iota
	ErrorTypeEmptyRegex
	ErrorTypeRegexTooLong
	ErrorTypeInvalidRegex
	ErrorTypeInvalidNumber
	ErrorTypeUnknownParameter
	ErrorTypeUnknownOperator
	ErrorTypeEmptyValues
	ErrorTypeUnsupported
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeInvalidJSON:
		return "INVALID_JSON"
	case ErrorTypeEmptyRegex:
		return "EMPTY_REGEX"
	case ErrorTypeRegexTooLong:
		return "REGEX_TOO_LONG"
	case ErrorTypeInvalidRegex:
		return "INVALID_REGEX"
	case ErrorTypeInvalidNumber:
		return "INVALID_NUMBER"
	case ErrorTypeUnknownParameter:
		return "UNKNOWN_PARAMETER"
	case ErrorTypeUnknownOperator:
		return "UNKNOWN_OPERATOR"
	case ErrorTypeEmptyValues:
		return "EMPTY_VALUES"
	case ErrorTypeUnsupported:
		return "UNSUPPORTED"
	default:
		return "UNKNOWN_ERROR"
	}
}

// CompileError reports why a filter could not be compiled. Err is one of the
// sentinel errors above, so callers can match with errors.Is.
//
// Error renders the sentinel in lower case, Go style, wrapped in a type tag
// and details:
//
//	[EMPTY_REGEX] regex pattern cannot be empty (parameter 'pathname')
//
// Message returns the bare sentence shown to dashboard users, such as
// "Regex pattern cannot be empty" or "Invalid JSON format".
type CompileError struct {
	Type      ErrorType
	Parameter string
	Value     string
	Err       error
	// Cause is the underlying library error, if any.
	Cause error
}

// NewCompileError creates a CompileError for the given sentinel.
func NewCompileError(t ErrorType, sentinel error, parameter, value string) *CompileError {
	return &CompileError{Type: t, Parameter: parameter, Value: value, Err: sentinel}
}

// WithCause attaches the underlying library error.
func (e *CompileError) WithCause(cause error) *CompileError {
	e.Cause = cause
	return e
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Err))

	var details []string
	if e.Parameter != "" {
		details = append(details, fmt.Sprintf("parameter '%s'", e.Parameter))
	}
	if e.Value != "" {
		details = append(details, fmt.Sprintf("value '%s'", truncate(e.Value, 64)))
	}
	if len(details) > 0 {
		builder.WriteString(" (" + strings.Join(details, ", ") + ")")
	}
	if e.Cause != nil {
		builder.WriteString(": " + e.Cause.Error())
	}
	return builder.String()
}

// Message returns the sentinel text with its first letter upper-cased.
func (e *CompileError) Message() string {
	if e.Err == nil {
		return ""
	}
	msg := e.Err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
