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

package condition

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Condition is a compiled boolean test over one record.
type Condition interface {
	Evaluate(env interface{}) bool
}

// ExprCondition runs a raw expr-lang expression.
type ExprCondition struct {
	program *vm.Program
}

// NewExprCondition compiles expression. Besides the expr-lang built-ins it
// provides like_match(text, pattern) with SQL LIKE wildcards.
func NewExprCondition(expression string) (Condition, error) {
	program, err := compile(expression)
	if err != nil {
		return nil, err
	}
	return &ExprCondition{program: program}, nil
}

// Evaluate reports whether env satisfies the expression. Runtime errors,
// such as comparing a string with a number, yield false.
func (ec *ExprCondition) Evaluate(env interface{}) bool {
	return run(ec.program, env)
}

func compile(expression string) (*vm.Program, error) {
	options := []expr.Option{
		expr.Function("like_match", func(params ...any) (any, error) {
			if len(params) != 2 {
				return false, fmt.Errorf("like_match function requires 2 parameters")
			}
			text, ok1 := params[0].(string)
			pattern, ok2 := params[1].(string)
			if !ok1 || !ok2 {
				return false, fmt.Errorf("like_match function requires string parameters")
			}
			return matchesLikePattern(text, pattern), nil
		}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	}
	return expr.Compile(expression, options...)
}

func run(program *vm.Program, env interface{}) bool {
	result, err := expr.Run(program, env)
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}

// matchesLikePattern matches text against a LIKE pattern where % is any
// sequence and _ is any single byte.
func matchesLikePattern(text, pattern string) bool {
	return likeMatch(text, pattern, 0, 0)
}

func likeMatch(text, pattern string, textIndex, patternIndex int) bool {
	if patternIndex >= len(pattern) {
		return textIndex >= len(text)
	}

	if textIndex >= len(text) {
		for i := patternIndex; i < len(pattern); i++ {
			if pattern[i] != '%' {
				return false
			}
		}
		return true
	}

	switch pattern[patternIndex] {
	case '%':
		// consecutive % match like one
		next := patternIndex + 1
		for next < len(pattern) && pattern[next] == '%' {
			next++
		}
		for i := textIndex; i <= len(text); i++ {
			if likeMatch(text, pattern, i, next) {
				return true
			}
		}
		return false
	case '_':
		return likeMatch(text, pattern, textIndex+1, patternIndex+1)
	default:
		if text[textIndex] == pattern[patternIndex] {
			return likeMatch(text, pattern, textIndex+1, patternIndex+1)
		}
		return false
	}
}
