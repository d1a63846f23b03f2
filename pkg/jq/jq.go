// Package jq runs jq filters over decoded response bodies.
package jq

import (
	"errors"
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/wesleyorama2/apitopy/dot"
)

// Query is a compiled jq filter.
type Query struct {
	expression string
	code       *gojq.Code
}

// Compile parses and compiles expression.
func Compile(expression string) (*Query, error) {
	parsed, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return &Query{expression: expression, code: code}, nil
}

// String returns the source expression.
func (q *Query) String() string { return q.expression }

// Run applies the filter to v and collects every emitted value. A nil v
// (empty body) is treated as JSON null.
func (q *Query) Run(v *dot.Value) ([]interface{}, error) {
	input := v.Interface()

	var values []interface{}
	iter := q.code.Run(input)
	for {
		value, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := value.(error); isErr {
			var haltErr *gojq.HaltError
			if errors.As(err, &haltErr) && haltErr.Value() == nil {
				break
			}
			return values, fmt.Errorf("jq %s: %w", q.expression, err)
		}
		values = append(values, value)
	}
	return values, nil
}

// Run compiles expression and applies it to v.
func Run(expression string, v *dot.Value) ([]interface{}, error) {
	q, err := Compile(expression)
	if err != nil {
		return nil, err
	}
	return q.Run(v)
}
