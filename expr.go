package apitopy

import (
	"fmt"
	"strings"
)

// Eval resolves a textual path expression against the API root:
//
//	products[9134].people        -> endpoint products/9134/people
//	order_items['a b'].POST      -> POST bound to order/items/a b
//	[42].detail                  -> endpoint 42/detail
//
// The first name is resolved at the root, so its underscores become
// separators. Later names and all bracket keys add exactly one segment.
// A verb token is only accepted as the final name.
func (a *API) Eval(expr string) (Resolution, error) {
	steps, err := parseExpr(expr)
	if err != nil {
		return Resolution{}, err
	}

	var current Resolution
	for i, s := range steps {
		if current.Kind == KindVerb {
			return Resolution{}, fmt.Errorf("%w: verb %s must be last in %q", ErrInvalidExpression, current.Verb.Verb(), expr)
		}
		switch {
		case i == 0 && s.index:
			current = Resolution{Kind: KindEndpoint, Endpoint: a.Index(s.value)}
		case i == 0:
			current = a.Resolve(s.value)
		case s.index:
			current = Resolution{Kind: KindEndpoint, Endpoint: current.Endpoint.Index(s.value)}
		default:
			current = current.Endpoint.Resolve(s.value)
		}
	}
	return current, nil
}

// EvalEndpoint is Eval for expressions that must not end in a verb.
func (a *API) EvalEndpoint(expr string) (*Endpoint, error) {
	r, err := a.Eval(expr)
	if err != nil {
		return nil, err
	}
	if r.Kind != KindEndpoint {
		return nil, fmt.Errorf("%w: %q selects a verb, not an endpoint", ErrInvalidExpression, expr)
	}
	return r.Endpoint, nil
}

type step struct {
	value string
	index bool
}

func parseExpr(expr string) ([]step, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}

	var steps []step
	i := 0
	for i < len(expr) {
		switch {
		case expr[i] == '[':
			value, next, err := parseBracket(expr, i)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step{value: value, index: true})
			i = next
		case expr[i] == '.' && len(steps) > 0:
			name, next := parseName(expr, i+1)
			if name == "" {
				return nil, fmt.Errorf("%w: empty name at offset %d in %q", ErrInvalidExpression, i+1, expr)
			}
			steps = append(steps, step{value: name})
			i = next
		case len(steps) == 0:
			name, next := parseName(expr, i)
			if name == "" {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrInvalidExpression, expr[i], i, expr)
			}
			steps = append(steps, step{value: name})
			i = next
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrInvalidExpression, expr[i], i, expr)
		}
	}
	return steps, nil
}

// parseName reads up to the next '.' or '['.
func parseName(expr string, start int) (string, int) {
	end := start
	for end < len(expr) && expr[end] != '.' && expr[end] != '[' && expr[end] != ']' {
		end++
	}
	return expr[start:end], end
}

// parseBracket reads "[key]", "['key']" or "[\"key\"]" starting at the '['.
func parseBracket(expr string, start int) (string, int, error) {
	i := start + 1
	if i < len(expr) && (expr[i] == '\'' || expr[i] == '"') {
		quote := expr[i]
		closing := strings.IndexByte(expr[i+1:], quote)
		if closing < 0 {
			return "", 0, fmt.Errorf("%w: unterminated quote at offset %d in %q", ErrInvalidExpression, i, expr)
		}
		end := i + 1 + closing
		if end+1 >= len(expr) || expr[end+1] != ']' {
			return "", 0, fmt.Errorf("%w: expected ']' at offset %d in %q", ErrInvalidExpression, end+1, expr)
		}
		return expr[i+1 : end], end + 2, nil
	}

	closing := strings.IndexByte(expr[i:], ']')
	if closing < 0 {
		return "", 0, fmt.Errorf("%w: unterminated '[' at offset %d in %q", ErrInvalidExpression, start, expr)
	}
	key := expr[i : i+closing]
	if key == "" {
		return "", 0, fmt.Errorf("%w: empty index at offset %d in %q", ErrInvalidExpression, start, expr)
	}
	return key, i + closing + 1, nil
}
