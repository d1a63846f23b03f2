package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/apitopy"
	"github.com/wesleyorama2/apitopy/dot"
	"github.com/wesleyorama2/apitopy/pkg/jq"
	"github.com/wesleyorama2/apitopy/pkg/jsonpath"
	"github.com/wesleyorama2/apitopy/pkg/jsonschema"
)

// requestOptions holds the per-request flags.
type requestOptions struct {
	data    string
	json    string
	extract string
	jq      string
	schema  string
	include bool
}

func addRequestFlags(cmd *cobra.Command, ro *requestOptions) {
	cmd.Flags().StringVarP(&ro.data, "data", "d", "", "Raw request body; @file reads it from a file")
	cmd.Flags().StringVarP(&ro.json, "json", "j", "", "JSON request body; @file reads it from a file")
	cmd.Flags().StringVar(&ro.extract, "extract", "", "Print only the value at this JSONPath")
	cmd.Flags().StringVar(&ro.jq, "jq", "", "Filter the response through a jq expression")
	cmd.Flags().StringVar(&ro.schema, "schema", "", "Validate the response against a JSON Schema file")
	cmd.Flags().BoolVarP(&ro.include, "include", "i", false, "Print the response status and headers")
	cmd.MarkFlagsMutuallyExclusive("data", "json")
	cmd.MarkFlagsMutuallyExclusive("extract", "jq")
}

// newVerbCmd builds the subcommand for one verb, e.g. "get".
func newVerbCmd(opts *globalOptions, verb string) *cobra.Command {
	ro := &requestOptions{}
	cmd := &cobra.Command{
		Use:   strings.ToLower(verb) + " EXPR [key=value...]",
		Short: fmt.Sprintf("Make a %s request to the endpoint selected by EXPR", verb),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, opts, ro, args, func(api *apitopy.API) (*apitopy.VerbCall, error) {
				endpoint, err := api.EvalEndpoint(args[0])
				if err != nil {
					return nil, err
				}
				return endpoint.Verb(verb)
			})
		},
	}
	addRequestFlags(cmd, ro)
	return cmd
}

// newCallCmd builds "call", whose expression ends in the verb.
func newCallCmd(opts *globalOptions) *cobra.Command {
	ro := &requestOptions{}
	cmd := &cobra.Command{
		Use:   "call EXPR.VERB [key=value...]",
		Short: "Perform the verb that ends EXPR, e.g. people.items[24].DELETE",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, opts, ro, args, func(api *apitopy.API) (*apitopy.VerbCall, error) {
				return evalVerb(api, args[0])
			})
		},
	}
	addRequestFlags(cmd, ro)
	return cmd
}

// newURLCmd builds "url", which prints the request URL without sending it.
func newURLCmd(opts *globalOptions) *cobra.Command {
	var verb string
	cmd := &cobra.Command{
		Use:   "url EXPR [key=value...]",
		Short: "Print the URL EXPR resolves to without sending a request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			query, err := parseParams(args[1:])
			if err != nil {
				return err
			}

			r, err := s.api.Eval(args[0])
			if err != nil {
				return err
			}
			var built string
			switch r.Kind {
			case apitopy.KindVerb:
				built = r.Verb.BuildURL(query)
			default:
				built = r.Endpoint.BuildURL(strings.ToUpper(verb), query)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.api.BaseURL()+built)
			return nil
		},
	}
	cmd.Flags().StringVarP(&verb, "method", "X", "GET", "Verb to build the URL for when EXPR does not end in one")
	return cmd
}

func evalVerb(api *apitopy.API, expr string) (*apitopy.VerbCall, error) {
	r, err := api.Eval(expr)
	if err != nil {
		return nil, err
	}
	if r.Kind != apitopy.KindVerb {
		return nil, fmt.Errorf("%w: %q does not end in a verb", apitopy.ErrInvalidExpression, expr)
	}
	return r.Verb, nil
}

func runRequest(cmd *cobra.Command, opts *globalOptions, ro *requestOptions, args []string, resolve func(*apitopy.API) (*apitopy.VerbCall, error)) error {
	s, err := opts.newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	call, err := resolve(s.api)
	if err != nil {
		return err
	}

	query, err := parseParams(args[1:])
	if err != nil {
		return err
	}
	callOpts, err := ro.bodyOptions()
	if err != nil {
		return err
	}

	var schema *jsonschema.Schema
	if ro.schema != "" {
		if schema, err = jsonschema.CompileFile(ro.schema); err != nil {
			return err
		}
	}
	var filter *jq.Query
	if ro.jq != "" {
		if filter, err = jq.Compile(ro.jq); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	value, err := perform(ctx, s, call, query, callOpts, ro.include, out)
	if err != nil {
		return err
	}

	if schema != nil {
		if errs := schema.ValidateValue(value); len(errs) > 0 {
			return fmt.Errorf("response does not match schema %s: %w", ro.schema, errs)
		}
	}

	switch {
	case filter != nil:
		results, err := filter.Run(value)
		if err != nil {
			return err
		}
		text, err := s.formatter.FormatValues(results)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	case ro.extract != "":
		if value, err = jsonpath.Lookup(value, ro.extract); err != nil {
			return err
		}
	}

	text, err := s.formatter.FormatValue(value)
	if err != nil {
		return err
	}
	fmt.Fprint(out, text)
	return nil
}

// perform sends the request. With include set it goes through the raw
// dispatcher so the status line and headers can be printed first.
func perform(ctx context.Context, s *session, call *apitopy.VerbCall, query url.Values, callOpts []apitopy.CallOption, include bool, out io.Writer) (*dot.Value, error) {
	if !include {
		return call.Do(ctx, append(callOpts, apitopy.Params(query))...)
	}

	resp, err := s.api.Do(ctx, call.Verb(), call.BuildURL(query), callOpts...)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(out, s.formatter.FormatResponseHead(resp))

	body, err := resp.GetBody()
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	value, err := dot.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", call.Verb(), s.api.BaseURL()+call.BuildURL(query), apitopy.ErrInvalidJSON)
	}
	return value, nil
}

// parseParams turns key=value arguments into query parameters.
func parseParams(args []string) (url.Values, error) {
	query := url.Values{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (want key=value)", arg)
		}
		query.Add(key, value)
	}
	return query, nil
}

func (ro *requestOptions) bodyOptions() ([]apitopy.CallOption, error) {
	switch {
	case ro.json != "":
		data, err := readArg(ro.json)
		if err != nil {
			return nil, err
		}
		if !json.Valid([]byte(data)) {
			return nil, errors.New("--json body is not valid JSON")
		}
		return []apitopy.CallOption{
			apitopy.Body(data),
			apitopy.Header("Content-Type", "application/json"),
		}, nil
	case ro.data != "":
		data, err := readArg(ro.data)
		if err != nil {
			return nil, err
		}
		return []apitopy.CallOption{apitopy.Body(data)}, nil
	}
	return nil, nil
}

// readArg returns s, or the contents of the named file when s is "@file".
func readArg(s string) (string, error) {
	if !strings.HasPrefix(s, "@") {
		return s, nil
	}
	data, err := os.ReadFile(s[1:])
	if err != nil {
		return "", fmt.Errorf("failed to read body file: %w", err)
	}
	return string(data), nil
}
