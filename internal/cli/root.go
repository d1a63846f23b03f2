package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/apitopy/internal/output"
)

var version = "0.1.0"

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath  string
	profile     string
	baseURL     string
	suffix      string
	ensureSlash bool
	insecure    bool
	headers     []string
	user        string
	token       string
	verbose     bool
	noColor     bool
	format      string
	timeout     time.Duration
	logLevel    string
	logFile     string
}

// NewRootCmd builds the command tree. Each call returns an independent tree
// with its own flag state.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *globalOptions) {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:     "apitopy",
		Short:   "Call REST APIs with path expressions",
		Version: version,
		Long: `apitopy turns path expressions into HTTP requests against a configured
REST API and prints the decoded JSON response.

  apitopy get 'products[9134].people' since=today
  apitopy call 'order_items.POST' -j '{"sku":"a1"}'
  apitopy url 'people.items[24]' hello=dolly`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, print help
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Profile file (default $APITOPY_CONFIG or ~/.apitopy.yaml)")
	flags.StringVarP(&opts.profile, "profile", "p", "", "Profile to use from the config file")
	flags.StringVar(&opts.baseURL, "base-url", "", "Base URL of the API (overrides the profile)")
	flags.StringVar(&opts.suffix, "suffix", "", "Suffix appended to every path, e.g. .json")
	flags.BoolVar(&opts.ensureSlash, "ensure-slash", false, "Add a trailing slash to POST paths")
	flags.BoolVarP(&opts.insecure, "insecure", "k", false, "Skip TLS certificate verification")
	flags.StringArrayVarP(&opts.headers, "header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	flags.StringVarP(&opts.user, "user", "u", "", "Basic auth credentials as user:password")
	flags.StringVar(&opts.token, "token", "", "Bearer token")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print each request line and response timing")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.StringVarP(&opts.format, "format", "f", string(output.FormatText), "Output format: text, json, yaml or raw")
	flags.DurationVarP(&opts.timeout, "timeout", "t", 30*time.Second, "Request timeout")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to a rotating file instead of stderr")

	for _, verb := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"} {
		root.AddCommand(newVerbCmd(opts, verb))
	}
	root.AddCommand(newCallCmd(opts))
	root.AddCommand(newURLCmd(opts))
	root.AddCommand(newProfilesCmd(opts))

	return root, opts
}

// Execute runs the command tree against os.Args and prints any error.
func Execute() error {
	root, opts := newRootCmd()
	if err := root.Execute(); err != nil {
		formatter := output.NewFormatter(output.FormatText, false, !output.ColorEnabled(os.Stderr, opts.noColor))
		fmt.Fprint(os.Stderr, formatter.FormatError(err))
		return err
	}
	return nil
}
