package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfilesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the profiles in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg == nil {
				fmt.Fprintln(out, "no config file found")
				return nil
			}
			for _, name := range cfg.Names() {
				marker := " "
				if name == cfg.Default {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\t%s\n", marker, name, cfg.Profiles[name].BaseURL)
			}
			return nil
		},
	}
}
