package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newHealthCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			h, err := c.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, h)
			}
			fmt.Fprintf(out, "status:  %s\n", h.Status)
			fmt.Fprintf(out, "message: %s\n", h.Message)
			fmt.Fprintf(out, "version: %s\n", h.Version)
			names := make([]string, 0, len(h.Checks))
			for name := range h.Checks {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "check %s: %s\n", name, h.Checks[name])
			}
			return nil
		},
	}
}
