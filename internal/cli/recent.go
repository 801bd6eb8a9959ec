package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// questionWidth truncates questions in table output.
const questionWidth = 60

func newRecentCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently asked questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			recs, err := c.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("recent: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, recs)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tASKED\tQUESTION")
			for _, r := range recs {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.CreatedAt.Local().Format(time.DateTime), truncate(r.Question, questionWidth))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of questions to show")
	return cmd
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
