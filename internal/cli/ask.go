package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/virtualta/pkg/client"
)

func newAskCmd(opts *globalOptions) *cobra.Command {
	var imagePath string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the virtual TA a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := client.Question{Question: strings.Join(args, " ")}
			if imagePath != "" {
				img, err := encodeImage(imagePath)
				if err != nil {
					return err
				}
				q.Image = img
			}

			c, err := opts.client()
			if err != nil {
				return err
			}
			ans, err := c.Ask(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, ans)
			}
			fmt.Fprintln(out, ans.Answer)
			if len(ans.Links) > 0 {
				fmt.Fprintln(out)
				for _, l := range ans.Links {
					fmt.Fprintf(out, "  - %s\n    %s\n", l.Text, l.URL)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "Attach an image file (sent base64 encoded)")
	return cmd
}

func encodeImage(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
