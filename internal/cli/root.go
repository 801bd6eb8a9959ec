// Package cli implements the vtactl commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/virtualta/internal/version"
	"github.com/kailas-cloud/virtualta/pkg/client"
)

const defaultServer = "http://localhost:3000"

type globalOptions struct {
	server  string
	apiKey  string
	timeout time.Duration
	json    bool
}

// NewRootCmd builds the vtactl command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "vtactl",
		Short: "Command line client for the TDS Virtual TA API",
		Long: `vtactl talks to a running Virtual TA server.

Examples:
  vtactl ask "Can I use Docker for this course?"
  vtactl ask "What is on this screenshot?" --image shot.png
  vtactl recent --limit 5
  vtactl health --server https://tds-ta.example.com`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.server, "server", envOr("VTA_SERVER", defaultServer), "API base URL (env VTA_SERVER)")
	root.PersistentFlags().StringVar(&opts.apiKey, "api-key", os.Getenv("VTA_API_KEY"), "Bearer API key (env VTA_API_KEY)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print raw JSON")

	root.AddCommand(newAskCmd(opts), newHealthCmd(opts), newRecentCmd(opts))
	return root
}

func (o *globalOptions) client() (*client.Client, error) {
	c, err := client.New(o.server, client.WithAPIKey(o.apiKey), client.WithTimeout(o.timeout))
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
