package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/snankens/player-data-service/internal/app/players"
	"github.com/snankens/player-data-service/internal/ingest"
	"github.com/snankens/player-data-service/internal/logging"
	"github.com/snankens/player-data-service/internal/store"
)

const defaultRosterPath = "./player.csv"

var errRejectedRows = errors.New("roster has rejected rows")

type rootOptions struct {
	file     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "playerctl",
		Short:         "Validate and inspect player roster files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", defaultRosterPath, "roster CSV file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level (debug, info, warn, error)")

	cmd.AddCommand(newValidateCmd(opts), newShowCmd(opts))
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		asJSON       bool
		failOnReject bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a roster into a throwaway store and report rejected rows",
		Long: `Runs the same ingestion pipeline as the service against an in-memory store.

Examples:
  playerctl validate --file player.csv
  playerctl validate --file player.csv --json
  playerctl validate --file player.csv --fail-on-reject`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, _, err := load(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, summary); err != nil {
					return err
				}
			} else {
				printSummary(out, opts.file, summary)
			}
			if failOnReject && summary.Rejected > 0 {
				return fmt.Errorf("%w: %d of %d", errRejectedRows, summary.Rejected, summary.Rows)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&failOnReject, "fail-on-reject", false, "exit non-zero when any row is rejected")
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <playerID>",
		Short: "Load a roster and print one player as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := load(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p, err := svc.PlayerByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), p)
		},
	}
}

func load(ctx context.Context, opts *rootOptions, logOut io.Writer) (ingest.Summary, *players.Service, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.NewLogger(logging.Config{Level: opts.logLevel, Output: logOut})
	ms := store.NewMemoryStore()
	loader := ingest.NewLoader(ingest.NewPipeline(ms, ingest.WithLogger(logger)), logger)
	summary, err := loader.Initialize(ctx, opts.file)
	if err != nil {
		return summary, nil, err
	}
	return summary, players.NewService(ms), nil
}

func printSummary(w io.Writer, path string, s ingest.Summary) {
	fmt.Fprintf(w, "%s: %d rows, %d accepted, %d rejected\n", path, s.Rows, s.Accepted, s.Rejected)
	for _, r := range s.Rejections {
		id := r.PlayerID
		if id == "" {
			id = "(no id)"
		}
		fmt.Fprintf(w, "  line %d %s: %s\n", r.Line, id, r.Message())
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
