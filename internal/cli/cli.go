// Package cli builds the scamshield command tree. Commands talk to the
// scoring service over the web client layer; the scan command drives the
// full scan-session lifecycle so stale completions can never clobber a newer
// request.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ayeshahabib/scamshield/internal/app"
	"github.com/ayeshahabib/scamshield/internal/history"
	"github.com/ayeshahabib/scamshield/internal/logging"
	"github.com/ayeshahabib/scamshield/internal/model"
	"github.com/ayeshahabib/scamshield/internal/scanclient"
	"github.com/ayeshahabib/scamshield/internal/session"
	"github.com/ayeshahabib/scamshield/internal/stats"
	"github.com/ayeshahabib/scamshield/internal/webclient"
)

// rootOptions carries the persistent flag values shared by all subcommands.
type rootOptions struct {
	configPath string
	serverURL  string
	logger     logging.Logger
}

// client resolves configuration and builds the API client. The returned
// closer releases the underlying web client.
func (o *rootOptions) client() (*scanclient.Client, func() error, error) {
	cfg, err := app.LoadConfig(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.serverURL != "" {
		cfg.Client.BaseURL = o.serverURL
	}

	wc, err := webclient.NewWebClient(cfg.WebClientConfig(), o.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("creating web client: %w", err)
	}
	return scanclient.New(cfg.Client.BaseURL, wc, o.logger), wc.Close, nil
}

// NewRootCmd assembles the command tree. logger may be nil.
func NewRootCmd(logger logging.Logger) *cobra.Command {
	if logger == nil {
		logger = logging.NewStdoutLogger("scamshield")
	}
	opts := &rootOptions{logger: logger}

	root := &cobra.Command{
		Use:           "scamshield",
		Short:         "Scan messages, links and phone numbers for scam risk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.serverURL, "server", "", "scoring service URL (overrides config)")

	root.AddCommand(
		newScanCmd(opts),
		newHistoryCmd(opts),
		newStatsCmd(opts),
		newOverviewCmd(opts),
	)
	return root
}

// typedScanner fixes the content type for one scan request so the session
// can stay ignorant of transport details.
type typedScanner struct {
	client   *scanclient.Client
	scanType model.ScanType
}

func (t *typedScanner) Scan(ctx context.Context, content string) (*model.ScanResult, error) {
	return t.client.ScanTyped(ctx, content, t.scanType)
}

func newScanCmd(opts *rootOptions) *cobra.Command {
	var scanType string

	cmd := &cobra.Command{
		Use:   "scan [content]",
		Short: "Submit content for a scam-risk verdict",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch scanType {
			case "", string(model.ScanTypeText), string(model.ScanTypePhone), string(model.ScanTypeURL):
			default:
				return fmt.Errorf("invalid --type value %q (text, phone or url)", scanType)
			}

			client, closeFn, err := opts.client()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			sess := session.New(&typedScanner{
				client:   client,
				scanType: model.ScanType(scanType),
			}, nil, opts.logger)

			snap, err := sess.Run(ctx, strings.Join(args, " "))
			if err != nil {
				if errors.Is(err, session.ErrEmptyInput) {
					return fmt.Errorf("nothing to scan: content is empty")
				}
				return err
			}
			if snap.Status == session.StatusFailed {
				return errors.New(snap.ErrMessage)
			}

			writeResult(cmd.OutOrStdout(), snap.Result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scanType, "type", "t", "", "content type: text, phone or url (default: auto-detect)")
	return cmd
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the most recent scans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := opts.client()
			if err != nil {
				return err
			}
			defer closeFn()

			entries, err := client.History(cmd.Context())
			if err != nil {
				return err
			}

			store := history.NewRemoteStore()
			store.Hydrate(entries)

			writeHistory(cmd.OutOrStdout(), store.All())
			return nil
		},
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate scan statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := opts.client()
			if err != nil {
				return err
			}
			defer closeFn()

			payload, err := client.Stats(cmd.Context())
			if err != nil {
				return err
			}

			writeStats(cmd.OutOrStdout(), stats.FromRemote(*payload))
			return nil
		},
	}
}

func newOverviewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show recent scans and statistics together",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := opts.client()
			if err != nil {
				return err
			}
			defer closeFn()

			// Each half degrades to an empty view on its own failure so a
			// partial outage still renders whatever is reachable.
			var (
				entries   []model.ScanResult
				statsSnap stats.Snapshot
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				got, err := client.History(ctx)
				if err == nil {
					entries = got
				}
				return nil
			})
			g.Go(func() error {
				payload, err := client.Stats(ctx)
				if err == nil {
					statsSnap = stats.FromRemote(*payload)
				}
				return nil
			})
			_ = g.Wait()

			store := history.NewRemoteStore()
			store.Hydrate(entries)

			out := cmd.OutOrStdout()
			writeStats(out, statsSnap)
			fmt.Fprintln(out)
			writeHistory(out, store.All())
			return nil
		},
	}
}
