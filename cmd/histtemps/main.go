package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/i474232898/historical-temps/internal/cli"
	"github.com/i474232898/historical-temps/internal/config"
	"github.com/i474232898/historical-temps/internal/history"
	"github.com/i474232898/historical-temps/internal/history/providers"
)

// app bundles the collaborators every command needs.
type app struct {
	logger   *slog.Logger
	resolver history.Resolver
	archive  history.Archive
}

func newApp(cfg *config.AppConfig) *app {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var resolver history.Resolver
	switch cfg.Geocoder {
	case config.GeocoderGoogle:
		resolver = providers.NewGoogleResolver(cfg.GoogleAPIKey, cfg.GeocoderCountry)
	default:
		resolver = providers.NewZippopotamResolver(httpClient, cfg.GeocoderURL, cfg.GeocoderCountry, cfg.Backoff())
	}

	return &app{
		logger:   logger,
		resolver: providers.NewCachingResolver(resolver, 0),
		archive:  providers.NewOpenMeteoArchive(httpClient, cfg.ArchiveURL, cfg.ArchiveTimezone, cfg.Backoff(), logger),
	}
}

func (a *app) newRecord(ctx context.Context, postalCode, start, end string) (*history.Record, error) {
	return history.NewRecord(ctx, postalCode, a.resolver, a.archive,
		history.WithRange(start, end),
		history.WithLogger(a.logger),
	)
}

// newRootCmd wires the command tree. Configuration is loaded in
// PersistentPreRunE so that --help and usage errors work without a valid
// environment.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "histtemps",
		Short: "Explore historical daily maximum temperatures by zip code",
		Long: "Loads daily maximum temperatures from the Open-Meteo archive for up to two zip codes " +
			"and compares averages, lists days above a threshold and ranks the hottest days.\n" +
			"Without a subcommand an interactive menu is started.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			*a = *newApp(cfg)
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			loader := func(ctx context.Context, postalCode string) (*history.Record, error) {
				return a.newRecord(ctx, postalCode, history.DefaultStart, history.DefaultEnd)
			}
			cli.NewMenu(cmd.InOrStdin(), cmd.OutOrStdout(), loader).Run(cmd.Context())
		},
	}

	rootCmd.AddCommand(averageCmd(a), aboveCmd(a), topCmd(a))
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
