package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/olliswe/bcp-to-t3-api/internal/app"
	"github.com/olliswe/bcp-to-t3-api/internal/config"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitNotFound = 2
)

var errNotFound = errors.New("not found")

type Aggregator interface {
	LookupNickname(ctx context.Context, name models.PlayerName) (models.NicknameLookup, error)
	ScrapeEvent(ctx context.Context, eventURL string) ([]models.ScrapedPlayer, error)
	EventPlacings(ctx context.Context, id models.EventID) (models.EventPlacings, error)
}

// ServiceFactory builds the aggregator once flags and config are known.
type ServiceFactory func(cfg *config.Config, log *zap.Logger) Aggregator

type options struct {
	configPath string
	format     string
	verbose    bool
}

func defaultFactory(cfg *config.Config, log *zap.Logger) Aggregator {
	return app.NewAggregator(log, cfg)
}

// NewRootCmd creates the root command
func NewRootCmd(out io.Writer, factory ServiceFactory) *cobra.Command {
	if factory == nil {
		factory = defaultFactory
	}
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "bcpctl",
		Short:         "Query player nicknames and event placings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (default $CONFIG_PATH or config/local.yaml)")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging on stderr")

	cmd.AddCommand(
		newNicknameCmd(opts, factory),
		newRosterCmd(opts, factory),
		newEventCmd(opts, factory),
	)

	return cmd
}

func newNicknameCmd(opts *options, factory ServiceFactory) *cobra.Command {
	var first, last string

	cmd := &cobra.Command{
		Use:   "nickname",
		Short: "Look up a player's nickname by name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, svc, done, err := setup(opts, factory)
			if err != nil {
				return err
			}
			defer done()

			name := models.PlayerName{FirstName: first, LastName: last}
			lookup, err := svc.LookupNickname(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("looking up nickname: %w", err)
			}
			if err := WriteNickname(cmd.OutOrStdout(), name, lookup, format); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			if !lookup.Found {
				return errNotFound
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&first, "first", "", "First name (required)")
	cmd.Flags().StringVar(&last, "last", "", "Last name (required)")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")

	return cmd
}

func newRosterCmd(opts *options, factory ServiceFactory) *cobra.Command {
	var link string

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Scrape an event page and resolve every player's nickname",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(link) == "" {
				return fmt.Errorf("--link is required")
			}
			format, svc, done, err := setup(opts, factory)
			if err != nil {
				return err
			}
			defer done()

			players, err := svc.ScrapeEvent(cmd.Context(), link)
			if err != nil {
				return fmt.Errorf("scraping event: %w", err)
			}
			if err := WriteRoster(cmd.OutOrStdout(), players, format); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&link, "link", "", "Event page URL (required)")

	return cmd
}

func newEventCmd(opts *options, factory ServiceFactory) *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Export the placings of an event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(eventID) == "" {
				return fmt.Errorf("--id is required")
			}
			format, svc, done, err := setup(opts, factory)
			if err != nil {
				return err
			}
			defer done()

			placings, err := svc.EventPlacings(cmd.Context(), models.EventID(strings.TrimSpace(eventID)))
			if err != nil {
				return fmt.Errorf("fetching placings: %w", err)
			}
			if err := WritePlacings(cmd.OutOrStdout(), placings, format); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&eventID, "id", "", "Event ID (required)")

	return cmd
}

func setup(opts *options, factory ServiceFactory) (OutputFormat, Aggregator, func(), error) {
	format, err := ParseFormat(strings.ToLower(opts.format))
	if err != nil {
		return "", nil, nil, err
	}

	cfg, err := config.Load(config.ResolvePath(opts.configPath))
	if err != nil {
		return "", nil, nil, fmt.Errorf("loading config: %w", err)
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log := app.SetupLogger(level)

	return format, factory(cfg, log), func() { _ = log.Sync() }, nil
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd(os.Stdout, nil).ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errNotFound):
		return ExitNotFound
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
}
