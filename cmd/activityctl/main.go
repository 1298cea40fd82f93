package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/organize-activities-api/internal/app"
	"github.com/noah-isme/organize-activities-api/internal/models"
	"github.com/noah-isme/organize-activities-api/internal/service"
	"github.com/noah-isme/organize-activities-api/pkg/cache"
	"github.com/noah-isme/organize-activities-api/pkg/config"
	"github.com/noah-isme/organize-activities-api/pkg/database"
	"github.com/noah-isme/organize-activities-api/pkg/future"
	"github.com/noah-isme/organize-activities-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// activityQueries is the read side of service.ActivityService used here.
type activityQueries interface {
	AllActivities(orgID, campaignID int) future.Future[[]models.CampaignActivity]
	CurrentActivities(orgID int) future.Future[[]models.CampaignActivity]
	CampaignActivities(orgID, campaignID int) future.Future[[]models.CampaignActivity]
	ArchivedActivities(orgID, campaignID int) future.Future[[]models.CampaignActivity]
	ArchivedStandaloneActivities(orgID int) future.Future[[]models.CampaignActivity]
	ActivityOverview(orgID, campaignID int) future.Future[models.ActivityOverview]
}

// backend is an opened activity stack. warm must be called before querying.
type backend struct {
	queries activityQueries
	warm    func(ctx context.Context, orgID int) error
	close   func()
}

type options struct {
	orgID      int
	campaignID int
	scope      string
	timeout    time.Duration
	verbose    bool
}

// openBackend connects postgres and, when enabled, redis.
var openBackend = func(ctx context.Context, opts *options, stderr io.Writer) (*backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logr := zap.NewNop()
	if opts.verbose {
		if logr, err = logger.New(cfg); err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		fmt.Fprintln(stderr, "warning: redis unavailable, reading sources directly:", err)
		redisClient = nil
	}

	activities := app.NewActivities(cfg, db, redisClient, nil, logr)
	return &backend{
		queries: activities.Service,
		warm: func(ctx context.Context, orgID int) error {
			return activities.Warm(ctx, orgID, opts.timeout)
		},
		close: func() {
			if redisClient != nil {
				_ = redisClient.Close()
			}
			_ = db.Close()
			_ = logr.Sync()
		},
	}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run executes the command line in args.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "activityctl",
		Short:         "Inspect the aggregated campaign activities of an organization",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().IntVar(&opts.orgID, "org", 0, "organization id")
	root.PersistentFlags().IntVar(&opts.campaignID, "campaign", 0, "restrict to one campaign (0 = all)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "source load timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log source loading to stdout")
	_ = root.MarkPersistentFlagRequired("org")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if opts.orgID <= 0 {
			return fmt.Errorf("--org must be a positive id, got %d", opts.orgID)
		}
		if opts.campaignID < 0 {
			return fmt.Errorf("--campaign must not be negative, got %d", opts.campaignID)
		}
		return nil
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List activities of one scope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd.Context(), opts, stderr, func(b *backend) error {
				result, err := selectList(b.queries, opts)
				if err != nil {
					return err
				}
				activities, err := unwrap(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, renderActivities(activities))
				return nil
			})
		},
	}
	list.Flags().StringVar(&opts.scope, "scope", service.ExportScopeCurrent, "current, archived, standalone or all")

	overview := &cobra.Command{
		Use:   "overview",
		Short: "Show today, tomorrow and the rest of this week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd.Context(), opts, stderr, func(b *backend) error {
				result, err := unwrap(b.queries.ActivityOverview(opts.orgID, opts.campaignID))
				if err != nil {
					return err
				}
				for _, section := range []struct {
					title string
					items []models.CampaignActivity
				}{
					{"Today", result.Today},
					{"Tomorrow", result.Tomorrow},
					{"Also this week", result.AlsoThisWeek},
				} {
					fmt.Fprintln(stdout, headingStyle.Render(fmt.Sprintf("%s (%d)", section.title, len(section.items))))
					if len(section.items) > 0 {
						fmt.Fprintln(stdout, renderActivities(section.items))
					}
				}
				return nil
			})
		},
	}

	root.AddCommand(list, overview)
	return root
}

func withBackend(ctx context.Context, opts *options, stderr io.Writer, fn func(*backend) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := openBackend(ctx, opts, stderr)
	if err != nil {
		return err
	}
	if b.close != nil {
		defer b.close()
	}
	if b.warm != nil {
		if err := b.warm(ctx, opts.orgID); err != nil {
			return fmt.Errorf("load activity sources: %w", err)
		}
	}
	return fn(b)
}

func selectList(q activityQueries, opts *options) (future.Future[[]models.CampaignActivity], error) {
	switch opts.scope {
	case service.ExportScopeCurrent:
		if opts.campaignID != 0 {
			return q.CampaignActivities(opts.orgID, opts.campaignID), nil
		}
		return q.CurrentActivities(opts.orgID), nil
	case service.ExportScopeArchived:
		return q.ArchivedActivities(opts.orgID, opts.campaignID), nil
	case service.ExportScopeStandalone:
		if opts.campaignID != 0 {
			return future.Future[[]models.CampaignActivity]{}, errors.New("--campaign cannot be combined with --scope standalone")
		}
		return q.ArchivedStandaloneActivities(opts.orgID), nil
	case service.ExportScopeAll:
		return q.AllActivities(opts.orgID, opts.campaignID), nil
	default:
		return future.Future[[]models.CampaignActivity]{}, fmt.Errorf("unknown scope %q", opts.scope)
	}
}

var errStillLoading = errors.New("activity sources are still loading")

func unwrap[T any](f future.Future[T]) (T, error) {
	var zero T
	if f.Err != nil {
		return zero, f.Err
	}
	value, ok := f.Value()
	if f.IsLoading || !ok {
		return zero, errStillLoading
	}
	return value, nil
}

var headingStyle = lipgloss.NewStyle().Bold(true)

func renderActivities(activities []models.CampaignActivity) string {
	rows := make([][]string, 0, len(activities))
	for _, activity := range activities {
		campaign := "-"
		if ref := activity.Data.CampaignRef(); ref != nil {
			campaign = ref.Title
		}
		rows = append(rows, []string{
			string(activity.Kind),
			strconv.Itoa(activity.Data.ActivityID()),
			activity.Data.ActivityTitle(),
			campaign,
			formatDate(activity.VisibleFrom),
			formatDate(activity.VisibleUntil),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KIND", "ID", "TITLE", "CAMPAIGN", "FROM", "UNTIL").
		Rows(rows...).
		String()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(dateLayout)
}
