package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/calderafoods/demandwatch/pkg/application/dto"
	"github.com/calderafoods/demandwatch/pkg/application/services"
	"github.com/calderafoods/demandwatch/pkg/domain/repositories"
	"github.com/calderafoods/demandwatch/pkg/infrastructure/events"
	"github.com/calderafoods/demandwatch/pkg/infrastructure/identity"
	csvrepo "github.com/calderafoods/demandwatch/pkg/infrastructure/repositories/csv"
	"github.com/calderafoods/demandwatch/pkg/infrastructure/repositories/gormdb"
	"github.com/calderafoods/demandwatch/pkg/infrastructure/repositories/memory"
	"github.com/calderafoods/demandwatch/pkg/interfaces/cli/output"
)

// Config holds configuration for the demandwatch command
type Config struct {
	CSVFile     string
	DatabaseDSN string
	Format      string
	Top         int
	Watch       bool
	Interval    time.Duration
	Acknowledge bool
	Notes       string
	UserID      string
	UserName    string
	UserEmail   string
	Help        bool
}

// WatchCommand wires the repositories and services and runs either a
// one-shot report or the polling loop.
type WatchCommand struct {
	config Config
	logger *zap.Logger
}

// NewWatchCommand creates a new command with the given configuration
func NewWatchCommand(config Config, logger *zap.Logger) *WatchCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WatchCommand{config: config, logger: logger}
}

// Execute runs the command
func (c *WatchCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	demandRepo, ackRepo, workOrderRepo, err := c.buildRepositories()
	if err != nil {
		return err
	}

	refreshSvc := services.NewRefreshService(demandRepo, c.logger)

	if c.config.Watch {
		return c.runWatch(ctx, refreshSvc)
	}

	result, err := refreshSvc.Items(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute unfulfilled demand: %w", err)
	}

	if err := output.Generate(os.Stdout, result, output.Config{
		Format: c.config.Format,
		Top:    c.config.Top,
	}); err != nil {
		return fmt.Errorf("failed to generate output: %w", err)
	}

	if c.config.Acknowledge {
		return c.acknowledge(ctx, ackRepo, workOrderRepo, result)
	}
	return nil
}

func (c *WatchCommand) validateInputs() error {
	if c.config.CSVFile == "" && c.config.DatabaseDSN == "" {
		return fmt.Errorf("either a CSV file or a database DSN is required")
	}
	if c.config.CSVFile != "" && c.config.DatabaseDSN != "" {
		return fmt.Errorf("CSV file and database DSN are mutually exclusive")
	}
	if c.config.Format != "text" && c.config.Format != "json" {
		return fmt.Errorf("unsupported format %q (want text or json)", c.config.Format)
	}
	if c.config.Watch && c.config.CSVFile != "" {
		return fmt.Errorf("watch mode requires a database DSN")
	}
	if c.config.Acknowledge && c.config.CSVFile != "" {
		return fmt.Errorf("acknowledging requires a database DSN; a CSV run cannot persist the audit record")
	}
	if c.config.Acknowledge && c.config.UserID == "" {
		return fmt.Errorf("acknowledging requires a user id (set -user-id or DEMANDWATCH_USER_ID)")
	}
	return nil
}

func (c *WatchCommand) buildRepositories() (
	repositories.UnfulfilledDemandRepository,
	repositories.AcknowledgmentRepository,
	repositories.WorkOrderRepository,
	error,
) {
	if c.config.CSVFile != "" {
		loader := csvrepo.NewLoader()
		rows, err := loader.LoadUnfulfilledItems(c.config.CSVFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load CSV rows: %w", err)
		}

		demandRepo := memory.NewUnfulfilledDemandRepository()
		if err := demandRepo.LoadItems(rows); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load rows into repository: %w", err)
		}
		return demandRepo, memory.NewAcknowledgmentRepository(), memory.NewWorkOrderRepository(), nil
	}

	db, err := gormdb.Open(c.config.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := gormdb.Migrate(db); err != nil {
		return nil, nil, nil, err
	}
	return gormdb.NewUnfulfilledDemandRepository(db),
		gormdb.NewAcknowledgmentRepository(db),
		gormdb.NewWorkOrderRepository(db),
		nil
}

// identityProvider resolves the acknowledging user from configuration, or an
// anonymous session when no user is configured.
func (c *WatchCommand) identityProvider() (services.IdentityProvider, error) {
	if c.config.UserID == "" {
		return identity.NewAnonymousProvider(), nil
	}
	return identity.NewStaticProvider(c.config.UserID, c.config.UserName, c.config.UserEmail)
}

func (c *WatchCommand) acknowledge(
	ctx context.Context,
	ackRepo repositories.AcknowledgmentRepository,
	workOrderRepo repositories.WorkOrderRepository,
	result *dto.UnfulfilledResult,
) error {
	provider, err := c.identityProvider()
	if err != nil {
		return err
	}

	eventStore := events.NewInMemoryEventStore(c.logger)
	auditLog := events.NewLoggingHandler(c.logger)
	if err := eventStore.Subscribe(
		[]string{events.AcknowledgmentCreatedEvent, events.AcknowledgmentLinkedEvent, events.AcknowledgmentLinkPartial},
		auditLog,
	); err != nil {
		return fmt.Errorf("failed to subscribe audit handler: %w", err)
	}
	defer func() {
		_ = eventStore.Unsubscribe(auditLog)
	}()

	ackSvc := services.NewAuditedAcknowledgmentService(
		services.NewAcknowledgmentService(ackRepo, workOrderRepo, provider, c.logger),
		eventStore,
		c.logger,
	)

	ack, err := ackSvc.Create(ctx, result.Items, c.config.Notes)
	if err != nil {
		return fmt.Errorf("failed to record acknowledgment: %w", err)
	}

	fmt.Printf("Acknowledged %d items as %s (acknowledgment %s)\n",
		len(ack.Items), ack.UserName, ack.ID)
	return nil
}

func (c *WatchCommand) runWatch(ctx context.Context, refreshSvc *services.RefreshService) error {
	// Prime the cache before the loop so failures surface immediately.
	result, err := refreshSvc.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("initial refresh failed: %w", err)
	}
	if err := output.Generate(os.Stdout, result, output.Config{
		Format: c.config.Format,
		Top:    c.config.Top,
	}); err != nil {
		return err
	}

	return refreshSvc.Run(ctx, c.config.Interval)
}

func (c *WatchCommand) showHelp() {
	fmt.Println(`demandwatch - unfulfilled sales-order demand prioritizer

Usage:
  demandwatch -csv rows.csv [-format text|json] [-top N]
  demandwatch -dsn postgres://... [-watch] [-interval 60s]
  demandwatch -dsn postgres://... -ack [-notes "..."]

Flags:
  -csv        CSV export of the unfulfilled_sales_orders view
  -dsn        Postgres DSN (or DATABASE_URL env var)
  -format     Output format: text or json (default text)
  -top        Limit output to the N highest-priority rows
  -watch      Keep polling and recomputing on an interval
  -interval   Poll interval in watch mode (default 60s)
  -ack        Record an acknowledgment of the displayed list (database mode only)
  -notes      Free-text note stored with the acknowledgment
  -user-id    Acknowledging user id (or DEMANDWATCH_USER_ID)
  -user-name  Acknowledging user display name`)
}
