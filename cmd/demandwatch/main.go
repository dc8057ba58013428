package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/calderafoods/demandwatch/pkg/interfaces/cli/commands"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Command line flags
	var (
		csvFile  = flag.String("csv", "", "Path to a CSV export of the unfulfilled_sales_orders view")
		dsn      = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN")
		format   = flag.String("format", "text", "Output format: text, json")
		top      = flag.Int("top", 0, "Limit output to the N highest-priority rows (0 = all)")
		watch    = flag.Bool("watch", false, "Keep polling and recomputing on an interval")
		interval = flag.Duration("interval", 60*time.Second, "Poll interval in watch mode")
		ack      = flag.Bool("ack", false, "Record an acknowledgment of the displayed list")
		notes    = flag.String("notes", "", "Free-text note stored with the acknowledgment")
		userID   = flag.String("user-id", os.Getenv("DEMANDWATCH_USER_ID"), "Acknowledging user id")
		userName = flag.String("user-name", os.Getenv("DEMANDWATCH_USER_NAME"), "Acknowledging user display name")
		verbose  = flag.Bool("verbose", false, "Enable debug logging")
		help     = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	config := commands.Config{
		CSVFile:     *csvFile,
		DatabaseDSN: *dsn,
		Format:      *format,
		Top:         *top,
		Watch:       *watch,
		Interval:    *interval,
		Acknowledge: *ack,
		Notes:       *notes,
		UserID:      *userID,
		UserName:    *userName,
		UserEmail:   os.Getenv("DEMANDWATCH_USER_EMAIL"),
		Help:        *help,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := commands.NewWatchCommand(config, logger)
	if err := cmd.Execute(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return config.Build()
}
