package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/retailworks/retailpulse/internal/analytics"
	"github.com/retailworks/retailpulse/internal/cleanse"
	"github.com/retailworks/retailpulse/internal/clock"
	"github.com/retailworks/retailpulse/internal/config"
	"github.com/retailworks/retailpulse/internal/extract"
	"github.com/retailworks/retailpulse/internal/migration"
	"github.com/retailworks/retailpulse/internal/observability"
	"github.com/retailworks/retailpulse/internal/pipeline"
	pipelinedomain "github.com/retailworks/retailpulse/internal/pipeline/domain"
	"github.com/retailworks/retailpulse/internal/scheduler"
	"github.com/retailworks/retailpulse/internal/server"
	"github.com/retailworks/retailpulse/internal/transform"
	"github.com/retailworks/retailpulse/internal/warehouse"
	"github.com/retailworks/retailpulse/pkg/db"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "retailpulse",
		Short:   "RetailPulse warehouse pipeline CLI",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newRunCmd(), newServeCmd(), newSchedulerCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply warehouse schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one pipeline run and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the ops HTTP server and the scheduled pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newSchedulerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run the scheduled pipeline without the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runScheduler()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then the server and scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func pipelineModules() []fx.Option {
	return []fx.Option{
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		extract.Module,
		cleanse.Module,
		transform.Module,
		analytics.Module,
		warehouse.Module,
		pipeline.Module,
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runOnce() error {
	var runErr error
	app := fx.New(append(pipelineModules(),
		fx.Invoke(func(svc pipelinedomain.Service) {
			_, runErr = svc.Execute(context.Background())
		}),
	)...)

	if err := app.Start(context.Background()); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return runErr
}

func runServe() {
	app := fx.New(append(pipelineModules(),
		scheduler.Module,
		server.Module,
		fx.Invoke(startScheduler),
	)...)
	app.Run()
}

func runScheduler() {
	app := fx.New(append(pipelineModules(),
		scheduler.Module,
		fx.Invoke(startScheduler),
	)...)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}

func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.RunForever(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
