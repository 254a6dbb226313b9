// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/aap-sync-service/internal/aap"
	"github.com/canonical/aap-sync-service/internal/config"
	"github.com/canonical/aap-sync-service/internal/db"
	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring/prometheus"
	"github.com/canonical/aap-sync-service/internal/storage"
	"github.com/canonical/aap-sync-service/internal/tracing"
	"github.com/canonical/aap-sync-service/pkg/jobs"
	"github.com/canonical/aap-sync-service/pkg/resources"
	syncpkg "github.com/canonical/aap-sync-service/pkg/sync"
	"github.com/canonical/aap-sync-service/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}
	if err := specs.Validate(); err != nil {
		panic(fmt.Errorf("invalid configuration: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("aap-sync-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()

	if err := db.Migrate(context.Background(), dbClient); err != nil {
		return fmt.Errorf("failed to run migrations: %v", err)
	}

	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	aapConfig := &aap.Config{
		BaseURL:       specs.AAPBaseURL,
		TLSSkipVerify: specs.AAPTLSSkipVerify,
	}

	var tokens aap.TokenProviderInterface
	if specs.AAPClientID != "" {
		tokens = aap.NewClientCredentialsProvider(
			aap.NewClient(aapConfig, nil, tracer, monitor, logger),
			specs.AAPClientID,
			specs.AAPClientSecret,
			logger,
		)
		logger.Info("Using OAuth client credentials against the platform")
	} else {
		tokens = aap.NewStaticTokenProvider(specs.AAPToken)
	}

	client := aap.NewClient(aapConfig, tokens, tracer, monitor, logger)
	paginator := aap.NewPaginator(client, specs.AAPMaxPages, tracer, logger)

	resourceService := resources.NewService(
		client,
		&resources.Config{
			PollInterval:    specs.AAPPollInterval,
			MaxPollDuration: specs.AAPMaxPollDuration,
			ValidateCerts:   !specs.AAPTLSSkipVerify,
			SCM: resources.SCMIntegrations{
				GithubUsername: specs.GithubUsername,
				GithubToken:    specs.GithubToken,
				GitlabUsername: specs.GitlabUsername,
				GitlabToken:    specs.GitlabToken,
			},
		},
		tracer,
		monitor,
		logger,
	)

	jobService := jobs.NewService(
		client,
		paginator,
		&jobs.Config{
			PollInterval:    specs.AAPPollInterval,
			MaxPollDuration: specs.AAPMaxPollDuration,
			PageSize:        specs.AAPPageSize,
		},
		tracer,
		monitor,
		logger,
	)

	aggregator := syncpkg.NewAggregator(
		paginator,
		&syncpkg.AggregatorConfig{
			Organizations:      specs.Organizations(),
			UserAndTeamDetails: specs.SyncUserAndTeamDetails,
			PageSize:           specs.AAPPageSize,
		},
		tracer,
		monitor,
		logger,
	)
	locationKey := syncpkg.LocationKey(specs.AAPBaseURL)
	reconciler := syncpkg.NewReconciler(
		client,
		paginator,
		specs.Organizations(),
		locationKey,
		specs.AAPPageSize,
		tracer,
		monitor,
		logger,
	)
	syncService := syncpkg.NewService(aggregator, reconciler, s, locationKey, tracer, monitor, logger)

	scheduler := syncpkg.NewScheduler(syncService, specs.SyncSchedule, logger)
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start the sync scheduler: %v", err)
	}
	defer scheduler.Stop()

	router := web.NewRouter(
		specs.APIToken,
		syncService,
		resourceService,
		jobService,
		dbClient,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
