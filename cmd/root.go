package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/foomo/keel"
	"github.com/foomo/keel/log"
	"github.com/foomo/keel/net/http/middleware"
	"github.com/foomo/keel/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/foomo/mockserver/pkg/fixture"
	"github.com/foomo/mockserver/pkg/handler"
	"github.com/foomo/mockserver/pkg/retry"
)

const (
	defaultPort        = 8888
	defaultFixturesDir = "test_fixtures"
)

// NewRootCommand represents the base command when called without any subcommands
func NewRootCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "mockserver [port] [fixtures_dir]",
		Short: "Simulates download failure modes for installer test suites",
		Args:  cobra.MaximumNArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zap.ReplaceGlobals(log.NewLogger(
				logLevelFlag(v),
				logFormatFlag(v),
			))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), v, args)
		},
	}

	addLogLevelFlag(cmd.PersistentFlags(), v)
	addLogFormatFlag(cmd.PersistentFlags(), v)

	flags := cmd.Flags()
	addAdminAddressFlag(flags, v)
	addGracefulPeriodFlag(flags, v)
	addServiceHealthzEnabledFlag(flags, v)
	addServicePrometheusEnabledFlag(flags, v)
	addFixturesBucketFlag(flags, v)
	addFixturesBucketPrefixFlag(flags, v)
	bindDebugEnv(v)

	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Logger().Fatal("failed to run command", zap.Error(err))
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func serve(ctx context.Context, v *viper.Viper, args []string) error {
	port := defaultPort
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 1 || p > 65535 {
			return fmt.Errorf("invalid port %q", args[0])
		}
		port = p
	}
	fixturesDir := defaultFixturesDir
	if len(args) > 1 {
		fixturesDir = args[1]
	}

	svr := keel.NewServer(
		keel.WithHTTPPrometheusService(servicePrometheusEnabledFlag(v)),
		keel.WithHTTPHealthzService(serviceHealthzEnabledFlag(v)),
		keel.WithPrometheusMeter(servicePrometheusEnabledFlag(v)),
		keel.WithGracefulPeriod(gracefulPeriodFlag(v)),
	)

	l := svr.Logger()

	store, err := fixture.NewStore(l.Named("inst.fixtures"), fixturesDir)
	if err != nil {
		return fmt.Errorf("failed to create fixture store: %w", err)
	}

	if bucketURL := fixturesBucketFlag(v); bucketURL != "" {
		if !fixture.ValidBlobScheme(bucketURL) {
			return fmt.Errorf("unsupported blob storage URL scheme in %q; supported schemes: gs://, s3://, azblob://", bucketURL)
		}
		l.Info("seeding fixtures from blob storage",
			zap.String("bucket", bucketURL),
			zap.String("provider", fixture.BlobProvider(bucketURL)),
		)
		if err := store.SeedFromBucket(ctx, bucketURL, fixturesBucketPrefixFlag(v)); err != nil {
			return fmt.Errorf("failed to seed fixtures: %w", err)
		}
	}

	if err := store.EnsureMockBinary(); err != nil {
		return fmt.Errorf("failed to create mock binary fixture: %w", err)
	}

	counter := retry.NewCounter()

	middlewares := []middleware.Middleware{
		middleware.Recover(),
	}
	if debugFlag(v) {
		middlewares = append(middlewares, middleware.Logger())
	}

	svr.AddServices(
		service.NewHTTP(l.Named("svc.http"), "http", fmt.Sprintf(":%d", port),
			handler.NewHTTP(l.Named("inst.handler"), counter, store.Handler()),
			middlewares...,
		),
	)

	if adminAddr := adminAddressFlag(v); adminAddr != "" {
		svr.AddServices(
			service.NewHTTP(l.Named("svc.admin"), "admin", adminAddr,
				handler.NewAdmin(l.Named("inst.handler"), counter),
			),
		)
	}

	l.Info("mock server listening",
		zap.Int("port", port),
		zap.String("fixtures_dir", store.Root()),
	)

	svr.Run()

	l.Info("mock server shut down")

	return nil
}
