package cmd

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func logLevelFlag(v *viper.Viper) string {
	return v.GetString("log.level")
}

func addLogLevelFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("log-level", "info", "log level")
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindEnv("log.level", "LOG_LEVEL")
}

func logFormatFlag(v *viper.Viper) string {
	return v.GetString("log.format")
}

func addLogFormatFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("log-format", "json", "log format")
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = v.BindEnv("log.format", "LOG_FORMAT")
}

// debugFlag reports whether per-request logging is enabled. Any non-empty
// value of the DEBUG environment variable turns it on.
func debugFlag(v *viper.Viper) bool {
	return v.GetString("debug") != ""
}

func bindDebugEnv(v *viper.Viper) {
	_ = v.BindEnv("debug", "DEBUG")
}

func adminAddressFlag(v *viper.Viper) string {
	return v.GetString("admin.address")
}

func addAdminAddressFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("admin-address", "", "Address to expose the counters endpoint on (host:port), empty disables it")
	_ = v.BindPFlag("admin.address", flags.Lookup("admin-address"))
	_ = v.BindEnv("admin.address", "MOCK_SERVER_ADMIN_ADDRESS")
}

func gracefulPeriodFlag(v *viper.Viper) time.Duration {
	return v.GetDuration("graceful_period")
}

func addGracefulPeriodFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Duration("graceful-period", 10*time.Second, "Grace period for in-flight requests on shutdown")
	_ = v.BindPFlag("graceful_period", flags.Lookup("graceful-period"))
	_ = v.BindEnv("graceful_period", "MOCK_SERVER_GRACEFUL_PERIOD")
}

func serviceHealthzEnabledFlag(v *viper.Viper) bool {
	return v.GetBool("service.healthz.enabled")
}

func addServiceHealthzEnabledFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("service-healthz-enabled", false, "Enable healthz service")
	_ = v.BindPFlag("service.healthz.enabled", flags.Lookup("service-healthz-enabled"))
}

func servicePrometheusEnabledFlag(v *viper.Viper) bool {
	return v.GetBool("service.prometheus.enabled")
}

func addServicePrometheusEnabledFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("service-prometheus-enabled", false, "Enable prometheus service")
	_ = v.BindPFlag("service.prometheus.enabled", flags.Lookup("service-prometheus-enabled"))
}

func fixturesBucketFlag(v *viper.Viper) string {
	return v.GetString("fixtures.bucket")
}

func addFixturesBucketFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("fixtures-bucket", "", "Blob bucket URL to seed fixtures from (supported schemes: gs://, s3://, azblob://)")
	_ = v.BindPFlag("fixtures.bucket", flags.Lookup("fixtures-bucket"))
	_ = v.BindEnv("fixtures.bucket", "MOCK_SERVER_FIXTURES_BUCKET")
}

func fixturesBucketPrefixFlag(v *viper.Viper) string {
	return v.GetString("fixtures.bucket_prefix")
}

func addFixturesBucketPrefixFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("fixtures-bucket-prefix", "", "Key prefix to seed fixtures from")
	_ = v.BindPFlag("fixtures.bucket_prefix", flags.Lookup("fixtures-bucket-prefix"))
	_ = v.BindEnv("fixtures.bucket_prefix", "MOCK_SERVER_FIXTURES_BUCKET_PREFIX")
}
