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
	flags.String("log-level", "warn", "log level")
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindEnv("log.level", "LOG_LEVEL")
}

func logFormatFlag(v *viper.Viper) string {
	return v.GetString("log.format")
}

func addLogFormatFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("log-format", "console", "log format")
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = v.BindEnv("log.format", "LOG_FORMAT")
}

func metricsTextfileFlag(v *viper.Viper) string {
	return v.GetString("metrics.textfile")
}

func addMetricsTextfileFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("metrics-textfile", "", "Write metrics to this file after the command, e.g. for the node exporter textfile collector")
	_ = v.BindPFlag("metrics.textfile", flags.Lookup("metrics-textfile"))
	_ = v.BindEnv("metrics.textfile", "WCA_METRICS_TEXTFILE")
}

func podFlag(v *viper.Viper) int {
	return v.GetInt("pod")
}

func addPodFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Int("pod", 0, "Pod number of the account, used when no endpoint is given")
	_ = v.BindPFlag("pod", flags.Lookup("pod"))
	_ = v.BindEnv("pod", "WCA_POD")
}

func endpointFlag(v *viper.Viper) string {
	return v.GetString("endpoint")
}

func addEndpointFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("endpoint", "", "Api endpoint, e.g. https://api-campaign-us-1.goacoustic.com")
	_ = v.BindPFlag("endpoint", flags.Lookup("endpoint"))
	_ = v.BindEnv("endpoint", "WCA_ENDPOINT")
}

func clientIDFlag(v *viper.Viper) string {
	return v.GetString("client.id")
}

func addClientIDFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("client-id", "", "Oauth client id")
	_ = v.BindPFlag("client.id", flags.Lookup("client-id"))
	_ = v.BindEnv("client.id", "WCA_CLIENT_ID")
}

func clientSecretFlag(v *viper.Viper) string {
	return v.GetString("client.secret")
}

func addClientSecretFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("client-secret", "", "Oauth client secret")
	_ = v.BindPFlag("client.secret", flags.Lookup("client-secret"))
	_ = v.BindEnv("client.secret", "WCA_CLIENT_SECRET")
}

func refreshTokenFlag(v *viper.Viper) string {
	return v.GetString("refresh_token")
}

func addRefreshTokenFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("refresh-token", "", "Oauth refresh token")
	_ = v.BindPFlag("refresh_token", flags.Lookup("refresh-token"))
	_ = v.BindEnv("refresh_token", "WCA_REFRESH_TOKEN")
}

func accessTokenFlag(v *viper.Viper) string {
	return v.GetString("access_token")
}

func addAccessTokenFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("access-token", "", "Use this access token instead of the refresh token grant")
	_ = v.BindPFlag("access_token", flags.Lookup("access-token"))
	_ = v.BindEnv("access_token", "WCA_ACCESS_TOKEN")
}

func profileFlag(v *viper.Viper) string {
	return v.GetString("profile")
}

func addProfileFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("profile", "default", "Keyring profile holding the credentials")
	_ = v.BindPFlag("profile", flags.Lookup("profile"))
	_ = v.BindEnv("profile", "WCA_PROFILE")
}

func timeoutFlag(v *viper.Viper) time.Duration {
	return v.GetDuration("timeout")
}

func addTimeoutFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Duration("timeout", time.Minute, "Http client timeout")
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = v.BindEnv("timeout", "WCA_TIMEOUT")
}

func outputFlag(v *viper.Viper) string {
	return v.GetString("output")
}

func addOutputFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.StringP("output", "o", "json", "Output format (json, yaml)")
	_ = v.BindPFlag("output", flags.Lookup("output"))
	_ = v.BindEnv("output", "WCA_OUTPUT")
}

func journalEnabledFlag(v *viper.Viper) bool {
	return v.GetBool("journal.enabled")
}

func addJournalEnabledFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("journal", false, "Record every exchange with the api")
	_ = v.BindPFlag("journal.enabled", flags.Lookup("journal"))
	_ = v.BindEnv("journal.enabled", "WCA_JOURNAL_ENABLED")
}

func journalDirFlag(v *viper.Viper) string {
	return v.GetString("journal.dir")
}

func addJournalDirFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("journal-dir", "", "Directory of the filesystem journal, defaults to the user cache")
	_ = v.BindPFlag("journal.dir", flags.Lookup("journal-dir"))
	_ = v.BindEnv("journal.dir", "WCA_JOURNAL_DIR")
}

func journalLimitFlag(v *viper.Viper) int {
	return v.GetInt("journal.limit")
}

func addJournalLimitFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Int("journal-limit", 100, "Number of exchanges to keep, 0 keeps all")
	_ = v.BindPFlag("journal.limit", flags.Lookup("journal-limit"))
	_ = v.BindEnv("journal.limit", "WCA_JOURNAL_LIMIT")
}

func journalStorageTypeFlag(v *viper.Viper) string {
	return v.GetString("journal.storage_type")
}

func addJournalStorageTypeFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("journal-storage-type", "filesystem", "Journal storage (filesystem, blob)")
	_ = v.BindPFlag("journal.storage_type", flags.Lookup("journal-storage-type"))
	_ = v.BindEnv("journal.storage_type", "WCA_JOURNAL_STORAGE_TYPE")
}

func journalBlobBucketFlag(v *viper.Viper) string {
	return v.GetString("journal.blob.bucket")
}

func addJournalBlobBucketFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("journal-blob-bucket", "", "Bucket url of the blob journal (gs://, s3://, azblob://)")
	_ = v.BindPFlag("journal.blob.bucket", flags.Lookup("journal-blob-bucket"))
	_ = v.BindEnv("journal.blob.bucket", "WCA_JOURNAL_BLOB_BUCKET")
}

func journalBlobPrefixFlag(v *viper.Viper) string {
	return v.GetString("journal.blob.prefix")
}

func addJournalBlobPrefixFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("journal-blob-prefix", "", "Key prefix inside the journal bucket")
	_ = v.BindPFlag("journal.blob.prefix", flags.Lookup("journal-blob-prefix"))
	_ = v.BindEnv("journal.blob.prefix", "WCA_JOURNAL_BLOB_PREFIX")
}

// addConnectionFlags adds everything needed to reach the api
func addConnectionFlags(flags *pflag.FlagSet, v *viper.Viper) {
	addPodFlag(flags, v)
	addEndpointFlag(flags, v)
	addClientIDFlag(flags, v)
	addClientSecretFlag(flags, v)
	addRefreshTokenFlag(flags, v)
	addAccessTokenFlag(flags, v)
	addProfileFlag(flags, v)
	addTimeoutFlag(flags, v)
	addOutputFlag(flags, v)
	addJournalFlags(flags, v)
}

func addJournalFlags(flags *pflag.FlagSet, v *viper.Viper) {
	addJournalEnabledFlag(flags, v)
	addJournalDirFlag(flags, v)
	addJournalLimitFlag(flags, v)
	addJournalStorageTypeFlag(flags, v)
	addJournalBlobBucketFlag(flags, v)
	addJournalBlobPrefixFlag(flags, v)
}
